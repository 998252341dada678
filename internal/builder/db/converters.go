package db

import (
	"fmt"

	rows "github.com/openhire/pagebuilder/internal/builder/db/models"
	"github.com/openhire/pagebuilder/internal/builder/models"
)

func companyToDomain(row *rows.Company) *models.Company {
	return &models.Company{
		ID:              row.ID,
		Slug:            row.Slug,
		Name:            row.Name,
		LogoURL:         row.LogoURL,
		BannerURL:       row.BannerURL,
		CultureVideoURL: row.CultureVideoURL,
		Theme:           models.Theme(row.Theme),
		Published:       row.Published,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func companyToRow(c *models.Company) *rows.Company {
	return &rows.Company{
		ID:              c.ID,
		Slug:            c.Slug,
		Name:            c.Name,
		LogoURL:         c.LogoURL,
		BannerURL:       c.BannerURL,
		CultureVideoURL: c.CultureVideoURL,
		Theme:           rows.ThemeColumn(c.Theme),
		Published:       c.Published,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func sectionToDomain(row *rows.PageSection) (models.Section, error) {
	typ := models.SectionType(row.Type)
	content, err := models.DecodeContent(typ, row.Content)
	if err != nil {
		return models.Section{}, fmt.Errorf("decode section %s content: %w", row.ID, err)
	}
	return models.Section{
		ID:        row.ID,
		CompanyID: row.CompanyID,
		Type:      typ,
		Title:     row.Title,
		Content:   content,
		Order:     row.SortOrder,
		Visible:   row.Visible,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func sectionsToDomain(sectionRows []rows.PageSection) ([]models.Section, error) {
	out := make([]models.Section, len(sectionRows))
	for i := range sectionRows {
		s, err := sectionToDomain(&sectionRows[i])
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func sectionToRow(s *models.Section) (*rows.PageSection, error) {
	content, err := models.EncodeContent(s.Content)
	if err != nil {
		return nil, fmt.Errorf("encode section %s content: %w", s.ID, err)
	}
	return &rows.PageSection{
		ID:        s.ID,
		CompanyID: s.CompanyID,
		Type:      string(s.Type),
		Title:     s.Title,
		Content:   rows.JSONColumn(content),
		SortOrder: s.Order,
		Visible:   s.Visible,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}, nil
}

func jobToDomain(row *rows.Job) models.Job {
	return models.Job{
		ID:              row.ID,
		CompanyID:       row.CompanyID,
		Title:           row.Title,
		WorkPolicy:      row.WorkPolicy,
		Location:        row.Location,
		Department:      row.Department,
		EmploymentType:  row.EmploymentType,
		ExperienceLevel: row.ExperienceLevel,
		JobType:         row.JobType,
		SalaryRange:     row.SalaryRange,
		Slug:            row.Slug,
		Description:     row.Description,
		PostedAt:        row.PostedAt,
		CreatedAt:       row.CreatedAt,
	}
}

func jobToRow(j *models.Job) *rows.Job {
	return &rows.Job{
		ID:              j.ID,
		CompanyID:       j.CompanyID,
		Title:           j.Title,
		WorkPolicy:      j.WorkPolicy,
		Location:        j.Location,
		Department:      j.Department,
		EmploymentType:  j.EmploymentType,
		ExperienceLevel: j.ExperienceLevel,
		JobType:         j.JobType,
		SalaryRange:     j.SalaryRange,
		Slug:            j.Slug,
		Description:     j.Description,
		PostedAt:        j.PostedAt,
		CreatedAt:       j.CreatedAt,
	}
}

func userToDomain(row *rows.User) models.User {
	return models.User{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CompanyID:    row.CompanyID,
		CreatedAt:    row.CreatedAt,
	}
}

func userToRow(u *models.User) *rows.User {
	return &rows.User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CompanyID:    u.CompanyID,
		CreatedAt:    u.CreatedAt,
	}
}
