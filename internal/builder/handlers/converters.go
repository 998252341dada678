package handlers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	e "github.com/openhire/pagebuilder/internal/builder/errors"
	"github.com/openhire/pagebuilder/internal/builder/models"
)

// CompanyDTO is the wire representation of a company.
type CompanyDTO struct {
	ID              uuid.UUID    `json:"id"`
	Slug            string       `json:"slug"`
	Name            string       `json:"name"`
	LogoURL         string       `json:"logo_url,omitempty"`
	BannerURL       string       `json:"banner_url,omitempty"`
	CultureVideoURL string       `json:"culture_video_url,omitempty"`
	Theme           models.Theme `json:"theme"`
	Published       bool         `json:"is_published"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// UpdateCompanyRequest carries a partial company update. Absent fields are
// left untouched.
type UpdateCompanyRequest struct {
	Name            *string       `json:"name"`
	LogoURL         *string       `json:"logo_url"`
	BannerURL       *string       `json:"banner_url"`
	CultureVideoURL *string       `json:"culture_video_url"`
	Theme           *models.Theme `json:"theme"`
	Published       *bool         `json:"is_published"`
}

// SectionDTO is the wire representation of one page section. Content is the
// type-dependent payload object.
type SectionDTO struct {
	ID        uuid.UUID       `json:"id"`
	CompanyID uuid.UUID       `json:"company_id"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Content   json.RawMessage `json:"content"`
	Order     int             `json:"order"`
	Visible   bool            `json:"is_visible"`
	CreatedAt time.Time       `json:"created_at,omitempty"`
	UpdatedAt time.Time       `json:"updated_at,omitempty"`
}

// JobDTO is the wire representation of an open position.
type JobDTO struct {
	ID              uuid.UUID `json:"id"`
	CompanyID       uuid.UUID `json:"company_id"`
	Title           string    `json:"title"`
	WorkPolicy      string    `json:"work_policy"`
	Location        string    `json:"location"`
	Department      string    `json:"department"`
	EmploymentType  string    `json:"employment_type"`
	ExperienceLevel string    `json:"experience_level"`
	JobType         string    `json:"job_type"`
	SalaryRange     string    `json:"salary_range"`
	Slug            string    `json:"job_slug"`
	Description     string    `json:"description,omitempty"`
	PostedAt        time.Time `json:"posted_at"`
}

// LoginRequest carries editor credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

func companyToDTO(c *models.Company) CompanyDTO {
	return CompanyDTO{
		ID:              c.ID,
		Slug:            c.Slug,
		Name:            c.Name,
		LogoURL:         c.LogoURL,
		BannerURL:       c.BannerURL,
		CultureVideoURL: c.CultureVideoURL,
		Theme:           c.Theme,
		Published:       c.Published,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func updateRequestToModel(slug string, req *UpdateCompanyRequest) *models.CompanyUpdate {
	return &models.CompanyUpdate{
		Slug:            slug,
		Name:            req.Name,
		LogoURL:         req.LogoURL,
		BannerURL:       req.BannerURL,
		CultureVideoURL: req.CultureVideoURL,
		Theme:           req.Theme,
		Published:       req.Published,
	}
}

func sectionToDTO(s models.Section) (SectionDTO, error) {
	content, err := models.EncodeContent(s.Content)
	if err != nil {
		return SectionDTO{}, fmt.Errorf("encode section %s content: %w", s.ID, err)
	}
	return SectionDTO{
		ID:        s.ID,
		CompanyID: s.CompanyID,
		Type:      string(s.Type),
		Title:     s.Title,
		Content:   content,
		Order:     s.Order,
		Visible:   s.Visible,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}, nil
}

func sectionsToDTO(sections []models.Section) ([]SectionDTO, error) {
	out := make([]SectionDTO, len(sections))
	for i, s := range sections {
		dto, err := sectionToDTO(s)
		if err != nil {
			return nil, err
		}
		out[i] = dto
	}
	return out, nil
}

func sectionFromDTO(dto SectionDTO) (models.Section, error) {
	typ := models.SectionType(dto.Type)
	if !models.ValidSectionType(typ) {
		return models.Section{}, fmt.Errorf("%w: unknown section type %q", e.ErrInvalidInput, dto.Type)
	}
	content, err := models.DecodeContent(typ, dto.Content)
	if err != nil {
		return models.Section{}, fmt.Errorf("%w: section %s content: %v", e.ErrInvalidInput, dto.ID, err)
	}
	return models.Section{
		ID:        dto.ID,
		CompanyID: dto.CompanyID,
		Type:      typ,
		Title:     dto.Title,
		Content:   content,
		Order:     dto.Order,
		Visible:   dto.Visible,
	}, nil
}

func jobToDTO(j models.Job) JobDTO {
	return JobDTO{
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
	}
}
