package client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/openhire/pagebuilder/internal/builder/models"
)

type companyWire struct {
	ID              uuid.UUID    `json:"id"`
	Slug            string       `json:"slug"`
	Name            string       `json:"name"`
	LogoURL         string       `json:"logo_url"`
	BannerURL       string       `json:"banner_url"`
	CultureVideoURL string       `json:"culture_video_url"`
	Theme           models.Theme `json:"theme"`
	Published       bool         `json:"is_published"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

func (w *companyWire) toDomain() *models.Company {
	return &models.Company{
		ID:              w.ID,
		Slug:            w.Slug,
		Name:            w.Name,
		LogoURL:         w.LogoURL,
		BannerURL:       w.BannerURL,
		CultureVideoURL: w.CultureVideoURL,
		Theme:           w.Theme,
		Published:       w.Published,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
}

type companyUpdateWire struct {
	Name            *string       `json:"name,omitempty"`
	LogoURL         *string       `json:"logo_url,omitempty"`
	BannerURL       *string       `json:"banner_url,omitempty"`
	CultureVideoURL *string       `json:"culture_video_url,omitempty"`
	Theme           *models.Theme `json:"theme,omitempty"`
	Published       *bool         `json:"is_published,omitempty"`
}

func updateToWire(update *models.CompanyUpdate) companyUpdateWire {
	return companyUpdateWire{
		Name:            update.Name,
		LogoURL:         update.LogoURL,
		BannerURL:       update.BannerURL,
		CultureVideoURL: update.CultureVideoURL,
		Theme:           update.Theme,
		Published:       update.Published,
	}
}

type sectionWire struct {
	ID        uuid.UUID       `json:"id"`
	CompanyID uuid.UUID       `json:"company_id"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Content   json.RawMessage `json:"content"`
	Order     int             `json:"order"`
	Visible   bool            `json:"is_visible"`
}

func sectionsToDomain(wires []sectionWire) ([]models.Section, error) {
	out := make([]models.Section, len(wires))
	for i, w := range wires {
		typ := models.SectionType(w.Type)
		content, err := models.DecodeContent(typ, w.Content)
		if err != nil {
			return nil, fmt.Errorf("decode section %s content: %w", w.ID, err)
		}
		out[i] = models.Section{
			ID:        w.ID,
			CompanyID: w.CompanyID,
			Type:      typ,
			Title:     w.Title,
			Content:   content,
			Order:     w.Order,
			Visible:   w.Visible,
		}
	}
	return out, nil
}

func sectionsToWire(sections []models.Section) ([]sectionWire, error) {
	out := make([]sectionWire, len(sections))
	for i, s := range sections {
		content, err := models.EncodeContent(s.Content)
		if err != nil {
			return nil, fmt.Errorf("encode section %s content: %w", s.ID, err)
		}
		out[i] = sectionWire{
			ID:        s.ID,
			CompanyID: s.CompanyID,
			Type:      string(s.Type),
			Title:     s.Title,
			Content:   content,
			Order:     s.Order,
			Visible:   s.Visible,
		}
	}
	return out, nil
}
