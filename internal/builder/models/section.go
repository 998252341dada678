package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SectionType identifies the kind of content block a section renders.
type SectionType string

const (
	SectionHero          SectionType = "hero"
	SectionAbout         SectionType = "about"
	SectionCultureVideo  SectionType = "culture_video"
	SectionBenefits      SectionType = "benefits"
	SectionLifeAtCompany SectionType = "life_at_company"
	SectionOpenJobs      SectionType = "open_jobs"
)

// ValidSectionType reports whether t is one of the known section types.
func ValidSectionType(t SectionType) bool {
	switch t {
	case SectionHero, SectionAbout, SectionCultureVideo,
		SectionBenefits, SectionLifeAtCompany, SectionOpenJobs:
		return true
	}
	return false
}

// Content is the per-type payload of a section. Each section type carries
// its own variant so that invalid field combinations cannot be represented.
type Content interface {
	sectionContent()
}

// HeroContent is the payload for hero sections.
type HeroContent struct {
	Tagline string `json:"tagline,omitempty"`
}

// AboutContent is the payload for about sections.
type AboutContent struct {
	Text string `json:"text,omitempty"`
}

// CultureVideoContent is the payload for culture video sections.
type CultureVideoContent struct {
	VideoURL string `json:"videoUrl,omitempty"`
}

// BenefitItem is one entry in a benefits section.
type BenefitItem struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// BenefitsContent is the payload for benefits sections.
type BenefitsContent struct {
	Items []BenefitItem `json:"items,omitempty"`
}

// LifeAtCompanyContent is the payload for life-at-company sections.
type LifeAtCompanyContent struct {
	Text   string   `json:"text,omitempty"`
	Images []string `json:"images,omitempty"`
}

// OpenJobsContent is the payload for the open jobs section.
type OpenJobsContent struct {
	Text string `json:"text,omitempty"`
}

func (HeroContent) sectionContent()          {}
func (AboutContent) sectionContent()         {}
func (CultureVideoContent) sectionContent()  {}
func (BenefitsContent) sectionContent()      {}
func (LifeAtCompanyContent) sectionContent() {}
func (OpenJobsContent) sectionContent()      {}

// EmptyContent returns the zero-valued content variant for the given type.
func EmptyContent(t SectionType) (Content, error) {
	switch t {
	case SectionHero:
		return HeroContent{}, nil
	case SectionAbout:
		return AboutContent{}, nil
	case SectionCultureVideo:
		return CultureVideoContent{}, nil
	case SectionBenefits:
		return BenefitsContent{}, nil
	case SectionLifeAtCompany:
		return LifeAtCompanyContent{}, nil
	case SectionOpenJobs:
		return OpenJobsContent{}, nil
	}
	return nil, fmt.Errorf("unknown section type %q", t)
}

// DecodeContent parses a raw JSON payload into the content variant matching
// the section type.
func DecodeContent(t SectionType, raw []byte) (Content, error) {
	if len(raw) == 0 {
		return EmptyContent(t)
	}
	switch t {
	case SectionHero:
		var c HeroContent
		return c, json.Unmarshal(raw, &c)
	case SectionAbout:
		var c AboutContent
		return c, json.Unmarshal(raw, &c)
	case SectionCultureVideo:
		var c CultureVideoContent
		return c, json.Unmarshal(raw, &c)
	case SectionBenefits:
		var c BenefitsContent
		return c, json.Unmarshal(raw, &c)
	case SectionLifeAtCompany:
		var c LifeAtCompanyContent
		return c, json.Unmarshal(raw, &c)
	case SectionOpenJobs:
		var c OpenJobsContent
		return c, json.Unmarshal(raw, &c)
	}
	return nil, fmt.Errorf("unknown section type %q", t)
}

// EncodeContent serializes a content variant to JSON. A nil content encodes
// as an empty object.
func EncodeContent(c Content) ([]byte, error) {
	if c == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(c)
}

// ContentPatch carries a shallow partial edit of a section's content.
// Only the fields relevant to the section's type are applied; the rest are
// ignored.
type ContentPatch struct {
	Tagline  *string
	Text     *string
	VideoURL *string
	Items    *[]BenefitItem
	Images   *[]string
}

// MergeContent applies the patch to the given content variant and returns
// the merged value. Patch fields that do not belong to the variant's type
// are dropped.
func MergeContent(c Content, p ContentPatch) Content {
	switch v := c.(type) {
	case HeroContent:
		if p.Tagline != nil {
			v.Tagline = *p.Tagline
		}
		return v
	case AboutContent:
		if p.Text != nil {
			v.Text = *p.Text
		}
		return v
	case CultureVideoContent:
		if p.VideoURL != nil {
			v.VideoURL = *p.VideoURL
		}
		return v
	case BenefitsContent:
		if p.Items != nil {
			v.Items = *p.Items
		}
		return v
	case LifeAtCompanyContent:
		if p.Text != nil {
			v.Text = *p.Text
		}
		if p.Images != nil {
			v.Images = *p.Images
		}
		return v
	case OpenJobsContent:
		if p.Text != nil {
			v.Text = *p.Text
		}
		return v
	}
	return c
}

// Section is one titled, typed content block on a company's page. Order is
// zero-based and dense within a company; a hidden section keeps its slot in
// the order sequence.
type Section struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Type      SectionType
	Title     string
	Content   Content
	Order     int
	Visible   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
