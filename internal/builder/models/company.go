// Package models defines the core domain models for the careers page
// builder: companies, page sections, jobs and users.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Theme holds the visual identity applied to a company's careers page.
type Theme struct {
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	FontFamily      string `json:"fontFamily"`
}

// ThemePatch carries partial theme edits. Pointer types are used so that
// absent fields leave the current value untouched.
type ThemePatch struct {
	PrimaryColor    *string
	SecondaryColor  *string
	BackgroundColor *string
	TextColor       *string
	FontFamily      *string
}

// Apply merges the patch into t, returning the merged theme.
func (p ThemePatch) Apply(t Theme) Theme {
	if p.PrimaryColor != nil {
		t.PrimaryColor = *p.PrimaryColor
	}
	if p.SecondaryColor != nil {
		t.SecondaryColor = *p.SecondaryColor
	}
	if p.BackgroundColor != nil {
		t.BackgroundColor = *p.BackgroundColor
	}
	if p.TextColor != nil {
		t.TextColor = *p.TextColor
	}
	if p.FontFamily != nil {
		t.FontFamily = *p.FontFamily
	}
	return t
}

// Company is the tenant root. The slug is the public routing key: it is
// immutable and globally unique.
type Company struct {
	// ID is the unique identifier for the company.
	ID uuid.UUID
	// Slug is the URL-safe public identifier. Never changes after onboarding.
	Slug string
	// Name is the company's display name.
	Name string
	// LogoURL points at the company logo, empty when none is set.
	LogoURL string
	// BannerURL points at the page banner image.
	BannerURL string
	// CultureVideoURL is an optional company culture video.
	CultureVideoURL string
	// Theme is the page's visual identity.
	Theme Theme
	// Published reports whether the careers page is publicly visible.
	Published bool
	// CreatedAt records when the company was onboarded.
	CreatedAt time.Time
	// UpdatedAt records the last metadata change.
	UpdatedAt time.Time
}

// CompanyUpdate represents the fields that can be updated for a Company.
// Pointer types are used to allow partial updates. The slug itself is not
// updatable.
type CompanyUpdate struct {
	// Slug identifies the company to update.
	Slug string
	// Name is the new display name.
	Name *string
	// LogoURL is the new logo reference.
	LogoURL *string
	// BannerURL is the new banner reference.
	BannerURL *string
	// CultureVideoURL is the new culture video reference.
	CultureVideoURL *string
	// Theme replaces the page theme wholesale.
	Theme *Theme
	// Published toggles public visibility of the page.
	Published *bool
}

// User is an editor account affiliated with exactly one company.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CompanyID    uuid.UUID
	CreatedAt    time.Time
}

// Identity is the authenticated caller as seen by the authorization gate:
// who they are and which company slug they may edit.
type Identity struct {
	UserID      uuid.UUID
	Email       string
	CompanySlug string
}
