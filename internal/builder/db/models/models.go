// Package models contains the database row models for the application,
// configured to work using GORM as the ORM. The theme and section content
// payloads are stored as JSON columns via driver Valuer/Scanner wrappers.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	domain "github.com/openhire/pagebuilder/internal/builder/models"
)

// ThemeColumn stores a page theme as a JSON column.
type ThemeColumn domain.Theme

// Value implements driver.Valuer.
func (t ThemeColumn) Value() (driver.Value, error) {
	return json.Marshal(domain.Theme(t))
}

// Scan implements sql.Scanner.
func (t *ThemeColumn) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ThemeColumn{}
		return nil
	case []byte:
		if len(v) == 0 {
			*t = ThemeColumn{}
			return nil
		}
		return json.Unmarshal(v, t)
	case string:
		if v == "" {
			*t = ThemeColumn{}
			return nil
		}
		return json.Unmarshal([]byte(v), t)
	}
	return fmt.Errorf("unsupported theme column type %T", src)
}

// JSONColumn stores a raw JSON document.
type JSONColumn []byte

// Value implements driver.Valuer. Empty documents are stored as "{}".
func (j JSONColumn) Value() (driver.Value, error) {
	if len(j) == 0 {
		return []byte("{}"), nil
	}
	return []byte(j), nil
}

// Scan implements sql.Scanner.
func (j *JSONColumn) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*j = nil
		return nil
	case []byte:
		*j = append((*j)[:0], v...)
		return nil
	case string:
		*j = JSONColumn(v)
		return nil
	}
	return fmt.Errorf("unsupported json column type %T", src)
}

// Company represents a company row. The slug is the public routing key and
// carries a unique index.
type Company struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Slug            string      `gorm:"size:80;uniqueIndex"`
	Name            string      `gorm:"size:120"`
	LogoURL         string      `gorm:"size:500"`
	BannerURL       string      `gorm:"size:500"`
	CultureVideoURL string      `gorm:"size:500"`
	Theme           ThemeColumn `gorm:"type:jsonb"`
	Published       bool        `gorm:"column:is_published"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PageSection represents one content block row. The positional index lives
// in sort_order ("order" being an SQL keyword); within one company the
// values are kept dense by the service layer.
type PageSection struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID  `gorm:"type:uuid;index"`
	Type      string     `gorm:"size:32"`
	Title     string     `gorm:"size:200"`
	Content   JSONColumn `gorm:"type:jsonb"`
	SortOrder int        `gorm:"column:sort_order"`
	Visible   bool       `gorm:"column:is_visible"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Job represents an open position row, sourced from the recruiting
// pipeline and read-only for the editor.
type Job struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID       uuid.UUID `gorm:"type:uuid;index"`
	Title           string    `gorm:"size:200"`
	WorkPolicy      string    `gorm:"size:40"`
	Location        string    `gorm:"size:120"`
	Department      string    `gorm:"size:120"`
	EmploymentType  string    `gorm:"size:40"`
	ExperienceLevel string    `gorm:"size:40"`
	JobType         string    `gorm:"size:40"`
	SalaryRange     string    `gorm:"size:120"`
	Slug            string    `gorm:"size:200;column:job_slug"`
	Description     string    `gorm:"size:5000"`
	PostedAt        time.Time `gorm:"index"`
	CreatedAt       time.Time
}

// User represents an editor account row affiliated with one company.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"size:254;uniqueIndex"`
	PasswordHash string    `gorm:"size:100"`
	CompanyID    uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt    time.Time
}
