package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	rows "github.com/openhire/pagebuilder/internal/builder/db/models"
	e "github.com/openhire/pagebuilder/internal/builder/errors"
	"github.com/openhire/pagebuilder/internal/builder/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func NewRepository(cfg *Config) (*Repository, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{db: db}, nil
}

// NewSQLiteRepository opens a SQLite backed repository. Used for local
// development and in-process tests; production runs on postgres.
func NewSQLiteRepository(dsn string) (*Repository, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Repository{db: db}, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&rows.Company{},
		&rows.PageSection{},
		&rows.Job{},
		&rows.User{},
	)
}

func (r *Repository) GetCompanyBySlug(ctx context.Context, slug string) (*models.Company, error) {
	var row rows.Company
	result := r.db.WithContext(ctx).First(&row, "slug = ?", slug)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return companyToDomain(&row), nil
}

func (r *Repository) GetCompanyByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var row rows.Company
	result := r.db.WithContext(ctx).First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return companyToDomain(&row), nil
}

// UpdateCompany applies a partial update addressed by slug and returns the
// persisted company.
func (r *Repository) UpdateCompany(ctx context.Context, update *models.CompanyUpdate) (*models.Company, error) {
	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.LogoURL != nil {
		fields["logo_url"] = *update.LogoURL
	}
	if update.BannerURL != nil {
		fields["banner_url"] = *update.BannerURL
	}
	if update.CultureVideoURL != nil {
		fields["culture_video_url"] = *update.CultureVideoURL
	}
	if update.Theme != nil {
		fields["theme"] = rows.ThemeColumn(*update.Theme)
	}
	if update.Published != nil {
		fields["is_published"] = *update.Published
	}

	if len(fields) > 0 {
		result := r.db.WithContext(ctx).Model(&rows.Company{}).
			Where("slug = ?", update.Slug).
			Updates(fields)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, e.ErrNotFound
		}
	}
	return r.GetCompanyBySlug(ctx, update.Slug)
}

// ListSections returns all sections of a company sorted by position.
func (r *Repository) ListSections(ctx context.Context, companyID uuid.UUID) ([]models.Section, error) {
	var sectionRows []rows.PageSection
	result := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("sort_order asc").
		Find(&sectionRows)
	if result.Error != nil {
		return nil, result.Error
	}
	return sectionsToDomain(sectionRows)
}

// ReplaceSections updates every given section row (title, content, position,
// visibility) by id within one transaction and returns the canonical list
// re-sorted by position. Section ids unknown to the company are skipped,
// matching the per-row update semantics of the save contract.
func (r *Repository) ReplaceSections(ctx context.Context, companyID uuid.UUID, sections []models.Section) ([]models.Section, error) {
	err := r.WithTransaction(ctx, func(repo *Repository) error {
		for _, s := range sections {
			content, err := models.EncodeContent(s.Content)
			if err != nil {
				return fmt.Errorf("%w: section %s content: %v", e.ErrInvalidInput, s.ID, err)
			}
			result := repo.db.WithContext(ctx).Model(&rows.PageSection{}).
				Where("id = ? AND company_id = ?", s.ID, companyID).
				Updates(map[string]interface{}{
					"title":      s.Title,
					"content":    rows.JSONColumn(content),
					"sort_order": s.Order,
					"is_visible": s.Visible,
				})
			if result.Error != nil {
				return result.Error
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.ListSections(ctx, companyID)
}

// ListJobs returns a company's jobs ordered by posting time descending.
func (r *Repository) ListJobs(ctx context.Context, companyID uuid.UUID) ([]models.Job, error) {
	var jobRows []rows.Job
	result := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("posted_at desc").
		Find(&jobRows)
	if result.Error != nil {
		return nil, result.Error
	}
	out := make([]models.Job, len(jobRows))
	for i := range jobRows {
		out[i] = jobToDomain(&jobRows[i])
	}
	return out, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var row rows.User
	result := r.db.WithContext(ctx).First(&row, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	user := userToDomain(&row)
	return &user, nil
}

// CreateCompany inserts a company row. Used by onboarding and seeding.
func (r *Repository) CreateCompany(ctx context.Context, company *models.Company) error {
	result := r.db.WithContext(ctx).Create(companyToRow(company))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: duplicate slug %q", e.ErrInvalidInput, company.Slug)
		}
		return result.Error
	}
	return nil
}

func (r *Repository) CreateSection(ctx context.Context, section *models.Section) error {
	row, err := sectionToRow(section)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *Repository) CreateJob(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(jobToRow(job)).Error
}

func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).Create(userToRow(user))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: duplicate email", e.ErrInvalidInput)
		}
		return result.Error
	}
	return nil
}

func (r *Repository) WithTransaction(ctx context.Context, fn func(repo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
