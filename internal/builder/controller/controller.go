// Package controller implements the core business logic (service layer)
// for the careers page builder: company and section operations behind the
// authorization gate, the public job queries, and event production.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/openhire/pagebuilder/internal/builder/auth"
	e "github.com/openhire/pagebuilder/internal/builder/errors"
	"github.com/openhire/pagebuilder/internal/builder/events"
	"github.com/openhire/pagebuilder/internal/builder/jobs"
	"github.com/openhire/pagebuilder/internal/builder/models"
	"go.uber.org/zap"
)

type EventProducer interface {
	Produce(eventType events.EventType, companySlug string, sectionCount int)
}

// Repository defines the storage interface the service operates on.
type Repository interface {
	GetCompanyBySlug(ctx context.Context, slug string) (*models.Company, error)
	GetCompanyByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	UpdateCompany(ctx context.Context, update *models.CompanyUpdate) (*models.Company, error)
	ListSections(ctx context.Context, companyID uuid.UUID) ([]models.Section, error)
	ReplaceSections(ctx context.Context, companyID uuid.UUID, sections []models.Section) ([]models.Section, error)
	ListJobs(ctx context.Context, companyID uuid.UUID) ([]models.Job, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	Close() error
}

// TokenIssuer mints access tokens for authenticated editors.
type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, email, companySlug string) (string, error)
}

// PageService provides the operations behind the careers page API.
type PageService struct {
	repo     Repository
	producer EventProducer
	tokens   TokenIssuer
	logger   *zap.Logger
}

// NewPageService constructs a PageService with a repository, an event
// producer, a token issuer, and a logger.
func NewPageService(repo Repository, producer EventProducer, tokens TokenIssuer, logger *zap.Logger) *PageService {
	return &PageService{
		repo:     repo,
		producer: producer,
		tokens:   tokens,
		logger:   logger.Named("page_service"),
	}
}

// authorize is the gate in front of every mutation: the caller must carry a
// valid identity (else Unauthorized) whose company affiliation matches the
// targeted slug (else Forbidden). Evaluated fresh on every call, never
// cached across a session. Nothing is applied when the gate fails.
func (s *PageService) authorize(identity *models.Identity, slug string) error {
	if identity == nil {
		return e.ErrUnauthorized
	}
	if identity.CompanySlug != slug {
		return e.ErrForbidden
	}
	return nil
}

// Authenticate verifies editor credentials and returns an access token
// carrying the editor's company affiliation.
func (s *PageService) Authenticate(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return "", fmt.Errorf("%w: invalid credentials", e.ErrUnauthorized)
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", fmt.Errorf("%w: invalid credentials", e.ErrUnauthorized)
	}

	company, err := s.repo.GetCompanyByID(ctx, user.CompanyID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve company affiliation: %w", err)
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email, company.Slug)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

// GetCompany resolves a public slug to a company, returning ErrNotFound for
// unknown slugs.
func (s *PageService) GetCompany(ctx context.Context, slug string) (*models.Company, error) {
	company, err := s.repo.GetCompanyBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

// UpdateCompany applies a metadata update after the authorization gate
// passes, and fires a company_updated event; flipping the published flag on
// additionally fires page_published.
func (s *PageService) UpdateCompany(ctx context.Context, identity *models.Identity, update *models.CompanyUpdate) (*models.Company, error) {
	if err := s.authorize(identity, update.Slug); err != nil {
		return nil, err
	}
	if update.Name != nil && (*update.Name == "" || len(*update.Name) > 120) {
		return nil, fmt.Errorf("%w: invalid name", e.ErrInvalidInput)
	}

	previous, err := s.repo.GetCompanyBySlug(ctx, update.Slug)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	updated, err := s.repo.UpdateCompany(ctx, update)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	go func() {
		s.producer.Produce(events.CompanyUpdated, updated.Slug, 0)
		if !previous.Published && updated.Published {
			s.producer.Produce(events.PagePublished, updated.Slug, 0)
		}
	}()
	return updated, nil
}

// GetSections returns a company's sections sorted by position.
func (s *PageService) GetSections(ctx context.Context, slug string) ([]models.Section, error) {
	company, err := s.GetCompany(ctx, slug)
	if err != nil {
		return nil, err
	}
	sections, err := s.repo.ListSections(ctx, company.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	return sections, nil
}

// ReplaceSections persists the full ordered section list for a company and
// returns the canonical stored list. The input is normalized before the
// write: sections are sorted by their requested order and renumbered to the
// dense 0..N-1 range, so the stored state always satisfies the order
// invariant. Section ids from other companies are rejected.
func (s *PageService) ReplaceSections(ctx context.Context, identity *models.Identity, slug string, sections []models.Section) ([]models.Section, error) {
	if err := s.authorize(identity, slug); err != nil {
		return nil, err
	}

	company, err := s.GetCompany(ctx, slug)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ListSections(ctx, company.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	known := make(map[uuid.UUID]bool, len(existing))
	for _, sec := range existing {
		known[sec.ID] = true
	}

	normalized := make([]models.Section, len(sections))
	copy(normalized, sections)
	for _, sec := range normalized {
		if !models.ValidSectionType(sec.Type) {
			return nil, fmt.Errorf("%w: unknown section type %q", e.ErrInvalidInput, sec.Type)
		}
		if !known[sec.ID] {
			return nil, fmt.Errorf("%w: section %s does not belong to %s", e.ErrInvalidInput, sec.ID, slug)
		}
	}
	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].Order < normalized[j].Order
	})
	for i := range normalized {
		normalized[i].Order = i
	}

	canonical, err := s.repo.ReplaceSections(ctx, company.ID, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to replace sections: %w", err)
	}

	count := len(canonical)
	go func() {
		s.producer.Produce(events.SectionsReplaced, slug, count)
	}()
	return canonical, nil
}

// ListJobs returns a company's jobs matching the filter, ordered by posting
// time descending.
func (s *PageService) ListJobs(ctx context.Context, slug string, filter models.JobFilter) ([]models.Job, error) {
	company, err := s.GetCompany(ctx, slug)
	if err != nil {
		return nil, err
	}
	all, err := s.repo.ListJobs(ctx, company.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs.Filter(all, filter), nil
}

// JobFilterOptions derives the facet values for a company's job list. The
// options are recomputed from the full list on every call.
func (s *PageService) JobFilterOptions(ctx context.Context, slug string) (models.FilterOptions, error) {
	company, err := s.GetCompany(ctx, slug)
	if err != nil {
		return models.FilterOptions{}, err
	}
	all, err := s.repo.ListJobs(ctx, company.ID)
	if err != nil {
		return models.FilterOptions{}, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs.Options(all), nil
}
