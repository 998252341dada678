// Package handlers provides the HTTP layer for the careers page builder,
// bridging echo routes and the service layer and translating between wire
// DTOs and domain models.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/openhire/pagebuilder/internal/builder/auth"
	e "github.com/openhire/pagebuilder/internal/builder/errors"
	"github.com/openhire/pagebuilder/internal/builder/models"
	"go.uber.org/zap"
)

// PageController defines the business logic interface the HTTP handlers
// invoke.
type PageController interface {
	Authenticate(ctx context.Context, email, password string) (string, error)
	GetCompany(ctx context.Context, slug string) (*models.Company, error)
	UpdateCompany(ctx context.Context, identity *models.Identity, update *models.CompanyUpdate) (*models.Company, error)
	GetSections(ctx context.Context, slug string) ([]models.Section, error)
	ReplaceSections(ctx context.Context, identity *models.Identity, slug string, sections []models.Section) ([]models.Section, error)
	ListJobs(ctx context.Context, slug string, filter models.JobFilter) ([]models.Job, error)
	JobFilterOptions(ctx context.Context, slug string) (models.FilterOptions, error)
}

// PageHandler exposes the careers page endpoints.
type PageHandler struct {
	service PageController
	logger  *zap.Logger
}

// NewPageHandler constructs a PageHandler with the given service and logger.
func NewPageHandler(service PageController, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		service: service,
		logger:  logger.Named("http_handler"),
	}
}

// Login handles POST /v1/auth/login.
func (h *PageHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return Error(c, http.StatusBadRequest, "email and password are required")
	}

	token, err := h.service.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, e.ErrUnauthorized) {
			return Error(c, http.StatusUnauthorized, "invalid credentials")
		}
		h.logger.Error("Login failed", zap.Error(err))
		return Error(c, http.StatusInternalServerError, "unable to authenticate")
	}

	return Success(c, http.StatusOK, "login successful", LoginResponse{AccessToken: token})
}

// GetCompany handles GET /v1/companies/:slug. An unknown slug is a 404, not
// a server failure.
func (h *PageHandler) GetCompany(c echo.Context) error {
	company, err := h.service.GetCompany(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return h.mapServiceError(c, err)
	}
	return Success(c, http.StatusOK, "company retrieved", companyToDTO(company))
}

// UpdateCompany handles PUT /v1/companies/:slug, the first call of the
// editor's two-phase save.
func (h *PageHandler) UpdateCompany(c echo.Context) error {
	var req UpdateCompanyRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	slug := c.Param("slug")
	identity := auth.IdentityFromContext(c)
	updated, err := h.service.UpdateCompany(c.Request().Context(), identity, updateRequestToModel(slug, &req))
	if err != nil {
		return h.mapServiceError(c, err)
	}
	return Success(c, http.StatusOK, "company updated", companyToDTO(updated))
}

// GetSections handles GET /v1/companies/:slug/sections.
func (h *PageHandler) GetSections(c echo.Context) error {
	sections, err := h.service.GetSections(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return h.mapServiceError(c, err)
	}
	dtos, err := sectionsToDTO(sections)
	if err != nil {
		h.logger.Error("Encode sections failed", zap.Error(err))
		return Error(c, http.StatusInternalServerError, "failed to encode sections")
	}
	return Success(c, http.StatusOK, "sections retrieved", dtos)
}

// ReplaceSections handles PUT /v1/companies/:slug/sections, the second call
// of the two-phase save. The request body is the full ordered section list;
// the response is the canonical stored list re-sorted by position, which the
// editor adopts. There is no concurrency token: two concurrent editors
// overwrite each other wholesale, last full-list write wins.
func (h *PageHandler) ReplaceSections(c echo.Context) error {
	var dtos []SectionDTO
	if err := c.Bind(&dtos); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	sections := make([]models.Section, len(dtos))
	for i, dto := range dtos {
		section, err := sectionFromDTO(dto)
		if err != nil {
			return h.mapServiceError(c, err)
		}
		sections[i] = section
	}

	slug := c.Param("slug")
	identity := auth.IdentityFromContext(c)
	canonical, err := h.service.ReplaceSections(c.Request().Context(), identity, slug, sections)
	if err != nil {
		return h.mapServiceError(c, err)
	}

	out, err := sectionsToDTO(canonical)
	if err != nil {
		h.logger.Error("Encode sections failed", zap.Error(err))
		return Error(c, http.StatusInternalServerError, "failed to encode sections")
	}
	return Success(c, http.StatusOK, "sections updated", out)
}

// ListJobs handles GET /v1/companies/:slug/jobs with optional filter query
// parameters. Results are ordered by posting time descending.
func (h *PageHandler) ListJobs(c echo.Context) error {
	filter := models.JobFilter{
		Search:         strings.TrimSpace(c.QueryParam("search")),
		Location:       strings.TrimSpace(c.QueryParam("location")),
		Department:     strings.TrimSpace(c.QueryParam("department")),
		EmploymentType: strings.TrimSpace(c.QueryParam("employment_type")),
		WorkPolicy:     strings.TrimSpace(c.QueryParam("work_policy")),
	}

	matched, err := h.service.ListJobs(c.Request().Context(), c.Param("slug"), filter)
	if err != nil {
		return h.mapServiceError(c, err)
	}

	out := make([]JobDTO, len(matched))
	for i, j := range matched {
		out[i] = jobToDTO(j)
	}
	return Success(c, http.StatusOK, "jobs retrieved", out)
}

// JobFilterOptions handles GET /v1/companies/:slug/jobs/filters.
func (h *PageHandler) JobFilterOptions(c echo.Context) error {
	options, err := h.service.JobFilterOptions(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return h.mapServiceError(c, err)
	}
	return Success(c, http.StatusOK, "filter options retrieved", options)
}

// mapServiceError maps domain errors to HTTP statuses.
func (h *PageHandler) mapServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, e.ErrNotFound):
		return Error(c, http.StatusNotFound, "not found")
	case errors.Is(err, e.ErrUnauthorized):
		return Error(c, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, e.ErrForbidden):
		return Error(c, http.StatusForbidden, "you can only edit your own company")
	case errors.Is(err, e.ErrInvalidInput):
		return Error(c, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("Request failed", zap.Error(err))
		return Error(c, http.StatusInternalServerError, "internal error")
	}
}
