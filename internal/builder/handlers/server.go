package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/openhire/pagebuilder/internal/builder/auth"
	"go.uber.org/zap"
)

// Server wraps the echo instance serving the careers page API.
type Server struct {
	echo     *echo.Echo
	logger   *zap.Logger
	endpoint string
}

// NewServer constructs a Server listening on the given port.
func NewServer(port int, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())

	return &Server{
		echo:     e,
		logger:   logger,
		endpoint: fmt.Sprintf(":%d", port),
	}
}

// RegisterRoutes wires the API surface. Reads are public; mutations sit
// behind the JWT middleware, and the candidate-facing job list is rate
// limited.
func (s *Server) RegisterRoutes(h *PageHandler, jwtManager *auth.JWTManager, jobsLimit RateLimitConfig) {
	s.echo.GET("/healthz", func(c echo.Context) error {
		return Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	s.echo.POST("/v1/auth/login", h.Login)

	s.echo.GET("/v1/companies/:slug", h.GetCompany)
	s.echo.GET("/v1/companies/:slug/sections", h.GetSections)
	s.echo.GET("/v1/companies/:slug/jobs", h.ListJobs, RateLimiter(jobsLimit))
	s.echo.GET("/v1/companies/:slug/jobs/filters", h.JobFilterOptions)

	secured := s.echo.Group("", auth.Middleware(jwtManager))
	secured.PUT("/v1/companies/:slug", h.UpdateCompany)
	secured.PUT("/v1/companies/:slug/sections", h.ReplaceSections)
}

// Handler exposes the underlying HTTP handler, used by in-process tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start runs the HTTP server, returning on the first error.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("endpoint", s.endpoint))
	if err := s.echo.Start(s.endpoint); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP serve error: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() {
	s.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.echo.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	s.logger.Info("Server stopped")
}
