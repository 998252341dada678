package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	e "github.com/openhire/pagebuilder/internal/builder/errors"
	"github.com/openhire/pagebuilder/internal/builder/models"
	"github.com/openhire/pagebuilder/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelope(data any) map[string]any {
	return map[string]any{"status": "success", "data": data}
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestLoadCompany(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/companies/acme", r.URL.Path)
		writeJSON(t, w, http.StatusOK, envelope(map[string]any{
			"id":   id.String(),
			"slug": "acme",
			"name": "Acme",
		}))
	}))
	defer srv.Close()

	company, err := New(srv.Client(), srv.URL, "").LoadCompany(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, id, company.ID)
	assert.Equal(t, "acme", company.Slug)
	assert.Equal(t, "Acme", company.Name)
}

func TestLoadCompanyNotFoundIsNotRetried(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		writeJSON(t, w, http.StatusNotFound, map[string]any{"status": "error", "message": "not found"})
	}))
	defer srv.Close()

	_, err := New(srv.Client(), srv.URL, "").LoadCompany(context.Background(), "ghost")
	assert.ErrorIs(t, err, e.ErrNotFound)
	assert.Equal(t, int32(1), requests.Load(), "a definite outcome must not be retried")
}

func TestLoadSectionsRetriesTransientFailure(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			writeJSON(t, w, http.StatusInternalServerError, map[string]any{"status": "error", "message": "boom"})
			return
		}
		writeJSON(t, w, http.StatusOK, envelope([]map[string]any{
			{"id": uuid.New().String(), "type": "about", "content": map[string]any{"text": "hi"}, "order": 0, "is_visible": true},
		}))
	}))
	defer srv.Close()

	sections, err := New(srv.Client(), srv.URL, "").LoadSections(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, models.SectionAbout, sections[0].Type)
	assert.GreaterOrEqual(t, requests.Load(), int32(2))
}

func TestUpdateCompanySendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "Bearer editor-token", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Acme Rebranded", body["name"])
		assert.NotContains(t, body, "logo_url", "absent fields are omitted from the payload")

		writeJSON(t, w, http.StatusOK, envelope(map[string]any{
			"slug": "acme",
			"name": "Acme Rebranded",
		}))
	}))
	defer srv.Close()

	c := New(srv.Client(), srv.URL, "editor-token")
	updated, err := c.UpdateCompany(context.Background(), &models.CompanyUpdate{
		Slug: "acme",
		Name: utils.Ptr("Acme Rebranded"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Rebranded", updated.Name)
}

func TestUpdateCompanyFailureIsNotRetried(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		writeJSON(t, w, http.StatusInternalServerError, map[string]any{"status": "error", "message": "boom"})
	}))
	defer srv.Close()

	c := New(srv.Client(), srv.URL, "editor-token")
	_, err := c.UpdateCompany(context.Background(), &models.CompanyUpdate{Slug: "acme"})
	assert.Error(t, err)
	assert.Equal(t, int32(1), requests.Load(), "save calls are issued exactly once")
}

func TestUpdateCompanyForbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusForbidden, map[string]any{"status": "error", "message": "you can only edit your own company"})
	}))
	defer srv.Close()

	c := New(srv.Client(), srv.URL, "editor-token")
	_, err := c.UpdateCompany(context.Background(), &models.CompanyUpdate{Slug: "other"})
	assert.ErrorIs(t, err, e.ErrForbidden)
}

func TestReplaceSectionsRoundTrip(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v1/companies/acme/sections", r.URL.Path)

		var body []map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body, 1)
		assert.Equal(t, "hero", body[0]["type"])

		// Canonical list comes back with server-assigned positions.
		writeJSON(t, w, http.StatusOK, envelope([]map[string]any{
			{"id": id.String(), "type": "hero", "content": map[string]any{"tagline": "Join us"}, "order": 0, "is_visible": true},
		}))
	}))
	defer srv.Close()

	c := New(srv.Client(), srv.URL, "editor-token")
	canonical, err := c.ReplaceSections(context.Background(), "acme", []models.Section{
		{ID: id, Type: models.SectionHero, Content: models.HeroContent{Tagline: "Join us"}, Order: 3, Visible: true},
	})
	require.NoError(t, err)
	require.Len(t, canonical, 1)
	assert.Equal(t, 0, canonical[0].Order)
	hero, ok := canonical[0].Content.(models.HeroContent)
	require.True(t, ok)
	assert.Equal(t, "Join us", hero.Tagline)
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/auth/login":
			writeJSON(t, w, http.StatusOK, envelope(map[string]any{"access_token": "fresh-token"}))
		default:
			assert.Equal(t, "Bearer fresh-token", r.Header.Get("Authorization"))
			writeJSON(t, w, http.StatusOK, envelope(map[string]any{"slug": "acme", "name": "Acme"}))
		}
	}))
	defer srv.Close()

	c := New(srv.Client(), srv.URL, "")
	require.NoError(t, c.Login(context.Background(), "editor@acme.test", "hunter2"))

	_, err := c.UpdateCompany(context.Background(), &models.CompanyUpdate{Slug: "acme"})
	require.NoError(t, err)
}

func TestLoginBadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{"status": "error", "message": "invalid credentials"})
	}))
	defer srv.Close()

	err := New(srv.Client(), srv.URL, "").Login(context.Background(), "editor@acme.test", "wrong")
	assert.ErrorIs(t, err, e.ErrUnauthorized)
}
