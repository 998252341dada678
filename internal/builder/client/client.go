// Package client implements the editor-side HTTP client for the store of
// record. It satisfies editor.Saver: the two save calls are issued exactly
// once each with no automatic retry, so a failed save surfaces to the user
// with their edits intact. Read paths retry transient failures with
// exponential backoff.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	e "github.com/openhire/pagebuilder/internal/builder/errors"
	"github.com/openhire/pagebuilder/internal/builder/models"
)

const loadRetries = 3

// StoreClient talks to the careers page API on behalf of one editing
// session.
type StoreClient struct {
	client  *http.Client
	baseURL string
	token   string
}

// New builds a store client. The token is the editor's bearer token; it may
// be empty for read-only use.
func New(client *http.Client, baseURL, token string) *StoreClient {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &StoreClient{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}
}

// Login exchanges credentials for a bearer token and stores it on the
// client for subsequent mutating calls.
func (c *StoreClient) Login(ctx context.Context, email, password string) error {
	payload := map[string]string{"email": email, "password": password}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/auth/login", payload, &resp); err != nil {
		return err
	}
	c.token = resp.AccessToken
	return nil
}

// LoadCompany fetches a company by slug, retrying transient failures.
func (c *StoreClient) LoadCompany(ctx context.Context, slug string) (*models.Company, error) {
	var wire companyWire
	err := c.doWithRetry(ctx, http.MethodGet, "/v1/companies/"+slug, nil, &wire)
	if err != nil {
		return nil, err
	}
	return wire.toDomain(), nil
}

// LoadSections fetches a company's ordered section list, retrying transient
// failures.
func (c *StoreClient) LoadSections(ctx context.Context, slug string) ([]models.Section, error) {
	var wires []sectionWire
	err := c.doWithRetry(ctx, http.MethodGet, "/v1/companies/"+slug+"/sections", nil, &wires)
	if err != nil {
		return nil, err
	}
	return sectionsToDomain(wires)
}

// UpdateCompany pushes company metadata, the first call of the save
// protocol. Issued exactly once.
func (c *StoreClient) UpdateCompany(ctx context.Context, update *models.CompanyUpdate) (*models.Company, error) {
	var wire companyWire
	err := c.do(ctx, http.MethodPut, "/v1/companies/"+update.Slug, updateToWire(update), &wire)
	if err != nil {
		return nil, err
	}
	return wire.toDomain(), nil
}

// ReplaceSections pushes the full ordered section list, the second call of
// the save protocol, and returns the canonical list the server stored.
// Issued exactly once.
func (c *StoreClient) ReplaceSections(ctx context.Context, slug string, sections []models.Section) ([]models.Section, error) {
	payload, err := sectionsToWire(sections)
	if err != nil {
		return nil, err
	}
	var wires []sectionWire
	if err := c.do(ctx, http.MethodPut, "/v1/companies/"+slug+"/sections", payload, &wires); err != nil {
		return nil, err
	}
	return sectionsToDomain(wires)
}

// do performs one request and decodes the envelope's data field into out.
func (c *StoreClient) do(ctx context.Context, method, path string, payload, out any) error {
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var envelope struct {
		Status  string          `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr != nil && resp.StatusCode < 400 {
		return fmt.Errorf("could not decode response: %w", decodeErr)
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return e.ErrNotFound
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", e.ErrUnauthorized, envelope.Message)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", e.ErrForbidden, envelope.Message)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, envelope.Message)
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("could not decode response data: %w", err)
		}
	}
	return nil
}

// doWithRetry wraps do with exponential backoff for read paths. Definite
// outcomes (not found, auth failures) are not retried.
func (c *StoreClient) doWithRetry(ctx context.Context, method, path string, payload, out any) error {
	operation := func() error {
		err := c.do(ctx, method, path, payload, out)
		if err == nil {
			return nil
		}
		switch {
		case ctx.Err() != nil:
			return backoff.Permanent(err)
		case isDefinite(err):
			return backoff.Permanent(err)
		}
		return err
	}
	return backoff.Retry(operation, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), loadRetries))
}

func isDefinite(err error) bool {
	for _, sentinel := range []error{e.ErrNotFound, e.ErrUnauthorized, e.ErrForbidden} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
