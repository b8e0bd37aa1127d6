// Package edgar provides HTTP JSON adapters for the filing collaborators:
// entity lookup, remote validation, and submission. Only the call/return
// shapes matter to the core; transport policy (auth headers, retries) belongs
// to the gateway these adapters talk to.
package edgar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/models"
	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/ports"
	"github.com/sunsetmark/palyingwithedgar-sub001/pkg/platform/sentinel"
)

const defaultTimeout = 10 * time.Second

// Client calls the filing gateway's JSON endpoints.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient constructs an adapter for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		http:    &http.Client{Timeout: defaultTimeout},
		baseURL: baseURL,
	}
}

type lookupRequest struct {
	CIK string `json:"cik"`
}

type lookupResponse struct {
	Valid   bool               `json:"valid"`
	Entity  *models.EntityInfo `json:"entity,omitempty"`
	Message string             `json:"message,omitempty"`
}

// Lookup resolves an identifier against the registrant database.
func (c *Client) Lookup(ctx context.Context, cik string) (ports.LookupResult, error) {
	var resp lookupResponse
	if err := c.post(ctx, "/entity/lookup", lookupRequest{CIK: cik}, &resp); err != nil {
		return ports.LookupResult{}, err
	}
	return ports.LookupResult{Valid: resp.Valid, Entity: resp.Entity, Message: resp.Message}, nil
}

type validateRequest struct {
	FormType string              `json:"formType"`
	Record   models.FilingRecord `json:"record"`
}

type validateResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Validate runs the server-side validation of an assembled filing.
func (c *Client) Validate(ctx context.Context, formType models.FormType, record models.FilingRecord) (ports.RemoteValidationResult, error) {
	var resp validateResponse
	req := validateRequest{FormType: formType.String(), Record: record}
	if err := c.post(ctx, "/filings/validate", req, &resp); err != nil {
		return ports.RemoteValidationResult{}, err
	}
	return ports.RemoteValidationResult{Valid: resp.Valid, Errors: resp.Errors}, nil
}

type submitResponse struct {
	Accepted bool   `json:"accepted"`
	Message  string `json:"message,omitempty"`
}

// Submit hands the assembled filing off for submission.
func (c *Client) Submit(ctx context.Context, formType models.FormType, record models.FilingRecord) error {
	var resp submitResponse
	req := validateRequest{FormType: formType.String(), Record: record}
	if err := c.post(ctx, "/filings/submit", req, &resp); err != nil {
		return err
	}
	if !resp.Accepted {
		return fmt.Errorf("submission rejected: %s", resp.Message)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, sentinel.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("call %s: status %d: %w", path, resp.StatusCode, sentinel.ErrUnavailable)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("call %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
