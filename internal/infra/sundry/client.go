// Package sundry — HTTP adapter for the Sundry personal-context API.
// Client calls the backend REST API using stdlib net/http.
// Endpoints used:
//   - GET  /sources — connected data sources and their capabilities
//   - POST /context — natural-language context query
package sundry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	mimeJSON            = "application/json"
	headerContentType   = "Content-Type"
	headerAuthorization = "Authorization"
	headerAPIKey        = "X-API-Key"
)

const defaultTimeout = 30 * time.Second

// ErrBackendUnavailable marks transport-level failures (connection errors and
// non-2xx statuses). Callers can test for it with errors.Is.
var ErrBackendUnavailable = errors.New("sundry backend unavailable")

// Client is a pre-configured HTTP client for one Sundry backend. Every call
// carries the user bearer token and the application API key.
type Client struct {
	baseURL    string
	userKey    string
	appKey     string
	httpClient *http.Client
}

// NewClient creates a Client with the default 30s timeout.
func NewClient(baseURL, userKey, appKey string) *Client {
	return NewClientWithTimeout(baseURL, userKey, appKey, defaultTimeout)
}

// NewClientWithTimeout creates a Client with an explicit request timeout.
func NewClientWithTimeout(baseURL, userKey, appKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		userKey: userKey,
		appKey:  appKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchSources returns the user's connected sources via GET /sources.
func (c *Client) FetchSources(ctx context.Context) (*SourcesResponse, error) {
	body, err := c.doGet(ctx, "/sources")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sources: %w", err)
	}
	defer body.Close() //nolint:errcheck

	var out SourcesResponse
	if decodeErr := json.NewDecoder(body).Decode(&out); decodeErr != nil {
		return nil, fmt.Errorf("failed to fetch sources: decode response: %w", decodeErr)
	}
	return &out, nil
}

// GetContext submits a natural-language query via POST /context and returns
// the backend's structured answer.
func (c *Client) GetContext(ctx context.Context, q ContextQuery) (*ContextResponse, error) {
	reqBody, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch context: %w", err)
	}

	body, postErr := c.doPost(ctx, "/context", reqBody)
	if postErr != nil {
		return nil, fmt.Errorf("failed to fetch context: %w", postErr)
	}
	defer body.Close() //nolint:errcheck

	var out ContextResponse
	if decodeErr := json.NewDecoder(body).Decode(&out); decodeErr != nil {
		return nil, fmt.Errorf("failed to fetch context: decode response: %w", decodeErr)
	}
	return &out, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// doGet sends a GET request to baseURL+path and returns the response body.
// Caller is responsible for closing the returned ReadCloser.
func (c *Client) doGet(ctx context.Context, path string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return c.do(req)
}

// doPost sends a JSON POST request to baseURL+path and returns the response
// body. Caller is responsible for closing the returned ReadCloser.
func (c *Client) doPost(ctx context.Context, path string, body []byte) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(headerContentType, mimeJSON)
	return c.do(req)
}

// do executes the request with both auth headers attached. Connection errors
// and non-2xx statuses wrap ErrBackendUnavailable.
func (c *Client) do(req *http.Request) (io.ReadCloser, error) {
	req.Header.Set(headerAuthorization, "Bearer "+c.userKey)
	req.Header.Set(headerAPIKey, c.appKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close() //nolint:errcheck
		return nil, fmt.Errorf("%w: status %d", ErrBackendUnavailable, resp.StatusCode)
	}
	return resp.Body, nil
}
