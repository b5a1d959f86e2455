// Package restclient is the HTTP client wrapper every backend service client
// is built on. It issues JSON requests with auth/tenant scope headers
// attached, converts non-2xx responses into *envelope.RemoteError carrying
// the backend's status and message, and records backend-call metrics.
//
// Reads go through the retrying client; mutations always use a single
// attempt so a failure surfaces immediately to the caller.
package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Tesseract-Nexus/admin-bff/internal/auth"
	"github.com/Tesseract-Nexus/admin-bff/internal/config"
	"github.com/Tesseract-Nexus/admin-bff/internal/envelope"
	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/httpretry"
	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/metrics"
)

// Client issues requests against one backend service.
type Client struct {
	service string
	baseURL string
	reader  httpretry.HTTPDoer // idempotent GETs, retried
	writer  httpretry.HTTPDoer // mutations, single attempt
}

// New creates a client for the named backend service.
func New(service string, cfg config.ServiceConfig) *Client {
	hc := &http.Client{Timeout: cfg.Timeout()}
	return &Client{
		service: service,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		reader:  httpretry.New(hc, cfg.MaxRetries),
		writer:  httpretry.New(hc, 0),
	}
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Get issues a GET and returns the raw body.
func (c *Client) Get(ctx context.Context, path string, q url.Values, scope auth.Scope) ([]byte, error) {
	return c.do(ctx, c.reader, http.MethodGet, path, q, scope, nil)
}

// Post issues a POST with a JSON body (nil for empty) and returns the raw body.
func (c *Client) Post(ctx context.Context, path string, scope auth.Scope, payload any) ([]byte, error) {
	return c.do(ctx, c.writer, http.MethodPost, path, nil, scope, payload)
}

// Put issues a PUT with a JSON body and returns the raw body.
func (c *Client) Put(ctx context.Context, path string, scope auth.Scope, payload any) ([]byte, error) {
	return c.do(ctx, c.writer, http.MethodPut, path, nil, scope, payload)
}

// Delete issues a DELETE and returns the raw body.
func (c *Client) Delete(ctx context.Context, path string, scope auth.Scope) ([]byte, error) {
	return c.do(ctx, c.writer, http.MethodDelete, path, nil, scope, nil)
}

func (c *Client) do(ctx context.Context, doer httpretry.HTTPDoer, method, path string, q url.Values, scope auth.Scope, payload any) ([]byte, error) {
	fullURL := c.baseURL + path
	if len(q) > 0 {
		fullURL += "?" + q.Encode()
	}

	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	scope.Apply(req)

	resp, err := doer.Do(req)
	if err != nil {
		metrics.BackendCall(c.service, "unreachable")
		return nil, fmt.Errorf("%s service: %w", c.service, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.BackendCall(c.service, "unreachable")
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.BackendCall(c.service, "error")
		return nil, &envelope.RemoteError{
			Status:  resp.StatusCode,
			Message: errorMessage(body, resp.StatusCode),
		}
	}

	metrics.BackendCall(c.service, "ok")
	return body, nil
}

// errorMessage extracts the backend's own message from an error body so it
// can be shown verbatim; falls back to a status-derived string.
func errorMessage(body []byte, status int) string {
	var p struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if err := json.Unmarshal(body, &p); err == nil {
		if p.Message != "" {
			return p.Message
		}
		switch e := p.Error.(type) {
		case string:
			if e != "" {
				return e
			}
		case map[string]any:
			if m, ok := e["message"].(string); ok && m != "" {
				return m
			}
		}
	}
	return fmt.Sprintf("backend returned status %d", status)
}
