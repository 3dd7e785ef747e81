// Package api implements the request/response client for the corviu service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// StatusError reports a non-success HTTP status from the service. It is
// returned to the immediate caller only, never broadcast as an event.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("corviu: server returned status %d: %s", e.Code, e.Body)
}

// Client performs request/response calls against the corviu service.
// It is stateless beyond the endpoint and credential it was built with.
type Client struct {
	endpoint   string
	credential string
	http       *http.Client
}

// New creates a Client for the given base endpoint. credential may be empty.
func New(endpoint, credential string) *Client {
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		credential: credential,
		http:       &http.Client{Timeout: 15 * time.Second},
	}
}

// Endpoint returns the base service URL the client was built with.
func (c *Client) Endpoint() string { return c.endpoint }

// HealthCheck probes GET /health.
func (c *Client) HealthCheck(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.getJSON(ctx, "/health", &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// FetchChangeSummary fetches the change digest for a project.
func (c *Client) FetchChangeSummary(ctx context.Context, projectID string) (*ChangeSummary, error) {
	var s ChangeSummary
	path := "/api/projects/" + url.PathEscape(projectID) + "/changes"
	if err := c.getJSON(ctx, path, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// FetchROIMetrics fetches the ROI summary for a project.
func (c *Client) FetchROIMetrics(ctx context.Context, projectID string) (*ROIMetrics, error) {
	var m ROIMetrics
	path := "/api/projects/" + url.PathEscape(projectID) + "/roi"
	if err := c.getJSON(ctx, path, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// SeedDemoProject creates a demo project with sample changes.
func (c *Client) SeedDemoProject(ctx context.Context) (*SeedResult, error) {
	var r SeedResult
	if err := c.postJSON(ctx, "/api/demo/seed", nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateChange records a manual change against a project.
func (c *Client) CreateChange(ctx context.Context, projectID string, draft ChangeDraft) (*CreateResult, error) {
	var r CreateResult
	path := "/api/projects/" + url.PathEscape(projectID) + "/changes"
	if err := c.postJSON(ctx, path, draft, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// AuthURL fetches the OAuth login URL. The redirect flow itself is up to the
// caller.
func (c *Client) AuthURL(ctx context.Context) (*AuthLogin, error) {
	var a AuthLogin
	if err := c.getJSON(ctx, "/auth/login", &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path, nil)
	if err != nil {
		return fmt.Errorf("corviu: build request %s: %w", path, err)
	}
	return c.do(req, path, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("corviu: marshal %s body: %w", path, err)
		}
		rdr = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, rdr)
	if err != nil {
		return fmt.Errorf("corviu: build request %s: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out any) error {
	if c.credential != "" {
		req.Header.Set("Authorization", "Bearer "+c.credential)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("corviu: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("corviu: decode %s response: %w", path, err)
	}
	return nil
}
