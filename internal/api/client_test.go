package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestClient wires a Client against a test handler.
func newTestClient(t *testing.T, credential string, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, credential)
}

// ─── HealthCheck ───────────────────────────────────────────────────────────

func TestHealthCheck(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "operational",
			"service": "CORVIU",
			"version": "1.0.0",
			"checks":  map[string]string{"api": "healthy"},
		})
	})

	h, err := c.HealthCheck(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !h.Operational() {
		t.Errorf("expected operational, got status %q", h.Status)
	}
	if h.Checks["api"] != "healthy" {
		t.Errorf("checks not decoded: %v", h.Checks)
	}
}

func TestHealthCheck_Degraded(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "degraded"})
	})

	h, err := c.HealthCheck(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Operational() {
		t.Error("degraded service reported operational")
	}
}

// ─── FetchChangeSummary ────────────────────────────────────────────────────

func TestFetchChangeSummary(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projects/p-1/changes" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"total_changes":     3,
			"critical_changes":  1,
			"total_cost_impact": 56600.0,
			"ai_summary":        "3 changes detected",
			"changes": []map[string]any{
				{"element_name": "Level 2 Slab", "priority": "critical", "cost_impact": 45000},
			},
		})
	})

	s, err := c.FetchChangeSummary(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.TotalChanges != 3 || s.CriticalChanges != 1 {
		t.Errorf("counts not decoded: %+v", s)
	}
	if len(s.Changes) != 1 || s.Changes[0].ElementName != "Level 2 Slab" {
		t.Errorf("changes not decoded: %+v", s.Changes)
	}
}

func TestFetchChangeSummary_NonSuccessStatus(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "project not found", http.StatusNotFound)
	})

	_, err := c.FetchChangeSummary(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error for 404")
	}
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if se.Code != http.StatusNotFound {
		t.Errorf("unexpected code: %d", se.Code)
	}
}

// ─── SeedDemoProject / CreateChange ────────────────────────────────────────

func TestSeedDemoProject(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/demo/seed" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true, "project_id": "demo-1"})
	})

	r, err := c.SeedDemoProject(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Success || r.ProjectID != "demo-1" {
		t.Errorf("unexpected result: %+v", r)
	}
}

func TestCreateChange(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		var draft ChangeDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if draft.ElementName != "Roof Truss" {
			t.Errorf("unexpected draft: %+v", draft)
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true, "change_id": "c-9"})
	})

	r, err := c.CreateChange(context.Background(), "p-1", ChangeDraft{
		ElementName: "Roof Truss",
		ChangeType:  "structural",
		CostImpact:  12000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ChangeID != "c-9" {
		t.Errorf("unexpected result: %+v", r)
	}
}

// ─── Credential ────────────────────────────────────────────────────────────

func TestBearerCredentialSent(t *testing.T) {
	c := newTestClient(t, "secret-token", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{"status": "operational"})
	})

	if _, err := c.HealthCheck(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNoCredentialNoHeader(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{"status": "operational"})
	})

	if _, err := c.HealthCheck(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
