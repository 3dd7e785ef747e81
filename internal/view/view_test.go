package view

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/corviu/corviu-go/internal/api"
)

func newRefresher(t *testing.T, h http.HandlerFunc) *Refresher {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewRefresher(api.New(srv.URL, ""))
}

// ─── Refresher ─────────────────────────────────────────────────────────────

func TestRefresh_ChangesView(t *testing.T) {
	r := newRefresher(t, func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/api/projects/p-1/changes" {
			t.Errorf("unexpected path %q", req.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"total_changes":    2,
			"critical_changes": 1,
			"ai_summary":       "slab moved, lights added",
			"changes": []map[string]any{
				{"element_name": "Level 2 Slab", "description": "moved 75mm north", "priority": "critical", "cost_impact": 45000},
				{"element_name": "Lighting", "description": "12 fixtures added", "priority": "high"},
			},
		})
	})

	var buf bytes.Buffer
	v := NewTextView("changes", KindChanges, &buf)
	r.Refresh(context.Background(), "p-1", v)

	out := buf.String()
	for _, want := range []string{"2 changes (1 critical)", "slab moved, lights added", "Level 2 Slab", "! "} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRefresh_ROIView(t *testing.T) {
	r := newRefresher(t, func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/api/projects/p-1/roi" {
			t.Errorf("unexpected path %q", req.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"meetings_saved": 3,
			"hours_saved":    7.5,
			"cost_saved":     1162.5,
			"message":        "CORVIU saved your team $1,162 this week",
		})
	})

	var buf bytes.Buffer
	v := NewTextView("roi", KindROI, &buf)
	r.Refresh(context.Background(), "p-1", v)

	out := buf.String()
	if !strings.Contains(out, "3 meetings saved") || !strings.Contains(out, "$1,162") {
		t.Errorf("unexpected ROI output:\n%s", out)
	}
}

func TestRefresh_FailureShowsUnavailable(t *testing.T) {
	r := newRefresher(t, func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	var buf bytes.Buffer
	v := NewTextView("changes", KindChanges, &buf)
	// Must not panic or return an error; the view shows an inline state.
	r.Refresh(context.Background(), "p-1", v)

	if !strings.Contains(buf.String(), "unable to load") {
		t.Errorf("expected inline unavailable state, got:\n%s", buf.String())
	}
}

// ─── Manifest ──────────────────────────────────────────────────────────────

func TestLoadManifest_Missing(t *testing.T) {
	m, err := LoadManifest(filepath.Join(t.TempDir(), "views.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Views) != 2 {
		t.Fatalf("expected default manifest with 2 views, got %d", len(m.Views))
	}
}

func TestLoadManifest_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "views.yaml")
	data := "views:\n  - name: site-digest\n    kind: changes\n  - name: weekly-roi\n    kind: roi\n  - name: plain\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Views) != 3 {
		t.Fatalf("expected 3 views, got %d", len(m.Views))
	}
	if m.Views[1].Kind != KindROI {
		t.Errorf("unexpected kind: %q", m.Views[1].Kind)
	}
	// Kind defaults to changes when omitted.
	if m.Views[2].Kind != KindChanges {
		t.Errorf("expected default kind changes, got %q", m.Views[2].Kind)
	}
}

func TestLoadManifest_UnknownKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "views.yaml")
	if err := os.WriteFile(path, []byte("views:\n  - name: x\n    kind: weather\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadManifest(path); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
