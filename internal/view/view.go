// Package view provides digest views and the refresher that keeps them
// current with fetched summary data.
package view

import (
	"context"
	"log/slog"

	"github.com/corviu/corviu-go/internal/api"
)

// Kind selects which summary a view renders.
type Kind string

const (
	KindChanges Kind = "changes"
	KindROI     Kind = "roi"
)

// View is a rendered digest surface. Exactly one of the Show methods is
// called per refresh depending on Kind; ShowUnavailable replaces the content
// with an inline failure state instead of leaving it stale.
type View interface {
	Name() string
	Kind() Kind
	ShowChanges(s *api.ChangeSummary)
	ShowROI(m *api.ROIMetrics)
	ShowUnavailable(err error)
}

// Refresher re-fetches a view's summary data for a project and applies it.
// Refresh is best-effort: a failed fetch renders the view's unavailable
// state and is logged, never returned.
type Refresher struct {
	api *api.Client
}

// NewRefresher creates a Refresher backed by the given fetcher.
func NewRefresher(c *api.Client) *Refresher {
	return &Refresher{api: c}
}

// Refresh re-fetches v's data for project and updates v.
func (r *Refresher) Refresh(ctx context.Context, project string, v View) {
	switch v.Kind() {
	case KindROI:
		m, err := r.api.FetchROIMetrics(ctx, project)
		if err != nil {
			slog.Warn("view refresh failed", "view", v.Name(), "project", project, "err", err)
			v.ShowUnavailable(err)
			return
		}
		v.ShowROI(m)
	default:
		s, err := r.api.FetchChangeSummary(ctx, project)
		if err != nil {
			slog.Warn("view refresh failed", "view", v.Name(), "project", project, "err", err)
			v.ShowUnavailable(err)
			return
		}
		v.ShowChanges(s)
	}
}
