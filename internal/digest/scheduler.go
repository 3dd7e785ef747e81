// Package digest schedules periodic refreshes of registered views: a cron
// schedule for routine digests plus an optional fixed polling interval that
// keeps views current while the push channel is down.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	robfigcron "github.com/robfig/cron/v3"

	"github.com/corviu/corviu-go/internal/view"
)

// Refresher re-fetches a view's summary data and applies it to the view.
type Refresher interface {
	Refresh(ctx context.Context, project string, v view.View)
}

// Scheduler periodically refreshes a fixed set of views for one project.
type Scheduler struct {
	refresher Refresher
	project   string
	schedule  string
	poll      time.Duration
	views     []view.View
}

// NewScheduler creates a Scheduler. schedule is a standard cron expression
// (empty disables it); poll is a fixed refresh interval (zero disables it).
func NewScheduler(r Refresher, project, schedule string, poll time.Duration, views []view.View) *Scheduler {
	return &Scheduler{
		refresher: r,
		project:   project,
		schedule:  schedule,
		poll:      poll,
		views:     views,
	}
}

// Start arms the schedule and blocks until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	c := robfigcron.New()
	if s.schedule != "" {
		if _, err := c.AddFunc(s.schedule, func() { s.refreshAll(ctx) }); err != nil {
			return fmt.Errorf("digest: bad schedule %q: %w", s.schedule, err)
		}
		slog.Info("digest: schedule armed", "schedule", s.schedule)
	}
	c.Start()
	defer func() { <-c.Stop().Done() }()

	if s.poll <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()
	slog.Info("digest: polling enabled", "interval", s.poll)
	for {
		select {
		case <-ticker.C:
			s.refreshAll(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *Scheduler) refreshAll(ctx context.Context) {
	for _, v := range s.views {
		s.refresher.Refresh(ctx, s.project, v)
	}
}
