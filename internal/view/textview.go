package view

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/corviu/corviu-go/internal/api"
)

// TextView renders a digest to a writer. It is the terminal surface used by
// the CLI; each refresh reprints the whole digest block.
type TextView struct {
	name string
	kind Kind

	mu sync.Mutex
	w  io.Writer
}

// NewTextView creates a TextView writing to w.
func NewTextView(name string, kind Kind, w io.Writer) *TextView {
	return &TextView{name: name, kind: kind, w: w}
}

func (t *TextView) Name() string { return t.name }
func (t *TextView) Kind() Kind   { return t.kind }

func (t *TextView) ShowChanges(s *api.ChangeSummary) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.w, "── %s ──\n", t.name)
	fmt.Fprintf(t.w, "%d changes (%d critical) · $%.0f cost impact\n",
		s.TotalChanges, s.CriticalChanges, s.TotalCostImpact)
	if s.AISummary != "" {
		fmt.Fprintf(t.w, "%s\n", s.AISummary)
	}
	for _, c := range s.Changes {
		mark := " "
		if c.Priority == "critical" {
			mark = "!"
		}
		line := fmt.Sprintf("%s %-24s %s", mark, c.ElementName, c.Description)
		if c.CostImpact > 0 {
			line += fmt.Sprintf(" ($%.0f)", c.CostImpact)
		}
		if len(c.AffectedTrades) > 0 {
			line += " [" + strings.Join(c.AffectedTrades, ", ") + "]"
		}
		fmt.Fprintln(t.w, line)
	}
}

func (t *TextView) ShowROI(m *api.ROIMetrics) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.w, "── %s ──\n", t.name)
	fmt.Fprintf(t.w, "%d meetings saved · %.1f hours saved · $%.0f saved · %d decisions accelerated\n",
		m.MeetingsSaved, m.HoursSaved, m.CostSaved, m.DecisionsAccelerated)
	if m.Message != "" {
		fmt.Fprintf(t.w, "%s\n", m.Message)
	}
}

func (t *TextView) ShowUnavailable(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.w, "── %s ──\n", t.name)
	fmt.Fprintf(t.w, "unable to load: %v\n", err)
}
