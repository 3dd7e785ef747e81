// Package notify forwards change events to team notification sinks.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/corviu/corviu-go/internal/bus"
	"github.com/corviu/corviu-go/internal/config"
)

// Notifier delivers one formatted change notification to a sink.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, text string) error
}

// FromConfig builds the enabled sinks.
func FromConfig(cfg *config.NotifyConfig) []Notifier {
	var sinks []Notifier
	if cfg.Slack.Enabled {
		sinks = append(sinks, NewSlackNotifier(&cfg.Slack))
		slog.Info("notify sink enabled", "name", "slack")
	}
	if cfg.Telegram.Enabled {
		sinks = append(sinks, NewTelegramNotifier(&cfg.Telegram))
		slog.Info("notify sink enabled", "name", "telegram")
	}
	return sinks
}

// FormatChange renders one push payload as a short notification line.
// Payloads are opaque, so every field is optional.
func FormatChange(project string, payload any) string {
	text := "corviu: change detected on project " + project
	m, ok := payload.(map[string]any)
	if !ok {
		return text
	}

	if element, _ := m["element_name"].(string); element != "" {
		text += " — " + element
	}
	if desc, _ := m["description"].(string); desc != "" {
		text += ": " + desc
	}
	if priority, _ := m["priority"].(string); priority != "" {
		text += " [" + priority + "]"
	}
	if cost, ok := m["cost_impact"].(float64); ok && cost > 0 {
		text += fmt.Sprintf(" ($%.0f)", cost)
	}
	return text
}

// Fanout subscribes to change events on b and forwards each one to every
// sink. The returned disposer stops the forwarding.
func Fanout(ctx context.Context, b *bus.EventBus, project string, sinks []Notifier) func() {
	return b.On(bus.EventChange, func(payload any) {
		text := FormatChange(project, payload)
		for _, s := range sinks {
			if err := s.Notify(ctx, text); err != nil {
				slog.Warn("notify failed", "sink", s.Name(), "err", err)
			}
		}
	})
}
