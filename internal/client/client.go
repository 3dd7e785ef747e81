// Package client composes the fetcher, event bus, and channel manager behind
// the corviu client facade. A Client is explicitly constructed and owned by
// its caller; there is no process-wide default.
package client

import (
	"context"
	"log/slog"

	"github.com/corviu/corviu-go/internal/api"
	"github.com/corviu/corviu-go/internal/bus"
	"github.com/corviu/corviu-go/internal/channel"
	"github.com/corviu/corviu-go/internal/config"
	"github.com/corviu/corviu-go/internal/view"
)

// Client is the public facade over the corviu integration client.
type Client struct {
	cfg     *config.Config
	api     *api.Client
	bus     *bus.EventBus
	manager *channel.Manager
}

// New composes a Client from its parts. Most callers build it through the
// dependency container.
func New(cfg *config.Config, a *api.Client, b *bus.EventBus, m *channel.Manager) *Client {
	return &Client{cfg: cfg, api: a, bus: b, manager: m}
}

// Init probes service health and, when a project is configured, opens the
// push channel. A failed or negative probe reports false rather than an
// error; with no project configured a healthy probe reports true and no
// channel is opened.
func (c *Client) Init(ctx context.Context) bool {
	h, err := c.api.HealthCheck(ctx)
	if err != nil {
		slog.Warn("corviu: health probe failed", "endpoint", c.api.Endpoint(), "err", err)
		return false
	}
	if !h.Operational() {
		slog.Warn("corviu: service not operational", "status", h.Status)
		return false
	}
	slog.Debug("corviu: service healthy", "service", h.Service, "version", h.Version)

	if c.cfg.Project == "" {
		slog.Info("corviu: no project configured, push channel not opened")
		return true
	}
	if err := c.manager.Open(ctx, c.cfg.Project); err != nil {
		slog.Warn("corviu: channel open failed", "project", c.cfg.Project, "err", err)
		return false
	}
	return true
}

// On registers a handler for event and returns its disposer.
func (c *Client) On(event bus.Event, fn bus.Handler) func() {
	return c.bus.On(event, fn)
}

// Emit publishes an event to all registered handlers.
func (c *Client) Emit(event bus.Event, payload any) {
	c.bus.Emit(event, payload)
}

// Open connects the push channel for a project, replacing any active one.
func (c *Client) Open(ctx context.Context, project string) error {
	return c.manager.Open(ctx, project)
}

// Close tears down the push channel and stops reconnecting.
func (c *Client) Close() {
	c.manager.Close()
}

// State reports the push channel state.
func (c *Client) State() channel.State {
	return c.manager.State()
}

// RegisterView adds a digest view refreshed on each change event.
func (c *Client) RegisterView(v view.View) {
	c.manager.RegisterView(v)
}

// DeregisterView removes a digest view.
func (c *Client) DeregisterView(v view.View) {
	c.manager.DeregisterView(v)
}

// API exposes the request/response client for one-shot calls.
func (c *Client) API() *api.Client { return c.api }

// Bus exposes the event bus for collaborators like notification fan-out.
func (c *Client) Bus() *bus.EventBus { return c.bus }
