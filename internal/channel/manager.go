// Package channel owns the persistent push connection to the corviu service:
// the connect/disconnect/reconnect state machine and the fan-out of inbound
// push events to the bus and to registered digest views.
package channel

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/corviu/corviu-go/internal/bus"
	"github.com/corviu/corviu-go/internal/view"
)

// State is the connection state of the Manager.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateOpen
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	}
	return "unknown"
}

// ErrNoProject is returned when Open is called without a project id.
var ErrNoProject = errors.New("channel: no project configured")

// ErrClosed is returned when Open is called after Close.
var ErrClosed = errors.New("channel: manager closed")

// DefaultReconnectDelay is the fixed delay between reconnect attempts.
const DefaultReconnectDelay = 5 * time.Second

// Refresher re-fetches a view's summary data and applies it to the view.
type Refresher interface {
	Refresh(ctx context.Context, project string, v view.View)
}

// Manager owns a single push connection per active project. There is no
// retry cap and no backoff growth: the channel self-heals until Close.
//
// All state transitions are serialized by mu. The reader goroutine and the
// retry timer report back through the same lock; a generation counter makes
// callbacks from superseded connections no-ops.
type Manager struct {
	transport Transport
	bus       *bus.EventBus
	refresher Refresher
	endpoint  string
	delay     time.Duration

	mu      sync.Mutex
	state   State
	project string
	conn    Conn
	retry   *time.Timer
	gen     int
	closed  bool
	views   []view.View
	ctx     context.Context
}

// New creates a Manager. delay <= 0 uses DefaultReconnectDelay.
func New(t Transport, b *bus.EventBus, r Refresher, endpoint string, delay time.Duration) *Manager {
	if delay <= 0 {
		delay = DefaultReconnectDelay
	}
	return &Manager{
		transport: t,
		bus:       b,
		refresher: r,
		endpoint:  endpoint,
		delay:     delay,
		state:     StateDisconnected,
	}
}

// State returns the current connection state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Project returns the active project id, empty before the first Open.
func (m *Manager) Project() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.project
}

// RegisterView adds v to the set of views refreshed on each change event.
func (m *Manager) RegisterView(v view.View) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views = append(m.views, v)
}

// DeregisterView removes v. Unknown views are ignored.
func (m *Manager) DeregisterView(v view.View) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, have := range m.views {
		if have == v {
			m.views = append(m.views[:i:i], m.views[i+1:]...)
			return
		}
	}
}

// Open connects the push channel for project. It is idempotent while
// connecting to or connected for the same project. Opening a different
// project cancels any pending reconnect, tears the old channel down, and
// dials fresh. ctx bounds the connection's lifetime, including reconnects.
func (m *Manager) Open(ctx context.Context, project string) error {
	if project == "" {
		return ErrNoProject
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if project == m.project && (m.state == StateConnecting || m.state == StateOpen) {
		return nil
	}

	// Context switch: one live channel at a time, old retries are stale.
	m.stopRetryLocked()
	m.teardownLocked()
	m.project = project
	m.ctx = ctx
	m.dialLocked()
	return nil
}

// Close tears the channel down and stops reconnecting. The manager cannot
// be reopened afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.stopRetryLocked()
	m.teardownLocked()
}

// teardownLocked force-closes any live connection and bumps the generation
// so in-flight callbacks from it are discarded.
func (m *Manager) teardownLocked() {
	m.gen++
	if m.conn != nil {
		m.state = StateClosing
		_ = m.conn.Close()
		m.conn = nil
	}
	m.state = StateDisconnected
}

func (m *Manager) stopRetryLocked() {
	if m.retry != nil {
		m.retry.Stop()
		m.retry = nil
	}
}

func (m *Manager) dialLocked() {
	url, err := channelURL(m.endpoint, m.project)
	if err != nil {
		slog.Error("channel: cannot derive push endpoint", "endpoint", m.endpoint, "err", err)
		m.state = StateDisconnected
		return
	}

	m.state = StateConnecting
	m.gen++
	gen := m.gen
	ctx := m.ctx
	go m.connect(ctx, gen, url)
}

func (m *Manager) connect(ctx context.Context, gen int, url string) {
	conn, err := m.transport.Dial(ctx, url)

	m.mu.Lock()
	if gen != m.gen || m.closed {
		m.mu.Unlock()
		if err == nil {
			_ = conn.Close()
		}
		return
	}
	if err != nil {
		slog.Warn("channel: connect failed", "url", url, "err", err)
		m.state = StateDisconnected
		m.scheduleRetryLocked()
		m.mu.Unlock()
		return
	}
	m.conn = conn
	m.state = StateOpen
	project := m.project
	m.mu.Unlock()

	slog.Info("channel: connected", "project", project)
	m.bus.Emit(bus.EventConnected, nil)
	go m.readLoop(ctx, gen, conn)
}

func (m *Manager) readLoop(ctx context.Context, gen int, conn Conn) {
	for {
		data, err := conn.ReadMessage()
		if err != nil {
			m.handleDisconnect(gen, err)
			return
		}

		var payload map[string]any
		if err := json.Unmarshal(data, &payload); err != nil {
			// Undecodable frames are dropped; the channel stays open.
			slog.Warn("channel: dropping undecodable message", "err", err)
			continue
		}

		m.bus.Emit(bus.EventChange, payload)
		m.refreshViews(ctx)
	}
}

func (m *Manager) handleDisconnect(gen int, err error) {
	m.mu.Lock()
	if gen != m.gen || m.closed {
		m.mu.Unlock()
		return
	}
	wasOpen := m.state == StateOpen
	m.state = StateClosing
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
	m.state = StateDisconnected
	m.scheduleRetryLocked()
	project := m.project
	m.mu.Unlock()

	slog.Warn("channel: disconnected", "project", project, "err", err)
	if wasOpen {
		m.bus.Emit(bus.EventError, err)
	}
}

// scheduleRetryLocked arms the single reconnect timer. A later Open or
// teardown bumps the generation, which invalidates the armed attempt.
func (m *Manager) scheduleRetryLocked() {
	if m.closed {
		return
	}
	m.stopRetryLocked()
	gen := m.gen
	m.retry = time.AfterFunc(m.delay, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.closed || gen != m.gen || m.state != StateDisconnected {
			return
		}
		m.retry = nil
		m.dialLocked()
	})
	slog.Debug("channel: reconnect scheduled", "delay", m.delay)
}

func (m *Manager) refreshViews(ctx context.Context) {
	m.mu.Lock()
	views := make([]view.View, len(m.views))
	copy(views, m.views)
	project := m.project
	m.mu.Unlock()

	if m.refresher == nil {
		return
	}
	for _, v := range views {
		m.refresher.Refresh(ctx, project, v)
	}
}
