// Package bus provides the in-process publish/subscribe registry that fans
// client events out to application listeners.
package bus

import (
	"log/slog"
	"sync"
)

// Event is the name of a published client event.
type Event string

const (
	// EventConnected fires once each time the push channel is established.
	// Its payload is nil.
	EventConnected Event = "connected"
	// EventChange carries the decoded payload of one inbound push message.
	EventChange Event = "change"
	// EventError carries a transport error. Channel-level errors are never
	// raised to callers; they surface here.
	EventError Event = "error"
)

// Handler is a subscriber callback. Handlers run synchronously on the
// emitting goroutine and must not assume any particular payload shape
// beyond what the event documents.
type Handler func(payload any)

type subscriber struct {
	id uint64
	fn Handler
}

// EventBus maps event names to ordered subscriber lists. Registration order
// is preserved and duplicates are allowed.
type EventBus struct {
	mu   sync.Mutex
	next uint64
	subs map[Event][]subscriber
}

// New creates an empty EventBus.
func New() *EventBus {
	return &EventBus{subs: make(map[Event][]subscriber)}
}

// On registers fn under event and returns a disposer that removes exactly
// that registration. Registering the same function twice yields two
// independent registrations.
func (b *EventBus) On(event Event, fn Handler) func() {
	b.mu.Lock()
	b.next++
	id := b.next
	b.subs[event] = append(b.subs[event], subscriber{id: id, fn: fn})
	b.mu.Unlock()
	return func() { b.off(event, id) }
}

func (b *EventBus) off(event Event, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.subs[event]
	for i, s := range list {
		if s.id == id {
			b.subs[event] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Emit invokes every handler registered under event, in registration order,
// passing payload. Zero subscribers is a no-op. A panicking handler is
// recovered and logged so later handlers still run.
func (b *EventBus) Emit(event Event, payload any) {
	b.mu.Lock()
	list := make([]subscriber, len(b.subs[event]))
	copy(list, b.subs[event])
	b.mu.Unlock()

	for _, s := range list {
		call(event, s.fn, payload)
	}
}

func call(event Event, fn Handler, payload any) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("event handler panicked", "event", string(event), "panic", r)
		}
	}()
	fn(payload)
}
