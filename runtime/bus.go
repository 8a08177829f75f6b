package runtime

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/elhassanefek/projectify-sub000/contract"
	"github.com/elhassanefek/projectify-sub000/domain/event"
	"github.com/elhassanefek/projectify-sub000/errors"
)

// maxListeners is a soft cap on total subscriptions per process. Crossing it
// logs a warning but never fails: registration happens once at startup and a
// runaway count indicates a wiring bug, not a recoverable condition.
const maxListeners = 50

type subscription struct {
	id      uint64
	handler contract.Handler
}

// Bus is the synchronous in-process domain event bus. Handlers for one event
// run in registration order, each inside an error boundary applied at
// subscribe time: a panicking handler is logged, re-emitted as a
// handler.error diagnostic, and never reaches the publisher or its siblings.
type Bus struct {
	log      *slog.Logger
	mu       sync.RWMutex
	nextID   uint64
	handlers map[string][]subscription
	total    int
}

func NewBus(log *slog.Logger) *Bus {
	return &Bus{log: log, handlers: make(map[string][]subscription)}
}

var _ contract.Bus = (*Bus)(nil)

// Subscribe registers the handler for the named event and returns a closure
// removing exactly that registration. Steady-state operation treats the
// subscription table as read-only; the primitive exists for tests and
// symmetry.
func (b *Bus) Subscribe(name string, handler contract.Handler) (func(), error) {
	if name == "" {
		return nil, errors.ErrEmptyEventName
	}
	if handler == nil {
		return nil, errors.ErrNilHandler
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.handlers[name] = append(b.handlers[name], subscription{id: id, handler: b.guard(handler)})
	b.total++
	total := b.total
	b.mu.Unlock()

	if total > maxListeners {
		b.log.Warn("event bus listener count above soft cap", "total", total, "cap", maxListeners)
	}

	return func() { b.remove(name, id) }, nil
}

// Publish invokes every handler subscribed to name, synchronously and in
// registration order. Zero subscribers is a no-op. The only caller-visible
// failure is an empty event name.
func (b *Bus) Publish(name string, payload any) error {
	if name == "" {
		return errors.ErrEmptyEventName
	}

	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[name]))
	copy(subs, b.handlers[name])
	b.mu.RUnlock()

	for _, sub := range subs {
		sub.handler(name, payload)
	}
	return nil
}

// guard wraps a handler in the error boundary. Applied once, at subscribe
// time, so every registered handler is uniformly protected.
func (b *Bus) guard(handler contract.Handler) contract.Handler {
	return func(name string, payload any) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			b.log.Error("event handler panicked", "event", name, "panic", r)
			// A panicking handler.error handler must not recurse.
			if name == event.HandlerError {
				return
			}
			_ = b.Publish(event.HandlerError, event.HandlerErrorPayload{
				Event:  name,
				Reason: fmt.Sprint(r),
			})
		}()
		handler(name, payload)
	}
}

func (b *Bus) remove(name string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[name]
	for i, sub := range subs {
		if sub.id == id {
			b.handlers[name] = append(subs[:i], subs[i+1:]...)
			b.total--
			break
		}
	}
	if len(b.handlers[name]) == 0 {
		delete(b.handlers, name)
	}
}
