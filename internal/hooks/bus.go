// Package hooks provides an in-process publish/subscribe bus for game events such
// as dice rolls and resolved attacks. A Bus is an ordinary value: create one with
// NewBus and pass it to the components that publish or listen.
package hooks

import (
	"fmt"
	"log/slog"
	"sync"
)

// Handler receives events published under the name it was registered for.
type Handler func(Event)

type registration struct {
	id uint64
	fn Handler
}

// Bus delivers events synchronously to handlers in registration order.
// All methods are safe for concurrent use.
type Bus struct {
	logger *slog.Logger

	mu       sync.RWMutex
	nextID   uint64
	handlers map[Name][]registration
}

// NewBus creates an empty bus. Handler failures are logged to logger.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		logger:   logger.With("component", "hooks"),
		handlers: make(map[Name][]registration),
	}
}

// On registers fn for name and returns a function that removes it again.
// The returned function is idempotent.
func (b *Bus) On(name Name, fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[name] = append(b.handlers[name], registration{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(name, id) })
	}
}

func (b *Bus) remove(name Name, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[name]
	for i, r := range regs {
		if r.id == id {
			// Copy so that snapshots taken by in-flight Emit calls are untouched.
			next := make([]registration, 0, len(regs)-1)
			next = append(next, regs[:i]...)
			next = append(next, regs[i+1:]...)
			if len(next) == 0 {
				delete(b.handlers, name)
			} else {
				b.handlers[name] = next
			}
			return
		}
	}
}

// Emit delivers e to every handler registered for its hook name at the time of the
// call. A handler that panics is logged and skipped; the remaining handlers still run.
func (b *Bus) Emit(e Event) {
	name := e.HookName()

	b.mu.RLock()
	regs := b.handlers[name]
	b.mu.RUnlock()

	for _, r := range regs {
		b.call(name, r.fn, e)
	}
}

func (b *Bus) call(name Name, fn Handler, e Event) {
	defer func() {
		if rec := recover(); rec != nil {
			b.logger.Warn("hook handler failed", "hook", string(name), "error", fmt.Sprint(rec))
		}
	}()
	fn(e)
}

// Len returns the number of handlers registered for name.
func (b *Bus) Len(name Name) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[name])
}

// Subscribe registers a handler for the hook announced by payload type E.
func Subscribe[E Event](b *Bus, fn func(E)) func() {
	var zero E
	return b.On(zero.HookName(), func(e Event) {
		if typed, ok := e.(E); ok {
			fn(typed)
		}
	})
}
