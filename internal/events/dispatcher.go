package events

import (
	"context"
	"log/slog"
	"sync"
)

type Handler func(ctx context.Context, e Event) error

// Dispatcher is a synchronous in-process fan-out. Handler failures are
// logged and never propagate: the primary mutation has already committed by
// the time an event is published.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string][]Handler),
	}
}

func (d *Dispatcher) Subscribe(eventName string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventName] = append(d.handlers[eventName], h)
}

func (d *Dispatcher) Publish(ctx context.Context, e Event) {
	d.mu.RLock()
	handlers := d.handlers[e.Name()]
	d.mu.RUnlock()

	for _, h := range handlers {
		if err := h(ctx, e); err != nil {
			slog.Error("Event handler failed", "event", e.Name(), "error", err)
		}
	}
}
