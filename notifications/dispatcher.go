// Package notifications delivers domain events emitted by services to the components
// that react to them.
package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Dosada05/event-manager/models"
)

// Publisher is what services emit domain events through.
type Publisher interface {
	Publish(ctx context.Context, event models.DomainEvent)
}

type Subscriber interface {
	Name() string
	Handle(ctx context.Context, event models.DomainEvent) error
}

// Dispatcher runs every subscriber on the publishing goroutine, in registration order,
// before Publish returns. A failing subscriber is logged and does not stop the others.
type Dispatcher struct {
	mu          sync.RWMutex
	subscribers []Subscriber
	logger      *slog.Logger
}

func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{logger: logger}
}

func (d *Dispatcher) Subscribe(s Subscriber) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subscribers = append(d.subscribers, s)
}

func (d *Dispatcher) Publish(ctx context.Context, event models.DomainEvent) {
	d.mu.RLock()
	subscribers := append([]Subscriber(nil), d.subscribers...)
	d.mu.RUnlock()

	for _, s := range subscribers {
		if err := d.deliver(ctx, s, event); err != nil {
			d.logger.ErrorContext(ctx, "domain event subscriber failed",
				slog.String("subscriber", s.Name()),
				slog.String("event_type", string(event.EventType())),
				slog.String("event_id", event.EventID()),
				slog.Any("error", err),
			)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, s Subscriber, event models.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()
	return s.Handle(ctx, event)
}

type panicError struct{ value any }

func (p *panicError) Error() string { return fmt.Sprintf("subscriber panicked: %v", p.value) }

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, models.DomainEvent) {}
