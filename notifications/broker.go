package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Dosada05/event-manager/models"
)

const brokerPublishTimeout = 5 * time.Second

// MessagePublisher is the part of messaging.Client the forwarder needs.
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// Envelope is the JSON document forwarded to the broker for every domain event.
type Envelope struct {
	Type       models.DomainEventType `json:"type"`
	EventID    string                 `json:"event_id"`
	OccurredAt time.Time              `json:"occurred_at"`
	Payload    models.DomainEvent     `json:"payload"`
}

// BrokerForwarder publishes every domain event to a message broker, routed by its type.
type BrokerForwarder struct {
	publisher MessagePublisher
	now       func() time.Time
}

func NewBrokerForwarder(publisher MessagePublisher) *BrokerForwarder {
	return &BrokerForwarder{publisher: publisher, now: time.Now}
}

func (b *BrokerForwarder) Name() string { return "broker_forwarder" }

func (b *BrokerForwarder) Handle(ctx context.Context, event models.DomainEvent) error {
	body, err := json.Marshal(Envelope{
		Type:       event.EventType(),
		EventID:    event.EventID(),
		OccurredAt: b.now().UTC(),
		Payload:    event,
	})
	if err != nil {
		return fmt.Errorf("failed to encode domain event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, brokerPublishTimeout)
	defer cancel()
	if err := b.publisher.Publish(ctx, string(event.EventType()), body); err != nil {
		return fmt.Errorf("failed to forward domain event: %w", err)
	}
	return nil
}
