// Package events publishes user lifecycle events for downstream consumers
// (recommendation indexing, transactional email). Publishing is best-effort:
// a failed publish is logged by the caller and never fails the request.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

const (
	TypeUserRegistered     = "user.registered"
	TypeUserProfileUpdated = "user.profile_updated"
)

// Event is the envelope all published messages share.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

// UserEvent is the payload for user lifecycle events.
type UserEvent struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// EventPublisher publishes domain events.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
	Close() error
}

// watermillPublisher adapts a watermill publisher to EventPublisher.
type watermillPublisher struct {
	publisher message.Publisher
	topic     string
}

// NewWatermillPublisher wraps any watermill publisher (kafka in production,
// gochannel in-process otherwise) behind the EventPublisher interface.
func NewWatermillPublisher(publisher message.Publisher, topic string) EventPublisher {
	return &watermillPublisher{publisher: publisher, topic: topic}
}

func (p *watermillPublisher) Publish(ctx context.Context, eventType string, data interface{}) error {
	event := Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event %s: %w", eventType, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_type", eventType)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("publishing event %s: %w", eventType, err)
	}
	return nil
}

func (p *watermillPublisher) Close() error {
	return p.publisher.Close()
}
