package events

import (
	"context"
	"time"

	"order-manager/core/models"
)

// Routing keys, one per order lifecycle transition.
const (
	OrderCreated = "order.created"
	OrderUpdated = "order.updated"
	OrderDeleted = "order.deleted"
)

// Config holds configuration for the order event publisher.
type Config struct {
	// URL is the AMQP broker address. Empty disables publishing.
	URL string `mapstructure:"url" default:""`
	// Exchange is the topic exchange events are published to.
	Exchange string `mapstructure:"exchange" default:"orders"`
	// Retries is how many times the initial dial is attempted.
	Retries int `mapstructure:"retries" default:"5"`
}

// Event is the message body published after an order change commits.
type Event struct {
	Type       string       `json:"type"`
	Order      models.Order `json:"order"`
	OccurredAt time.Time    `json:"occurredAt"`
}

// Publisher sends order events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Ping() error
	Close() error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

func (Nop) Ping() error { return nil }

func (Nop) Close() error { return nil }
