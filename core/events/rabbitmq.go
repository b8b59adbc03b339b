package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitPublisher publishes events to a topic exchange.
type RabbitPublisher struct {
	conn     *amqp.Connection
	channel  channel
	exchange string
	logger   *zap.Logger
	mu       sync.Mutex
}

// New returns a RabbitMQ publisher, or Nop when no URL is configured.
func New(cfg Config, logger *zap.Logger) (Publisher, error) {
	if cfg.URL == "" {
		return Nop{}, nil
	}
	return Dial(cfg, logger)
}

// Dial connects with retry and declares the exchange.
func Dial(cfg Config, logger *zap.Logger) (*RabbitPublisher, error) {
	if cfg.Exchange == "" {
		return nil, errors.New("exchange name cannot be empty")
	}

	attempts := cfg.Retries
	if attempts <= 0 {
		attempts = 1
	}

	var conn *amqp.Connection
	var err error
	for i := 0; i < attempts; i++ {
		conn, err = amqp.Dial(cfg.URL)
		if err == nil {
			break
		}
		if i < attempts-1 {
			retry := time.Duration(i*i)*time.Second + time.Second
			logger.Warn("Failed to connect to RabbitMQ, retrying", zap.Duration("in", retry), zap.Error(err))
			time.Sleep(retry)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", attempts, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	logger.Info("Connected to RabbitMQ", zap.String("exchange", cfg.Exchange))
	return &RabbitPublisher{conn: conn, channel: ch, exchange: cfg.Exchange, logger: logger}, nil
}

// Publish sends event with its type as routing key.
func (p *RabbitPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		event.Type,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			MessageId:    event.Order.ID,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s to exchange %s: %w", event.Type, p.exchange, err)
	}

	p.logger.Debug("Published order event",
		zap.String("type", event.Type),
		zap.String("order_id", event.Order.ID))
	return nil
}

// Ping fails once the broker connection is gone.
func (p *RabbitPublisher) Ping() error {
	if p.conn != nil && p.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

func (p *RabbitPublisher) Close() error {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			return err
		}
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
