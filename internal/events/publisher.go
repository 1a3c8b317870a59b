// Package events publishes account lifecycle events to a RabbitMQ topic exchange.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Khushiyant/nibtara/internal/auth/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Channel is the part of *amqp.Channel the publisher uses.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher serializes publishes on a single channel, which amqp091 does not allow to be
// shared across goroutines.
type Publisher struct {
	exchange string
	log      logrus.FieldLogger

	mu     sync.Mutex
	ch     Channel
	conn   *amqp.Connection
	closed bool
}

// NewPublisher declares exchange as a durable topic exchange on ch.
func NewPublisher(ch Channel, exchange string, log logrus.FieldLogger) (*Publisher, error) {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &Publisher{exchange: exchange, log: log, ch: ch}, nil
}

// Dial connects to url, retrying with backoff until attempts run out or ctx ends.
func Dial(ctx context.Context, url, exchange string, attempts int, log logrus.FieldLogger) (*Publisher, error) {
	delay := time.Second
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		conn, err := amqp.Dial(url)
		if err == nil {
			ch, err := conn.Channel()
			if err != nil {
				_ = conn.Close()
				return nil, fmt.Errorf("open channel: %w", err)
			}
			p, err := NewPublisher(ch, exchange, log)
			if err != nil {
				_ = ch.Close()
				_ = conn.Close()
				return nil, err
			}
			p.conn = conn
			log.WithField("exchange", exchange).Info("connected to rabbitmq")
			return p, nil
		}

		lastErr = err
		log.WithError(err).WithFields(logrus.Fields{
			"attempt":      attempt,
			"max_attempts": attempts,
		}).Warn("rabbitmq connection attempt failed")

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
			delay = min(delay*3/2, 30*time.Second)
		}
	}
	return nil, fmt.Errorf("connect to rabbitmq after %d attempts: %w", attempts, lastErr)
}

// Publish sends event as persistent JSON, routed by its type.
func (p *Publisher) Publish(ctx context.Context, event domain.AccountEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return fmt.Errorf("publisher closed")
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(publishCtx, p.exchange, event.Type, false, false, amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    event.ID,
		Type:         event.Type,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
	})
}

func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true

	_ = p.ch.Close()
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
