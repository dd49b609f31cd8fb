// Package events delivers progress events to the notification and
// achievement collaborators over a durable RabbitMQ topic exchange.
// Delivery is at-least-once; consumers are idempotent on the event payload.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/sproutbank/sprout/internal/contribution"
)

const (
	exchange   = "goal_events"
	routingKey = "goal.progress"
)

var (
	_ contribution.Publisher = (*RabbitPublisher)(nil)
	_ contribution.Publisher = LogPublisher{}
)

// RabbitPublisher publishes progress events to the goal_events exchange.
// Safe for concurrent use; publishes on the shared channel are serialized.
type RabbitPublisher struct {
	conn *amqp091.Connection

	mu      sync.Mutex // guards channel, including the reopen swap
	channel *amqp091.Channel
}

// NewRabbitPublisher dials the broker with a bounded timeout and declares the
// durable topic exchange.
func NewRabbitPublisher(url string) (*RabbitPublisher, error) {
	conn, err := amqp091.DialConfig(url, amqp091.Config{Dial: amqp091.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, fmt.Errorf("dialing broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()

		return nil, fmt.Errorf("declaring exchange: %w", err)
	}

	return &RabbitPublisher{conn: conn, channel: ch}, nil
}

func (p *RabbitPublisher) PublishProgress(ctx context.Context, event contribution.ProgressEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshalling progress event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, exchange, routingKey, false, false, amqp091.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now(),
		Body:        body,
	})
	if err != nil {
		// One-shot retry on a fresh channel; a flaky channel is the common
		// broker failure mode.
		ch, chErr := p.conn.Channel()
		if chErr != nil {
			return fmt.Errorf("publishing progress event: %w", err)
		}

		p.channel = ch

		if err := p.channel.PublishWithContext(ctx, exchange, routingKey, false, false, amqp091.Publishing{
			ContentType: "application/json",
			Timestamp:   time.Now(),
			Body:        body,
		}); err != nil {
			return fmt.Errorf("publishing progress event: %w", err)
		}
	}

	return nil
}

// Close gracefully closes the channel and connection.
func (p *RabbitPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		p.channel.Close()
	}

	if p.conn != nil {
		p.conn.Close()
	}
}

// LogPublisher is the fallback when the broker is unavailable at startup:
// events are logged instead of dropped silently.
type LogPublisher struct{}

func (LogPublisher) PublishProgress(_ context.Context, event contribution.ProgressEvent) error {
	slog.Warn("progress event not delivered, broker unavailable",
		"goal_id", event.GoalID,
		"new_amount", event.NewAmount,
		"is_completed", event.IsCompleted,
	)

	return nil
}
