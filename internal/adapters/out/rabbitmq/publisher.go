// Package rabbitmq implements the event publisher port on a RabbitMQ
// topic exchange. Order status transitions go out as JSON messages with
// the routing key "order.status_changed".
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"

	"fooddelivery/internal/core/ports"
)

const (
	// RoutingKeyStatusChanged routes status transition events on the
	// exchange. Consumers bind with this key or "order.*".
	RoutingKeyStatusChanged = "order.status_changed"

	defaultExchange = "orders_topic"
)

// ErrPublisherClosed is returned when publishing through a closed publisher.
var ErrPublisherClosed = errors.New("event publisher is closed")

// EventPublisher publishes order events to a RabbitMQ topic exchange.
// Implements ports.EventPublisher. Safe for concurrent use: the amqp
// channel is guarded by a mutex.
type EventPublisher struct {
	conn     *amqp.Connection
	exchange string

	mu      sync.Mutex
	channel *amqp.Channel
}

// NewEventPublisher connects to RabbitMQ and declares the topic
// exchange. The exchange defaults to "orders_topic" when empty.
func NewEventPublisher(url string, exchange string) (*EventPublisher, error) {
	if exchange == "" {
		exchange = defaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // auto-delete
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %q: %w", exchange, err)
	}

	return &EventPublisher{
		conn:     conn,
		exchange: exchange,
		channel:  channel,
	}, nil
}

// statusChangedMessage is the wire shape of a status transition event.
type statusChangedMessage struct {
	EventID    string    `json:"event_id"`
	OrderID    int64     `json:"order_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	DriverID   *int64    `json:"driver_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PublishOrderStatusChanged emits a status transition event to the
// exchange. Messages are persistent; delivery to consumers is at the
// broker's discretion.
func (p *EventPublisher) PublishOrderStatusChanged(ctx context.Context, event ports.OrderStatusChangedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(statusChangedMessage{
		EventID:    event.EventID,
		OrderID:    event.OrderID,
		From:       event.From.String(),
		To:         event.To.String(),
		DriverID:   event.DriverID,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal status changed event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil {
		return ErrPublisherClosed
	}

	err = p.channel.Publish(
		p.exchange,
		RoutingKeyStatusChanged,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.EventID,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish status changed event: %w", err)
	}

	return nil
}

// Close closes the channel and the connection.
func (p *EventPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
		p.channel = nil
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
		p.conn = nil
	}

	return errors.Join(errs...)
}
