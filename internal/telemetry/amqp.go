package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// AMQP publishes events as JSON to a topic exchange, routed by event name.
type AMQP struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	logger   *zap.SugaredLogger

	mu sync.Mutex
}

// NewAMQP dials url and declares exchange.
func NewAMQP(url, exchange string, logger *zap.SugaredLogger) (*AMQP, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQP{conn: conn, channel: channel, exchange: exchange, logger: logger}, nil
}

// Capture publishes event. Failures are logged and dropped.
func (a *AMQP) Capture(ctx context.Context, event Event) {
	if err := a.Publish(ctx, event); err != nil {
		a.logger.Warnw("failed to publish telemetry event", "event", event.Name, "error", err)
	}
}

// Publish sends event and reports any failure.
func (a *AMQP) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	a.mu.Lock()
	defer a.mu.Unlock()

	err = a.channel.PublishWithContext(
		ctx,
		a.exchange, // exchange
		event.Name, // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    event.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// Close shuts the channel and then the connection, reporting both failures.
func (a *AMQP) Close() error {
	var chErr, connErr error
	if a.channel != nil {
		chErr = a.channel.Close()
	}
	if a.conn != nil {
		connErr = a.conn.Close()
	}
	return errors.Join(chErr, connErr)
}
