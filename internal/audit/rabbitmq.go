package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher is the part of amqp.Channel the writer uses.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitMQWriter publishes events to a topic exchange with the stream as
// routing key.
type RabbitMQWriter struct {
	publisher Publisher
	exchange  string
	closers   []func() error
}

// DialRabbitMQ connects, opens a channel and declares a durable topic exchange.
func DialRabbitMQ(url, exchange string) (*RabbitMQWriter, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq declare exchange %s: %w", exchange, err)
	}
	return &RabbitMQWriter{
		publisher: ch,
		exchange:  exchange,
		closers:   []func() error{ch.Close, conn.Close},
	}, nil
}

// NewRabbitMQWriter wraps an existing publisher.
func NewRabbitMQWriter(p Publisher, exchange string) *RabbitMQWriter {
	return &RabbitMQWriter{publisher: p, exchange: exchange}
}

// Write publishes one persistent JSON message.
func (r *RabbitMQWriter) Write(ctx context.Context, event *model.AuditEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	err = r.publisher.PublishWithContext(ctx, r.exchange, event.Stream, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID,
		Timestamp:    event.Timestamp,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq publish %s: %w", event.Stream, err)
	}
	return nil
}

// Close closes the channel and the connection.
func (r *RabbitMQWriter) Close() error {
	var errs []error
	for _, c := range r.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
