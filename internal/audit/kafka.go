package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaWriter publishes events as JSON, keyed by stream so one stream keeps
// its order within a partition.
type KafkaWriter struct {
	writer MessageWriter
}

// NewKafkaWriter connects lazily to the brokers; no I/O happens until the
// first write.
func NewKafkaWriter(brokers []string, topic string) *KafkaWriter {
	return &KafkaWriter{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}}
}

// NewKafkaWriterWithWriter injects a writer, typically a fake in tests.
func NewKafkaWriterWithWriter(w MessageWriter) *KafkaWriter {
	return &KafkaWriter{writer: w}
}

// Write publishes one event.
func (k *KafkaWriter) Write(ctx context.Context, event *model.AuditEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(event.Stream),
		Value: body,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "status", Value: []byte(event.Status)},
		},
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka publish %s: %w", event.Stream, err)
	}
	return nil
}

// Close flushes and closes the writer.
func (k *KafkaWriter) Close() error {
	return k.writer.Close()
}
