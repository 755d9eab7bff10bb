package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audit streams. Each live carrier has its own stream; quote ratings,
// transport lookups and confirmed quotations have theirs.
const (
	StreamRateRequests   = "rate_requests"
	StreamBookings       = "bookings"
	StreamTransportRates = "transport_rates"
	StreamHeyPrimo       = "heyprimo"
	StreamExFreight      = "exfreight"
	StreamJBHunt         = "jbhunt"
	StreamHTTP           = "http_requests"
)

// Audit statuses.
const (
	AuditStatusSuccess = "Success"
	AuditStatusError   = "Error"
)

// AuditEvent is one append-only audit record.
// Stream-specific data goes in Fields.
type AuditEvent struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	EventID   string                 `bson:"event_id" json:"event_id"`
	Timestamp time.Time              `bson:"timestamp" json:"timestamp"`
	Stream    string                 `bson:"stream" json:"stream"`
	Level     string                 `bson:"level" json:"level"`
	Message   string                 `bson:"message" json:"message"`
	Status    string                 `bson:"status,omitempty" json:"status,omitempty"`
	RequestID string                 `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Fields    map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
}

// NewAuditEvent returns an event stamped with the current UTC time.
func NewAuditEvent(stream, status, message string) *AuditEvent {
	level := "info"
	if status == AuditStatusError {
		level = "warn"
	}
	return &AuditEvent{
		Timestamp: time.Now().UTC(),
		Stream:    stream,
		Level:     level,
		Status:    status,
		Message:   message,
	}
}

// WithField sets a field, initialising Fields if needed.
func (e *AuditEvent) WithField(key string, value interface{}) *AuditEvent {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// WithFields merges fields into the event.
func (e *AuditEvent) WithFields(fields map[string]interface{}) *AuditEvent {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{}, len(fields))
	}
	for k, v := range fields {
		e.Fields[k] = v
	}
	return e
}

// AuditQueryOptions filters audit event queries.
type AuditQueryOptions struct {
	Stream    string
	RequestID string
	Status    string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Skip      int
}
