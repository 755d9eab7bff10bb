package audit

import (
	"context"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/guttosm/fba-quote-service/internal/logger"
)

// LogWriter writes events to the structured log. It is the fallback when
// no MongoDB or broker backend is configured.
type LogWriter struct{}

// Write logs the event at info or warn level by status.
func (LogWriter) Write(_ context.Context, event *model.AuditEvent) error {
	log := logger.For("audit")
	e := log.Info()
	if event.Status == model.AuditStatusError {
		e = log.Warn()
	}
	e.Str("stream", event.Stream).
		Str("event_id", event.EventID).
		Str("status", event.Status).
		Str("request_id", event.RequestID).
		Time("event_time", event.Timestamp).
		Fields(event.Fields).
		Msg(event.Message)
	return nil
}
