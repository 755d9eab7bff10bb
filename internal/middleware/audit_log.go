package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/fba-quote-service/internal/audit"
	"github.com/guttosm/fba-quote-service/internal/domain/model"
)

// AuditLog records a successful action on stream. Recording never blocks;
// a nil recorder is a no-op.
func AuditLog(recorder audit.Recorder, c *gin.Context, stream, message string, fields map[string]interface{}) {
	record(recorder, c, stream, model.AuditStatusSuccess, message, nil, fields)
}

// AuditLogError records a rejected action on stream with the error text.
func AuditLogError(recorder audit.Recorder, c *gin.Context, stream, message string, err error, fields map[string]interface{}) {
	record(recorder, c, stream, model.AuditStatusError, message, err, fields)
}

func record(recorder audit.Recorder, c *gin.Context, stream, status, message string, err error, fields map[string]interface{}) {
	if recorder == nil {
		return
	}
	event := model.NewAuditEvent(stream, status, message).
		WithFields(fields).
		WithField("method", c.Request.Method).
		WithField("path", c.Request.URL.Path).
		WithField("ip", c.ClientIP())
	if err != nil {
		event.WithField("error", err.Error())
	}
	event.RequestID = GetRequestID(c)
	recorder.Record(event)
}
