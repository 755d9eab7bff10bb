package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fba-quote-service/internal/audit"
	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/guttosm/fba-quote-service/internal/logger"
)

// RequestLogger returns a middleware that logs HTTP request details in JSON format.
// It logs: request ID, method, path, status code, latency, IP, and user agent.
// When recorder is set, API requests also become http_requests audit events.
func RequestLogger(recorder audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		requestID := GetRequestID(c)
		latency := time.Since(start)
		statusCode := c.Writer.Status()
		method := c.Request.Method
		path := c.Request.URL.Path
		ip := c.ClientIP()
		userAgent := c.Request.UserAgent()

		log := logger.For("http").With().
			Str("request_id", requestID).
			Str("method", method).
			Str("path", path).
			Int("status_code", statusCode).
			Int64("duration_ms", latency.Milliseconds()).
			Str("ip", ip).
			Str("user_agent", userAgent).
			Logger()

		switch getLogLevel(statusCode) {
		case "error":
			log.Error().Msg("HTTP request")
		case "warn":
			log.Warn().Msg("HTTP request")
		default:
			log.Info().Msg("HTTP request")
		}

		if recorder == nil || !strings.HasPrefix(path, "/api/") {
			return
		}
		status := model.AuditStatusSuccess
		if statusCode >= 400 {
			status = model.AuditStatusError
		}
		event := model.NewAuditEvent(model.StreamHTTP, status, "HTTP request").WithFields(map[string]interface{}{
			"method":      method,
			"path":        path,
			"route":       c.FullPath(),
			"status_code": statusCode,
			"duration_ms": latency.Milliseconds(),
			"ip":          ip,
			"user_agent":  userAgent,
		})
		event.Level = getLogLevel(statusCode)
		event.RequestID = requestID
		recorder.Record(event)
	}
}

// getLogLevel returns the log level based on HTTP status code.
func getLogLevel(statusCode int) string {
	switch {
	case statusCode >= 500:
		return "error"
	case statusCode >= 400:
		return "warn"
	default:
		return "info"
	}
}
