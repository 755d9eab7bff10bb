//go:build !integration

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func auditContext(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/quotes/AGQ-1/rates", nil)
	c.Set(string(RequestIDKey), "req-9")
	return c
}

func TestAuditLog(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus string
	}{
		{name: "success", wantStatus: model.AuditStatusSuccess},
		{name: "error carries message", err: errors.New("quote is not marked as an FBA shipment"), wantStatus: model.AuditStatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &captureRecorder{}
			c := auditContext(t)
			fields := map[string]interface{}{"quote_id": "AGQ-1"}

			if tt.err != nil {
				AuditLogError(rec, c, model.StreamRateRequests, "Quote rating rejected", tt.err, fields)
			} else {
				AuditLog(rec, c, model.StreamRateRequests, "Quote rated", fields)
			}

			events := rec.all()
			require.Len(t, events, 1)
			e := events[0]
			assert.Equal(t, model.StreamRateRequests, e.Stream)
			assert.Equal(t, tt.wantStatus, e.Status)
			assert.Equal(t, "req-9", e.RequestID)
			assert.Equal(t, "AGQ-1", e.Fields["quote_id"])
			assert.Equal(t, http.MethodPost, e.Fields["method"])
			assert.Equal(t, "/api/quotes/AGQ-1/rates", e.Fields["path"])
			if tt.err != nil {
				assert.Equal(t, tt.err.Error(), e.Fields["error"])
			} else {
				assert.NotContains(t, e.Fields, "error")
			}
		})
	}
}

func TestAuditLog_NilRecorder(t *testing.T) {
	c := auditContext(t)
	assert.NotPanics(t, func() {
		AuditLog(nil, c, model.StreamRateRequests, "ignored", nil)
		AuditLogError(nil, c, model.StreamRateRequests, "ignored", errors.New("x"), nil)
	})
}
