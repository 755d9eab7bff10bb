//go:build !integration

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_getLogLevel(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		expected   string
	}{
		{name: "2xx returns info", statusCode: 200, expected: "info"},
		{name: "3xx returns info", statusCode: 301, expected: "info"},
		{name: "4xx returns warn", statusCode: 400, expected: "warn"},
		{name: "404 returns warn", statusCode: 404, expected: "warn"},
		{name: "5xx returns error", statusCode: 500, expected: "error"},
		{name: "503 returns error", statusCode: 503, expected: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, getLogLevel(tt.statusCode))
		})
	}
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		path       string
		status     int
		wantEvent  bool
		wantStatus string
		wantLevel  string
	}{
		{name: "api success", path: "/api/rates", status: http.StatusOK, wantEvent: true, wantStatus: model.AuditStatusSuccess, wantLevel: "info"},
		{name: "api client error", path: "/api/rates", status: http.StatusBadRequest, wantEvent: true, wantStatus: model.AuditStatusError, wantLevel: "warn"},
		{name: "api server error", path: "/api/rates", status: http.StatusBadGateway, wantEvent: true, wantStatus: model.AuditStatusError, wantLevel: "error"},
		{name: "infrastructure routes are not audited", path: "/healthz", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &captureRecorder{}
			router := gin.New()
			router.Use(RequestID(), RequestLogger(rec))
			router.GET(tt.path, func(c *gin.Context) {
				c.Status(tt.status)
			})

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set(RequestIDHeader, "req-7")
			req.Header.Set("User-Agent", "ops-dashboard")
			router.ServeHTTP(httptest.NewRecorder(), req)

			events := rec.all()
			if !tt.wantEvent {
				assert.Empty(t, events)
				return
			}
			require.Len(t, events, 1)
			e := events[0]
			assert.Equal(t, model.StreamHTTP, e.Stream)
			assert.Equal(t, tt.wantStatus, e.Status)
			assert.Equal(t, tt.wantLevel, e.Level)
			assert.Equal(t, "req-7", e.RequestID)
			assert.Equal(t, tt.status, e.Fields["status_code"])
			assert.Equal(t, "ops-dashboard", e.Fields["user_agent"])
			assert.Equal(t, tt.path, e.Fields["route"])
		})
	}
}

func TestRequestLogger_NilRecorder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLogger(nil))
	router.GET("/api/rates", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rates", nil))
	})
	assert.Equal(t, http.StatusOK, w.Code)
}
