//go:build !integration

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		handler        gin.HandlerFunc
		expectedStatus int
		bodyContains   string
	}{
		{
			name: "unwritten error becomes 500 envelope",
			handler: func(c *gin.Context) {
				_ = c.Error(errors.New("mongo down"))
			},
			expectedStatus: http.StatusInternalServerError,
			bodyContains:   "internal_error",
		},
		{
			name: "handler response is kept",
			handler: func(c *gin.Context) {
				_ = c.Error(errors.New("quote not found"))
				c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			},
			expectedStatus: http.StatusNotFound,
			bodyContains:   "not_found",
		},
		{
			name: "no errors",
			handler: func(c *gin.Context) {
				c.String(http.StatusOK, "fine")
			},
			expectedStatus: http.StatusOK,
			bodyContains:   "fine",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID(), ErrorHandler())
			router.GET("/", tt.handler)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.bodyContains)
		})
	}
}
