//go:build !integration

package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/guttosm/fba-quote-service/internal/middleware"
	"github.com/guttosm/fba-quote-service/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewRouter_Routes(t *testing.T) {
	router, stop := NewRouter(Handlers{
		Quotes:    NewHandler(&mocks.MockQuoteService{}),
		Transport: NewTransportHandler(&mocks.MockTransportRateService{}),
		Audit:     NewAuditHandler(&mocks.MockAuditService{}),
	}, NewHealthHandler(), DefaultRouterConfig())
	defer stop()

	registered := map[string]bool{}
	for _, r := range router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"POST /api/quotes/:id/rates",
		"GET /api/quotes/:id/quotations",
		"POST /api/rates",
		"POST /api/transport-rates",
		"GET /api/audit-events",
		"GET /healthz",
		"GET /readyz",
		"GET /metrics",
		"GET /swagger/*any",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestNewRouter_OptionalHandlers(t *testing.T) {
	router := newTestRouter(Handlers{Transport: NewTransportHandler(&mocks.MockTransportRateService{})})

	w := do(router, http.MethodGet, "/api/audit-events", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewRouter_RateLimitOnAPI(t *testing.T) {
	quotes := &mocks.MockQuoteService{}
	quotes.On("Quotations", mock.Anything, "AGQ-1").Return([]model.Quotation{}, nil)

	cfg := DefaultRouterConfig()
	cfg.RateLimit = 2
	cfg.RateWindow = time.Minute
	router, stop := NewRouter(Handlers{Quotes: NewHandler(quotes)}, NewHealthHandler(), cfg)
	defer stop()

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, do(router, http.MethodGet, "/api/quotes/AGQ-1/quotations", "").Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// infrastructure routes sit outside the limited group
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/healthz", "").Code)
	}
}

func TestNewRouter_CORSPreflight(t *testing.T) {
	cfg := DefaultRouterConfig()
	cfg.CORSOrigins = []string{"https://ops.example.com"}
	router, stop := NewRouter(Handlers{}, NewHealthHandler(), cfg)
	defer stop()

	req := httptest.NewRequest(http.MethodOptions, "/api/rates", nil)
	req.Header.Set("Origin", "https://ops.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://ops.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewRouter_SwaggerBasicAuth(t *testing.T) {
	cfg := DefaultRouterConfig()
	cfg.SwaggerUser, cfg.SwaggerPass = "docs", "secret"
	router, stop := NewRouter(Handlers{}, NewHealthHandler(), cfg)
	defer stop()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNewRouter_RecordsHTTPEvents(t *testing.T) {
	quotes := &mocks.MockQuoteService{}
	quotes.On("Quotations", mock.Anything, "AGQ-1").Return([]model.Quotation{}, nil)
	rec := &captureRecorder{}

	cfg := DefaultRouterConfig()
	cfg.Recorder = rec
	router, stop := NewRouter(Handlers{Quotes: NewHandler(quotes)}, NewHealthHandler(), cfg)
	defer stop()

	do(router, http.MethodGet, "/api/quotes/AGQ-1/quotations", "")
	do(router, http.MethodGet, "/healthz", "")

	events := rec.byStream(model.StreamHTTP)
	require.Len(t, events, 1)
	assert.Equal(t, "req-test", events[0].RequestID)
	assert.Equal(t, "/api/quotes/:id/quotations", events[0].Fields["route"])
}

func TestNewRouter_IdempotentRating(t *testing.T) {
	quotes := &mocks.MockQuoteService{}
	quotes.On("RateQuote", mock.Anything, mock.Anything).Return(ratedResult(), nil).Once()

	cfg := DefaultRouterConfig()
	cfg.RateLimit = 0
	cfg.IdempotencyTTL = time.Minute
	router, stop := NewRouter(Handlers{Quotes: NewHandler(quotes)}, NewHealthHandler(), cfg)
	defer stop()

	rate := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/quotes/AGQ-1/rates", strings.NewReader(`{"coload": true}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.IdempotencyKeyHeader, "retry-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := rate()
	second := rate()

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(middleware.IdempotencyReplayedHeader))
	quotes.AssertNumberOfCalls(t, "RateQuote", 1)
}
