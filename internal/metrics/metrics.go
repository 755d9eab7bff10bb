// Package metrics exposes Prometheus collectors for the quote service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, route, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal counts HTTP requests by method, route, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// QuoteComputationsTotal counts landed-cost computations by outcome.
	QuoteComputationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_computations_total",
			Help: "Total number of landed-cost computations",
		},
		[]string{"kind", "status"},
	)

	// QuoteComputationDuration tracks end-to-end computation time.
	QuoteComputationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quote_computation_duration_seconds",
			Help:    "Landed-cost computation duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"kind"},
	)

	// CarrierRequestsTotal counts live carrier calls by provider and outcome.
	CarrierRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carrier_requests_total",
			Help: "Total number of live carrier rating calls",
		},
		[]string{"provider", "status"},
	)

	// CarrierRequestDuration tracks live carrier call latency.
	CarrierRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "carrier_request_duration_seconds",
			Help:    "Live carrier rating call duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
		},
		[]string{"provider"},
	)

	// StaticRateLookupsTotal counts static rate table lookups by mode and result.
	StaticRateLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "static_rate_lookups_total",
			Help: "Total number of static rate table lookups",
		},
		[]string{"mode", "result"},
	)

	// CircuitBreakerState reports 0 closed, 1 open, 2 half-open per breaker.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)

	// AuditEventsTotal counts audit events by stream and outcome
	// (enqueued, dropped, written, failed).
	AuditEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_events_total",
			Help: "Total number of audit events by outcome",
		},
		[]string{"stream", "outcome"},
	)

	// RateCacheOperationsTotal counts live quote cache operations.
	RateCacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_cache_operations_total",
			Help: "Total number of live quote cache operations",
		},
		[]string{"operation", "result"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		HTTPRequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

// RecordQuoteComputation records one composer run.
func RecordQuoteComputation(kind string, duration time.Duration, status string) {
	QuoteComputationDuration.WithLabelValues(kind).Observe(duration.Seconds())
	QuoteComputationsTotal.WithLabelValues(kind, status).Inc()
}

// RecordCarrierRequest records one live carrier call.
func RecordCarrierRequest(provider string, duration time.Duration, status string) {
	CarrierRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
	CarrierRequestsTotal.WithLabelValues(provider, status).Inc()
}

// RecordStaticLookup records a static table hit or miss.
func RecordStaticLookup(mode string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	StaticRateLookupsTotal.WithLabelValues(mode, result).Inc()
}

// SetCircuitBreakerState publishes a breaker state as a gauge value.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordAuditEvent records an audit sink outcome.
func RecordAuditEvent(stream, outcome string) {
	AuditEventsTotal.WithLabelValues(stream, outcome).Inc()
}

// RecordRateCacheOperation records a live quote cache operation.
func RecordRateCacheOperation(operation, result string) {
	RateCacheOperationsTotal.WithLabelValues(operation, result).Inc()
}
