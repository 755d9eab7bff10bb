package ratesource

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/fba-quote-service/internal/audit"
	"github.com/guttosm/fba-quote-service/internal/circuitbreaker"
	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/guttosm/fba-quote-service/internal/metrics"
)

// Auditable adapters describe their audit stream and per-call fields.
type Auditable interface {
	Stream() string
	AuditFields(q Query) map[string]interface{}
}

type instrumented struct {
	next     Adapter
	recorder audit.Recorder
}

// Instrument records metrics and one audit event per live call. Adapters
// that are not Auditable are audited on the rate_requests stream with no
// extra fields.
func Instrument(next Adapter, recorder audit.Recorder) Adapter {
	if recorder == nil {
		recorder = audit.Nop{}
	}
	return &instrumented{next: next, recorder: recorder}
}

func (i *instrumented) Name() string { return i.next.Name() }

func (i *instrumented) Quote(ctx context.Context, q Query) (model.RateCandidate, error) {
	start := time.Now()
	c, err := i.next.Quote(ctx, q)

	status := "success"
	if err != nil {
		status = string(ReasonOf(err))
		if status == "" {
			status = "error"
		}
	}
	metrics.RecordCarrierRequest(i.next.Name(), time.Since(start), status)

	stream := model.StreamRateRequests
	var fields map[string]interface{}
	if a, ok := i.next.(Auditable); ok {
		stream = a.Stream()
		fields = a.AuditFields(q)
	}

	event := model.NewAuditEvent(stream, model.AuditStatusSuccess, "rate retrieved")
	if err != nil {
		event = model.NewAuditEvent(stream, model.AuditStatusError, err.Error())
		event.WithField("reason", status)
	} else {
		event.WithFields(map[string]interface{}{
			"carrier":  c.CarrierName,
			"rate":     c.Rate,
			"raw_rate": c.RawRate,
		})
	}
	event.RequestID = q.RequestID
	event.WithFields(fields).WithField("provider", i.next.Name())
	i.recorder.Record(event)

	return c, err
}

type breakered struct {
	next Adapter
	cb   *circuitbreaker.CircuitBreaker
}

// WithCircuitBreaker rejects calls while cb is open. The breaker should be
// built with BreakerConfig so that business misses do not trip it.
func WithCircuitBreaker(next Adapter, cb *circuitbreaker.CircuitBreaker) Adapter {
	if cb == nil {
		return next
	}
	return &breakered{next: next, cb: cb}
}

func (b *breakered) Name() string { return b.next.Name() }

func (b *breakered) Quote(ctx context.Context, q Query) (model.RateCandidate, error) {
	var c model.RateCandidate
	err := b.cb.Execute(ctx, func() error {
		var qerr error
		c, qerr = b.next.Quote(ctx, q)
		return qerr
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		metrics.RecordCarrierRequest(b.next.Name(), 0, string(ReasonCircuitOpen))
		return model.RateCandidate{}, failure(b.next.Name(), ReasonCircuitOpen, err)
	}
	if err != nil {
		if ReasonOf(err) == "" {
			err = failure(b.next.Name(), ReasonTransport, err)
		}
		return model.RateCandidate{}, err
	}
	return c, nil
}

// BreakerConfig returns a breaker config for a carrier that ignores
// business misses and publishes state changes as a gauge.
func BreakerConfig(name string, failureThreshold, successThreshold int, timeout time.Duration) circuitbreaker.Config {
	return circuitbreaker.Config{
		Name:             name,
		FailureThreshold: failureThreshold,
		SuccessThreshold: successThreshold,
		Timeout:          timeout,
		IsFailure:        func(err error) bool { return !IsBusinessMiss(err) },
		OnStateChange: func(name string, _, to circuitbreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
		},
	}
}

// QuoteCache stores live candidates by lane key.
type QuoteCache interface {
	Get(key string) (model.RateCandidate, bool)
	Set(key string, value model.RateCandidate)
}

type cached struct {
	next  Adapter
	cache QuoteCache
}

// WithCache serves repeated lanes from cache. Only valid candidates are
// stored; failures always reach the carrier again.
func WithCache(next Adapter, cache QuoteCache) Adapter {
	if cache == nil {
		return next
	}
	return &cached{next: next, cache: cache}
}

func (c *cached) Name() string { return c.next.Name() }

func (c *cached) Quote(ctx context.Context, q Query) (model.RateCandidate, error) {
	key := CacheKey(c.next.Name(), q)
	if hit, ok := c.cache.Get(key); ok {
		return hit, nil
	}
	candidate, err := c.next.Quote(ctx, q)
	if err == nil && candidate.Valid() {
		c.cache.Set(key, candidate)
	}
	return candidate, err
}

// CacheKey identifies a lane for one provider. Pickup dates are not part
// of the key; a quote is reused for the cache TTL.
func CacheKey(provider string, q Query) string {
	return fmt.Sprintf("%s|%s|%s,%s,%s|%s,%s,%s|%.2f|%.2f|%d|%d|%t,%t,%t",
		provider, q.Mode,
		PadZip(q.OriginZip), q.OriginCity, q.OriginState,
		PadZip(q.DestZip), q.DestCity, q.DestState,
		q.WeightKg, q.WeightLbs, q.Pallets, q.Quantity,
		q.Accessorials.NonFBA, q.Accessorials.Liftgate, q.Accessorials.Residential)
}
