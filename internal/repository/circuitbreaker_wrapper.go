package repository

import (
	"context"
	"errors"

	"github.com/guttosm/fba-quote-service/internal/circuitbreaker"
	"github.com/guttosm/fba-quote-service/internal/domain/model"
)

// IsStorageFailure reports errors that say something about database
// health. Lookups that simply found nothing do not count.
func IsStorageFailure(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrQuoteNotFound), errors.Is(err, ErrInvalidQuoteID), errors.Is(err, context.Canceled):
		return false
	}
	return true
}

// QuoteRepositoryWithCircuitBreaker wraps a quote repository with circuit breaker protection.
type QuoteRepositoryWithCircuitBreaker struct {
	repo           QuoteRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewQuoteRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewQuoteRepositoryWithCircuitBreaker(repo QuoteRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *QuoteRepositoryWithCircuitBreaker {
	return &QuoteRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

// FindByID returns a quote with circuit breaker protection.
func (r *QuoteRepositoryWithCircuitBreaker) FindByID(ctx context.Context, quoteID string) (*model.Quote, error) {
	var result *model.Quote
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.FindByID(ctx, quoteID)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *QuoteRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// QuotationRepositoryWithCircuitBreaker wraps the quotation ledger with circuit breaker protection.
type QuotationRepositoryWithCircuitBreaker struct {
	repo           QuotationRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewQuotationRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewQuotationRepositoryWithCircuitBreaker(repo QuotationRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *QuotationRepositoryWithCircuitBreaker {
	return &QuotationRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

// Replace rewrites the ledger rows of a quote with circuit breaker protection.
func (r *QuotationRepositoryWithCircuitBreaker) Replace(ctx context.Context, quoteID string, rows []*model.Quotation) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Replace(ctx, quoteID, rows)
	})
}

// FindByQuoteID returns ledger rows with circuit breaker protection.
func (r *QuotationRepositoryWithCircuitBreaker) FindByQuoteID(ctx context.Context, quoteID string) ([]model.Quotation, error) {
	var result []model.Quotation
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.FindByQuoteID(ctx, quoteID)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *QuotationRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// AuditEventsRepositoryWithCircuitBreaker wraps audit storage with circuit breaker protection.
type AuditEventsRepositoryWithCircuitBreaker struct {
	repo           AuditEventsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewAuditEventsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewAuditEventsRepositoryWithCircuitBreaker(repo AuditEventsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *AuditEventsRepositoryWithCircuitBreaker {
	return &AuditEventsRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

// Create stores an event with circuit breaker protection.
// An open circuit drops the event silently.
func (r *AuditEventsRepositoryWithCircuitBreaker) Create(ctx context.Context, event *model.AuditEvent) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, event)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// Query retrieves events with circuit breaker protection.
func (r *AuditEventsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts model.AuditQueryOptions) ([]*model.AuditEvent, error) {
	var result []*model.AuditEvent
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Query(ctx, opts)
		return cbErr
	})
	return result, err
}

// Count returns the number of matching events with circuit breaker protection.
func (r *AuditEventsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts model.AuditQueryOptions) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Count(ctx, opts)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *AuditEventsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
