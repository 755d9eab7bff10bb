package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/fba-quote-service/internal/audit"
	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/guttosm/fba-quote-service/internal/logger"
	"github.com/guttosm/fba-quote-service/internal/repository"
)

// RateQuoteRequest rates a stored quote. The console and mode flags are
// the user's overrides; leaving them all unset lets the rules decide.
type RateQuoteRequest struct {
	QuoteID       string
	OwnConsole    bool
	Coload        bool
	LTL           bool
	FTL           bool
	FTL53         bool
	Drayage       bool
	PickupCharges float64
	RequestID     string
}

// Overrides returns the console type and service modes selected by the flags.
func (r RateQuoteRequest) Overrides() (model.ConsoleType, model.ServiceModes) {
	var modes []model.RateType
	if r.LTL {
		modes = append(modes, model.RateLTL)
	}
	if r.FTL {
		modes = append(modes, model.RateFTL)
	}
	if r.FTL53 {
		modes = append(modes, model.RateFTL53)
	}
	if r.Drayage {
		modes = append(modes, model.RateDrayage)
	}
	return model.ConsoleFromFlags(r.OwnConsole, r.Coload), model.NewServiceModes(modes...)
}

// ComputeRequest is a full shipment supplied inline instead of by quote id.
type ComputeRequest struct {
	Origin        string
	Destinations  []model.ShipmentDestination
	Console       model.ConsoleType
	Requested     model.ServiceModes
	OCC           bool
	DCC           bool
	Scope         model.ShipmentScope
	PickupCharges float64
	AsOf          time.Time
	RequestID     string
}

// RateQuoteResult is the outcome of a rating run.
type RateQuoteResult struct {
	Quote        *model.Quote       `json:"quote,omitempty"`
	Console      model.ConsoleType  `json:"console_type"`
	ServiceModes model.ServiceModes `json:"service_modes"`
	ComposeResult
	Summary Summary `json:"summary"`
	Saved   bool    `json:"saved"`
}

// QuoteService orchestrates quote rating and the quotation ledger.
type QuoteService interface {
	// RateQuote loads a quote, prices every destination and, when nothing
	// failed, replaces the quotation ledger for it.
	RateQuote(ctx context.Context, req RateQuoteRequest) (*RateQuoteResult, error)
	// Compute prices an inline shipment without touching the ledger.
	Compute(ctx context.Context, req ComputeRequest) (*RateQuoteResult, error)
	// Quotations returns the ledger rows saved for a quote.
	Quotations(ctx context.Context, quoteID string) ([]model.Quotation, error)
}

// QuoteOption configures a QuoteServiceImpl.
type QuoteOption func(*QuoteServiceImpl)

// WithQuoteRepository sets the quote metadata source.
func WithQuoteRepository(repo repository.QuoteRepositoryInterface) QuoteOption {
	return func(s *QuoteServiceImpl) {
		s.quotes = repo
	}
}

// WithQuotationRepository sets the quotation ledger.
func WithQuotationRepository(repo repository.QuotationRepositoryInterface) QuoteOption {
	return func(s *QuoteServiceImpl) {
		s.quotations = repo
	}
}

// WithRecorder sets the audit recorder.
func WithRecorder(r audit.Recorder) QuoteOption {
	return func(s *QuoteServiceImpl) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithSummaryOptions sets currency and floor used by the summary.
func WithSummaryOptions(opts SummaryOptions) QuoteOption {
	return func(s *QuoteServiceImpl) {
		s.summary = opts
	}
}

// WithQuoteClock overrides the clock used for ledger timestamps.
func WithQuoteClock(now func() time.Time) QuoteOption {
	return func(s *QuoteServiceImpl) {
		s.now = now
	}
}

// QuoteServiceImpl implements QuoteService.
type QuoteServiceImpl struct {
	composer   CostComposer
	refs       repository.ReferenceRepositoryInterface
	quotes     repository.QuoteRepositoryInterface
	quotations repository.QuotationRepositoryInterface
	recorder   audit.Recorder
	summary    SummaryOptions
	now        func() time.Time
}

// NewQuoteService creates the quote service.
func NewQuoteService(composer CostComposer, refs repository.ReferenceRepositoryInterface, opts ...QuoteOption) QuoteService {
	s := &QuoteServiceImpl{
		composer: composer,
		refs:     refs,
		recorder: audit.Nop{},
		summary:  SummaryOptions{USDToINR: 88, MinimumLastMileUSD: 120},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RateQuote implements QuoteService.
func (s *QuoteServiceImpl) RateQuote(ctx context.Context, req RateQuoteRequest) (*RateQuoteResult, error) {
	if s.quotes == nil {
		return nil, ErrRepositoryNotConfigured
	}
	quote, err := s.quotes.FindByID(ctx, req.QuoteID)
	if err != nil {
		return nil, err
	}
	if !quote.FBA {
		return nil, ErrNotFBAQuote
	}
	if !quote.ShipmentScope.Supported() {
		return nil, ErrUnsupportedScope
	}

	console, modes := req.Overrides()
	pickup := req.PickupCharges
	if quote.ShipmentScope != model.ScopeDoorToDoor {
		pickup = 0
	}
	asOf := quote.CargoReadinessDate
	if asOf.IsZero() {
		asOf = s.now()
	}

	result, err := s.run(ctx, ComposeRequest{
		Origin:        quote.Origin,
		Destinations:  quote.Destinations,
		Console:       console,
		OCC:           quote.OCC,
		DCC:           quote.DCC,
		Cardinality:   quote.Cardinality(),
		Scope:         quote.ShipmentScope,
		PickupCharges: pickup,
		Requested:     modes,
		AsOf:          asOf,
		RequestID:     req.RequestID,
	})
	if result != nil {
		result.Quote = quote
		s.recordRateRequest(quote.ID, req.RequestID, result)
	}
	if err != nil {
		return result, err
	}

	if result.Results.Len() > 0 && len(result.Errors) == 0 {
		result.Saved = s.saveQuotations(ctx, quote.ID, req.RequestID, result.Results)
	}
	return result, nil
}

// Compute implements QuoteService.
func (s *QuoteServiceImpl) Compute(ctx context.Context, req ComputeRequest) (*RateQuoteResult, error) {
	if !req.Scope.Supported() {
		return nil, ErrUnsupportedScope
	}
	console := req.Console
	if console == "" {
		console = model.ConsoleNotSelected
	}
	return s.run(ctx, ComposeRequest{
		Origin:        req.Origin,
		Destinations:  req.Destinations,
		Console:       console,
		OCC:           req.OCC,
		DCC:           req.DCC,
		Cardinality:   model.CardinalityOf(len(req.Destinations)),
		Scope:         req.Scope,
		PickupCharges: req.PickupCharges,
		Requested:     model.NewServiceModes(req.Requested...),
		AsOf:          req.AsOf,
		RequestID:     req.RequestID,
	})
}

func (s *QuoteServiceImpl) run(ctx context.Context, creq ComposeRequest) (*RateQuoteResult, error) {
	result := &RateQuoteResult{Console: creq.Console, ServiceModes: creq.Requested}

	if !(creq.Scope == model.ScopeDoorToDoor && creq.PickupCharges <= 0) {
		if s.refs == nil {
			return nil, ErrReferenceDataUnavailable
		}
		tables, err := s.refs.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReferenceDataUnavailable, err)
		}
		creq.Tables = tables
	}

	composed, err := s.composer.Compute(ctx, creq)
	result.ComposeResult = composed
	if err != nil {
		return result, err
	}
	result.Summary = Summarize(composed.Results, s.summary)
	return result, nil
}

func (s *QuoteServiceImpl) recordRateRequest(quoteID, requestID string, result *RateQuoteResult) {
	status := model.AuditStatusSuccess
	if result.Results.Len() == 0 {
		status = model.AuditStatusError
	}
	event := model.NewAuditEvent(model.StreamRateRequests, status, "quote rated").WithFields(map[string]interface{}{
		"quote_id":               quoteID,
		"override_console_type":  string(result.Console),
		"override_service_modes": result.ServiceModes.String(),
		"error_messages":         strings.Join(result.Errors, "; "),
		"total_destinations":     len(result.Results),
	})
	event.RequestID = requestID
	s.recorder.Record(event)
}

// saveQuotations replaces the ledger rows of a quote and publishes one
// bookings event per row. Ledger failures are logged, not returned.
func (s *QuoteServiceImpl) saveQuotations(ctx context.Context, quoteID, requestID string, results model.LandedCosts) bool {
	if s.quotations == nil {
		return false
	}
	quotedAt := s.now().UTC()
	var rows []*model.Quotation
	for _, b := range orderedBreakdowns(results) {
		rows = append(rows, &model.Quotation{
			ID:          uuid.NewString(),
			QuoteID:     quoteID,
			Destination: b.Destination,
			ConsoleType: b.ConsoleType,
			QuotedAt:    quotedAt,
			Breakdown:   *b,
		})
	}

	if err := s.quotations.Replace(ctx, quoteID, rows); err != nil {
		log := logger.For("quotes")
		if errors.Is(err, context.Canceled) {
			log.Debug().Err(err).Str("quote_id", quoteID).Msg("quotation save cancelled")
		} else {
			log.Warn().Err(err).Str("quote_id", quoteID).Msg("failed to save quotations")
		}
		return false
	}

	for _, row := range rows {
		event := model.NewAuditEvent(model.StreamBookings, model.AuditStatusSuccess, "quotation saved").WithFields(map[string]interface{}{
			"quote_id":      quoteID,
			"quotation_id":  row.ID,
			"destination":   row.Destination,
			"console_type":  string(row.ConsoleType),
			"total_usd":     row.Breakdown.Total,
			"per_cbm_usd":   row.Breakdown.TotalPerCBM,
			"last_mile":     string(row.Breakdown.Selected.RateType),
			"last_mile_usd": row.Breakdown.LastMile.Amount,
		})
		event.RequestID = requestID
		s.recorder.Record(event)
	}
	return true
}

// Quotations implements QuoteService.
func (s *QuoteServiceImpl) Quotations(ctx context.Context, quoteID string) ([]model.Quotation, error) {
	if s.quotations == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.quotations.FindByQuoteID(ctx, quoteID)
}
