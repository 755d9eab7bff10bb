package dto

import (
	"net/http"
	"time"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/guttosm/fba-quote-service/internal/service"
)

const (
	// ErrCodeInvalidRequest indicates an invalid request.
	ErrCodeInvalidRequest = "invalid_request"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"
	// ErrCodeUnprocessable indicates a well-formed request the engine cannot price.
	ErrCodeUnprocessable = "unprocessable"
	// ErrCodeRateLimit indicates rate limit exceeded.
	ErrCodeRateLimit = "rate_limit_exceeded"
	// ErrCodeTimeout indicates a request timeout.
	ErrCodeTimeout = "timeout"
	// ErrCodeUnavailable indicates a dependency is not available.
	ErrCodeUnavailable = "service_unavailable"
)

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data contains the actual response data
	Data interface{} `json:"data" swaggertype:"object"`
	// RequestID is the unique request identifier
	RequestID string `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Timestamp is when the response was generated
	Timestamp time.Time `json:"timestamp" example:"2025-07-22T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse represents a standardized error response for the API.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"pickup_charges: must not be negative"`
	// Details contains additional error details (optional)
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-07-22T10:00:00Z"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// WithDetail adds one entry to Details.
func (e ErrorResponse) WithDetail(key, value string) ErrorResponse {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusUnprocessableEntity:
		return ErrCodeUnprocessable
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	default:
		return ErrCodeInternal
	}
}

// QuoteRatesResponse is the body of a successful rating run.
// @Description Landed costs, errors and summary tables for a shipment
type QuoteRatesResponse struct {
	QuoteID      string            `json:"quote_id,omitempty" example:"AGQ-1001"`
	EntityName   string            `json:"entity_name,omitempty" example:"Acme Exports"`
	ConsoleType  model.ConsoleType `json:"console_type" example:"Coload"`
	ServiceModes []string          `json:"service_modes"`
	Results      model.LandedCosts `json:"results" swaggertype:"object"`
	Summary      service.Summary   `json:"summary"`
	Errors       []string          `json:"errors"`
	Skipped      []string          `json:"skipped,omitempty"`
	Saved        bool              `json:"saved"`
	// Destinations counts destinations with at least one breakdown.
	Destinations int `json:"destinations" example:"2"`
} // @name QuoteRatesResponse

// NewQuoteRatesResponse flattens a service result.
func NewQuoteRatesResponse(r *service.RateQuoteResult) QuoteRatesResponse {
	resp := QuoteRatesResponse{
		ConsoleType:  r.Console,
		ServiceModes: r.ServiceModes.Strings(),
		Results:      r.Results,
		Summary:      r.Summary,
		Errors:       r.Errors,
		Skipped:      r.Skipped,
		Saved:        r.Saved,
		Destinations: len(r.Results),
	}
	if resp.Errors == nil {
		resp.Errors = []string{}
	}
	if resp.Results == nil {
		resp.Results = model.LandedCosts{}
	}
	if r.Quote != nil {
		resp.QuoteID = r.Quote.ID
		resp.EntityName = r.Quote.EntityName
	}
	return resp
}

// QuotationsResponse lists the ledger rows of a quote.
// @Description Saved quotations of a quote
type QuotationsResponse struct {
	QuoteID    string            `json:"quote_id" example:"AGQ-1001"`
	Quotations []model.Quotation `json:"quotations"`
} // @name QuotationsResponse

// AuditEventsResponse is one page of audit events.
// @Description Page of audit events
type AuditEventsResponse struct {
	Events []*model.AuditEvent `json:"events"`
	Total  int64               `json:"total" example:"120"`
	Limit  int                 `json:"limit" example:"50"`
	Skip   int                 `json:"skip" example:"0"`
} // @name AuditEventsResponse
