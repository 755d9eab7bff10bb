package http

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fba-quote-service/internal/audit"
	"github.com/guttosm/fba-quote-service/internal/domain/dto"
	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/guttosm/fba-quote-service/internal/i18n"
	"github.com/guttosm/fba-quote-service/internal/middleware"
	"github.com/guttosm/fba-quote-service/internal/service"
)

// Handler provides HTTP handlers for quote rating routes.
type Handler struct {
	quotes   service.QuoteService
	recorder audit.Recorder
	now      func() time.Time
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithAuditRecorder records rejected rating requests.
func WithAuditRecorder(r audit.Recorder) HandlerOption {
	return func(h *Handler) {
		h.recorder = r
	}
}

// WithClock overrides the clock used when a request carries no as_of date.
func WithClock(now func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.now = now
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(quotes service.QuoteService, opts ...HandlerOption) *Handler {
	h := &Handler{quotes: quotes, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RateQuote handles POST /api/quotes/:id/rates requests.
//
// @Summary      Rate a stored quote
// @Description  Loads the quote, prices every destination per console type and returns breakdowns, per-destination errors and the summary tables. When every destination priced cleanly the quotation ledger is replaced. An empty body lets the rules pick console type and service modes.
// @Tags         Quotes
// @Accept       json
// @Produce      json
// @Param        id path string true "Quote id"
// @Param        request body dto.RateQuoteRequest false "Overrides"
// @Param        Idempotency-Key header string false "Replays the stored response for a retried rating"
// @Success      200 {object} dto.SuccessResponse{data=dto.QuoteRatesResponse} "Rated quote"
// @Failure      400 {object} dto.ErrorResponse "Invalid body or missing pickup charges"
// @Failure      404 {object} dto.ErrorResponse "Quote not found"
// @Failure      422 {object} dto.ErrorResponse "Quote is not FBA or has an unsupported scope"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      503 {object} dto.ErrorResponse "Storage or reference data unavailable"
// @Router       /api/quotes/{id}/rates [post]
func (h *Handler) RateQuote(c *gin.Context) {
	builder := NewResponseBuilder(c)
	quoteID := strings.TrimSpace(c.Param("id"))

	req, err := BuildRequestAndValidate[dto.RateQuoteRequest](c)
	if errors.Is(err, io.EOF) {
		req, err = &dto.RateQuoteRequest{}, nil
	}
	if err != nil {
		builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err, validationDetails(err))
		return
	}

	result, err := h.quotes.RateQuote(c.Request.Context(), req.ToService(quoteID, middleware.GetRequestID(c)))
	if err != nil {
		if result == nil {
			middleware.AuditLogError(h.recorder, c, model.StreamRateRequests, "Quote rating rejected", err, map[string]interface{}{
				"quote_id": quoteID,
			})
		}
		builder.ServiceError(err)
		return
	}

	builder.SuccessOK(dto.NewQuoteRatesResponse(result))
}

// ComputeRates handles POST /api/rates requests.
//
// @Summary      Price an inline shipment
// @Description  Runs the landed-cost computation for a shipment given in the body. Nothing is written to the quotation ledger.
// @Tags         Quotes
// @Accept       json
// @Produce      json
// @Param        request body dto.ComputeRatesRequest true "Shipment"
// @Success      200 {object} dto.SuccessResponse{data=dto.QuoteRatesResponse} "Landed costs"
// @Failure      400 {object} dto.ErrorResponse "Invalid body"
// @Failure      422 {object} dto.ErrorResponse "Unsupported scope"
// @Failure      503 {object} dto.ErrorResponse "Reference data unavailable"
// @Router       /api/rates [post]
func (h *Handler) ComputeRates(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.ComputeRatesRequest](c)
	if err != nil {
		builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err, validationDetails(err))
		return
	}

	result, err := h.quotes.Compute(c.Request.Context(), req.ToService(middleware.GetRequestID(c), h.now()))
	if err != nil {
		builder.ServiceError(err)
		return
	}

	builder.SuccessOK(dto.NewQuoteRatesResponse(result))
}

// Quotations handles GET /api/quotes/:id/quotations requests.
//
// @Summary      List saved quotations
// @Description  Returns the quotation ledger rows of a quote ordered by destination and console type.
// @Tags         Quotes
// @Produce      json
// @Param        id path string true "Quote id"
// @Success      200 {object} dto.SuccessResponse{data=dto.QuotationsResponse} "Ledger rows"
// @Failure      503 {object} dto.ErrorResponse "Storage unavailable"
// @Router       /api/quotes/{id}/quotations [get]
func (h *Handler) Quotations(c *gin.Context) {
	builder := NewResponseBuilder(c)
	quoteID := strings.TrimSpace(c.Param("id"))

	rows, err := h.quotes.Quotations(c.Request.Context(), quoteID)
	if err != nil {
		builder.ServiceError(err)
		return
	}
	if rows == nil {
		rows = []model.Quotation{}
	}

	builder.SuccessOK(dto.QuotationsResponse{QuoteID: quoteID, Quotations: rows})
}
