package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fba-quote-service/internal/domain/dto"
	"github.com/guttosm/fba-quote-service/internal/i18n"
	"github.com/guttosm/fba-quote-service/internal/service"
)

// AuditHandler exposes recorded audit events.
type AuditHandler struct {
	audit service.AuditService
}

// NewAuditHandler creates an AuditHandler.
func NewAuditHandler(audit service.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// ListAuditEvents handles GET /api/audit-events requests.
//
// @Summary      List audit events
// @Description  Pages through audit events newest first. Streams: rate_requests, bookings, transport_rates, heyprimo, exfreight, jbhunt, http_requests.
// @Tags         Audit
// @Produce      json
// @Param        stream     query string false "Stream name"
// @Param        request_id query string false "Request id"
// @Param        status     query string false "Success or Error"
// @Param        start_time query string false "RFC3339 lower bound"
// @Param        end_time   query string false "RFC3339 upper bound"
// @Param        limit      query int    false "Page size, default 50, max 500"
// @Param        skip       query int    false "Events to skip"
// @Success      200 {object} dto.SuccessResponse{data=dto.AuditEventsResponse} "Events"
// @Failure      400 {object} dto.ErrorResponse "Invalid query"
// @Failure      503 {object} dto.ErrorResponse "Storage unavailable"
// @Router       /api/audit-events [get]
func (h *AuditHandler) ListAuditEvents(c *gin.Context) {
	builder := NewResponseBuilder(c)

	q, err := BuildQuery[dto.AuditEventsQuery](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidQuery, err)
		return
	}
	opts, err := q.ToOptions()
	if err != nil {
		builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidQuery, err, validationDetails(err))
		return
	}

	ctx := c.Request.Context()
	events, err := h.audit.QueryEvents(ctx, opts)
	if err != nil {
		builder.ServiceError(err)
		return
	}
	total, err := h.audit.CountEvents(ctx, opts)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	page := service.NormalizeAuditPaging(opts)
	builder.SuccessOK(dto.AuditEventsResponse{Events: events, Total: total, Limit: page.Limit, Skip: page.Skip})
}
