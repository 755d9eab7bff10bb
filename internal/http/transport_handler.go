package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fba-quote-service/internal/domain/dto"
	"github.com/guttosm/fba-quote-service/internal/i18n"
	"github.com/guttosm/fba-quote-service/internal/middleware"
	"github.com/guttosm/fba-quote-service/internal/service"
)

// TransportHandler serves the ad hoc lane pricing tool.
type TransportHandler struct {
	rates service.TransportRateService
}

// NewTransportHandler creates a TransportHandler.
func NewTransportHandler(rates service.TransportRateService) *TransportHandler {
	return &TransportHandler{rates: rates}
}

// TransportRates handles POST /api/transport-rates requests.
//
// @Summary      Price a US lane
// @Description  Collects every LTL, FTL, FTL53 and Drayage candidate between two US addresses formatted "zip, city, state, state code, country". Carrier failures are listed in errors and do not fail the request.
// @Tags         Transport
// @Accept       json
// @Produce      json
// @Param        request body dto.TransportRatesRequest true "Lane and cargo"
// @Success      200 {object} dto.SuccessResponse{data=service.TransportRates} "Candidates per mode"
// @Failure      400 {object} dto.ErrorResponse "Invalid lane or cargo"
// @Router       /api/transport-rates [post]
func (h *TransportHandler) TransportRates(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.TransportRatesRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	out, err := h.rates.Rates(c.Request.Context(), req.ToService(middleware.GetRequestID(c)))
	if err != nil {
		if errors.Is(err, service.ErrInvalidLane) {
			builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidLane, err, map[string]string{"reason": err.Error()})
			return
		}
		builder.ServiceError(err)
		return
	}

	builder.SuccessOK(out)
}
