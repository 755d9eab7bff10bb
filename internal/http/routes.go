package http

import (
	"github.com/gin-gonic/gin"
)

// RouteGroup registers a set of API routes.
type RouteGroup interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// QuoteRoutes registers the quote rating and ledger routes.
type QuoteRoutes struct {
	handler *Handler
}

// NewQuoteRoutes creates QuoteRoutes.
func NewQuoteRoutes(handler *Handler) *QuoteRoutes {
	return &QuoteRoutes{handler: handler}
}

// RegisterRoutes implements RouteGroup.
func (r *QuoteRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/quotes/:id/rates", r.handler.RateQuote)
	rg.GET("/quotes/:id/quotations", r.handler.Quotations)
	rg.POST("/rates", r.handler.ComputeRates)
}

// TransportRoutes registers the transport rates tool.
type TransportRoutes struct {
	handler *TransportHandler
}

// NewTransportRoutes creates TransportRoutes.
func NewTransportRoutes(handler *TransportHandler) *TransportRoutes {
	return &TransportRoutes{handler: handler}
}

// RegisterRoutes implements RouteGroup.
func (r *TransportRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/transport-rates", r.handler.TransportRates)
}

// AuditRoutes registers the audit query route.
type AuditRoutes struct {
	handler *AuditHandler
}

// NewAuditRoutes creates AuditRoutes.
func NewAuditRoutes(handler *AuditHandler) *AuditRoutes {
	return &AuditRoutes{handler: handler}
}

// RegisterRoutes implements RouteGroup.
func (r *AuditRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/audit-events", r.handler.ListAuditEvents)
}
