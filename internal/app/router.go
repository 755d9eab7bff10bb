// Package app provides router configuration.
package app

import (
	"github.com/guttosm/fba-quote-service/config"
	"github.com/guttosm/fba-quote-service/internal/audit"
	"github.com/guttosm/fba-quote-service/internal/http"
	"github.com/guttosm/fba-quote-service/internal/repository"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handlers      http.Handlers
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter builds the HTTP handlers, registers health checks and
// derives the router configuration.
func InitializeRouter(
	services *ServiceComponents,
	carriers *CarrierComponents,
	refs *repository.ReferenceStore,
	db *DatabaseComponents,
	recorder audit.Recorder,
	cfg config.ServerConfig,
) *RouterComponents {
	handlers := http.Handlers{
		Quotes:    http.NewHandler(services.Quotes, http.WithAuditRecorder(recorder)),
		Transport: http.NewTransportHandler(services.Transport),
	}
	if services.Audit != nil {
		handlers.Audit = http.NewAuditHandler(services.Audit)
	}

	healthHandler := http.NewHealthHandler()
	if refs != nil {
		healthHandler.RegisterChecker("refdata", refs)
	}
	if db != nil {
		healthHandler.RegisterChecker("mongodb", db.DB)
		healthHandler.RegisterCircuitBreaker("mongodb", db.CircuitBreaker)
	}
	if carriers != nil {
		for name, cb := range carriers.Breakers {
			healthHandler.RegisterCarrierBreaker(name, cb)
		}
	}

	routerCfg := http.RouterConfig{
		RateLimit:      cfg.RateLimit,
		RateWindow:     cfg.RateWindow,
		RequestTimeout: cfg.RequestTimeout,
		CORSOrigins:    cfg.CORSOrigins,
		SwaggerUser:    cfg.SwaggerUser,
		SwaggerPass:    cfg.SwaggerPass,
		IdempotencyTTL: cfg.IdempotencyTTL,
		Recorder:       recorder,
	}

	return &RouterComponents{
		Handlers:      handlers,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
