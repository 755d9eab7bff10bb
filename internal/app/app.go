// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fba-quote-service/config"
	"github.com/guttosm/fba-quote-service/internal/http"
	"github.com/guttosm/fba-quote-service/internal/repository"
	"github.com/rs/zerolog/log"
)

// App is the wired application.
type App struct {
	Engine   *gin.Engine
	Refs     *repository.ReferenceStore
	Database *DatabaseComponents
	Audit    *AuditComponents
	Carriers *CarrierComponents

	stopRouter func()
}

// InitializeApp creates and wires all application dependencies.
// The logger is initialized first because every other component logs.
func InitializeApp(cfg config.Config) (*App, error) {
	InitializeLogger(cfg.Server)

	refs, err := InitializeReferenceStore(cfg.RefData)
	if err != nil {
		return nil, fmt.Errorf("reference store: %w", err)
	}

	db := InitializeDatabase(cfg.Database)
	auditComponents := InitializeAudit(cfg.Audit, db)
	carriers := InitializeCarriers(cfg.Carriers, cfg.Pricing, auditComponents.Recorder)
	services := InitializeServices(cfg.Pricing, carriers.Resolver, refs, db, auditComponents.Recorder)
	routerComponents := InitializeRouter(services, carriers, refs, db, auditComponents.Recorder, cfg.Server)

	engine, stop := http.NewRouter(routerComponents.Handlers, routerComponents.HealthHandler, routerComponents.Config)

	return &App{
		Engine:     engine,
		Refs:       refs,
		Database:   db,
		Audit:      auditComponents,
		Carriers:   carriers,
		stopRouter: stop,
	}, nil
}

// Close releases background workers and connections. The audit sink is
// drained before MongoDB is disconnected.
func (a *App) Close() {
	if a.stopRouter != nil {
		a.stopRouter()
	}
	if a.Carriers != nil {
		a.Carriers.Close()
	}
	if a.Audit != nil {
		a.Audit.Close()
	}
	if a.Database != nil && a.Database.DB != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Database.DB.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to disconnect MongoDB")
		}
	}
	if a.Refs != nil {
		if err := a.Refs.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close reference store")
		}
	}
}
