// Package app provides database initialization and setup.
package app

import (
	"context"
	"time"

	"github.com/guttosm/fba-quote-service/config"
	"github.com/guttosm/fba-quote-service/internal/circuitbreaker"
	"github.com/guttosm/fba-quote-service/internal/metrics"
	"github.com/guttosm/fba-quote-service/internal/repository"
	"github.com/rs/zerolog/log"
)

// DatabaseComponents holds MongoDB-backed repositories. Every repository
// shares one breaker because they share one server.
type DatabaseComponents struct {
	DB             *repository.MongoDB
	QuoteRepo      repository.QuoteRepositoryInterface
	QuotationRepo  repository.QuotationRepositoryInterface
	AuditRepo      repository.AuditEventsRepositoryInterface
	CircuitBreaker *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and builds the repositories.
// Returns nil if the database is disabled or the connection fails.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		log.Info().Msg("MongoDB disabled - quote ids, quotations and audit queries are unavailable")
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}
	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.SetAuditTTL(ctx, cfg.AuditTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to set audit TTL index")
	}

	cb := circuitbreaker.New(circuitbreaker.Config{
		Name:             "mongodb",
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		IsFailure:        repository.IsStorageFailure,
		OnStateChange: func(name string, _, to circuitbreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
		},
	})

	return &DatabaseComponents{
		DB:             db,
		QuoteRepo:      repository.NewQuoteRepositoryWithCircuitBreaker(repository.NewQuoteRepository(db), cb),
		QuotationRepo:  repository.NewQuotationRepositoryWithCircuitBreaker(repository.NewQuotationRepository(db), cb),
		AuditRepo:      repository.NewAuditEventsRepositoryWithCircuitBreaker(repository.NewAuditEventsRepository(db), cb),
		CircuitBreaker: cb,
	}
}

// InitializeReferenceStore opens the SQLite reference store and seeds it
// when a seed file is configured. A failed seed keeps the previous tables.
func InitializeReferenceStore(cfg config.RefDataConfig) (*repository.ReferenceStore, error) {
	store, err := repository.OpenReferenceStore(cfg.Path)
	if err != nil {
		return nil, err
	}
	if cfg.SeedFile == "" {
		return store, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := store.SeedFromFile(ctx, cfg.SeedFile); err != nil {
		log.Warn().Err(err).Str("file", cfg.SeedFile).Msg("Failed to seed reference data")
		return store, nil
	}
	log.Info().Str("file", cfg.SeedFile).Msg("Reference data seeded")
	return store, nil
}
