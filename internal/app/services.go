// Package app provides service initialization.
package app

import (
	"github.com/guttosm/fba-quote-service/config"
	"github.com/guttosm/fba-quote-service/internal/audit"
	"github.com/guttosm/fba-quote-service/internal/ratesource"
	"github.com/guttosm/fba-quote-service/internal/repository"
	"github.com/guttosm/fba-quote-service/internal/service"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Quotes    service.QuoteService
	Transport service.TransportRateService
	// Audit is nil when MongoDB is unavailable.
	Audit service.AuditService
}

// InitializeServices builds the pricing engine and the services on top of it.
func InitializeServices(
	pricing config.PricingConfig,
	resolver ratesource.Resolver,
	refs repository.ReferenceRepositoryInterface,
	db *DatabaseComponents,
	recorder audit.Recorder,
) *ServiceComponents {
	classifier := service.NewFBAClassifier(service.ClassifierConfig{
		HotCBMThreshold: pricing.HotCBMThreshold,
		LowBand:         pricing.ThreeWeekLowBand,
		HighBand:        pricing.ThreeWeekHighBand,
	})
	selector := service.NewConsoleSelector(pricing.PremiumPorts, pricing.MultiDestOwnConsoleCBM)
	comparator := service.NewRateComparator(resolver, service.ComparatorConfig{
		DualTruckloadDivisor: pricing.DualTruckloadDivisor,
		FTL53Divisor:         pricing.FTL53Divisor,
		TruckloadWeightLbs:   pricing.TruckloadWeightLbs,
		FTLWeightLbs:         pricing.FTLWeightLbs,
	})
	composer := service.NewCostComposer(classifier, selector, comparator, service.ComposerConfig{
		USDToINR:         pricing.USDToINR,
		SkipDestinations: pricing.SkipDestinations,
	})

	opts := []service.QuoteOption{
		service.WithRecorder(recorder),
		service.WithSummaryOptions(service.SummaryOptions{
			USDToINR:           pricing.USDToINR,
			MinimumLastMileUSD: pricing.MinimumLastMileUSD,
		}),
	}
	components := &ServiceComponents{
		Transport: service.NewTransportRateService(resolver, refs, recorder, service.TransportConfig{
			FTLWeightLbs:       pricing.FTLWeightLbs,
			TruckloadWeightLbs: pricing.TruckloadWeightLbs,
			PalletCostUSD:      pricing.DisplayPalletCostUSD,
		}),
	}
	if db != nil {
		opts = append(opts,
			service.WithQuoteRepository(db.QuoteRepo),
			service.WithQuotationRepository(db.QuotationRepo),
		)
		components.Audit = service.NewAuditService(db.AuditRepo)
	}
	components.Quotes = service.NewQuoteService(composer, refs, opts...)

	return components
}
