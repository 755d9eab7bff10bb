// Package app provides carrier adapter initialization.
package app

import (
	"net/http"

	"github.com/guttosm/fba-quote-service/config"
	"github.com/guttosm/fba-quote-service/internal/audit"
	"github.com/guttosm/fba-quote-service/internal/circuitbreaker"
	"github.com/guttosm/fba-quote-service/internal/ratecache"
	"github.com/guttosm/fba-quote-service/internal/ratesource"
	"github.com/rs/zerolog/log"
)

// CarrierComponents holds the resolver over static rows and live carriers.
type CarrierComponents struct {
	Resolver ratesource.Resolver
	// Breakers maps provider names to their breakers for health reporting.
	Breakers map[string]*circuitbreaker.CircuitBreaker
	Cache    *ratecache.ShardedCache
}

// Close stops the quote cache.
func (c *CarrierComponents) Close() {
	if c.Cache != nil {
		c.Cache.Stop()
	}
}

// InitializeCarriers builds the three live adapters. Calls go through the
// quote cache first and then the carrier's own breaker; only calls that
// reach the carrier are audited.
func InitializeCarriers(cfg config.CarriersConfig, pricing config.PricingConfig, recorder audit.Recorder) *CarrierComponents {
	client := &http.Client{Timeout: cfg.HTTPTimeout}
	out := &CarrierComponents{Breakers: map[string]*circuitbreaker.CircuitBreaker{}}

	var cache ratesource.QuoteCache
	if cfg.QuoteCacheTTL > 0 && cfg.QuoteCacheSize > 0 {
		out.Cache = ratecache.NewShardedCache(cfg.QuoteCacheSize, cfg.QuoteCacheTTL, 8)
		cache = out.Cache
	}

	guard := func(a ratesource.Adapter) ratesource.Adapter {
		cb := circuitbreaker.New(ratesource.BreakerConfig(
			a.Name(), cfg.BreakerFailureThreshold, cfg.BreakerSuccessThreshold, cfg.BreakerTimeout,
		))
		out.Breakers[a.Name()] = cb
		return ratesource.WithCache(ratesource.WithCircuitBreaker(ratesource.Instrument(a, recorder), cb), cache)
	}

	heyPrimo := guard(ratesource.NewHeyPrimo(cfg.HeyPrimo, client))
	exFreight := guard(ratesource.NewExFreight(cfg.ExFreight, client))
	jbHunt := guard(ratesource.NewJBHunt(cfg.JBHunt, client,
		ratesource.WithMarkup(pricing.LinehaulMarkup),
		ratesource.WithKgToLbs(pricing.KgToLbs),
	))

	logConfigured("HeyPrimo", cfg.HeyPrimo.Username != "" && cfg.HeyPrimo.Password != "")
	logConfigured("Ex-Freight", cfg.ExFreight.Token != "")
	logConfigured("J.B. Hunt", cfg.JBHunt.ClientID != "" && cfg.JBHunt.ClientSecret != "")

	out.Resolver = ratesource.NewRouter(ratesource.DefaultRoutes(heyPrimo, exFreight, jbHunt), pricing.KgToLbs)
	return out
}

func logConfigured(provider string, ok bool) {
	if !ok {
		log.Warn().Str("provider", provider).Msg("Carrier credentials missing - live quotes will fail as not_configured")
	}
}
