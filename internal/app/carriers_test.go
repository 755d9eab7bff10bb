//go:build !integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/fba-quote-service/config"
	"github.com/guttosm/fba-quote-service/internal/audit"
	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/guttosm/fba-quote-service/internal/ratesource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func carriersConfig() config.CarriersConfig {
	return config.CarriersConfig{
		HTTPTimeout:             time.Second,
		BreakerFailureThreshold: 1,
		BreakerSuccessThreshold: 1,
		BreakerTimeout:          time.Minute,
	}
}

func TestInitializeCarriers(t *testing.T) {
	c := InitializeCarriers(carriersConfig(), config.Load().Pricing, audit.Nop{})
	defer c.Close()

	require.NotNil(t, c.Resolver)
	assert.Nil(t, c.Cache)
	for _, name := range []string{ratesource.ProviderHeyPrimo, ratesource.ProviderExFreight, ratesource.ProviderJBHunt} {
		assert.Contains(t, c.Breakers, name)
	}
}

func TestInitializeCarriers_UnconfiguredDoNotTripBreakers(t *testing.T) {
	cfg := carriersConfig()
	cfg.QuoteCacheTTL = time.Minute
	cfg.QuoteCacheSize = 8
	c := InitializeCarriers(cfg, config.Load().Pricing, audit.Nop{})
	defer c.Close()
	require.NotNil(t, c.Cache)

	q := ratesource.Query{Mode: model.RateLTL, OriginZip: "07001", DestZip: "30303", WeightKg: 800, Pallets: 3}
	for i := 0; i < 3; i++ {
		res := c.Resolver.Resolve(context.Background(), q)
		assert.False(t, res.Best.Valid())
		for _, f := range res.Failures {
			assert.Equal(t, ratesource.ReasonNotConfigured, ratesource.ReasonOf(f))
		}
	}

	for name, cb := range c.Breakers {
		assert.False(t, cb.IsOpen(), name)
	}
	assert.Equal(t, 0, c.Cache.Metrics().Size)
}
