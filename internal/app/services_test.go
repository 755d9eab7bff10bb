//go:build !integration

package app

import (
	"context"
	"testing"

	"github.com/guttosm/fba-quote-service/config"
	"github.com/guttosm/fba-quote-service/internal/audit"
	"github.com/guttosm/fba-quote-service/internal/mocks"
	"github.com/guttosm/fba-quote-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeServices(t *testing.T) {
	pricing := config.Load().Pricing

	tests := []struct {
		name      string
		db        *DatabaseComponents
		wantAudit bool
	}{
		{name: "without database", db: nil},
		{
			name: "with database",
			db: &DatabaseComponents{
				QuoteRepo:     &mocks.MockQuoteRepositoryInterface{},
				QuotationRepo: &mocks.MockQuotationRepositoryInterface{},
				AuditRepo:     &mocks.MockAuditEventsRepositoryInterface{},
			},
			wantAudit: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &fakeResolver{}
			refs := &mocks.MockReferenceRepositoryInterface{}

			components := InitializeServices(pricing, resolver, refs, tt.db, audit.Nop{})

			require.NotNil(t, components)
			assert.NotNil(t, components.Quotes)
			assert.NotNil(t, components.Transport)
			assert.Equal(t, tt.wantAudit, components.Audit != nil)
		})
	}
}

func TestInitializeServices_QuoteRatingWithoutDatabase(t *testing.T) {
	components := InitializeServices(config.Load().Pricing, &fakeResolver{}, &mocks.MockReferenceRepositoryInterface{}, nil, audit.Nop{})

	_, err := components.Quotes.RateQuote(context.Background(), service.RateQuoteRequest{QuoteID: "AGQ-1"})
	assert.ErrorIs(t, err, service.ErrRepositoryNotConfigured)

	_, err = components.Quotes.Quotations(context.Background(), "AGQ-1")
	assert.ErrorIs(t, err, service.ErrRepositoryNotConfigured)
}
