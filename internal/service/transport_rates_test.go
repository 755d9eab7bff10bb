//go:build !integration

package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/guttosm/fba-quote-service/internal/mocks"
	"github.com/guttosm/fba-quote-service/internal/ratesource"
	"github.com/guttosm/fba-quote-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	avenel  = "07001, Avenel, New Jersey, NJ, United States"
	atlanta = "30303, Atlanta, Georgia, GA, USA"
)

func transportConfig() service.TransportConfig {
	return service.TransportConfig{FTLWeightLbs: 11024, TruckloadWeightLbs: 45000, PalletCostUSD: 15}
}

func TestParseAddress(t *testing.T) {
	addr, err := service.ParseAddress(avenel)
	require.NoError(t, err)
	assert.Equal(t, service.Address{Zip: "07001", City: "Avenel", State: "New Jersey", StateCode: "NJ", Country: "United States"}, addr)

	_, err = service.ParseAddress("Avenel, NJ")
	assert.ErrorIs(t, err, service.ErrInvalidLane)
}

func TestIsUSLocation(t *testing.T) {
	assert.True(t, service.IsUSLocation(avenel))
	assert.True(t, service.IsUSLocation("x, y, z, w, us"))
	assert.False(t, service.IsUSLocation("400001, Mumbai, Maharashtra, MH, India"))
}

func TestTransportRates_Validation(t *testing.T) {
	row := model.CargoLineItem{PackageType: model.PackagePallet, Quantity: 2, WeightPerUnit: 300, Length: 48, Width: 40, Height: 50}
	totals := &service.TransportTotals{Quantity: 2, WeightKg: 600, CBM: 3.6}

	tests := []struct {
		name string
		req  service.TransportRateRequest
		want string
	}{
		{"missing origin", service.TransportRateRequest{Destination: atlanta, Totals: totals}, "origin is required"},
		{"missing destination", service.TransportRateRequest{Origin: avenel, Totals: totals}, "destination is required"},
		{"same lane", service.TransportRateRequest{Origin: avenel, Destination: " " + avenel, Totals: totals}, "cannot be the same"},
		{"foreign origin", service.TransportRateRequest{Origin: "400001, Mumbai, Maharashtra, MH, India", Destination: atlanta, Totals: totals}, "origin must be in the United States"},
		{"foreign destination", service.TransportRateRequest{Origin: avenel, Destination: "M5V, Toronto, Ontario, ON, Canada", Totals: totals}, "destination must be in the United States"},
		{"bad address", service.TransportRateRequest{Origin: "Avenel, USA", Destination: atlanta, Totals: totals}, "invalid address format"},
		{"both forms", service.TransportRateRequest{Origin: avenel, Destination: atlanta, Totals: totals, Cargo: []model.CargoLineItem{row}}, "not both"},
		{"no cargo", service.TransportRateRequest{Origin: avenel, Destination: atlanta}, "provide cargo rows or totals"},
		{"zero quantity", service.TransportRateRequest{Origin: avenel, Destination: atlanta, Totals: &service.TransportTotals{WeightKg: 1, CBM: 1}}, "total quantity"},
		{"zero weight", service.TransportRateRequest{Origin: avenel, Destination: atlanta, Totals: &service.TransportTotals{Quantity: 1, CBM: 1}}, "total weight"},
		{"zero volume", service.TransportRateRequest{Origin: avenel, Destination: atlanta, Totals: &service.TransportTotals{Quantity: 1, WeightKg: 1}}, "total volume"},
		{"row weight", service.TransportRateRequest{Origin: avenel, Destination: atlanta, Cargo: []model.CargoLineItem{row, {Quantity: 1, Length: 1, Width: 1, Height: 1}}}, "row 2: weight"},
		{"row dimensions", service.TransportRateRequest{Origin: avenel, Destination: atlanta, Cargo: []model.CargoLineItem{{Quantity: 1, WeightPerUnit: 5, Length: 1, Width: 1}}}, "row 1: dimensions"},
		{"row quantity", service.TransportRateRequest{Origin: avenel, Destination: atlanta, Cargo: []model.CargoLineItem{{WeightPerUnit: 5}}}, "row 1: quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &fakeResolver{}
			svc := service.NewTransportRateService(resolver, nil, nil, transportConfig())

			out, err := svc.Rates(context.Background(), tt.req)
			assert.Nil(t, out)
			require.ErrorIs(t, err, service.ErrInvalidLane)
			assert.Contains(t, err.Error(), tt.want)
			assert.Empty(t, resolver.queries)
		})
	}
}

func TestTransportRates_CollectsEveryMode(t *testing.T) {
	static := []model.StaticRate{{DeliveryType: model.RateLTL, OriginZip: "07001", DestZip: "30303", Rate: 410}}
	refs := new(mocks.MockReferenceRepositoryInterface)
	refs.On("Load", mock.Anything).Return(&model.ReferenceTables{StaticRates: static}, nil)

	resolver := &fakeResolver{
		all: map[model.RateType][]model.RateCandidate{
			model.RateLTL: {
				{RateType: model.RateLTL, Rate: 410, Source: model.SourceStaticTable},
				{RateType: model.RateLTL, Rate: 455, CarrierName: "ABF"},
			},
			model.RateFTL: {{RateType: model.RateFTL, Rate: 1800}},
		},
		failures: map[model.RateType]error{
			model.RateDrayage: &ratesource.Failure{Provider: "jbhunt", Reason: ratesource.ReasonNoRates},
		},
	}
	rec := &captureRecorder{}
	svc := service.NewTransportRateService(resolver, refs, rec, transportConfig())

	out, err := svc.Rates(context.Background(), service.TransportRateRequest{
		Origin:       avenel,
		Destination:  atlanta,
		Totals:       &service.TransportTotals{Quantity: 4, WeightKg: 1200, CBM: 5},
		Accessorials: ratesource.Accessorials{Liftgate: true},
		AsOf:         today,
		RequestID:    "req-9",
	})
	require.NoError(t, err)

	assert.Len(t, out.LTL, 2)
	assert.Len(t, out.FTL, 1)
	assert.NotNil(t, out.FTL53)
	assert.Empty(t, out.FTL53)
	assert.Empty(t, out.Drayage)
	assert.Equal(t, 3, out.Pallets)
	assert.InDelta(t, 45, out.PalletizationCost, 1e-9)
	assert.Equal(t, []string{"Drayage: jbhunt: no_rates"}, out.Errors)

	ltl, ok := resolver.query(model.RateLTL)
	require.True(t, ok)
	assert.Equal(t, "07001", ltl.OriginZip)
	assert.Equal(t, "NJ", ltl.OriginState)
	assert.Equal(t, "GA", ltl.DestState)
	assert.Zero(t, ltl.WeightLbs)
	assert.Equal(t, static, ltl.Static)
	assert.True(t, ltl.Accessorials.Residential, "liftgate implies residential")

	ftl53, _ := resolver.query(model.RateFTL53)
	assert.Equal(t, 45000.0, ftl53.WeightLbs)
	drayage, _ := resolver.query(model.RateDrayage)
	assert.Nil(t, drayage.Static)

	events := rec.stream(model.StreamTransportRates)
	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, model.AuditStatusError, e.Status)
	assert.Equal(t, "req-9", e.RequestID)
	assert.Equal(t, 410.0, e.Fields["ltl_best"])
	assert.Equal(t, 0.0, e.Fields["drayage_best"])
	assert.Equal(t, true, e.Fields["residential"])
	refs.AssertExpectations(t)
}

func TestTransportRates_ReferenceOutageFallsBackToLive(t *testing.T) {
	refs := new(mocks.MockReferenceRepositoryInterface)
	refs.On("Load", mock.Anything).Return(nil, errors.New("sqlite: locked"))

	resolver := &fakeResolver{all: map[model.RateType][]model.RateCandidate{
		model.RateLTL: {{RateType: model.RateLTL, Rate: 455}},
	}}
	rec := &captureRecorder{}
	svc := service.NewTransportRateService(resolver, refs, rec, transportConfig())

	out, err := svc.Rates(context.Background(), service.TransportRateRequest{
		Origin:      avenel,
		Destination: atlanta,
		Cargo: []model.CargoLineItem{
			{PackageType: model.PackagePallet, Quantity: 2, WeightPerUnit: 300, Length: 48, Width: 40, Height: 50},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Static rate table unavailable"}, out.Errors)
	assert.Equal(t, 2, out.Pallets)
	assert.InDelta(t, 600, out.WeightKg, 1e-9)
	assert.Len(t, out.LTL, 1)

	ltl, _ := resolver.query(model.RateLTL)
	assert.Nil(t, ltl.Static)
	assert.False(t, ltl.AsOf.IsZero())
}
