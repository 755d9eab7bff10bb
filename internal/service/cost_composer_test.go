//go:build !integration

package service_test

import (
	"context"
	"testing"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/guttosm/fba-quote-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComposer(cmp service.RateComparator, skip ...string) service.CostComposer {
	return service.NewCostComposer(
		service.NewFBAClassifier(service.DefaultClassifierConfig()),
		service.NewConsoleSelector([]string{"USNYC"}, 25),
		cmp,
		service.ComposerConfig{USDToINR: 88, SkipDestinations: skip},
	)
}

func portToDoor(dests ...model.ShipmentDestination) service.ComposeRequest {
	return service.ComposeRequest{
		Origin:       "Nhava Sheva (INNSA)",
		Destinations: dests,
		Console:      model.ConsoleNotSelected,
		OCC:          true,
		DCC:          true,
		Scope:        model.ScopePortToDoor,
		Tables:       referenceTables(),
		AsOf:         today,
		RequestID:    "req-1",
	}
}

func TestCostComposer_PortToDoorCoload(t *testing.T) {
	cmp := &fakeComparator{result: comparisonWith(300)}
	composer := newComposer(cmp)

	res, err := composer.Compute(context.Background(), portToDoor(model.ShipmentDestination{
		Destination: ont8,
		Cargo:       looseCargo(10, 1500),
	}))
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	require.Equal(t, 1, res.Results.Len())

	b := res.Results[ont8][model.ConsoleCoload]
	require.NotNil(t, b)
	assert.Equal(t, "INNSA", b.POLUnloc)
	assert.Equal(t, "USLGB", b.FPODUnloc)
	assert.Equal(t, "NON-HOT", b.Category)
	assert.Equal(t, "condition5", b.ConditionTag)
	assert.Equal(t, model.NewServiceModes(model.RateFTL), b.ServiceModes)
	assert.Equal(t, 6, b.Pallets)
	assert.Equal(t, "ACME", b.Consolidator)

	assert.InDelta(t, 600, b.P2P.Amount, 1e-9)
	assert.InDelta(t, 60, b.P2P.PerCBM, 1e-9)
	assert.InDelta(t, 75, b.Documentation.Amount, 1e-9)
	assert.InDelta(t, 150, b.OCC.Amount, 1e-9)
	assert.InDelta(t, 95, b.DCC.Amount, 1e-9)
	assert.InDelta(t, 72, b.Palletization.Amount, 1e-9)
	assert.Zero(t, b.FirstMile.Amount)
	assert.InDelta(t, 300, b.LastMile.Amount, 1e-9)
	assert.InDelta(t, 1292, b.Total, 1e-9)
	assert.InDelta(t, 129.2, b.TotalPerCBM, 1e-9)

	require.Equal(t, 1, cmp.calls())
	req := cmp.requests[0]
	assert.Equal(t, "90802", req.Origin.Zip)
	assert.Equal(t, "92551", req.Destination.Zip)
	assert.Equal(t, model.NewServiceModes(model.RateFTL), req.Modes)
	assert.Equal(t, 1500.0, req.WeightKg)
}

func TestCostComposer_OwnConsoleDrayageUsesLoadability(t *testing.T) {
	cmp := &fakeComparator{result: comparisonWith(0)}
	composer := newComposer(cmp)

	req := portToDoor(model.ShipmentDestination{Destination: ont8, Cargo: looseCargo(10, 1500)})
	req.Console = model.ConsoleOwn
	req.Requested = model.NewServiceModes(model.RateDrayage)
	req.OCC, req.DCC = false, false

	res, err := composer.Compute(context.Background(), req)
	require.NoError(t, err)

	b := res.Results[ont8][model.ConsoleOwn]
	require.NotNil(t, b)
	assert.InDelta(t, 40, b.P2P.PerCBM, 1e-9)
	assert.InDelta(t, 400, b.P2P.Amount, 1e-9)
	assert.Zero(t, b.OCC.Amount)
	assert.Zero(t, b.DCC.Amount)
	assert.Zero(t, b.LastMile.Amount)
	assert.Equal(t, model.RateNA, b.Selected.RateType)
	assert.InDelta(t, 400+75+72, b.Total, 1e-9)
	assert.Equal(t, model.NewServiceModes(model.RateDrayage), cmp.requests[0].Modes)
}

func TestCostComposer_OwnConsoleDrayageLoadabilitySource(t *testing.T) {
	tests := []struct {
		name       string
		rowLoad    float64
		locLoad    float64
		wantPerCBM float64
	}{
		{name: "tariff row loadability", rowLoad: 50, locLoad: 60, wantPerCBM: 40},
		{name: "location loadability when row has none", rowLoad: 0, locLoad: 80, wantPerCBM: 25},
		{name: "no loadability anywhere", rowLoad: 0, locLoad: 0, wantPerCBM: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			composer := newComposer(&fakeComparator{result: comparisonWith(0)})

			req := portToDoor(model.ShipmentDestination{Destination: ont8, Cargo: looseCargo(10, 1500)})
			req.Console = model.ConsoleOwn
			req.Requested = model.NewServiceModes(model.RateDrayage)
			req.Tables.P2P[0].Loadability = tt.rowLoad
			req.Tables.Locations[0].Loadability = tt.locLoad

			res, err := composer.Compute(context.Background(), req)
			require.NoError(t, err)

			b := res.Results[ont8][model.ConsoleOwn]
			require.NotNil(t, b)
			assert.InDelta(t, tt.wantPerCBM, b.P2P.PerCBM, 1e-9)
			assert.InDelta(t, tt.wantPerCBM*10, b.P2P.Amount, 1e-9)
		})
	}
}

func TestCostComposer_DoorToDoorAddsPickup(t *testing.T) {
	cmp := &fakeComparator{result: comparisonWith(300)}
	composer := newComposer(cmp)

	req := portToDoor(model.ShipmentDestination{Destination: ont8, Cargo: looseCargo(10, 1500)})
	req.Scope = model.ScopeDoorToDoor
	req.PickupCharges = 250
	req.Console = model.ConsoleOwn
	req.Requested = model.NewServiceModes(model.RateFTL)
	req.OCC, req.DCC = false, false

	res, err := composer.Compute(context.Background(), req)
	require.NoError(t, err)

	b := res.Results[ont8][model.ConsoleOwn]
	require.NotNil(t, b)
	assert.InDelta(t, 250, b.FirstMile.Amount, 1e-9)
	assert.InDelta(t, 25, b.FirstMile.PerCBM, 1e-9)
	assert.InDelta(t, 450, b.P2P.Amount, 1e-9)
	assert.InDelta(t, 250+450+75+72+300, b.Total, 1e-9)
}

func TestCostComposer_DoorToDoorWithoutPickupStops(t *testing.T) {
	cmp := &fakeComparator{result: comparisonWith(300)}
	composer := newComposer(cmp)

	req := portToDoor(model.ShipmentDestination{Destination: ont8, Cargo: looseCargo(10, 1500)})
	req.Scope = model.ScopeDoorToDoor
	req.PickupCharges = 0

	res, err := composer.Compute(context.Background(), req)
	assert.ErrorIs(t, err, service.ErrPickupChargesRequired)
	assert.Equal(t, []string{service.PickupChargesRequiredMessage}, res.Errors)
	assert.Zero(t, res.Results.Len())
	assert.Zero(t, cmp.calls())
}

func TestCostComposer_MissingTables(t *testing.T) {
	composer := newComposer(&fakeComparator{})
	req := portToDoor(model.ShipmentDestination{Destination: ont8, Cargo: looseCargo(10, 1500)})
	req.Tables = nil

	_, err := composer.Compute(context.Background(), req)
	assert.ErrorIs(t, err, service.ErrReferenceDataUnavailable)
}

func TestCostComposer_SkipList(t *testing.T) {
	cmp := &fakeComparator{result: comparisonWith(300)}
	composer := newComposer(cmp, "ont8")

	res, err := composer.Compute(context.Background(), portToDoor(model.ShipmentDestination{
		Destination: ont8,
		Cargo:       looseCargo(10, 1500),
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{ont8}, res.Skipped)
	assert.Empty(t, res.Errors)
	assert.Zero(t, res.Results.Len())
	assert.Zero(t, cmp.calls())
}

func TestCostComposer_PerDestinationErrors(t *testing.T) {
	cmp := &fakeComparator{result: comparisonWith(300)}
	composer := newComposer(cmp)

	res, err := composer.Compute(context.Background(), portToDoor(
		model.ShipmentDestination{Destination: "XYZ1 - Nowhere", Cargo: looseCargo(3, 100)},
		model.ShipmentDestination{Destination: "BFI4 - Kent"},
		model.ShipmentDestination{Destination: ont8, Cargo: looseCargo(10, 1500)},
	))
	require.NoError(t, err)
	assert.Contains(t, res.Errors, "FBA Code XYZ1 not found in FBA locations")
	assert.Contains(t, res.Errors, "No cargo details for BFI4 - Kent")
	assert.Len(t, res.Errors, 2)
	assert.Equal(t, 1, res.Results.Len())
	assert.NotNil(t, res.Results[ont8][model.ConsoleCoload])
}

func TestCostComposer_NoRouteFromOrigin(t *testing.T) {
	composer := newComposer(&fakeComparator{result: comparisonWith(300)})
	req := portToDoor(model.ShipmentDestination{Destination: ont8, Cargo: looseCargo(10, 1500)})
	req.Origin = "Chennai (INMAA)"

	res, err := composer.Compute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"No P2P route from INMAA to USLGB"}, res.Errors)
	assert.Zero(t, res.Results.Len())
}

func TestCostComposer_NoTariffForConsole(t *testing.T) {
	composer := newComposer(&fakeComparator{result: comparisonWith(300)})
	req := portToDoor(model.ShipmentDestination{Destination: ont8, Cargo: looseCargo(10, 1500)})
	req.Tables.P2P = req.Tables.P2P[:1]

	res, err := composer.Compute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"No P2P match found for FPOD USLGB, console type: Coload"}, res.Errors)
}

func TestCostComposer_MissingAccessorialsWarn(t *testing.T) {
	composer := newComposer(&fakeComparator{result: comparisonWith(300)})
	req := portToDoor(model.ShipmentDestination{Destination: ont8, Cargo: looseCargo(10, 1500)})
	req.Tables.Accessorials = nil
	req.Tables.Palletization = nil

	res, err := composer.Compute(context.Background(), req)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"Documentation charge missing for USLGB",
		"OCC charge missing for INNSA",
		"DCC charge missing for USLGB",
		"Palletization cost missing for USLGB",
	}, res.Errors)

	b := res.Results[ont8][model.ConsoleCoload]
	require.NotNil(t, b)
	assert.InDelta(t, 900, b.Total, 1e-9)
	assert.Len(t, b.Warnings, 4)
}

func TestCostComposer_SmallVolumeFloorsPerCBM(t *testing.T) {
	composer := newComposer(&fakeComparator{result: comparisonWith(300)})
	res, err := composer.Compute(context.Background(), portToDoor(model.ShipmentDestination{
		Destination: ont8,
		Cargo:       looseCargo(0.5, 80),
	}))
	require.NoError(t, err)

	b := res.Results[ont8][model.ConsoleCoload]
	require.NotNil(t, b)
	assert.Equal(t, 1, b.Pallets)
	assert.InDelta(t, b.Total, b.TotalPerCBM, 1e-9)
	assert.InDelta(t, 30, b.P2P.Amount, 1e-9)
	assert.InDelta(t, 60, b.P2P.PerCBM, 1e-9)
}

func TestCostComposer_CancelledContext(t *testing.T) {
	cmp := &fakeComparator{result: comparisonWith(300)}
	composer := newComposer(cmp)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := composer.Compute(ctx, portToDoor(model.ShipmentDestination{Destination: ont8, Cargo: looseCargo(10, 1500)}))
	require.NoError(t, err)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "cancelled")
	assert.Zero(t, cmp.calls())
}
