//go:build !integration

package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/guttosm/fba-quote-service/internal/ratesource"
	"github.com/guttosm/fba-quote-service/internal/service"
)

// fakeResolver answers every mode from a fixed table and records queries.
type fakeResolver struct {
	mu       sync.Mutex
	best     map[model.RateType]float64
	all      map[model.RateType][]model.RateCandidate
	failures map[model.RateType]error
	queries  []ratesource.Query
}

func (f *fakeResolver) Resolve(_ context.Context, q ratesource.Query) ratesource.Resolution {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)

	res := ratesource.Resolution{Mode: q.Mode, Best: model.NoRate()}
	if err := f.failures[q.Mode]; err != nil {
		res.Failures = []error{err}
	}
	if rate, ok := f.best[q.Mode]; ok {
		c := model.RateCandidate{RateType: q.Mode, Rate: rate, RawRate: rate, CarrierName: "Carrier " + string(q.Mode), ServiceProvider: "Fake"}
		if c.Valid() {
			res.Best = c
			res.Candidates = []model.RateCandidate{c}
		}
	}
	return res
}

func (f *fakeResolver) Collect(_ context.Context, q ratesource.Query) ratesource.Resolution {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)

	res := ratesource.Resolution{Mode: q.Mode, Candidates: f.all[q.Mode]}
	if err := f.failures[q.Mode]; err != nil {
		res.Failures = []error{err}
	}
	res.Best = model.LowestCandidate(res.Candidates...)
	return res
}

func (f *fakeResolver) query(mode model.RateType) (ratesource.Query, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, q := range f.queries {
		if q.Mode == mode {
			return q, true
		}
	}
	return ratesource.Query{}, false
}

// fakeComparator returns a fixed comparison and counts calls.
type fakeComparator struct {
	mu       sync.Mutex
	result   service.Comparison
	requests []service.ComparisonRequest
}

func (f *fakeComparator) Compare(_ context.Context, req service.ComparisonRequest) service.Comparison {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.result
}

func (f *fakeComparator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type captureRecorder struct {
	mu     sync.Mutex
	events []*model.AuditEvent
}

func (c *captureRecorder) Record(e *model.AuditEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *captureRecorder) stream(name string) []*model.AuditEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*model.AuditEvent
	for _, e := range c.events {
		if e.Stream == name {
			out = append(out, e)
		}
	}
	return out
}

func comparisonWith(selected float64) service.Comparison {
	c := service.Comparison{
		LTL:     model.NoRate(),
		FTL:     model.NoRate(),
		FTL53:   model.NoRate(),
		Drayage: model.NoRate(),
		Lowest:  model.NoRate(),
	}
	if selected > 0 {
		c.FTL = model.RateCandidate{RateType: model.RateFTL, Rate: selected, CarrierName: "JBHT", ServiceProvider: "J.B. Hunt"}
		c.Lowest = c.FTL
		c.Selected = c.FTL
	} else {
		c.Selected = model.NoRate()
	}
	return c
}

const ont8 = "ONT8 - Moreno Valley"

// today is the fixed pricing date; reference rows in these tests are valid on it.
var today = time.Date(2025, 7, 22, 9, 0, 0, 0, time.UTC)

func referenceTables() *model.ReferenceTables {
	return &model.ReferenceTables{
		Locations: []model.FBALocation{{
			FBACode:       "ONT8",
			FBAZip:        "92551",
			FBACity:       "Moreno Valley",
			FBAStateCode:  "CA",
			FPODZip:       "90802",
			FPODCity:      "Long Beach",
			FPODUnloc:     "USLGB",
			FPODStateCode: "CA",
			Last3Weeks:    30,
			Loadability:   60,
			Consolidator:  "ACME",
			Coast:         "West",
		}},
		P2P: []model.P2PTariff{
			{P2PType: model.ConsoleOwn, POLName: "Nhava Sheva", POLUnloc: "INNSA", FPODUnloc: "USLGB", OriginChargesINR: 8800, OceanFreightUSD: 1900, Loadability: 50, PerCBMUSD: 45},
			{P2PType: model.ConsoleCoload, POLName: "Nhava Sheva", POLUnloc: "INNSA", FPODUnloc: "USLGB", PerCBMUSD: 60},
			{P2PType: model.ConsoleCoload, POLName: "Mundra", POLUnloc: "INMUN", FPODUnloc: "USLGB", PerCBMUSD: 70},
		},
		Accessorials: []model.Accessorial{
			{ChargeHead: model.ChargeHeadDocumentation, LocationUnloc: "USLGB", Currency: "USD", Amount: 75},
			{ChargeHead: model.ChargeHeadOCC, LocationUnloc: "INNSA", Currency: "USD", Amount: 150},
			{ChargeHead: model.ChargeHeadDCC, LocationUnloc: "USLGB", Currency: "USD", Amount: 95},
		},
		Palletization: []model.PalletizationCharge{
			{ServiceType: model.PalletizationPerPallet, FPODUnloc: "USLGB", Currency: "USD", Amount: 12},
		},
	}
}

// looseCargo returns one loose carton row of the given volume and weight.
func looseCargo(cbm, kg float64) []model.CargoLineItem {
	return []model.CargoLineItem{{
		PackageType:    model.PackageLooseCarton,
		Quantity:       100,
		TotalWeightKg:  kg,
		TotalVolumeCBM: cbm,
	}}
}
