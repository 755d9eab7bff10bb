package service

import (
	"context"
	"time"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/guttosm/fba-quote-service/internal/metrics"
	"github.com/guttosm/fba-quote-service/internal/ratesource"
)

// Place is one end of a last-mile leg.
type Place struct {
	Zip   string `json:"zip"`
	City  string `json:"city"`
	State string `json:"state"`
}

// ComparisonRequest describes the last-mile leg to price.
type ComparisonRequest struct {
	Origin       Place
	Destination  Place
	Pallets      int
	WeightKg     float64
	Category     model.DemandCategory
	Modes        model.ServiceModes
	Accessorials ratesource.Accessorials
	Static       []model.StaticRate
	AsOf         time.Time
	RequestID    string
}

// Comparison holds the best candidate per mode and the two minima.
// Lowest ignores eligibility; Selected is restricted to the requested modes.
type Comparison struct {
	LTL      model.RateCandidate `json:"ltl"`
	FTL      model.RateCandidate `json:"ftl"`
	FTL53    model.RateCandidate `json:"ftl53"`
	Drayage  model.RateCandidate `json:"drayage"`
	Lowest   model.RateCandidate `json:"lowest"`
	Selected model.RateCandidate `json:"selected"`
	Notes    []string            `json:"notes,omitempty"`
}

// RateComparator chooses the last-mile rate for a leg.
type RateComparator interface {
	Compare(ctx context.Context, req ComparisonRequest) Comparison
}

// ComparatorConfig holds the normalisation divisors and the fixed weights
// sent for truckload modes.
type ComparatorConfig struct {
	DualTruckloadDivisor float64
	FTL53Divisor         float64
	TruckloadWeightLbs   float64
	FTLWeightLbs         float64
}

// DefaultComparatorConfig returns the calibrated constants.
func DefaultComparatorConfig() ComparatorConfig {
	return ComparatorConfig{
		DualTruckloadDivisor: 21,
		FTL53Divisor:         48,
		TruckloadWeightLbs:   45000,
		FTLWeightLbs:         11024,
	}
}

// RateComparatorImpl implements RateComparator over a ratesource.Resolver.
type RateComparatorImpl struct {
	resolver ratesource.Resolver
	cfg      ComparatorConfig
}

// NewRateComparator creates a comparator.
func NewRateComparator(resolver ratesource.Resolver, cfg ComparatorConfig) RateComparator {
	return &RateComparatorImpl{resolver: resolver, cfg: cfg}
}

// Compare implements RateComparator. It never fails: missing rates become
// the N/A placeholder and carrier failures become notes.
func (c *RateComparatorImpl) Compare(ctx context.Context, req ComparisonRequest) Comparison {
	start := time.Now()
	out := Comparison{
		LTL:     model.NoRate(),
		FTL:     model.NoRate(),
		FTL53:   model.NoRate(),
		Drayage: model.NoRate(),
	}

	switch {
	case req.Modes.Is(model.RateDrayage):
		out.Drayage = c.resolve(ctx, req, model.RateDrayage, &out)
		out.Lowest = model.LowestCandidate(out.Drayage)
		out.Selected = out.Lowest

	case req.Modes.Is(model.RateFTL, model.RateFTL53):
		out.FTL = normalise(c.resolve(ctx, req, model.RateFTL, &out), c.cfg.DualTruckloadDivisor)
		out.FTL53 = normalise(c.resolve(ctx, req, model.RateFTL53, &out), c.cfg.DualTruckloadDivisor)
		out.Lowest = model.LowestCandidate(out.FTL, out.FTL53)
		out.Selected = out.Lowest

	case req.Modes.Is(model.RateFTL53):
		out.FTL53 = normalise(c.resolve(ctx, req, model.RateFTL53, &out), c.cfg.FTL53Divisor)
		out.Lowest = model.LowestCandidate(out.FTL53)
		out.Selected = out.Lowest

	default:
		out.LTL = c.resolve(ctx, req, model.RateLTL, &out)
		out.FTL = c.resolve(ctx, req, model.RateFTL, &out)
		out.FTL53 = c.resolve(ctx, req, model.RateFTL53, &out)
		out.Drayage = c.resolve(ctx, req, model.RateDrayage, &out)

		all := []model.RateCandidate{out.LTL, out.FTL, out.FTL53, out.Drayage}
		out.Lowest = model.LowestCandidate(all...)
		var eligible []model.RateCandidate
		for _, cand := range all {
			if req.Modes.Contains(cand.RateType) {
				eligible = append(eligible, cand)
			}
		}
		out.Selected = model.LowestCandidate(eligible...)
	}

	status := "ok"
	if !out.Selected.Valid() {
		status = "no_rate"
	}
	metrics.RecordQuoteComputation("comparison", time.Since(start), status)
	return out
}

func (c *RateComparatorImpl) resolve(ctx context.Context, req ComparisonRequest, mode model.RateType, out *Comparison) model.RateCandidate {
	q := ratesource.Query{
		Mode:         mode,
		OriginZip:    req.Origin.Zip,
		OriginCity:   req.Origin.City,
		OriginState:  req.Origin.State,
		DestZip:      req.Destination.Zip,
		DestCity:     req.Destination.City,
		DestState:    req.Destination.State,
		WeightKg:     req.WeightKg,
		Pallets:      req.Pallets,
		Accessorials: req.Accessorials,
		AsOf:         req.AsOf,
		Static:       req.Static,
		RequestID:    req.RequestID,
	}
	switch mode {
	case model.RateFTL:
		q.WeightLbs = c.cfg.FTLWeightLbs
	case model.RateFTL53, model.RateDrayage:
		q.WeightLbs = c.cfg.TruckloadWeightLbs
	}

	res := c.resolver.Resolve(ctx, q)
	for _, note := range res.Notes() {
		out.Notes = append(out.Notes, string(mode)+": "+note)
	}
	if !res.Best.Valid() {
		return model.NoRate()
	}
	return res.Best
}

// normalise divides a valid rate by divisor. RawRate keeps the carrier figure.
func normalise(c model.RateCandidate, divisor float64) model.RateCandidate {
	if !c.Valid() || divisor <= 0 {
		return c
	}
	c.Rate /= divisor
	return c
}
