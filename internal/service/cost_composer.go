package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/guttosm/fba-quote-service/internal/logger"
	"github.com/guttosm/fba-quote-service/internal/metrics"
	"github.com/guttosm/fba-quote-service/internal/ratesource"
)

// ComposeRequest is one landed-cost computation over all destinations of
// a shipment.
type ComposeRequest struct {
	Origin       string
	Destinations []model.ShipmentDestination
	// Console overrides the selected console type unless it is ConsoleNotSelected.
	Console       model.ConsoleType
	OCC           bool
	DCC           bool
	Cardinality   model.Cardinality
	Scope         model.ShipmentScope
	PickupCharges float64
	// Requested overrides the selected service modes when non-empty.
	Requested model.ServiceModes
	Tables    *model.ReferenceTables
	AsOf      time.Time
	RequestID string
}

// ComposeResult carries every breakdown that could be computed, the
// per-destination error messages and the destinations skipped by policy.
type ComposeResult struct {
	Results model.LandedCosts `json:"results"`
	Errors  []string          `json:"errors"`
	Skipped []string          `json:"skipped,omitempty"`
}

// CostComposer computes landed costs per destination and console type.
type CostComposer interface {
	Compute(ctx context.Context, req ComposeRequest) (ComposeResult, error)
}

// ComposerConfig holds composition constants.
type ComposerConfig struct {
	USDToINR         float64
	SkipDestinations []string
}

// CostComposerImpl implements CostComposer.
type CostComposerImpl struct {
	classifier FBAClassifier
	selector   ConsoleSelector
	comparator RateComparator
	cfg        ComposerConfig
	skip       map[string]bool
}

// NewCostComposer creates a composer.
func NewCostComposer(classifier FBAClassifier, selector ConsoleSelector, comparator RateComparator, cfg ComposerConfig) CostComposer {
	if cfg.USDToINR <= 0 {
		cfg.USDToINR = 88
	}
	skip := make(map[string]bool, len(cfg.SkipDestinations))
	for _, code := range cfg.SkipDestinations {
		skip[strings.ToUpper(strings.TrimSpace(code))] = true
	}
	return &CostComposerImpl{classifier: classifier, selector: selector, comparator: comparator, cfg: cfg, skip: skip}
}

// Compute implements CostComposer. A missing pickup charge on a
// Door-to-Door quote stops the computation; every other problem is
// recorded against its destination and the rest carry on.
func (c *CostComposerImpl) Compute(ctx context.Context, req ComposeRequest) (ComposeResult, error) {
	start := time.Now()
	res := ComposeResult{Results: model.LandedCosts{}, Errors: []string{}}

	if req.Scope == model.ScopeDoorToDoor && req.PickupCharges <= 0 {
		res.Errors = append(res.Errors, PickupChargesRequiredMessage)
		metrics.RecordQuoteComputation("compose", time.Since(start), "rejected")
		return res, ErrPickupChargesRequired
	}
	if req.Tables == nil {
		metrics.RecordQuoteComputation("compose", time.Since(start), "error")
		return res, ErrReferenceDataUnavailable
	}
	if req.AsOf.IsZero() {
		req.AsOf = time.Now()
	}
	if req.Cardinality == "" {
		req.Cardinality = model.CardinalityOf(len(req.Destinations))
	}

	for _, dest := range req.Destinations {
		if err := ctx.Err(); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Computation cancelled before %s: %v", dest.Destination, err))
			break
		}
		c.composeDestination(ctx, req, dest, &res)
	}

	status := "success"
	switch {
	case res.Results.Len() == 0:
		status = "empty"
	case len(res.Errors) > 0:
		status = "partial"
	}
	metrics.RecordQuoteComputation("compose", time.Since(start), status)
	return res, nil
}

func (c *CostComposerImpl) composeDestination(ctx context.Context, req ComposeRequest, dest model.ShipmentDestination, res *ComposeResult) {
	log := logger.For("composer")
	code := dest.FBACode()
	if c.skip[strings.ToUpper(code)] {
		res.Skipped = append(res.Skipped, dest.Destination)
		return
	}

	if len(dest.Cargo) == 0 {
		res.Errors = append(res.Errors, fmt.Sprintf("No cargo details for %s", dest.Destination))
		return
	}
	totals := model.AggregateCargo(dest.Cargo)

	locations := req.Tables.LocationsFor(code)
	if len(locations) == 0 {
		res.Errors = append(res.Errors, fmt.Sprintf("FBA Code %s not found in FBA locations", code))
		return
	}
	class := c.classifier.Classify(&locations[0], totals.CBM, req.Requested)

	for _, loc := range locations {
		sel := c.selector.Select(SelectionInput{
			Category:    class.Category,
			PortUnloc:   loc.FPODUnloc,
			Cardinality: req.Cardinality,
			Pallets:     totals.Pallets,
			CBM:         totals.CBM,
		})

		console := req.Console
		if console == "" || console == model.ConsoleNotSelected {
			if !sel.Matched() {
				res.Errors = append(res.Errors, fmt.Sprintf("No console rule matched for %s at %s (category %s)", dest.Destination, loc.FPODUnloc, class.Category))
				continue
			}
			console = sel.Console
		}

		modes := req.Requested
		switch {
		case len(modes) > 0:
		case sel.Matched():
			modes = sel.Modes
		default:
			modes = class.Eligible
		}

		cmp := c.comparator.Compare(ctx, ComparisonRequest{
			Origin:      Place{Zip: loc.FPODZip, City: loc.FPODCity, State: loc.FPODStateCode},
			Destination: Place{Zip: loc.FBAZip, City: loc.FBACity, State: loc.FBAStateCode},
			Pallets:     totals.Pallets,
			WeightKg:    totals.WeightKg,
			Category:    class.Category,
			Modes:       modes,
			Static:      req.Tables.StaticRates,
			AsOf:        req.AsOf,
			RequestID:   req.RequestID,
		})
		if len(cmp.Notes) > 0 {
			log.Debug().Str("destination", dest.Destination).Strs("notes", cmp.Notes).Msg("carrier notes")
		}

		tariffs := req.Tables.P2PFor(loc.FPODUnloc, console, req.AsOf)
		if len(tariffs) == 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("No P2P match found for FPOD %s, console type: %s", loc.FPODUnloc, console))
			continue
		}

		originUnloc := model.ParseUnloc(req.Origin)
		routed := 0
		for _, row := range tariffs {
			if req.Scope == model.ScopePortToDoor && !strings.EqualFold(row.POLUnloc, originUnloc) {
				continue
			}
			routed++
			b := c.breakdown(req, dest, loc, class, sel, modes, totals, cmp, row)
			res.Errors = append(res.Errors, b.Warnings...)
			res.Results.Put(b)
		}
		if routed == 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("No P2P route from %s to %s", originUnloc, loc.FPODUnloc))
		}
	}
}

func (c *CostComposerImpl) breakdown(
	req ComposeRequest,
	dest model.ShipmentDestination,
	loc model.FBALocation,
	class Classification,
	sel Selection,
	modes model.ServiceModes,
	totals model.CargoTotals,
	cmp Comparison,
	row model.P2PTariff,
) *model.ChargeBreakdown {
	cbm := totals.CBM
	b := &model.ChargeBreakdown{
		Destination:  dest.Destination,
		FBACode:      loc.FBACode,
		FBAZip:       ratesource.PadZip(loc.FBAZip),
		POL:          row.POLName,
		POLUnloc:     row.POLUnloc,
		FPOD:         loc.FPODCity,
		FPODUnloc:    loc.FPODUnloc,
		FPODZip:      ratesource.PadZip(loc.FPODZip),
		CarrierSCAC:  row.CarrierSCAC,
		Category:     string(class.Category),
		ConsoleType:  row.P2PType,
		ConditionTag: sel.Condition,
		Consolidator: class.Consolidator,
		Coast:        class.Coast,
		ServiceModes: modes,
		Quantity:     totals.Quantity,
		WeightKg:     totals.WeightKg,
		CBM:          cbm,
		Pallets:      totals.Pallets,
		LoosePallets: totals.LoosePallets,
		Loadability:  class.Loadability,
		LTL:          cmp.LTL,
		FTL:          cmp.FTL,
		FTL53:        cmp.FTL53,
		Drayage:      cmp.Drayage,
		Lowest:       cmp.Lowest,
		Selected:     cmp.Selected,
	}

	perCBM := row.PerCBMUSD
	if modes.Contains(model.RateDrayage) && row.P2PType == model.ConsoleOwn {
		loadability := row.Loadability
		if loadability <= 0 {
			loadability = class.Loadability
		}
		perCBM = 0
		if loadability > 0 {
			perCBM = (row.OriginChargesINR/c.cfg.USDToINR + row.OceanFreightUSD) / loadability
		}
	}
	b.P2P = model.Charge{Amount: perCBM * cbm, PerCBM: perCBM}

	doc, ok := req.Tables.AccessorialAmount(loc.FPODUnloc, model.ChargeHeadDocumentation)
	if !ok {
		b.Warnings = append(b.Warnings, fmt.Sprintf("Documentation charge missing for %s", loc.FPODUnloc))
	}
	b.Documentation = model.NewCharge(doc, cbm)

	if req.OCC {
		occ, ok := req.Tables.AccessorialAmount(row.POLUnloc, model.ChargeHeadOCC)
		if !ok {
			b.Warnings = append(b.Warnings, fmt.Sprintf("OCC charge missing for %s", row.POLUnloc))
		}
		b.OCC = model.NewCharge(occ, cbm)
	}
	if req.DCC {
		dcc, ok := req.Tables.AccessorialAmount(loc.FPODUnloc, model.ChargeHeadDCC)
		if !ok {
			b.Warnings = append(b.Warnings, fmt.Sprintf("DCC charge missing for %s", loc.FPODUnloc))
		}
		b.DCC = model.NewCharge(dcc, cbm)
	}

	palletRate, ok := req.Tables.PalletizationRate(loc.FPODUnloc)
	if !ok {
		b.Warnings = append(b.Warnings, fmt.Sprintf("Palletization cost missing for %s", loc.FPODUnloc))
	}
	b.Palletization = model.NewCharge(palletRate*float64(totals.LoosePallets), cbm)

	if req.Scope == model.ScopeDoorToDoor {
		b.FirstMile = model.NewCharge(req.PickupCharges, cbm)
	}
	b.LastMile = model.NewCharge(cmp.Selected.Rate, cbm)

	for _, h := range b.Heads() {
		b.Total += h.Amount
	}
	b.TotalPerCBM = model.DivideCBM(b.Total, cbm)
	return b
}
