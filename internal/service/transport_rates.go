package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/fba-quote-service/internal/audit"
	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/guttosm/fba-quote-service/internal/logger"
	"github.com/guttosm/fba-quote-service/internal/metrics"
	"github.com/guttosm/fba-quote-service/internal/ratesource"
	"github.com/guttosm/fba-quote-service/internal/repository"
)

// Address is a US address in "zip, city, state, state code, country" form.
type Address struct {
	Zip       string `json:"zip"`
	City      string `json:"city"`
	State     string `json:"state"`
	StateCode string `json:"state_code"`
	Country   string `json:"country"`
}

// ParseAddress splits an address label into its five parts.
func ParseAddress(label string) (Address, error) {
	parts := strings.Split(label, ",")
	if len(parts) != 5 {
		return Address{}, fmt.Errorf("%w: invalid address format: %q", ErrInvalidLane, label)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return Address{Zip: parts[0], City: parts[1], State: parts[2], StateCode: parts[3], Country: parts[4]}, nil
}

// IsUSLocation reports whether any comma part names the United States.
func IsUSLocation(label string) bool {
	for _, p := range strings.Split(label, ",") {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "united states", "us", "usa":
			return true
		}
	}
	return false
}

// TransportTotals is the totals alternative to cargo rows.
type TransportTotals struct {
	Quantity int     `json:"quantity"`
	WeightKg float64 `json:"weight_kg"`
	CBM      float64 `json:"cbm"`
}

// TransportRateRequest prices one ad hoc US lane.
type TransportRateRequest struct {
	Origin       string
	Destination  string
	Cargo        []model.CargoLineItem
	Totals       *TransportTotals
	Accessorials ratesource.Accessorials
	AsOf         time.Time
	RequestID    string
}

// TransportRates lists every candidate found per mode.
type TransportRates struct {
	LTL               []model.RateCandidate `json:"ltl"`
	FTL               []model.RateCandidate `json:"ftl"`
	FTL53             []model.RateCandidate `json:"ftl53"`
	Drayage           []model.RateCandidate `json:"drayage"`
	Pallets           int                   `json:"pallets"`
	WeightKg          float64               `json:"weight_kg"`
	CBM               float64               `json:"cbm"`
	PalletizationCost float64               `json:"palletization_cost"`
	Errors            []string              `json:"errors"`
}

// TransportRateService prices lanes outside a quote.
type TransportRateService interface {
	Rates(ctx context.Context, req TransportRateRequest) (*TransportRates, error)
}

// TransportConfig holds the fixed weights and display pallet cost.
type TransportConfig struct {
	FTLWeightLbs       float64
	TruckloadWeightLbs float64
	PalletCostUSD      float64
}

// TransportRateServiceImpl implements TransportRateService.
type TransportRateServiceImpl struct {
	resolver ratesource.Resolver
	refs     repository.ReferenceRepositoryInterface
	recorder audit.Recorder
	cfg      TransportConfig
	now      func() time.Time
}

// NewTransportRateService creates the service. refs may be nil, in which
// case only live carriers are consulted.
func NewTransportRateService(resolver ratesource.Resolver, refs repository.ReferenceRepositoryInterface, recorder audit.Recorder, cfg TransportConfig) TransportRateService {
	if recorder == nil {
		recorder = audit.Nop{}
	}
	return &TransportRateServiceImpl{resolver: resolver, refs: refs, recorder: recorder, cfg: cfg, now: time.Now}
}

// Rates implements TransportRateService. Validation failures wrap
// ErrInvalidLane; carrier problems are listed in Errors.
func (s *TransportRateServiceImpl) Rates(ctx context.Context, req TransportRateRequest) (*TransportRates, error) {
	start := time.Now()
	origin, dest, err := validateLane(req)
	if err != nil {
		metrics.RecordQuoteComputation("transport", time.Since(start), "invalid")
		return nil, err
	}

	out := &TransportRates{Errors: []string{}}
	if req.Totals != nil {
		out.WeightKg = req.Totals.WeightKg
		out.CBM = req.Totals.CBM
		out.Pallets = model.PalletsForCBM(req.Totals.CBM)
	} else {
		totals := model.AggregateCargo(req.Cargo)
		out.WeightKg = totals.WeightKg
		out.CBM = totals.CBM
		out.Pallets = totals.Pallets
	}
	out.PalletizationCost = float64(out.Pallets) * s.cfg.PalletCostUSD

	acc := req.Accessorials
	if acc.Liftgate {
		acc.Residential = true
	}
	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = s.now()
	}

	var static []model.StaticRate
	if s.refs != nil {
		tables, err := s.refs.Load(ctx)
		if err != nil {
			log := logger.For("transport")
			log.Warn().Err(err).Msg("reference data unavailable, using live carriers only")
			out.Errors = append(out.Errors, "Static rate table unavailable")
		} else {
			static = tables.StaticRates
		}
	}

	base := ratesource.Query{
		OriginZip:    origin.Zip,
		OriginCity:   origin.City,
		OriginState:  origin.StateCode,
		DestZip:      dest.Zip,
		DestCity:     dest.City,
		DestState:    dest.StateCode,
		WeightKg:     out.WeightKg,
		Pallets:      out.Pallets,
		Accessorials: acc,
		AsOf:         asOf,
		Static:       static,
		RequestID:    req.RequestID,
	}
	collect := func(mode model.RateType, lbs float64, withStatic bool) []model.RateCandidate {
		q := base
		q.Mode = mode
		q.WeightLbs = lbs
		if !withStatic {
			q.Static = nil
		}
		res := s.resolver.Collect(ctx, q)
		for _, note := range res.Notes() {
			out.Errors = append(out.Errors, string(mode)+": "+note)
		}
		if res.Candidates == nil {
			return []model.RateCandidate{}
		}
		return res.Candidates
	}
	out.LTL = collect(model.RateLTL, 0, true)
	out.FTL = collect(model.RateFTL, s.cfg.FTLWeightLbs, true)
	out.FTL53 = collect(model.RateFTL53, s.cfg.TruckloadWeightLbs, true)
	out.Drayage = collect(model.RateDrayage, s.cfg.TruckloadWeightLbs, false)

	s.record(req, origin, dest, out)
	metrics.RecordQuoteComputation("transport", time.Since(start), "success")
	return out, nil
}

func (s *TransportRateServiceImpl) record(req TransportRateRequest, origin, dest Address, out *TransportRates) {
	status := model.AuditStatusSuccess
	if len(out.Errors) > 0 {
		status = model.AuditStatusError
	}
	best := func(cands []model.RateCandidate) float64 {
		return model.LowestCandidate(cands...).Rate
	}
	event := model.NewAuditEvent(model.StreamTransportRates, status, "transport rates computed").WithFields(map[string]interface{}{
		"origin":             req.Origin,
		"destination":        req.Destination,
		"origin_zip":         origin.Zip,
		"destination_zip":    dest.Zip,
		"pallets":            out.Pallets,
		"weight_kg":          out.WeightKg,
		"cbm":                out.CBM,
		"non_fba":            req.Accessorials.NonFBA,
		"liftgate":           req.Accessorials.Liftgate,
		"residential":        req.Accessorials.Residential || req.Accessorials.Liftgate,
		"ltl_best":           best(out.LTL),
		"ftl_best":           best(out.FTL),
		"ftl53_best":         best(out.FTL53),
		"drayage_best":       best(out.Drayage),
		"palletization_cost": out.PalletizationCost,
		"errors":             strings.Join(out.Errors, "; "),
	})
	event.RequestID = req.RequestID
	s.recorder.Record(event)
}

func validateLane(req TransportRateRequest) (Address, Address, error) {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidLane}, args...)...)
	}
	switch {
	case strings.TrimSpace(req.Origin) == "":
		return Address{}, Address{}, invalid("origin is required")
	case strings.TrimSpace(req.Destination) == "":
		return Address{}, Address{}, invalid("destination is required")
	case strings.EqualFold(strings.TrimSpace(req.Origin), strings.TrimSpace(req.Destination)):
		return Address{}, Address{}, invalid("origin and destination cannot be the same")
	case !IsUSLocation(req.Origin):
		return Address{}, Address{}, invalid("origin must be in the United States")
	case !IsUSLocation(req.Destination):
		return Address{}, Address{}, invalid("destination must be in the United States")
	}

	origin, err := ParseAddress(req.Origin)
	if err != nil {
		return Address{}, Address{}, err
	}
	dest, err := ParseAddress(req.Destination)
	if err != nil {
		return Address{}, Address{}, err
	}

	switch {
	case req.Totals != nil && len(req.Cargo) > 0:
		return Address{}, Address{}, invalid("provide either cargo rows or totals, not both")
	case req.Totals == nil && len(req.Cargo) == 0:
		return Address{}, Address{}, invalid("provide cargo rows or totals")
	case req.Totals != nil:
		if req.Totals.Quantity <= 0 {
			return Address{}, Address{}, invalid("total quantity must be greater than zero")
		}
		if req.Totals.WeightKg <= 0 {
			return Address{}, Address{}, invalid("total weight must be greater than zero")
		}
		if req.Totals.CBM <= 0 {
			return Address{}, Address{}, invalid("total volume must be greater than zero")
		}
	default:
		for i, row := range req.Cargo {
			n := i + 1
			if row.Quantity <= 0 {
				return Address{}, Address{}, invalid("row %d: quantity must be greater than zero", n)
			}
			if row.WeightPerUnit <= 0 {
				return Address{}, Address{}, invalid("row %d: weight must be greater than zero", n)
			}
			if row.Length <= 0 || row.Width <= 0 || row.Height <= 0 {
				return Address{}, Address{}, invalid("row %d: dimensions must be greater than zero", n)
			}
		}
	}
	return origin, dest, nil
}
