package ratesource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/guttosm/fba-quote-service/config"
	"github.com/guttosm/fba-quote-service/internal/domain/model"
)

var errNoParsableRoute = errors.New("no route could be parsed")

// ExFreight quotes LTL through the Ex-Freight rating API.
type ExFreight struct {
	cfg    config.ExFreightConfig
	client *http.Client
	opts   options
}

// NewExFreight creates the adapter.
func NewExFreight(cfg config.ExFreightConfig, client *http.Client, opts ...Option) *ExFreight {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &ExFreight{cfg: cfg, client: client, opts: o}
}

// Name implements Adapter.
func (e *ExFreight) Name() string { return ProviderExFreight }

// Stream is the audit stream for Ex-Freight calls.
func (e *ExFreight) Stream() string { return model.StreamExFreight }

// AuditFields lists the query parameters recorded per call.
func (e *ExFreight) AuditFields(q Query) map[string]interface{} {
	return map[string]interface{}{
		"origin":      PadZip(q.OriginZip),
		"destination": PadZip(q.DestZip),
		"weight_kg":   exFreightWeight(q.WeightKg),
		"quantity":    q.Pallets,
	}
}

type exFreightPlace struct {
	Country string `json:"country"`
	Postal  string `json:"postal"`
}

type exFreightMeasure struct {
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
}

type exFreightAccessorial struct {
	Category string `json:"category"`
	Scope    string `json:"scope"`
}

type exFreightItem struct {
	Description       string `json:"description"`
	DimensionedPieces struct {
		Height   exFreightMeasure `json:"height"`
		Length   exFreightMeasure `json:"length"`
		Width    exFreightMeasure `json:"width"`
		Quantity int              `json:"quantity"`
	} `json:"dimensioned_pieces"`
	IsHazardous bool             `json:"is_hazardous"`
	TotalWeight exFreightMeasure `json:"total_weight"`
}

type exFreightRequest struct {
	Pickup   exFreightPlace `json:"pickup"`
	Delivery exFreightPlace `json:"delivery"`
	ShipDay  string         `json:"ship_day"`
	LTL      struct {
		Accessorials []exFreightAccessorial `json:"accessorials"`
		FreightClass string                 `json:"freight_class"`
		Items        []exFreightItem        `json:"items"`
	} `json:"ltl"`
	Product         string      `json:"product"`
	ResultFiltering interface{} `json:"result_filtering"`
}

type exFreightResponse struct {
	Routes []exFreightRoute `json:"routes"`
}

type exFreightRoute struct {
	SCAC        string `json:"scac"`
	TransitDays *int   `json:"transit_days"`
	ValidUntil  string `json:"valid_until"`
	TotalCharge *struct {
		Value float64 `json:"value"`
	} `json:"total_charge"`
	Legs []struct {
		Carrier struct {
			Name string `json:"name"`
		} `json:"carrier"`
	} `json:"legs"`
}

func exFreightAccessorials(a Accessorials) []exFreightAccessorial {
	switch {
	case !a.NonFBA:
		return []exFreightAccessorial{
			{Category: "amazon_fba_delivery", Scope: "at_delivery"},
			{Category: "ocean_cfs_pickup", Scope: "at_pickup"},
		}
	case a.Liftgate:
		return []exFreightAccessorial{
			{Category: "lift_gate", Scope: "at_delivery"},
			{Category: "residential", Scope: "at_delivery"},
		}
	case a.Residential:
		return []exFreightAccessorial{{Category: "residential", Scope: "at_delivery"}}
	default:
		return []exFreightAccessorial{}
	}
}

// exFreightWeight rounds the shipment weight up to whole kilograms.
func exFreightWeight(kg float64) float64 {
	return math.Ceil(kg)
}

// Quote implements Adapter.
func (e *ExFreight) Quote(ctx context.Context, q Query) (model.RateCandidate, error) {
	if e.cfg.Token == "" {
		return model.RateCandidate{}, failure(ProviderExFreight, ReasonNotConfigured, nil)
	}

	var payload exFreightRequest
	payload.Pickup = exFreightPlace{Country: "US", Postal: PadZip(q.OriginZip)}
	payload.Delivery = exFreightPlace{Country: "US", Postal: PadZip(q.DestZip)}
	payload.ShipDay = e.opts.now().Format("2006-01-02")
	payload.LTL.Accessorials = exFreightAccessorials(q.Accessorials)
	payload.LTL.FreightClass = "85"
	payload.Product = "all"

	var item exFreightItem
	item.Description = "GENERAL"
	item.DimensionedPieces.Height = exFreightMeasure{Unit: "inch", Value: palletHeightIn}
	item.DimensionedPieces.Length = exFreightMeasure{Unit: "inch", Value: palletLengthIn}
	item.DimensionedPieces.Width = exFreightMeasure{Unit: "inch", Value: palletWidthIn}
	item.DimensionedPieces.Quantity = q.Pallets
	item.TotalWeight = exFreightMeasure{Unit: "kilogram", Value: exFreightWeight(q.WeightKg)}
	payload.LTL.Items = []exFreightItem{item}

	body, err := json.Marshal(payload)
	if err != nil {
		return model.RateCandidate{}, failure(ProviderExFreight, ReasonDecode, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return model.RateCandidate{}, failure(ProviderExFreight, ReasonTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "token "+e.cfg.Token)
	if e.cfg.PartnerID != "" {
		req.Header.Set("Exfresso-Partner-Id", e.cfg.PartnerID)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return model.RateCandidate{}, failure(ProviderExFreight, ReasonTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return model.RateCandidate{}, failure(ProviderExFreight, ReasonAuth, statusError(resp))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.RateCandidate{}, failure(ProviderExFreight, ReasonStatus, statusError(resp))
	}

	var out exFreightResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return model.RateCandidate{}, failure(ProviderExFreight, ReasonDecode, err)
	}
	if len(out.Routes) == 0 {
		return model.RateCandidate{}, failure(ProviderExFreight, ReasonNoRates, nil)
	}

	best := model.NoRate()
	var parsed int
	for _, route := range out.Routes {
		if route.TotalCharge == nil || len(route.Legs) == 0 {
			continue
		}
		parsed++
		c := model.RateCandidate{
			RateType:        q.Mode,
			Rate:            route.TotalCharge.Value / 100,
			RawRate:         route.TotalCharge.Value / 100,
			CarrierName:     route.Legs[0].Carrier.Name,
			ServiceProvider: ProviderExFreight,
			Source:          model.SourceLiveAPI,
			ValidDate:       parseValidUntil(route.ValidUntil, e.opts.now()),
		}
		best = model.LowestCandidate(best, c)
	}
	if parsed == 0 {
		return model.RateCandidate{}, failure(ProviderExFreight, ReasonDecode, errNoParsableRoute)
	}
	if !best.Valid() {
		return model.RateCandidate{}, failure(ProviderExFreight, ReasonNoRates, nil)
	}
	return best, nil
}

func parseValidUntil(s string, fallback time.Time) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return fallback
}
