// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"strings"
	"time"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/guttosm/fba-quote-service/internal/ratesource"
	"github.com/guttosm/fba-quote-service/internal/service"
)

// DateLayout is the calendar date format accepted by the API.
const DateLayout = "2006-01-02"

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	// ErrInvalidPickupCharges is returned for negative pickup charges.
	ErrInvalidPickupCharges = &ValidationError{Field: "pickup_charges", Message: "must not be negative"}
	// ErrInvalidServiceMode is returned for an unknown service mode.
	ErrInvalidServiceMode = &ValidationError{Field: "service_modes", Message: "must be one of LTL, FTL, FTL53, Drayage"}
	// ErrInvalidConsoleType is returned for an unknown console type.
	ErrInvalidConsoleType = &ValidationError{Field: "console_type", Message: "must be Own Console, Coload, both selected or not selected"}
	// ErrInvalidScope is returned for an unknown shipment scope.
	ErrInvalidScope = &ValidationError{Field: "shipment_scope", Message: "must be Port-to-Door or Door-to-Door"}
	// ErrInvalidAsOf is returned when as_of is not a calendar date.
	ErrInvalidAsOf = &ValidationError{Field: "as_of", Message: "must be a date formatted YYYY-MM-DD"}
	// ErrInvalidTimeRange is returned when an audit time bound is not RFC3339.
	ErrInvalidTimeRange = &ValidationError{Field: "start_time", Message: "start_time and end_time must be RFC3339 timestamps"}
)

// RateQuoteRequest represents the JSON body for rating a stored quote.
// Leaving every console and mode flag false lets the rules decide.
//
// @Description Overrides applied when rating a stored quote
type RateQuoteRequest struct {
	OwnConsole bool `json:"own_console" example:"false"`
	Coload     bool `json:"coload" example:"true"`
	LTL        bool `json:"ltl" example:"false"`
	FTL        bool `json:"ftl" example:"false"`
	FTL53      bool `json:"ftl53" example:"false"`
	Drayage    bool `json:"drayage" example:"false"`
	// PickupCharges is the first-mile cost, required for Door-to-Door quotes.
	PickupCharges float64 `json:"pickup_charges" example:"250"`
} // @name RateQuoteRequest

// Validate performs custom validation on the request.
func (r *RateQuoteRequest) Validate() error {
	if r.PickupCharges < 0 {
		return ErrInvalidPickupCharges
	}
	return nil
}

// ToService converts the body into a service request.
func (r *RateQuoteRequest) ToService(quoteID, requestID string) service.RateQuoteRequest {
	return service.RateQuoteRequest{
		QuoteID:       quoteID,
		OwnConsole:    r.OwnConsole,
		Coload:        r.Coload,
		LTL:           r.LTL,
		FTL:           r.FTL,
		FTL53:         r.FTL53,
		Drayage:       r.Drayage,
		PickupCharges: r.PickupCharges,
		RequestID:     requestID,
	}
}

// CargoItem is one cargo row. Dimensions are inches, weights kilograms.
// @Description Cargo line item
type CargoItem struct {
	PackageType   string  `json:"package_type" example:"Loose Cartons"`
	Quantity      int     `json:"quantity" binding:"gte=0" example:"100"`
	WeightPerUnit float64 `json:"weight_per_unit" binding:"gte=0" example:"15"`
	Length        float64 `json:"length" binding:"gte=0" example:"40"`
	Width         float64 `json:"width" binding:"gte=0" example:"30"`
	Height        float64 `json:"height" binding:"gte=0" example:"25"`
	TotalWeight   float64 `json:"total_weight,omitempty" binding:"gte=0"`
	TotalVolume   float64 `json:"total_volume,omitempty" binding:"gte=0"`
} // @name CargoItem

// ToModel converts the row into a cargo line item.
func (c CargoItem) ToModel() model.CargoLineItem {
	return model.CargoLineItem{
		PackageType:    model.ParsePackageType(c.PackageType),
		Quantity:       c.Quantity,
		WeightPerUnit:  c.WeightPerUnit,
		Length:         c.Length,
		Width:          c.Width,
		Height:         c.Height,
		TotalWeightKg:  c.TotalWeight,
		TotalVolumeCBM: c.TotalVolume,
	}
}

func cargoToModel(items []CargoItem) []model.CargoLineItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]model.CargoLineItem, len(items))
	for i, item := range items {
		out[i] = item.ToModel()
	}
	return out
}

// Destination is one delivery point with its cargo.
// @Description Shipment destination
type Destination struct {
	Destination string      `json:"destination" binding:"required" example:"ONT8 - Moreno Valley"`
	Cargo       []CargoItem `json:"cargo" binding:"required,min=1,dive"`
} // @name Destination

// ComputeRatesRequest represents the JSON body for pricing an inline shipment.
//
// @Description Inline shipment priced without a stored quote
type ComputeRatesRequest struct {
	Origin       string        `json:"origin" binding:"required" example:"Nhava Sheva (INNSA)"`
	Destinations []Destination `json:"destinations" binding:"required,min=1,dive"`
	// ConsoleType overrides console selection; empty lets the rules decide.
	ConsoleType string `json:"console_type,omitempty" example:"Coload"`
	// ServiceModes overrides mode selection; empty lets the rules decide.
	ServiceModes  []string `json:"service_modes,omitempty" example:"LTL"`
	OCC           bool     `json:"occ" example:"true"`
	DCC           bool     `json:"dcc" example:"true"`
	ShipmentScope string   `json:"shipment_scope,omitempty" example:"Port-to-Door"`
	PickupCharges float64  `json:"pickup_charges,omitempty" example:"0"`
	// AsOf selects tariff validity, YYYY-MM-DD. Defaults to today.
	AsOf string `json:"as_of,omitempty" example:"2025-07-22"`
} // @name ComputeRatesRequest

// Validate performs custom validation on the request.
func (r *ComputeRatesRequest) Validate() error {
	if r.PickupCharges < 0 {
		return ErrInvalidPickupCharges
	}
	for _, m := range r.ServiceModes {
		if _, ok := model.ParseRateType(m); !ok {
			return ErrInvalidServiceMode
		}
	}
	if strings.TrimSpace(r.ConsoleType) != "" {
		if _, ok := model.LookupConsoleType(r.ConsoleType); !ok {
			return ErrInvalidConsoleType
		}
	}
	if s := r.scope(); !s.Supported() {
		return ErrInvalidScope
	}
	if r.AsOf != "" {
		if _, err := time.Parse(DateLayout, r.AsOf); err != nil {
			return ErrInvalidAsOf
		}
	}
	return nil
}

func (r *ComputeRatesRequest) scope() model.ShipmentScope {
	s := strings.TrimSpace(r.ShipmentScope)
	switch {
	case s == "":
		return model.ScopePortToDoor
	case strings.EqualFold(s, string(model.ScopePortToDoor)):
		return model.ScopePortToDoor
	case strings.EqualFold(s, string(model.ScopeDoorToDoor)):
		return model.ScopeDoorToDoor
	default:
		return model.ShipmentScope(s)
	}
}

// ToService converts a validated body into a service request. now is used
// when as_of is absent.
func (r *ComputeRatesRequest) ToService(requestID string, now time.Time) service.ComputeRequest {
	modes := make([]model.RateType, 0, len(r.ServiceModes))
	for _, m := range r.ServiceModes {
		if rt, ok := model.ParseRateType(m); ok {
			modes = append(modes, rt)
		}
	}
	asOf := now
	if day, err := time.Parse(DateLayout, r.AsOf); err == nil {
		asOf = day
	}
	dests := make([]model.ShipmentDestination, len(r.Destinations))
	for i, d := range r.Destinations {
		dests[i] = model.ShipmentDestination{Destination: strings.TrimSpace(d.Destination), Cargo: cargoToModel(d.Cargo)}
	}
	return service.ComputeRequest{
		Origin:        r.Origin,
		Destinations:  dests,
		Console:       model.ParseConsoleType(r.ConsoleType),
		Requested:     model.NewServiceModes(modes...),
		OCC:           r.OCC,
		DCC:           r.DCC,
		Scope:         r.scope(),
		PickupCharges: r.PickupCharges,
		AsOf:          asOf,
		RequestID:     requestID,
	}
}

// TransportTotals is the totals alternative to cargo rows.
// @Description Shipment totals
type TransportTotals struct {
	Quantity int     `json:"quantity" example:"10"`
	WeightKg float64 `json:"weight_kg" example:"800"`
	CBM      float64 `json:"cbm" example:"4.2"`
} // @name TransportTotals

// TransportRatesRequest represents the JSON body for the transport rates tool.
// Exactly one of Cargo or Totals must be set.
//
// @Description Ad hoc US lane pricing
type TransportRatesRequest struct {
	Origin      string           `json:"origin" binding:"required" example:"07001, Avenel, New Jersey, NJ, United States"`
	Destination string           `json:"destination" binding:"required" example:"30303, Atlanta, Georgia, GA, United States"`
	Cargo       []CargoItem      `json:"cargo,omitempty" binding:"omitempty,dive"`
	Totals      *TransportTotals `json:"totals,omitempty"`
	// FBA defaults to true.
	FBA         *bool `json:"fba,omitempty" example:"true"`
	Liftgate    bool  `json:"liftgate" example:"false"`
	Residential bool  `json:"residential" example:"false"`
} // @name TransportRatesRequest

// ToService converts the body into a service request. Lane validation is
// left to the service.
func (r *TransportRatesRequest) ToService(requestID string) service.TransportRateRequest {
	req := service.TransportRateRequest{
		Origin:      strings.TrimSpace(r.Origin),
		Destination: strings.TrimSpace(r.Destination),
		Cargo:       cargoToModel(r.Cargo),
		Accessorials: ratesource.Accessorials{
			NonFBA:      r.FBA != nil && !*r.FBA,
			Liftgate:    r.Liftgate,
			Residential: r.Residential,
		},
		RequestID: requestID,
	}
	if r.Totals != nil {
		req.Totals = &service.TransportTotals{Quantity: r.Totals.Quantity, WeightKg: r.Totals.WeightKg, CBM: r.Totals.CBM}
	}
	return req
}

// AuditEventsQuery holds the query string of the audit listing.
type AuditEventsQuery struct {
	Stream    string `form:"stream"`
	RequestID string `form:"request_id"`
	Status    string `form:"status"`
	StartTime string `form:"start_time"`
	EndTime   string `form:"end_time"`
	Limit     int    `form:"limit" binding:"gte=0"`
	Skip      int    `form:"skip" binding:"gte=0"`
}

// ToOptions parses the time bounds and returns repository query options.
func (q *AuditEventsQuery) ToOptions() (model.AuditQueryOptions, error) {
	opts := model.AuditQueryOptions{
		Stream:    strings.TrimSpace(q.Stream),
		RequestID: strings.TrimSpace(q.RequestID),
		Status:    strings.TrimSpace(q.Status),
		Limit:     q.Limit,
		Skip:      q.Skip,
	}
	for _, bound := range []struct {
		raw string
		dst **time.Time
	}{{q.StartTime, &opts.StartTime}, {q.EndTime, &opts.EndTime}} {
		if bound.raw == "" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, bound.raw)
		if err != nil {
			return opts, ErrInvalidTimeRange
		}
		*bound.dst = &ts
	}
	return opts, nil
}
