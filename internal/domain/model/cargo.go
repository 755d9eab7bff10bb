// Package model provides domain models for the FBA quote service.
package model

import (
	"math"
	"strings"
)

// CBMPerPallet is the fixed loose-cargo to pallet conversion factor.
const CBMPerPallet = 1.8

// PackageType classifies a cargo line item.
type PackageType string

const (
	// PackagePallet is cargo already palletised by the shipper.
	PackagePallet PackageType = "Pallet"
	// PackageLooseCarton is loose cargo that gets palletised at the port.
	PackageLooseCarton PackageType = "LooseCarton"
)

// ParsePackageType maps the free-form package labels used by quote documents
// ("pallet", "Pallets", "Loose Cartons", ...) onto a PackageType.
func ParsePackageType(s string) PackageType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pallet", "pallets":
		return PackagePallet
	default:
		return PackageLooseCarton
	}
}

// CargoLineItem is one row of cargo for a destination.
// Dimensions are in inches and weights in kilograms. When TotalWeightKg or
// TotalVolumeCBM are set they are authoritative and win over derived values.
type CargoLineItem struct {
	PackageType    PackageType `json:"package_type" bson:"package_type"`
	Quantity       int         `json:"quantity" bson:"quantity"`
	WeightPerUnit  float64     `json:"weight_per_unit,omitempty" bson:"weight_per_unit,omitempty"`
	Length         float64     `json:"length,omitempty" bson:"length,omitempty"`
	Width          float64     `json:"width,omitempty" bson:"width,omitempty"`
	Height         float64     `json:"height,omitempty" bson:"height,omitempty"`
	TotalWeightKg  float64     `json:"total_weight,omitempty" bson:"total_weight,omitempty"`
	TotalVolumeCBM float64     `json:"total_volume,omitempty" bson:"total_volume,omitempty"`
}

// Weight returns the line weight in kilograms.
func (c CargoLineItem) Weight() float64 {
	if c.TotalWeightKg > 0 {
		return c.TotalWeightKg
	}
	return float64(c.Quantity) * c.WeightPerUnit
}

// Volume returns the line volume. The /1,000,000 factor is applied to the
// inch dimensions as-is; downstream constants are calibrated to it.
func (c CargoLineItem) Volume() float64 {
	if c.TotalVolumeCBM > 0 {
		return c.TotalVolumeCBM
	}
	return float64(c.Quantity) * (c.Length * c.Width * c.Height) / 1_000_000
}

// CargoTotals aggregates the cargo of one destination.
type CargoTotals struct {
	Quantity        int     `json:"quantity"`
	WeightKg        float64 `json:"weight_kg"`
	CBM             float64 `json:"cbm"`
	LooseCBM        float64 `json:"loose_cbm"`
	DeclaredPallets int     `json:"declared_pallets"`
	LoosePallets    int     `json:"loose_pallets"`
	Pallets         int     `json:"pallets"`
}

// PalletsForCBM converts loose cargo volume into a pallet count.
func PalletsForCBM(cbm float64) int {
	if cbm <= 0 {
		return 0
	}
	return int(math.Ceil(cbm / CBMPerPallet))
}

// AggregateCargo sums line items and derives the pallet count as
// declared pallets plus ceil(loose CBM / 1.8).
func AggregateCargo(items []CargoLineItem) CargoTotals {
	var t CargoTotals
	for _, item := range items {
		vol := item.Volume()
		t.Quantity += item.Quantity
		t.WeightKg += item.Weight()
		t.CBM += vol
		if item.PackageType == PackagePallet {
			t.DeclaredPallets += item.Quantity
		} else {
			t.LooseCBM += vol
		}
	}
	t.LoosePallets = PalletsForCBM(t.LooseCBM)
	t.Pallets = t.DeclaredPallets + t.LoosePallets
	return t
}

// ShipmentDestination is one delivery point of a quote with its cargo.
// The destination string starts with the FBA code, e.g. "ONT8 - Moreno Valley".
type ShipmentDestination struct {
	Destination string          `json:"destination" bson:"destination"`
	Cargo       []CargoLineItem `json:"cargo" bson:"cargo"`
}

// FBACode returns the facility code, the first whitespace separated token.
func (d ShipmentDestination) FBACode() string {
	fields := strings.Fields(d.Destination)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
