package model

import (
	"strings"
	"time"
)

// Charge heads looked up in the accessorial and palletization tables.
const (
	ChargeHeadDocumentation = "Documentation"
	ChargeHeadOCC           = "OCC"
	ChargeHeadDCC           = "DCC"
	PalletizationPerPallet  = "Palletization cost Per Pallet"
)

// ValidityWindow bounds the dates a reference row applies to.
// A zero bound is open.
type ValidityWindow struct {
	ValidFrom time.Time `json:"valid_from,omitempty"`
	ValidTo   time.Time `json:"valid_to,omitempty"`
}

// Covers reports whether day falls inside the window, comparing calendar days.
func (w ValidityWindow) Covers(day time.Time) bool {
	d := truncateDay(day)
	if !w.ValidFrom.IsZero() && d.Before(truncateDay(w.ValidFrom)) {
		return false
	}
	if !w.ValidTo.IsZero() && d.After(truncateDay(w.ValidTo)) {
		return false
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FBALocation links an FBA code to a discharge port and carries the
// activity statistics used for classification.
type FBALocation struct {
	FBACode       string  `json:"fba_code"`
	FBAZip        string  `json:"fba_zip"`
	FBACity       string  `json:"fba_city"`
	FBAStateCode  string  `json:"fba_state_code"`
	FPODZip       string  `json:"fpod_zip"`
	FPODCity      string  `json:"fpod_city"`
	FPODUnloc     string  `json:"fpod_unloc"`
	FPODStateCode string  `json:"fpod_state_code"`
	FPODCFSName   string  `json:"fpod_cfs_name"`
	Last10Weeks   float64 `json:"last_10_weeks"`
	Last1Week     float64 `json:"last_1_week"`
	Last3Weeks    float64 `json:"last_3_weeks"`
	PresetBucket  string  `json:"preset_bucket"`
	Loadability   float64 `json:"loadability"`
	Consolidator  string  `json:"consolidator"`
	Coast         string  `json:"coast"`
}

// P2PTariff is one port-to-port linehaul row.
type P2PTariff struct {
	P2PType             ConsoleType `json:"p2p_type"`
	CarrierSCAC         string      `json:"carrier_scac"`
	POLName             string      `json:"pol_name"`
	POLUnloc            string      `json:"pol_unloc"`
	FPODName            string      `json:"fpod_name"`
	FPODUnloc           string      `json:"fpod_unloc"`
	OriginChargesINR    float64     `json:"origin_charges_inr"`
	OIH                 float64     `json:"oih"`
	OceanFreightUSD     float64     `json:"ocean_freight_usd"`
	DIH                 float64     `json:"dih"`
	DrayageDevanningUSD float64     `json:"drayage_devanning_usd"`
	TotalCostUSD        float64     `json:"total_cost_usd"`
	Loadability         float64     `json:"loadability"`
	PerCBMUSD           float64     `json:"per_cbm_usd"`
	Notes               string      `json:"notes,omitempty"`
	ValidityWindow
}

// Accessorial is a flat fee keyed by location and charge head.
type Accessorial struct {
	ChargeHead    string  `json:"charge_head"`
	FPOD          string  `json:"fpod"`
	LocationUnloc string  `json:"location_unloc"`
	Currency      string  `json:"currency"`
	Amount        float64 `json:"amount"`
}

// PalletizationCharge is a per-port palletization fee.
type PalletizationCharge struct {
	ServiceType string  `json:"service_type"`
	FPOD        string  `json:"fpod"`
	FPODUnloc   string  `json:"fpod_unloc"`
	Currency    string  `json:"currency"`
	Amount      float64 `json:"amount"`
}

// StaticRate is a negotiated last-mile rate row.
// LTL rows are keyed by pallet count; linehaul rows by weight,
// where a zero weight applies to any load.
type StaticRate struct {
	DeliveryType RateType  `json:"delivery_type"`
	OriginZip    string    `json:"origin_zip"`
	DestZip      string    `json:"dest_zip"`
	Pallets      int       `json:"pallets,omitempty"`
	WeightLbs    float64   `json:"weight_lbs,omitempty"`
	Rate         float64   `json:"rate"`
	CarrierName  string    `json:"carrier_name"`
	Broker       string    `json:"broker"`
	DateModified time.Time `json:"date_modified,omitempty"`
	ValidityWindow
}

// ReferenceTables is one consistent snapshot of all reference data,
// loaded fresh for each quote computation.
type ReferenceTables struct {
	Locations     []FBALocation         `json:"fba_locations"`
	P2P           []P2PTariff           `json:"p2p"`
	Accessorials  []Accessorial         `json:"accessorials"`
	Palletization []PalletizationCharge `json:"palletization"`
	StaticRates   []StaticRate          `json:"static_rates"`
}

// LocationsFor returns every port pairing known for an FBA code.
func (t *ReferenceTables) LocationsFor(fbaCode string) []FBALocation {
	var out []FBALocation
	for _, loc := range t.Locations {
		if loc.FBACode == fbaCode {
			out = append(out, loc)
		}
	}
	return out
}

// P2PFor returns tariff rows for a discharge port valid on asOf.
// ConsoleBoth and ConsoleNotSelected return every console type.
func (t *ReferenceTables) P2PFor(fpodUnloc string, console ConsoleType, asOf time.Time) []P2PTariff {
	anyConsole := console == ConsoleBoth || console == ConsoleNotSelected
	var out []P2PTariff
	for _, row := range t.P2P {
		if row.FPODUnloc != fpodUnloc || !row.Covers(asOf) {
			continue
		}
		if !anyConsole && !strings.EqualFold(string(row.P2PType), string(console)) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// AccessorialAmount returns the first fee for a location and charge head.
func (t *ReferenceTables) AccessorialAmount(unloc, chargeHead string) (float64, bool) {
	for _, a := range t.Accessorials {
		if a.LocationUnloc == unloc && a.ChargeHead == chargeHead {
			return a.Amount, true
		}
	}
	return 0, false
}

// PalletizationRate returns the per-pallet fee at a discharge port.
func (t *ReferenceTables) PalletizationRate(fpodUnloc string) (float64, bool) {
	for _, p := range t.Palletization {
		if p.FPODUnloc == fpodUnloc && p.ServiceType == PalletizationPerPallet {
			return p.Amount, true
		}
	}
	return 0, false
}
