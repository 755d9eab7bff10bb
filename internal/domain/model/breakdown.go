package model

// Charge head labels in display order.
const (
	HeadFirstMile     = "1st-Mile"
	HeadOCC           = "OCC"
	HeadDCC           = "DCC"
	HeadP2P           = "P2P"
	HeadDocumentation = "Documentation"
	HeadPalletization = "Palletization"
	HeadLastMile      = "LastMile"
)

// ChargeHeads lists every charge head in display order.
var ChargeHeads = []string{
	HeadFirstMile, HeadOCC, HeadDCC, HeadP2P, HeadDocumentation, HeadPalletization, HeadLastMile,
}

// Charge is an absolute USD amount and its per-CBM value.
type Charge struct {
	Amount float64 `json:"amount" bson:"amount"`
	PerCBM float64 `json:"per_cbm" bson:"per_cbm"`
}

// NamedCharge pairs a charge head label with its amount.
type NamedCharge struct {
	Head string `json:"head"`
	Charge
}

// ChargeBreakdown is the landed cost of one destination under one
// console type.
type ChargeBreakdown struct {
	Destination  string       `json:"destination" bson:"destination"`
	FBACode      string       `json:"fba_code" bson:"fba_code"`
	FBAZip       string       `json:"fba_zip" bson:"fba_zip"`
	POL          string       `json:"pol" bson:"pol"`
	POLUnloc     string       `json:"pol_unloc" bson:"pol_unloc"`
	FPOD         string       `json:"fpod" bson:"fpod"`
	FPODUnloc    string       `json:"fpod_unloc" bson:"fpod_unloc"`
	FPODZip      string       `json:"fpod_zip" bson:"fpod_zip"`
	CarrierSCAC  string       `json:"carrier_scac,omitempty" bson:"carrier_scac,omitempty"`
	Category     string       `json:"category" bson:"category"`
	ConsoleType  ConsoleType  `json:"console_type" bson:"console_type"`
	ConditionTag string       `json:"condition_tag,omitempty" bson:"condition_tag,omitempty"`
	Consolidator string       `json:"consolidator,omitempty" bson:"consolidator,omitempty"`
	Coast        string       `json:"coast,omitempty" bson:"coast,omitempty"`
	ServiceModes ServiceModes `json:"service_modes" bson:"service_modes"`

	Quantity     int     `json:"quantity" bson:"quantity"`
	WeightKg     float64 `json:"weight_kg" bson:"weight_kg"`
	CBM          float64 `json:"cbm" bson:"cbm"`
	Pallets      int     `json:"pallets" bson:"pallets"`
	LoosePallets int     `json:"loose_pallets" bson:"loose_pallets"`
	Loadability  float64 `json:"loadability" bson:"loadability"`

	LTL      RateCandidate `json:"ltl" bson:"ltl"`
	FTL      RateCandidate `json:"ftl" bson:"ftl"`
	FTL53    RateCandidate `json:"ftl53" bson:"ftl53"`
	Drayage  RateCandidate `json:"drayage" bson:"drayage"`
	Lowest   RateCandidate `json:"lowest" bson:"lowest"`
	Selected RateCandidate `json:"selected" bson:"selected"`

	FirstMile     Charge `json:"first_mile" bson:"first_mile"`
	OCC           Charge `json:"occ" bson:"occ"`
	DCC           Charge `json:"dcc" bson:"dcc"`
	P2P           Charge `json:"p2p" bson:"p2p"`
	Documentation Charge `json:"documentation" bson:"documentation"`
	Palletization Charge `json:"palletization" bson:"palletization"`
	LastMile      Charge `json:"last_mile" bson:"last_mile"`

	Total       float64  `json:"total" bson:"total"`
	TotalPerCBM float64  `json:"total_per_cbm" bson:"total_per_cbm"`
	Warnings    []string `json:"warnings,omitempty" bson:"warnings,omitempty"`
}

// Heads returns the charge heads in display order.
func (b *ChargeBreakdown) Heads() []NamedCharge {
	return []NamedCharge{
		{HeadFirstMile, b.FirstMile},
		{HeadOCC, b.OCC},
		{HeadDCC, b.DCC},
		{HeadP2P, b.P2P},
		{HeadDocumentation, b.Documentation},
		{HeadPalletization, b.Palletization},
		{HeadLastMile, b.LastMile},
	}
}

// DivideCBM returns amount/cbm with cbm floored at 1.
func DivideCBM(amount, cbm float64) float64 {
	if cbm < 1 {
		cbm = 1
	}
	return amount / cbm
}

// NewCharge builds a charge with its per-CBM value.
func NewCharge(amount, cbm float64) Charge {
	return Charge{Amount: amount, PerCBM: DivideCBM(amount, cbm)}
}

// LandedCosts maps destination to console type to breakdown.
type LandedCosts map[string]map[ConsoleType]*ChargeBreakdown

// Put stores a breakdown under its destination and console type.
func (l LandedCosts) Put(b *ChargeBreakdown) {
	inner, ok := l[b.Destination]
	if !ok {
		inner = make(map[ConsoleType]*ChargeBreakdown)
		l[b.Destination] = inner
	}
	inner[b.ConsoleType] = b
}

// Len counts breakdowns across all destinations.
func (l LandedCosts) Len() int {
	n := 0
	for _, inner := range l {
		n += len(inner)
	}
	return n
}
