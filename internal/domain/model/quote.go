package model

import (
	"regexp"
	"strings"
	"time"
)

var unlocPattern = regexp.MustCompile(`\((.*?)\)`)

// ParseUnloc extracts the location code from a label such as
// "Nhava Sheva (INNSA)". Labels without parentheses are returned trimmed.
func ParseUnloc(label string) string {
	if m := unlocPattern.FindStringSubmatch(label); len(m) == 2 {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(label)
}

// Quote is the shipment request stored against a quote id.
type Quote struct {
	ID                 string                `json:"id"`
	EntityID           string                `json:"entity_id,omitempty"`
	EntityName         string                `json:"entity_name,omitempty"`
	ShipmentScope      ShipmentScope         `json:"shipment_scope"`
	Origin             string                `json:"origin"`
	Destinations       []ShipmentDestination `json:"destinations"`
	CargoReadinessDate time.Time             `json:"cargo_readiness_date"`
	FBA                bool                  `json:"fba"`
	OCC                bool                  `json:"occ"`
	DCC                bool                  `json:"dcc"`
}

// Cardinality reports single or multiple destinations.
func (q *Quote) Cardinality() Cardinality {
	return CardinalityOf(len(q.Destinations))
}

// Quotation is one confirmed ledger row for a quote.
type Quotation struct {
	ID          string          `bson:"_id" json:"id"`
	QuoteID     string          `bson:"quote_id" json:"quote_id"`
	Destination string          `bson:"destination" json:"destination"`
	ConsoleType ConsoleType     `bson:"console_type" json:"console_type"`
	QuotedAt    time.Time       `bson:"quoted_at" json:"quoted_at"`
	Breakdown   ChargeBreakdown `bson:"breakdown" json:"breakdown"`
}
