package model

import (
	"math"
	"sort"
	"strings"
	"time"
)

// RateType is a last-mile service mode.
type RateType string

const (
	RateLTL     RateType = "LTL"
	RateFTL     RateType = "FTL"
	RateFTL53   RateType = "FTL53"
	RateDrayage RateType = "Drayage"
	// RateNA marks the zero-rate placeholder.
	RateNA RateType = "N/A"
)

// AllRateTypes lists the service modes in evaluation order.
var AllRateTypes = []RateType{RateLTL, RateFTL, RateFTL53, RateDrayage}

// ParseRateType returns the RateType for s, matching case-insensitively.
func ParseRateType(s string) (RateType, bool) {
	for _, rt := range AllRateTypes {
		if strings.EqualFold(string(rt), strings.TrimSpace(s)) {
			return rt, true
		}
	}
	return "", false
}

// RateSource tells where a candidate came from.
type RateSource string

const (
	SourceLiveAPI     RateSource = "live_api"
	SourceStaticTable RateSource = "static_table"
)

// RateCandidate is one priced option for a service mode.
type RateCandidate struct {
	RateType        RateType   `json:"rate_type" bson:"rate_type"`
	Rate            float64    `json:"rate" bson:"rate"`
	CarrierName     string     `json:"carrier_name" bson:"carrier_name"`
	ServiceProvider string     `json:"service_provider" bson:"service_provider"`
	Source          RateSource `json:"source,omitempty" bson:"source,omitempty"`
	ValidDate       time.Time  `json:"valid_date,omitempty" bson:"valid_date,omitempty"`
	// RawRate holds the carrier figure before normalisation or markup.
	RawRate float64 `json:"raw_rate,omitempty" bson:"raw_rate,omitempty"`
}

// Valid reports whether the candidate can take part in a comparison.
func (r RateCandidate) Valid() bool {
	return r.RateType != RateNA && !math.IsNaN(r.Rate) && !math.IsInf(r.Rate, 0) && r.Rate > 0
}

// NoRate returns the zero-rate placeholder used when nothing valid exists.
func NoRate() RateCandidate {
	return RateCandidate{RateType: RateNA, Rate: 0.0}
}

// LowestCandidate returns the cheapest valid candidate, or NoRate.
// Ties keep the earlier candidate.
func LowestCandidate(candidates ...RateCandidate) RateCandidate {
	best := NoRate()
	for _, c := range candidates {
		if !c.Valid() {
			continue
		}
		if !best.Valid() || c.Rate < best.Rate {
			best = c
		}
	}
	return best
}

// ServiceModes is a set of rate types kept in canonical order.
type ServiceModes []RateType

// NewServiceModes builds a de-duplicated, ordered set.
func NewServiceModes(modes ...RateType) ServiceModes {
	seen := make(map[RateType]bool, len(modes))
	out := make(ServiceModes, 0, len(modes))
	for _, m := range modes {
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return modeOrder(out[i]) < modeOrder(out[j]) })
	return out
}

func modeOrder(m RateType) int {
	for i, rt := range AllRateTypes {
		if rt == m {
			return i
		}
	}
	return len(AllRateTypes)
}

// Contains reports whether m is in the set.
func (s ServiceModes) Contains(m RateType) bool {
	for _, x := range s {
		if x == m {
			return true
		}
	}
	return false
}

// Is reports exact set equality with modes.
func (s ServiceModes) Is(modes ...RateType) bool {
	other := NewServiceModes(modes...)
	mine := NewServiceModes(s...)
	if len(other) != len(mine) {
		return false
	}
	for i := range mine {
		if mine[i] != other[i] {
			return false
		}
	}
	return true
}

// Strings returns the modes as plain strings.
func (s ServiceModes) Strings() []string {
	out := make([]string, len(s))
	for i, m := range s {
		out[i] = string(m)
	}
	return out
}

// String joins the modes with ", ".
func (s ServiceModes) String() string {
	return strings.Join(s.Strings(), ", ")
}
