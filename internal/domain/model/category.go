package model

import "strings"

// DemandCategory is the volume/activity class of an FBA destination.
type DemandCategory string

const (
	CategoryHot    DemandCategory = "HOT"
	CategoryNonHot DemandCategory = "NON-HOT"
	// CategoryWarm and CategoryCold come from the older three-bucket scheme.
	// Pre-set buckets in the location table may still carry them.
	CategoryWarm DemandCategory = "WARM"
	CategoryCold DemandCategory = "COLD"
)

// ParseDemandCategory normalises a free-form bucket label. Unknown or empty
// labels return "".
func ParseDemandCategory(s string) DemandCategory {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HOT":
		return CategoryHot
	case "NON-HOT", "NON HOT", "NONHOT":
		return CategoryNonHot
	case "WARM":
		return CategoryWarm
	case "COLD":
		return CategoryCold
	default:
		return ""
	}
}

// ConsoleType is the linehaul consolidation strategy.
type ConsoleType string

const (
	ConsoleOwn         ConsoleType = "Own Console"
	ConsoleCoload      ConsoleType = "Coload"
	ConsoleBoth        ConsoleType = "both selected"
	ConsoleNotSelected ConsoleType = "not selected"
)

// ConsoleFromFlags maps the two console checkboxes of a quote request.
func ConsoleFromFlags(own, coload bool) ConsoleType {
	switch {
	case own && coload:
		return ConsoleBoth
	case own:
		return ConsoleOwn
	case coload:
		return ConsoleCoload
	default:
		return ConsoleNotSelected
	}
}

// LookupConsoleType matches a console label case-insensitively and reports
// whether it is one of the known labels.
func LookupConsoleType(s string) (ConsoleType, bool) {
	for _, c := range []ConsoleType{ConsoleOwn, ConsoleCoload, ConsoleBoth, ConsoleNotSelected} {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return ConsoleNotSelected, false
}

// ParseConsoleType is LookupConsoleType for input that was already validated;
// an empty or unknown label is not selected.
func ParseConsoleType(s string) ConsoleType {
	c, _ := LookupConsoleType(s)
	return c
}

// Tariff reports whether c can label a P2P tariff row.
func (c ConsoleType) Tariff() bool {
	return c == ConsoleOwn || c == ConsoleCoload
}

// Cardinality says whether a quote ships to one or several destinations.
type Cardinality string

const (
	CardinalitySingle   Cardinality = "single"
	CardinalityMultiple Cardinality = "multiple"
)

// CardinalityOf returns multiple for more than one destination.
func CardinalityOf(destinations int) Cardinality {
	if destinations > 1 {
		return CardinalityMultiple
	}
	return CardinalitySingle
}

// ShipmentScope is the door/port extent of a quote.
type ShipmentScope string

const (
	ScopePortToDoor ShipmentScope = "Port-to-Door"
	ScopeDoorToDoor ShipmentScope = "Door-to-Door"
)

// Supported reports whether the FBA engine prices this scope.
func (s ShipmentScope) Supported() bool {
	return s == ScopePortToDoor || s == ScopeDoorToDoor
}
