package service

import (
	"strings"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
)

// SelectionInput is what the console selector decides on.
type SelectionInput struct {
	Category    model.DemandCategory
	PortUnloc   string
	Cardinality model.Cardinality
	Pallets     int
	CBM         float64
}

// Selection is the console type and last-mile modes for a destination.
// An unmatched selection has an empty condition and ConsoleNotSelected.
type Selection struct {
	Condition string             `json:"condition"`
	Console   model.ConsoleType  `json:"console_type"`
	Modes     model.ServiceModes `json:"service_modes"`
}

// Matched reports whether a rule applied.
func (s Selection) Matched() bool {
	return s.Condition != ""
}

// ConsoleSelector picks console type and service modes.
type ConsoleSelector interface {
	Select(in SelectionInput) Selection
}

type selectorRule struct {
	condition string
	match     func(in SelectionInput, premium bool) bool
	console   model.ConsoleType
	modes     func(in SelectionInput) model.ServiceModes
}

// ConsoleSelectorImpl evaluates an ordered rule table; the first match wins.
type ConsoleSelectorImpl struct {
	premium      map[string]bool
	multiDestCBM float64
	rules        []selectorRule
}

// NewConsoleSelector creates a selector. premiumPorts are the discharge
// ports served by own console drayage; multiDestCBM is the volume above
// which a non-premium multi-destination quote moves to own console.
func NewConsoleSelector(premiumPorts []string, multiDestCBM float64) ConsoleSelector {
	s := &ConsoleSelectorImpl{premium: make(map[string]bool, len(premiumPorts)), multiDestCBM: multiDestCBM}
	for _, p := range premiumPorts {
		s.premium[strings.ToUpper(strings.TrimSpace(p))] = true
	}
	s.rules = s.ruleTable()
	return s
}

func drayageOnly(SelectionInput) model.ServiceModes {
	return model.NewServiceModes(model.RateDrayage)
}

func byPalletBand(in SelectionInput) model.ServiceModes {
	return PalletBandModes(in.Pallets)
}

// PalletBandModes maps a pallet count onto its last-mile service set.
func PalletBandModes(pallets int) model.ServiceModes {
	switch {
	case pallets < 12:
		return model.NewServiceModes(model.RateFTL)
	case pallets <= 26:
		return model.NewServiceModes(model.RateFTL53)
	default:
		return model.NewServiceModes(model.RateFTL, model.RateFTL53, model.RateLTL)
	}
}

func (s *ConsoleSelectorImpl) ruleTable() []selectorRule {
	return []selectorRule{
		{
			condition: "condition1",
			match: func(in SelectionInput, premium bool) bool {
				return premium && in.Cardinality == model.CardinalitySingle
			},
			console: model.ConsoleOwn,
			modes:   drayageOnly,
		},
		{
			condition: "condition2",
			match: func(in SelectionInput, premium bool) bool {
				return premium && in.Cardinality == model.CardinalityMultiple
			},
			console: model.ConsoleOwn,
			modes:   byPalletBand,
		},
		{
			condition: "condition3",
			match: func(in SelectionInput, premium bool) bool {
				return !premium && in.Category == model.CategoryHot && in.Cardinality == model.CardinalitySingle
			},
			console: model.ConsoleOwn,
			modes:   drayageOnly,
		},
		{
			condition: "condition4",
			match: func(in SelectionInput, premium bool) bool {
				return !premium && in.Cardinality == model.CardinalityMultiple && in.CBM > s.multiDestCBM
			},
			console: model.ConsoleOwn,
			modes:   byPalletBand,
		},
		{
			condition: "condition5",
			match: func(in SelectionInput, premium bool) bool {
				switch in.Category {
				case model.CategoryWarm, model.CategoryCold, model.CategoryNonHot:
					return !premium
				}
				return false
			},
			console: model.ConsoleCoload,
			modes:   byPalletBand,
		},
	}
}

// Select implements ConsoleSelector.
func (s *ConsoleSelectorImpl) Select(in SelectionInput) Selection {
	premium := s.premium[strings.ToUpper(strings.TrimSpace(in.PortUnloc))]
	for _, r := range s.rules {
		if r.match(in, premium) {
			return Selection{Condition: r.condition, Console: r.console, Modes: r.modes(in)}
		}
	}
	return Selection{Console: model.ConsoleNotSelected}
}
