//go:build !integration

package service_test

import (
	"testing"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/guttosm/fba-quote-service/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestConsoleSelector_Select(t *testing.T) {
	selector := service.NewConsoleSelector([]string{"USNYC", "uschs"}, 25)
	modes := model.NewServiceModes
	band := modes(model.RateFTL, model.RateFTL53, model.RateLTL)

	tests := []struct {
		name    string
		in      service.SelectionInput
		want    string
		console model.ConsoleType
		modes   model.ServiceModes
	}{
		{
			name:    "premium single",
			in:      service.SelectionInput{Category: model.CategoryNonHot, PortUnloc: "USNYC", Cardinality: model.CardinalitySingle, Pallets: 40},
			want:    "condition1",
			console: model.ConsoleOwn,
			modes:   modes(model.RateDrayage),
		},
		{
			name:    "premium multiple small",
			in:      service.SelectionInput{Category: model.CategoryHot, PortUnloc: "uschs", Cardinality: model.CardinalityMultiple, Pallets: 5},
			want:    "condition2",
			console: model.ConsoleOwn,
			modes:   modes(model.RateFTL),
		},
		{
			name:    "premium multiple mid band",
			in:      service.SelectionInput{PortUnloc: "USCHS", Cardinality: model.CardinalityMultiple, Pallets: 12},
			want:    "condition2",
			console: model.ConsoleOwn,
			modes:   modes(model.RateFTL53),
		},
		{
			name:    "non-premium hot single",
			in:      service.SelectionInput{Category: model.CategoryHot, PortUnloc: "USLGB", Cardinality: model.CardinalitySingle, Pallets: 2},
			want:    "condition3",
			console: model.ConsoleOwn,
			modes:   modes(model.RateDrayage),
		},
		{
			name:    "non-premium multiple over volume",
			in:      service.SelectionInput{Category: model.CategoryHot, PortUnloc: "USLGB", Cardinality: model.CardinalityMultiple, Pallets: 26, CBM: 30},
			want:    "condition4",
			console: model.ConsoleOwn,
			modes:   modes(model.RateFTL53),
		},
		{
			name:    "non-premium non-hot coload",
			in:      service.SelectionInput{Category: model.CategoryNonHot, PortUnloc: "USLGB", Cardinality: model.CardinalitySingle, Pallets: 27},
			want:    "condition5",
			console: model.ConsoleCoload,
			modes:   band,
		},
		{
			name:    "warm multiple at volume limit",
			in:      service.SelectionInput{Category: model.CategoryWarm, PortUnloc: "USSAV", Cardinality: model.CardinalityMultiple, Pallets: 11, CBM: 25},
			want:    "condition5",
			console: model.ConsoleCoload,
			modes:   modes(model.RateFTL),
		},
		{
			name:    "cold single",
			in:      service.SelectionInput{Category: model.CategoryCold, PortUnloc: "USSAV", Cardinality: model.CardinalitySingle, Pallets: 14},
			want:    "condition5",
			console: model.ConsoleCoload,
			modes:   modes(model.RateFTL53),
		},
		{
			name:    "hot multiple under volume matches nothing",
			in:      service.SelectionInput{Category: model.CategoryHot, PortUnloc: "USLGB", Cardinality: model.CardinalityMultiple, Pallets: 4, CBM: 20},
			console: model.ConsoleNotSelected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selector.Select(tt.in)
			assert.Equal(t, tt.want, got.Condition)
			assert.Equal(t, tt.console, got.Console)
			assert.Equal(t, tt.want != "", got.Matched())
			if tt.modes == nil {
				assert.Empty(t, got.Modes)
			} else {
				assert.Equal(t, tt.modes, got.Modes)
			}
		})
	}
}

func TestPalletBandModes(t *testing.T) {
	tests := []struct {
		pallets int
		want    model.ServiceModes
	}{
		{0, model.NewServiceModes(model.RateFTL)},
		{11, model.NewServiceModes(model.RateFTL)},
		{12, model.NewServiceModes(model.RateFTL53)},
		{26, model.NewServiceModes(model.RateFTL53)},
		{27, model.NewServiceModes(model.RateLTL, model.RateFTL, model.RateFTL53)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, service.PalletBandModes(tt.pallets), "pallets=%d", tt.pallets)
	}
}
