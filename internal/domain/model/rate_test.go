package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateCandidate_Valid(t *testing.T) {
	tests := []struct {
		name string
		c    RateCandidate
		want bool
	}{
		{"positive", RateCandidate{RateType: RateLTL, Rate: 10}, true},
		{"zero", RateCandidate{RateType: RateLTL, Rate: 0}, false},
		{"negative", RateCandidate{RateType: RateFTL, Rate: -1}, false},
		{"nan", RateCandidate{RateType: RateFTL, Rate: math.NaN()}, false},
		{"inf", RateCandidate{RateType: RateFTL, Rate: math.Inf(1)}, false},
		{"placeholder", NoRate(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.Valid())
		})
	}
}

func TestLowestCandidate(t *testing.T) {
	a := RateCandidate{RateType: RateLTL, Rate: 300, CarrierName: "a"}
	b := RateCandidate{RateType: RateFTL, Rate: 200, CarrierName: "b"}
	tie := RateCandidate{RateType: RateFTL53, Rate: 200, CarrierName: "tie"}
	invalid := RateCandidate{RateType: RateDrayage, Rate: -5}

	assert.Equal(t, b, LowestCandidate(a, b, tie, invalid))
	assert.Equal(t, NoRate(), LowestCandidate(invalid, NoRate()))
	assert.Equal(t, NoRate(), LowestCandidate())
}

func TestServiceModes(t *testing.T) {
	m := NewServiceModes(RateDrayage, RateLTL, RateFTL53, RateLTL)
	assert.Equal(t, ServiceModes{RateLTL, RateFTL53, RateDrayage}, m)
	assert.True(t, m.Contains(RateFTL53))
	assert.False(t, m.Contains(RateFTL))
	assert.True(t, m.Is(RateDrayage, RateFTL53, RateLTL))
	assert.False(t, m.Is(RateLTL, RateFTL53))
	assert.Equal(t, "LTL, FTL53, Drayage", m.String())
	assert.True(t, ServiceModes{RateFTL53, RateFTL}.Is(RateFTL, RateFTL53))
}

func TestParseRateType(t *testing.T) {
	rt, ok := ParseRateType("ftl53")
	assert.True(t, ok)
	assert.Equal(t, RateFTL53, rt)

	_, ok = ParseRateType("air")
	assert.False(t, ok)
}
