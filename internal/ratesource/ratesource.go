// Package ratesource prices last-mile legs. Static negotiated rates are
// looked up first; live carrier APIs (HeyPrimo and Ex-Freight for LTL,
// J.B. Hunt for truckload and drayage) are called only on a miss.
package ratesource

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
)

// Provider names as reported on candidates.
const (
	ProviderHeyPrimo  = "HeyPrimo"
	ProviderExFreight = "Ex-Freight"
	ProviderJBHunt    = "J.B. Hunt"
)

// Standard pallet used by every live rating request, in inches.
const (
	palletLengthIn = 48
	palletWidthIn  = 40
	palletHeightIn = 72
)

// Accessorials are the delivery toggles of a request. FBA deliveries get
// appointment and CFS pickup services; otherwise liftgate and residential
// apply, and liftgate implies residential.
type Accessorials struct {
	NonFBA      bool `json:"non_fba,omitempty"`
	Liftgate    bool `json:"liftgate,omitempty"`
	Residential bool `json:"residential,omitempty"`
}

// Query describes one lane to price.
type Query struct {
	Mode model.RateType

	OriginZip   string
	OriginCity  string
	OriginState string
	DestZip     string
	DestCity    string
	DestState   string

	WeightKg float64
	// WeightLbs, when set, is used as-is instead of converting WeightKg.
	WeightLbs float64
	Pallets   int
	Quantity  int

	Accessorials Accessorials
	AsOf         time.Time
	// Static is the negotiated rate sheet snapshot for this request.
	Static []model.StaticRate

	RequestID string
}

// Lbs returns WeightLbs or WeightKg converted with factor.
func (q Query) Lbs(factor float64) float64 {
	if q.WeightLbs > 0 {
		return q.WeightLbs
	}
	return q.WeightKg * factor
}

// Adapter quotes a lane against one live carrier.
type Adapter interface {
	Name() string
	Quote(ctx context.Context, q Query) (model.RateCandidate, error)
}

// Reason classifies a carrier failure.
type Reason string

const (
	ReasonAuth             Reason = "auth"
	ReasonTransport        Reason = "transport"
	ReasonStatus           Reason = "status"
	ReasonDecode           Reason = "decode"
	ReasonNoRates          Reason = "no_rates"
	ReasonNoAllowedCarrier Reason = "no_allowed_carrier"
	ReasonCircuitOpen      Reason = "circuit_open"
	ReasonNotConfigured    Reason = "not_configured"
)

// Failure is the only error type adapters return.
type Failure struct {
	Provider string
	Reason   Reason
	Err      error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("%s: %s", f.Provider, f.Reason)
	}
	return fmt.Sprintf("%s: %s: %v", f.Provider, f.Reason, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

func failure(provider string, reason Reason, err error) *Failure {
	return &Failure{Provider: provider, Reason: reason, Err: err}
}

// ReasonOf extracts the failure reason, or "" for foreign errors.
func ReasonOf(err error) Reason {
	var f *Failure
	if errors.As(err, &f) {
		return f.Reason
	}
	return ""
}

// IsBusinessMiss reports failures that say nothing about carrier health.
// They must not trip a circuit breaker.
func IsBusinessMiss(err error) bool {
	switch ReasonOf(err) {
	case ReasonNoRates, ReasonNoAllowedCarrier, ReasonNotConfigured:
		return true
	}
	return false
}

// PadZip normalises a US zip to five digits. ZIP+4 suffixes and the ".0"
// left behind by numeric spreadsheet cells are dropped.
func PadZip(zip string) string {
	z := strings.TrimSpace(zip)
	if i := strings.IndexAny(z, ".-"); i >= 0 {
		z = z[:i]
	}
	if len(z) >= 5 {
		return z
	}
	return strings.Repeat("0", 5-len(z)) + z
}

// Option configures the live adapters.
type Option func(*options)

type options struct {
	now func() time.Time
}

func defaultOptions() options {
	return options{now: time.Now}
}

// WithClock overrides the clock used for pickup dates.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}
