package ratesource

import (
	"sort"
	"time"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
)

// StaticKey is the exact-match key of a static rate lookup.
type StaticKey struct {
	Mode      model.RateType
	OriginZip string
	DestZip   string
	// Pallets keys LTL rows.
	Pallets int
	// WeightLbs keys truckload and drayage rows. Rows without a weight
	// match any load.
	WeightLbs float64
	AsOf      time.Time
}

// StaticKeyFor builds the lookup key for a query.
func StaticKeyFor(q Query, kgToLbs float64) StaticKey {
	key := StaticKey{
		Mode:      q.Mode,
		OriginZip: q.OriginZip,
		DestZip:   q.DestZip,
		AsOf:      q.AsOf,
	}
	if q.Mode == model.RateLTL {
		key.Pallets = q.Pallets
	} else {
		key.WeightLbs = q.Lbs(kgToLbs)
	}
	return key
}

// MatchStatic returns every valid candidate for key, cheapest first.
// Equal rates keep sheet order.
func MatchStatic(rows []model.StaticRate, key StaticKey) []model.RateCandidate {
	origin, dest := PadZip(key.OriginZip), PadZip(key.DestZip)
	asOf := key.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}

	var out []model.RateCandidate
	for _, row := range rows {
		if row.DeliveryType != key.Mode {
			continue
		}
		if PadZip(row.OriginZip) != origin || PadZip(row.DestZip) != dest {
			continue
		}
		if key.Mode == model.RateLTL {
			if row.Pallets != key.Pallets {
				continue
			}
		} else if row.WeightLbs > 0 && row.WeightLbs != key.WeightLbs {
			continue
		}
		if !row.Covers(asOf) {
			continue
		}
		c := model.RateCandidate{
			RateType:        key.Mode,
			Rate:            row.Rate,
			RawRate:         row.Rate,
			CarrierName:     row.CarrierName,
			ServiceProvider: row.Broker,
			Source:          model.SourceStaticTable,
			ValidDate:       row.ValidTo,
		}
		if c.Valid() {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rate < out[j].Rate })
	return out
}

// LookupStatic returns the cheapest valid row for key.
func LookupStatic(rows []model.StaticRate, key StaticKey) (model.RateCandidate, bool) {
	matches := MatchStatic(rows, key)
	if len(matches) == 0 {
		return model.RateCandidate{}, false
	}
	return matches[0], true
}
