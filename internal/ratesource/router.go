package ratesource

import (
	"context"
	"errors"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/guttosm/fba-quote-service/internal/metrics"
)

// Resolution is the outcome of pricing one mode.
type Resolution struct {
	Mode       model.RateType        `json:"mode"`
	Best       model.RateCandidate   `json:"best"`
	Candidates []model.RateCandidate `json:"candidates"`
	Failures   []error               `json:"-"`
}

// Notes renders the failures for display.
func (r Resolution) Notes() []string {
	notes := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		notes = append(notes, f.Error())
	}
	return notes
}

// Resolver prices a query for its mode.
type Resolver interface {
	// Resolve returns the static rate when one matches, without any live
	// call, and otherwise the cheapest live candidate.
	Resolve(ctx context.Context, q Query) Resolution
	// Collect returns every static match and every live candidate.
	Collect(ctx context.Context, q Query) Resolution
}

// Routes maps each mode to the live adapters that can price it.
type Routes map[model.RateType][]Adapter

// DefaultRoutes sends LTL to the two brokers and everything else to the
// linehaul carrier. Nil adapters are skipped.
func DefaultRoutes(heyPrimo, exFreight, jbHunt Adapter) Routes {
	routes := Routes{}
	for _, a := range []Adapter{heyPrimo, exFreight} {
		if a != nil {
			routes[model.RateLTL] = append(routes[model.RateLTL], a)
		}
	}
	if jbHunt != nil {
		for _, m := range []model.RateType{model.RateFTL, model.RateFTL53, model.RateDrayage} {
			routes[m] = []Adapter{jbHunt}
		}
	}
	return routes
}

// Router implements Resolver over static rows and live adapters.
type Router struct {
	routes  Routes
	kgToLbs float64
}

// NewRouter creates a router. kgToLbs converts shipment weight for
// truckload static lookups when the query has no pound weight.
func NewRouter(routes Routes, kgToLbs float64) *Router {
	if kgToLbs <= 0 {
		kgToLbs = defaultKgToLbs
	}
	return &Router{routes: routes, kgToLbs: kgToLbs}
}

var errNoAdapter = errors.New("no live source for mode")

// Resolve implements Resolver.
func (r *Router) Resolve(ctx context.Context, q Query) Resolution {
	res := Resolution{Mode: q.Mode, Best: model.NoRate()}

	if c, ok := LookupStatic(q.Static, StaticKeyFor(q, r.kgToLbs)); ok {
		metrics.RecordStaticLookup(string(q.Mode), true)
		res.Best = c
		res.Candidates = []model.RateCandidate{c}
		return res
	}
	metrics.RecordStaticLookup(string(q.Mode), false)

	r.live(ctx, q, &res)
	res.Best = model.LowestCandidate(res.Candidates...)
	return res
}

// Collect implements Resolver.
func (r *Router) Collect(ctx context.Context, q Query) Resolution {
	res := Resolution{Mode: q.Mode}
	static := MatchStatic(q.Static, StaticKeyFor(q, r.kgToLbs))
	metrics.RecordStaticLookup(string(q.Mode), len(static) > 0)
	res.Candidates = append(res.Candidates, static...)

	r.live(ctx, q, &res)
	res.Best = model.LowestCandidate(res.Candidates...)
	return res
}

func (r *Router) live(ctx context.Context, q Query, res *Resolution) {
	adapters := r.routes[q.Mode]
	if len(adapters) == 0 {
		res.Failures = append(res.Failures, failure(string(q.Mode), ReasonNotConfigured, errNoAdapter))
		return
	}
	for _, a := range adapters {
		c, err := a.Quote(ctx, q)
		if err != nil {
			res.Failures = append(res.Failures, err)
			continue
		}
		if c.Valid() {
			res.Candidates = append(res.Candidates, c)
		}
	}
}
