//go:build !integration

package app

import (
	"context"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/guttosm/fba-quote-service/internal/ratesource"
)

// fakeResolver never finds a rate.
type fakeResolver struct{}

func (fakeResolver) Resolve(_ context.Context, q ratesource.Query) ratesource.Resolution {
	return ratesource.Resolution{Mode: q.Mode, Best: model.NoRate()}
}

func (fakeResolver) Collect(_ context.Context, q ratesource.Query) ratesource.Resolution {
	return ratesource.Resolution{Mode: q.Mode, Best: model.NoRate()}
}
