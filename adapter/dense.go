package adapter

import (
	"context"

	"github.com/katalvlaran/tatamigo/dense"
)

// Dense forwards straight to a dense.Fetcher built with this adapter's
// Shape.Selection() as its non-target selection. Dense results carry no
// explicit index array, so — unlike Sparse — there is nothing to rebase:
// buf[k] already means "value at non-target position k", and the façade is
// the one that knows what real column/row that position names.
type Dense struct {
	Core dense.Fetcher
}

// NewDense builds a Dense adapter over an already-constructed core.
func NewDense(core dense.Fetcher) *Dense { return &Dense{Core: core} }

// Fetch forwards to the underlying core.
func (d *Dense) Fetch(ctx context.Context, i int64, buf []float64) ([]float64, error) {
	return d.Core.Fetch(ctx, i, buf)
}
