package adapter

import (
	"context"

	"github.com/katalvlaran/tatamigo/sparse"
)

// Sparse wraps a sparse.Fetcher and rebases its local non-target positions
// back to real foreign column ids via Shape: full requests pass
// through, block requests add block_start, indexed requests remap through
// the original index vector.
type Sparse struct {
	Core  sparse.Fetcher
	Shape Shape
}

// NewSparse builds a Sparse adapter.
func NewSparse(core sparse.Fetcher, shape Shape) *Sparse {
	return &Sparse{Core: core, Shape: shape}
}

// Fetch returns the non-target sparse row/column at target index i, with
// indices already rebased into the caller's frame.
func (s *Sparse) Fetch(ctx context.Context, i int64) (sparse.Result, error) {
	res, err := s.Core.Fetch(ctx, i)
	if err != nil {
		return sparse.Result{}, err
	}
	rebased := make([]int64, res.Count)
	for k := 0; k < res.Count; k++ {
		rebased[k] = s.Shape.Rebase(res.Indices[k])
	}
	return sparse.Result{Count: res.Count, Values: res.Values, Indices: rebased}, nil
}
