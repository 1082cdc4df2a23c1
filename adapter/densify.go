package adapter

import (
	"context"

	"github.com/katalvlaran/tatamigo/sparse"
)

// Densify serves a dense request out of sparse foreign storage: zero-fill a
// buffer of length non_target_length and scatter (localIndex, value) pairs
// from the raw (not yet rebased) sparse core into it. It wraps the
// raw sparse.Fetcher — not an adapter.Sparse — because the scatter target is
// the dense buffer's own position space, which is exactly the core's local
// non-target position, not the caller-facing rebased column id.
type Densify struct {
	Core         sparse.Fetcher
	NonTargetLen int
}

// NewDensify builds a Densify adapter.
func NewDensify(core sparse.Fetcher, nonTargetLen int) *Densify {
	return &Densify{Core: core, NonTargetLen: nonTargetLen}
}

// Fetch fills buf (len == NonTargetLen) with zeros, then scatters the
// sparse core's non-zeros into it.
func (d *Densify) Fetch(ctx context.Context, i int64, buf []float64) ([]float64, error) {
	for k := range buf {
		buf[k] = 0
	}
	res, err := d.Core.Fetch(ctx, i)
	if err != nil {
		return nil, err
	}
	for k := 0; k < res.Count; k++ {
		buf[res.Indices[k]] = res.Values[k]
	}
	return buf, nil
}
