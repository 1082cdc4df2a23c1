package sparse

import (
	"context"

	"github.com/katalvlaran/tatamigo/chunkgrid"
	"github.com/katalvlaran/tatamigo/host"
	"github.com/katalvlaran/tatamigo/slab"
)

// Solo is the no-cache sparse core. It still keeps a 1 x non_target_length
// slab so decoding always has a stable scratch buffer, per the design.
type Solo struct {
	foreign host.Foreign
	dims    dims
	scratch *slab.Sparse
}

// NewSolo builds a Solo sparse core.
func NewSolo(foreign host.Foreign, axis chunkgrid.Axis, nonTarget host.Selection) *Solo {
	return &Solo{
		foreign: foreign,
		dims:    dims{axis: axis, nonTarget: nonTarget},
		scratch: slab.NewSparse(1, len(nonTarget)),
	}
}

// Fetch returns the non-target sparse row/column at target index i.
func (s *Solo) Fetch(ctx context.Context, i int64) (Result, error) {
	block, err := extractSparse(ctx, s.foreign, s.dims, host.Selection{i})
	if err != nil {
		return Result{}, err
	}
	s.scratch.Reset()
	if err := decodeIntoSlab(s.dims.axis, block, s.scratch); err != nil {
		return Result{}, err
	}
	n := s.scratch.Count[0]
	return Result{Count: n, Values: s.scratch.Values[0][:n], Indices: s.scratch.Indices[0][:n]}, nil
}
