package dense

import (
	"context"

	"github.com/katalvlaran/tatamigo/chunkgrid"
	"github.com/katalvlaran/tatamigo/host"
)

// Solo is the no-cache dense core: every Fetch makes exactly one boundary
// call for the single requested target index.
type Solo struct {
	foreign host.Foreign
	dims    dims
}

// NewSolo builds a Solo core over the given foreign matrix, target axis, and
// fixed non-target selection.
func NewSolo(foreign host.Foreign, axis chunkgrid.Axis, nonTarget host.Selection) *Solo {
	return &Solo{foreign: foreign, dims: dims{axis: axis, nonTarget: nonTarget}}
}

// Fetch fills buf (len == len(nonTarget)) with the non-target slice at
// target index i.
func (s *Solo) Fetch(ctx context.Context, i int64, buf []float64) ([]float64, error) {
	target := host.Selection{i}
	if err := extractAndDecode(ctx, s.foreign, s.dims, target, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
