package sparse

import (
	"context"

	"github.com/katalvlaran/tatamigo/chunkgrid"
	"github.com/katalvlaran/tatamigo/host"
	"github.com/katalvlaran/tatamigo/slab"
)

// Oracular is the prefetch-oracle-driven sparse core. Like dense.Oracular it
// ignores Fetch's index argument and advances the oracle's own position.
type Oracular struct {
	foreign host.Foreign
	dims    dims
	grid    *chunkgrid.Grid
	cache   *slab.OracleCache[*slab.Sparse]
}

// NewOracular builds an Oracular sparse core.
func NewOracular(foreign host.Foreign, axis chunkgrid.Axis, nonTarget host.Selection, grid *chunkgrid.Grid, factory *slab.Factory, maxSlabs int, oracle slab.Oracle) *Oracular {
	alloc := func() *slab.Sparse {
		s := factory.AcquireSparse()
		s.Reset()
		return s
	}
	return &Oracular{
		foreign: foreign, dims: dims{axis: axis, nonTarget: nonTarget},
		grid: grid, cache: slab.NewOracleCache[*slab.Sparse](grid, maxSlabs, oracle, alloc),
	}
}

// Fetch advances the oracle by one position and returns the non-target
// sparse row/column it predicted.
func (o *Oracular) Fetch(ctx context.Context, _ int64) (Result, error) {
	fill := func(ctx context.Context, chunkIDs []int, slabs map[int]*slab.Sparse) error {
		for _, s := range slabs {
			s.Reset()
		}
		chunkStart := make([]int, len(chunkIDs))
		chunkLen := make([]int, len(chunkIDs))
		target := make(host.Selection, 0, len(chunkIDs)*int(o.grid.MaxChunkLen()))
		for k, cid := range chunkIDs {
			start, end := o.grid.Range(cid)
			chunkStart[k] = len(target)
			chunkLen[k] = int(end - start)
			for v := start; v < end; v++ {
				target = append(target, v)
			}
		}
		block, err := extractSparse(ctx, o.foreign, o.dims, target)
		if err != nil {
			return err
		}
		return decodeBatchIntoSlabs(o.dims.axis, block, chunkIDs, chunkStart, chunkLen, slabs)
	}

	s, offset, err := o.cache.Next(ctx, fill)
	if err != nil {
		return Result{}, err
	}
	n := s.Count[offset]
	return Result{Count: n, Values: s.Values[offset][:n], Indices: s.Indices[offset][:n]}, nil
}
