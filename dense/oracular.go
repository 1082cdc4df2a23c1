package dense

import (
	"context"

	"github.com/katalvlaran/tatamigo/chunkgrid"
	"github.com/katalvlaran/tatamigo/host"
	"github.com/katalvlaran/tatamigo/slab"
)

// Oracular is the prefetch-oracle-driven dense core: it consults a
// slab.Oracle to batch up to maxSlabs distinct chunk misses into a single
// boundary call, sorted ascending by chunk id. It ignores the index argument
// passed to Fetch and trusts the oracle's own position counter instead,
// exactly as solo-oracular and oracular-cached extractors do per the
// consumption discipline in the design notes.
type Oracular struct {
	foreign host.Foreign
	dims    dims
	grid    *chunkgrid.Grid
	cache   *slab.OracleCache[*slab.Dense]
}

// NewOracular builds an Oracular dense core.
func NewOracular(foreign host.Foreign, axis chunkgrid.Axis, nonTarget host.Selection, grid *chunkgrid.Grid, factory *slab.Factory, maxSlabs int, oracle slab.Oracle) *Oracular {
	return &Oracular{
		foreign: foreign,
		dims:    dims{axis: axis, nonTarget: nonTarget},
		grid:    grid,
		cache:   slab.NewOracleCache[*slab.Dense](grid, maxSlabs, oracle, factory.AcquireDense),
	}
}

// Fetch advances the oracle by exactly one position and returns the
// non-target slice for the index it predicted.
func (o *Oracular) Fetch(ctx context.Context, _ int64, buf []float64) ([]float64, error) {
	fill := func(ctx context.Context, chunkIDs []int, slabs map[int]*slab.Dense) error {
		target := make(host.Selection, 0, len(chunkIDs)*int(o.grid.MaxChunkLen()))
		ranges := make([]struct{ start, length int64 }, len(chunkIDs))
		for k, cid := range chunkIDs {
			start, end := o.grid.Range(cid)
			ranges[k] = struct{ start, length int64 }{start, end - start}
			for v := start; v < end; v++ {
				target = append(target, v)
			}
		}
		full := make([]float64, len(target)*len(o.dims.nonTarget))
		if err := extractAndDecode(ctx, o.foreign, o.dims, target, full); err != nil {
			return err
		}
		offset := 0
		nonTargetLen := len(o.dims.nonTarget)
		for k, cid := range chunkIDs {
			s := slabs[cid]
			n := int(ranges[k].length)
			copy(s.Data[:n*nonTargetLen], full[offset:offset+n*nonTargetLen])
			offset += n * nonTargetLen
		}
		return nil
	}

	s, offset, err := o.cache.Next(ctx, fill)
	if err != nil {
		return nil, err
	}
	copy(buf, s.Row(offset))
	return buf, nil
}
