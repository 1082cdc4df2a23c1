package dense

import (
	"context"
	"log/slog"

	"github.com/katalvlaran/tatamigo/chunkgrid"
	"github.com/katalvlaran/tatamigo/host"
	"github.com/katalvlaran/tatamigo/slab"
)

// Myopic is the LRU-cached dense core: a miss pulls the whole chunk
// containing i into a slab, decoding once for every non_target_length x
// chunk_length boundary call; subsequent requests into the same chunk are
// served from the slab with zero boundary calls.
type Myopic struct {
	foreign host.Foreign
	dims    dims
	grid    *chunkgrid.Grid
	cache   *slab.LRUCache[*slab.Dense]
	factory *slab.Factory
}

// NewMyopic builds a Myopic dense core. maxSlabs is the LRU capacity from
// the cache sizer; it must be >= 1 (a sizer result of 0 selects Solo
// instead).
func NewMyopic(foreign host.Foreign, axis chunkgrid.Axis, nonTarget host.Selection, grid *chunkgrid.Grid, factory *slab.Factory, maxSlabs int) (*Myopic, error) {
	cache, err := slab.NewLRUCache[*slab.Dense](maxSlabs)
	if err != nil {
		return nil, err
	}
	return &Myopic{
		foreign: foreign,
		dims:    dims{axis: axis, nonTarget: nonTarget},
		grid:    grid, cache: cache, factory: factory,
	}, nil
}

// Fetch returns the non-target slice at target index i, populating the LRU
// on a miss.
func (m *Myopic) Fetch(ctx context.Context, i int64, buf []float64) ([]float64, error) {
	c := m.grid.ChunkOf(i)
	start, end := m.grid.Range(c)

	s, ok := m.cache.Get(c)
	if !ok {
		slog.Debug("dense cache miss", "chunk_id", c, "target_index", i)
		s = m.cache.Acquire(m.factory.AcquireDense)
		target := host.Block(start, end-start)
		// The slab's row capacity is the maximum chunk length; only the
		// first (end-start) rows of Data are meaningful for this chunk.
		if err := extractAndDecode(ctx, m.foreign, m.dims, target, s.Data[:int(end-start)*s.Cols]); err != nil {
			slog.Warn("boundary call failed, discarding slab", "chunk_id", c, "error", err)
			m.cache.Discard(s)
			return nil, err
		}
		s.ChunkID = c
		m.cache.Insert(c, s)
	}

	row := int(i - start)
	copy(buf, s.Row(row))
	return buf, nil
}
