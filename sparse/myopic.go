package sparse

import (
	"context"
	"log/slog"

	"github.com/katalvlaran/tatamigo/chunkgrid"
	"github.com/katalvlaran/tatamigo/host"
	"github.com/katalvlaran/tatamigo/slab"
)

// Myopic is the LRU-cached sparse core.
type Myopic struct {
	foreign host.Foreign
	dims    dims
	grid    *chunkgrid.Grid
	cache   *slab.LRUCache[*slab.Sparse]
	factory *slab.Factory
}

// NewMyopic builds a Myopic sparse core.
func NewMyopic(foreign host.Foreign, axis chunkgrid.Axis, nonTarget host.Selection, grid *chunkgrid.Grid, factory *slab.Factory, maxSlabs int) (*Myopic, error) {
	cache, err := slab.NewLRUCache[*slab.Sparse](maxSlabs)
	if err != nil {
		return nil, err
	}
	return &Myopic{
		foreign: foreign, dims: dims{axis: axis, nonTarget: nonTarget},
		grid: grid, cache: cache, factory: factory,
	}, nil
}

// Fetch returns the non-target sparse row/column at target index i,
// populating the LRU on a miss.
func (m *Myopic) Fetch(ctx context.Context, i int64) (Result, error) {
	c := m.grid.ChunkOf(i)
	start, end := m.grid.Range(c)

	s, ok := m.cache.Get(c)
	if !ok {
		slog.Debug("sparse cache miss", "chunk_id", c, "target_index", i)
		s = m.cache.Acquire(m.factory.AcquireSparse)
		s.Reset()
		target := host.Block(start, end-start)
		block, err := extractSparse(ctx, m.foreign, m.dims, target)
		if err != nil {
			slog.Warn("boundary call failed, discarding slab", "chunk_id", c, "error", err)
			m.cache.Discard(s)
			return Result{}, err
		}
		if err := decodeIntoSlab(m.dims.axis, block, s); err != nil {
			slog.Warn("sparse leaf decode failed, discarding slab", "chunk_id", c, "error", err)
			m.cache.Discard(s)
			return Result{}, err
		}
		s.ChunkID = c
		m.cache.Insert(c, s)
	}

	row := int(i - start)
	n := s.Count[row]
	return Result{Count: n, Values: s.Values[row][:n], Indices: s.Indices[row][:n]}, nil
}
