package slab

// Factory allocates fixed-size dense or sparse slabs sized to
// maxTargetChunkLen x nonTargetLen. Caches hold the slabs it hands out; an
// LRUCache recycles evicted slabs through its own free list (see
// LRUCache.Acquire), so the cores never call FreeDense/FreeSparse.
type Factory struct {
	maxTargetChunkLen int
	nonTargetLen      int
	sparse            bool

	denseFree  []*Dense
	sparseFree []*Sparse
}

// NewFactory builds a Factory for the given shape. sparse selects which of
// AcquireDense/AcquireSparse is meaningful; a factory only ever produces one
// kind in practice (a core is either dense or sparse), but both allocators
// are exposed on every factory.
func NewFactory(maxTargetChunkLen, nonTargetLen int, sparse bool) *Factory {
	return &Factory{maxTargetChunkLen: maxTargetChunkLen, nonTargetLen: nonTargetLen, sparse: sparse}
}

// NonTargetLen reports the configured non-target length.
func (f *Factory) NonTargetLen() int { return f.nonTargetLen }

// MaxTargetChunkLen reports the configured target capacity.
func (f *Factory) MaxTargetChunkLen() int { return f.maxTargetChunkLen }

// AcquireDense returns a free slab from the pool if one exists, else
// allocates a new one.
func (f *Factory) AcquireDense() *Dense {
	if n := len(f.denseFree); n > 0 {
		s := f.denseFree[n-1]
		f.denseFree = f.denseFree[:n-1]
		return s
	}
	return NewDense(f.maxTargetChunkLen, f.nonTargetLen)
}

// FreeDense returns a slab to the pool for reuse by a later miss. It is not
// zeroed; the next Acquire's decode overwrites the rows it needs.
func (f *Factory) FreeDense(s *Dense) {
	s.ChunkID = -1
	f.denseFree = append(f.denseFree, s)
}

// AcquireSparse returns a free sparse slab from the pool if one exists, else
// allocates a new one.
func (f *Factory) AcquireSparse() *Sparse {
	if n := len(f.sparseFree); n > 0 {
		s := f.sparseFree[n-1]
		f.sparseFree = f.sparseFree[:n-1]
		s.Reset()
		return s
	}
	return NewSparse(f.maxTargetChunkLen, f.nonTargetLen)
}

// FreeSparse returns a sparse slab to the pool.
func (f *Factory) FreeSparse(s *Sparse) {
	s.ChunkID = -1
	f.sparseFree = append(f.sparseFree, s)
}
