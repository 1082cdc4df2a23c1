// SPDX-License-Identifier: MIT
package matrix

import (
	"context"

	"github.com/katalvlaran/tatamigo/chunkgrid"
	"github.com/katalvlaran/tatamigo/slab"
	"github.com/katalvlaran/tatamigo/sparse"
)

// DenseExtractor is what Handle.Dense returns: fetch(i, buf) fills buf with
// the non-target slice of target index i.
type DenseExtractor interface {
	Fetch(ctx context.Context, i int64, buf []float64) ([]float64, error)
}

// SparseExtractor is what Handle.Sparse returns: fetch(i) reports the
// non-target sparse row/column at target index i, with indices already
// rebased into the caller's frame.
type SparseExtractor interface {
	Fetch(ctx context.Context, i int64) (sparse.Result, error)
}

// Matrix is the matrix-framework contract, generalized from the
// teacher's Rows/Cols/At/Set/Clone interface to a read-only, cache-mediated
// view over a foreign handle: uniform abstraction over heterogeneous backing
// storage, but extractor factories instead of direct element access, because
// boundary calls are too expensive for element-at-a-time reads.
type Matrix interface {
	// NRow and NCol report the cached shape.
	NRow() int64
	NCol() int64

	// IsSparse reports the cached native storage kind.
	IsSparse() bool

	// PreferRows reports chunkgrid.PreferredAxis for this handle.
	PreferRows() bool

	// UsesOracle is always true: every extractor factory accepts an optional
	// oracle.
	UsesOracle() bool

	// Dense returns a dense extractor over axis, honoring req and, if oracle
	// is non-nil, prefetching via it instead of caching by LRU.
	Dense(ctx context.Context, axis chunkgrid.Axis, req Request, oracle slab.Oracle) (DenseExtractor, error)

	// Sparse returns a sparse extractor over axis, honoring req and oracle as
	// Dense does.
	Sparse(ctx context.Context, axis chunkgrid.Axis, req Request, oracle slab.Oracle) (SparseExtractor, error)
}
