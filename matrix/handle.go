// SPDX-License-Identifier: MIT
package matrix

import (
	"context"

	"github.com/katalvlaran/tatamigo/adapter"
	"github.com/katalvlaran/tatamigo/chunkgrid"
	"github.com/katalvlaran/tatamigo/config"
	"github.com/katalvlaran/tatamigo/dense"
	"github.com/katalvlaran/tatamigo/host"
	"github.com/katalvlaran/tatamigo/slab"
	"github.com/katalvlaran/tatamigo/sparse"
)

var _ Matrix = (*Handle)(nil)

// elemSize is the width, in bytes, the cache sizer budgets against: every
// decoded value is a float64 regardless of the foreign dtype (host.DecodeDense
// / host.DecodeSparseLeaf always widen into float64), so the sizer only ever
// needs to know this one constant.
const elemSize = 8

// Handle owns a foreign matrix object and the chunk grids, shape, and
// sparsity flag discovered from it at construction. It implements Matrix and
// is the only place a boundary call happens outside of an extractor's own
// Fetch. New must run on the thread/
// goroutine that owns the host runtime; it is not safe to call concurrently
// with any other use of the same foreign object.
type Handle struct {
	foreign host.Foreign
	opts    config.Options

	nrow, ncol int64
	sparse     bool
	rowGrid    *chunkgrid.Grid
	colGrid    *chunkgrid.Grid
	preferred  chunkgrid.Axis

	sizer slab.Sizer
}

// New constructs a Handle: it reads shape, sparsity, and the chunk grid from
// foreign under a single acquisition of the host lock, per the "construction
// happens once, under the host lock" rule recovered from
// UnknownMatrix.hpp.
func New(ctx context.Context, foreign host.Foreign, opts ...config.Option) (*Handle, error) {
	gathered, err := config.Gather(opts...)
	if err != nil {
		return nil, err
	}

	h := &Handle{foreign: foreign, opts: gathered}

	err = host.Serialize(func() error {
		nrow, ncol, shapeErr := foreign.Shape(ctx)
		if shapeErr != nil {
			return shapeErr
		}
		h.nrow, h.ncol = nrow, ncol

		sparseFlag, sparseErr := foreign.IsSparse(ctx)
		if sparseErr != nil {
			return sparseErr
		}
		h.sparse = sparseFlag

		rowTicks, colTicks, gridErr := foreign.ChunkGrid(ctx)
		if gridErr != nil {
			return gridErr
		}
		rowGrid, rowErr := chunkgrid.Build(chunkgrid.Row, nrow, rowTicks)
		if rowErr != nil {
			return rowErr
		}
		colGrid, colErr := chunkgrid.Build(chunkgrid.Col, ncol, colTicks)
		if colErr != nil {
			return colErr
		}
		h.rowGrid, h.colGrid = rowGrid, colGrid
		h.preferred = chunkgrid.PreferredAxis(rowGrid, colGrid)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

// NRow reports the cached row count.
func (h *Handle) NRow() int64 { return h.nrow }

// NCol reports the cached column count.
func (h *Handle) NCol() int64 { return h.ncol }

// IsSparse reports the cached native storage kind.
func (h *Handle) IsSparse() bool { return h.sparse }

// PreferRows reports whether row-major iteration crosses no more chunk
// boundaries than column-major iteration.
func (h *Handle) PreferRows() bool { return h.preferred == chunkgrid.Row }

// UsesOracle is always true: every extractor factory below accepts an
// optional oracle.
func (h *Handle) UsesOracle() bool { return true }

// axisLens returns (targetGrid, nonTargetLen) for axis: the target axis's
// chunk grid, and the extent of the other axis (the non-target axis's full
// length, before any request-shape narrowing).
func (h *Handle) axisLens(axis chunkgrid.Axis) (target *chunkgrid.Grid, nonTargetExtent int64) {
	if axis == chunkgrid.Row {
		return h.rowGrid, h.ncol
	}
	return h.colGrid, h.nrow
}

// shapeOf turns a Request into an adapter.Shape now that the non-target axis's
// full extent is known.
func shapeOf(req Request, nonTargetExtent int64) adapter.Shape {
	switch req.kind {
	case blockRequest:
		return adapter.Block{Start: req.start, Length: req.length}
	case indexedRequest:
		return adapter.Indexed{Indices: req.indices}
	default:
		return adapter.Full{N: nonTargetExtent}
	}
}

// maxSlabs asks the cache sizer how many slabs the configured byte budget
// affords for one extractor of the given shape, raising the result to 1 when
// an oracle is supplied (an oracular cache cannot make progress with zero
// slabs) or when the config's require-minimum policy is set.
func (h *Handle) maxSlabs(targetGrid *chunkgrid.Grid, nonTargetLen int64, oracle slab.Oracle) (int, error) {
	requireMin := h.opts.RequireMinimumCache() || oracle != nil
	return h.sizer.MaxSlabs(targetGrid.MaxChunkLen(), nonTargetLen, targetGrid.ChunkCount(), elemSize, h.opts.MaximumCacheSize(), requireMin)
}

// Dense returns a dense extractor over axis. If the foreign matrix's native
// storage is dense, this is a direct dense core; if it is sparse, the dense
// request is served by densifying the raw sparse core's output.
func (h *Handle) Dense(ctx context.Context, axis chunkgrid.Axis, req Request, oracle slab.Oracle) (DenseExtractor, error) {
	targetGrid, nonTargetExtent := h.axisLens(axis)
	shape := shapeOf(req, nonTargetExtent)
	nonTarget := shape.Selection()

	if !h.sparse {
		core, err := h.buildDenseCore(axis, nonTarget, targetGrid, shape.Len(), oracle)
		if err != nil {
			return nil, err
		}
		return adapter.NewDense(core), nil
	}

	rawCore, err := h.buildSparseCore(axis, nonTarget, targetGrid, shape.Len(), oracle)
	if err != nil {
		return nil, err
	}
	return adapter.NewDensify(rawCore, int(shape.Len())), nil
}

// Sparse returns a sparse extractor over axis. If the foreign matrix's
// native storage is sparse, this wraps the sparse core and rebases its
// local positions; if it is dense, the sparse request is served by the
// framework-sparsify wrapper over a dense core.
func (h *Handle) Sparse(ctx context.Context, axis chunkgrid.Axis, req Request, oracle slab.Oracle) (SparseExtractor, error) {
	targetGrid, nonTargetExtent := h.axisLens(axis)
	shape := shapeOf(req, nonTargetExtent)
	nonTarget := shape.Selection()

	if h.sparse {
		core, err := h.buildSparseCore(axis, nonTarget, targetGrid, shape.Len(), oracle)
		if err != nil {
			return nil, err
		}
		return adapter.NewSparse(core, shape), nil
	}

	denseCore, err := h.buildDenseCore(axis, nonTarget, targetGrid, shape.Len(), oracle)
	if err != nil {
		return nil, err
	}
	return adapter.NewSparsify(denseCore, shape, int(shape.Len())), nil
}

func (h *Handle) buildDenseCore(axis chunkgrid.Axis, nonTarget host.Selection, targetGrid *chunkgrid.Grid, nonTargetLen int64, oracle slab.Oracle) (dense.Fetcher, error) {
	max, err := h.maxSlabs(targetGrid, nonTargetLen, oracle)
	if err != nil {
		return nil, err
	}
	factory := slab.NewFactory(int(targetGrid.MaxChunkLen()), int(nonTargetLen), false)

	switch {
	case oracle != nil:
		return dense.NewOracular(h.foreign, axis, nonTarget, targetGrid, factory, max, oracle), nil
	case max == 0:
		return dense.NewSolo(h.foreign, axis, nonTarget), nil
	default:
		return dense.NewMyopic(h.foreign, axis, nonTarget, targetGrid, factory, max)
	}
}

func (h *Handle) buildSparseCore(axis chunkgrid.Axis, nonTarget host.Selection, targetGrid *chunkgrid.Grid, nonTargetLen int64, oracle slab.Oracle) (sparse.Fetcher, error) {
	max, err := h.maxSlabs(targetGrid, nonTargetLen, oracle)
	if err != nil {
		return nil, err
	}
	factory := slab.NewFactory(int(targetGrid.MaxChunkLen()), int(nonTargetLen), true)

	switch {
	case oracle != nil:
		return sparse.NewOracular(h.foreign, axis, nonTarget, targetGrid, factory, max, oracle), nil
	case max == 0:
		return sparse.NewSolo(h.foreign, axis, nonTarget), nil
	default:
		return sparse.NewMyopic(h.foreign, axis, nonTarget, targetGrid, factory, max)
	}
}
