// Package sparse implements the three sparse-core cache policies — solo,
// myopic, oracular — decoding per-leaf (indices, values) pairs from a
// column-major foreign sparse store into slab-resident compressed rows or
// columns, per the sparse slab decoding rules of the design.
package sparse

import (
	"context"
	"log/slog"

	"github.com/katalvlaran/tatamigo/chunkgrid"
	"github.com/katalvlaran/tatamigo/host"
	"github.com/katalvlaran/tatamigo/slab"
	"github.com/katalvlaran/tatamigo/tatamierr"
)

// Result is what a sparse Fetcher hands back: count structural non-zeros,
// with values/indices pointing into slab-owned memory valid until the next
// Fetch.
type Result struct {
	Count   int
	Values  []float64
	Indices []int64
}

// Fetcher is the sparse analogue of dense.Fetcher.
type Fetcher interface {
	Fetch(ctx context.Context, i int64) (Result, error)
}

type dims struct {
	axis      chunkgrid.Axis
	nonTarget host.Selection
}

func (d dims) selections(target host.Selection) (axis0, axis1 host.Selection) {
	if d.axis == chunkgrid.Row {
		return target, d.nonTarget
	}
	return d.nonTarget, target
}

func extractSparse(ctx context.Context, foreign host.Foreign, d dims, target host.Selection) (host.SparseBlock, error) {
	axis0, axis1 := d.selections(target)
	key := host.SelectionKey(foreign.ClassName(), axis0, axis1)
	block, err := host.Coalesce(key, func() (host.SparseBlock, error) {
		var block host.SparseBlock
		err := host.Serialize(func() error {
			var callErr error
			block, callErr = foreign.ExtractSparse(ctx, axis0, axis1)
			return callErr
		})
		return block, err
	})
	if err != nil {
		slog.Warn("sparse boundary call failed", "class", foreign.ClassName(), "error", err)
		return host.SparseBlock{}, tatamierr.BoundaryCallFailedf(foreign.ClassName(), err)
	}
	return block, nil
}

// decodeIntoSlab writes a single-chunk boundary-call response into s (rows
// 0..targetLen-1 of the chunk just fetched):
//
//   - target axis = columns: the foreign leaves already line up one-per-
//     target-row (axis1Sel was the target selection); copy each leaf
//     straight into its slab row.
//   - target axis = rows: the foreign leaves are one-per-non-target-column
//     (axis1Sel was the fixed non-target selection); transpose on the fly,
//     scattering (column j, value) into slab row leaf.indices[k] at the
//     next free count slot for that row.
func decodeIntoSlab(axis chunkgrid.Axis, block host.SparseBlock, s *slab.Sparse) error {
	if axis == chunkgrid.Col {
		for r, leaf := range block.Columns {
			indices, values, err := host.DecodeSparseLeaf(leaf)
			if err != nil {
				return err
			}
			for k := range indices {
				s.Append(r, indices[k], values[k])
			}
		}
		return nil
	}
	for j, leaf := range block.Columns {
		indices, values, err := host.DecodeSparseLeaf(leaf)
		if err != nil {
			return err
		}
		for k := range indices {
			s.Append(int(indices[k]), int64(j), values[k])
		}
	}
	return nil
}

// decodeBatchIntoSlabs writes a multi-chunk batched boundary-call response
// (oracular core) into the chunk-local slabs assigned in slabs, splitting
// the concatenated target axis back into per-chunk row ranges via
// chunkStart (the cumulative offset, in rows, of each chunk within the
// concatenated target selection) and chunkLen.
func decodeBatchIntoSlabs(axis chunkgrid.Axis, block host.SparseBlock, chunkIDs []int, chunkStart, chunkLen []int, slabs map[int]*slab.Sparse) error {
	// globalRowToChunk maps a 0-based position within the concatenated
	// target selection to the (slab, localRow) it belongs to.
	globalRowToChunk := func(p int) (*slab.Sparse, int) {
		for k, cid := range chunkIDs {
			if p < chunkStart[k]+chunkLen[k] {
				return slabs[cid], p - chunkStart[k]
			}
		}
		return nil, 0
	}

	if axis == chunkgrid.Col {
		for p, leaf := range block.Columns {
			indices, values, err := host.DecodeSparseLeaf(leaf)
			if err != nil {
				return err
			}
			s, row := globalRowToChunk(p)
			for k := range indices {
				s.Append(row, indices[k], values[k])
			}
		}
		return nil
	}
	for j, leaf := range block.Columns {
		indices, values, err := host.DecodeSparseLeaf(leaf)
		if err != nil {
			return err
		}
		for k := range indices {
			s, row := globalRowToChunk(int(indices[k]))
			s.Append(row, int64(j), values[k])
		}
	}
	return nil
}
