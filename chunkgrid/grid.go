// Package chunkgrid maps a foreign matrix's native chunk boundaries onto
// element indices along one axis: element index -> chunk id, chunk id ->
// half-open element range, and the maximum chunk extent. Both the row axis
// and the column axis get their own Grid; Handle construction builds one of
// each from the host's chunk_grid() response.
package chunkgrid

import (
	"math"

	"github.com/katalvlaran/tatamigo/tatamierr"
)

// Axis names the two directions a Grid (or a request) can run along.
type Axis int

const (
	// Row is the axis indexing into the matrix's rows.
	Row Axis = iota
	// Col is the axis indexing into the matrix's columns.
	Col
)

// String renders the axis name for error messages and logs.
func (a Axis) String() string {
	if a == Row {
		return "row"
	}
	return "col"
}

// Grid is the chunk-boundary map for one axis.
//
// Invariants (enforced by Build, never by callers):
//   - Ticks[0] == 0, Ticks[len(Ticks)-1] == extent, strictly increasing.
//   - ElemToChunk is non-decreasing and has length == extent.
//   - len(Ticks) == ChunkCount()+1.
type Grid struct {
	ticks       []int64
	elemToChunk []int32
	maxChunkLen int64
}

// Ticks returns the chunk boundary sequence [0, t1, t2, ..., extent].
// Callers must not mutate the returned slice.
func (g *Grid) Ticks() []int64 { return g.ticks }

// ChunkCount reports the number of chunks along this axis.
func (g *Grid) ChunkCount() int { return len(g.ticks) - 1 }

// MaxChunkLen reports max(Ticks[k+1]-Ticks[k]) across all chunks.
func (g *Grid) MaxChunkLen() int64 { return g.maxChunkLen }

// ChunkOf returns the chunk id containing element i.
// Precondition: 0 <= i < extent (callers derive extent from Shape()).
func (g *Grid) ChunkOf(i int64) int { return int(g.elemToChunk[i]) }

// Range returns the half-open element range [start, end) of chunk c.
func (g *Grid) Range(c int) (start, end int64) { return g.ticks[c], g.ticks[c+1] }

// Len returns chunk c's length (end - start).
func (g *Grid) Len(c int) int64 { start, end := g.Range(c); return end - start }

// Build validates a host-reported tick sequence and derives the full
// per-element chunk map in a single pass, per the chunk-grid construction
// rule: prepend 0, walk once, fill elemToChunk while emitting ticks.
//
// rawTicks is the host's boundary array as returned by chunk_grid().boundaries
// for this axis: the interior/trailing boundaries ending at extent, NOT
// including the implicit leading 0. A host that reports no boundaries at all
// (rawTicks empty) describes a single chunk spanning the whole axis.
//
// Build fails with tatamierr.ErrMalformedChunkGrid when boundaries are not
// strictly increasing or the final tick does not equal extent, and with
// tatamierr.ErrCapacityOverflow when extent does not fit an int32 element
// map (the engine indexes chunks with int32 ids).
func Build(axis Axis, extent int64, rawTicks []int64) (*Grid, error) {
	if extent < 0 {
		return nil, tatamierr.ErrShapeOutOfRange
	}
	if extent > math.MaxInt32 {
		return nil, tatamierr.ErrCapacityOverflow
	}
	if extent == 0 {
		return &Grid{ticks: []int64{0}, elemToChunk: nil, maxChunkLen: 0}, nil
	}

	ticks := make([]int64, 0, len(rawTicks)+2)
	ticks = append(ticks, 0)
	ticks = append(ticks, rawTicks...)
	if len(ticks) == 1 || ticks[len(ticks)-1] != extent {
		if len(rawTicks) == 0 && extent >= 0 {
			ticks = append(ticks, extent)
		} else {
			return nil, tatamierr.MalformedChunkGridf(axis.String(), "final tick does not equal extent")
		}
	}

	elemToChunk := make([]int32, extent)
	var maxLen int64
	for c := 0; c < len(ticks)-1; c++ {
		start, end := ticks[c], ticks[c+1]
		if end <= start || end > extent {
			return nil, tatamierr.MalformedChunkGridf(axis.String(), "ticks are not strictly increasing")
		}
		if length := end - start; length > maxLen {
			maxLen = length
		}
		for i := start; i < end; i++ {
			elemToChunk[i] = int32(c)
		}
	}

	return &Grid{ticks: ticks, elemToChunk: elemToChunk, maxChunkLen: maxLen}, nil
}

// PreferredAxis picks row-major iteration when the row grid crosses chunk
// boundaries no more often than the column grid, i.e. chunks_per_row <=
// chunks_per_col; ties break toward rows.
func PreferredAxis(rows, cols *Grid) Axis {
	if rows.ChunkCount() <= cols.ChunkCount() {
		return Row
	}
	return Col
}
