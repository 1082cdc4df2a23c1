package slab

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/katalvlaran/tatamigo/chunkgrid"
)

// ErrOracleExhausted is returned by OracleCache.Next once the oracle's
// sequence has been fully consumed.
var ErrOracleExhausted = errors.New("tatamigo: oracle exhausted")

// Filler performs the single batched boundary call for a set of missing
// chunk ids, decoding each chunk's sub-range into the slab assigned to it in
// slabs. Implementations acquire the host lock once for the whole batch.
type Filler[T Slab] func(ctx context.Context, chunkIDs []int, slabs map[int]T) error

// OracleCache is the prefetch-oracle-driven cache of the data model: rather
// than reacting to one miss at a time, it walks the oracle ahead by up to
// maxSlabs distinct chunks, reassigns free slabs to the misses it finds,
// and fills them all with a single boundary call sorted by ascending chunk
// id (friendlier to on-disk foreign backings).
type OracleCache[T Slab] struct {
	grid     *chunkgrid.Grid
	maxSlabs int
	oracle   Oracle
	alloc    func() T

	pos      int
	assigned map[int]T
}

// NewOracleCache builds an OracleCache. maxSlabs must be >= 1.
func NewOracleCache[T Slab](grid *chunkgrid.Grid, maxSlabs int, oracle Oracle, alloc func() T) *OracleCache[T] {
	return &OracleCache[T]{
		grid: grid, maxSlabs: maxSlabs, oracle: oracle, alloc: alloc,
		assigned: make(map[int]T, maxSlabs),
	}
}

// lookAhead returns, starting at pos, the sequence of distinct chunk ids the
// oracle predicts within the next maxSlabs distinct chunks (the current one
// included), in first-seen order.
func (c *OracleCache[T]) lookAhead() []int {
	window := make([]int, 0, c.maxSlabs)
	seen := make(map[int]bool, c.maxSlabs)
	for k := c.pos; ; k++ {
		idx, ok := c.oracle.At(k)
		if !ok {
			break
		}
		cid := c.grid.ChunkOf(idx)
		if !seen[cid] {
			seen[cid] = true
			window = append(window, cid)
			if len(window) == c.maxSlabs {
				break
			}
		}
	}
	return window
}

// Next consumes the oracle's prediction at the current position and returns
// the slab holding its chunk plus the intra-chunk offset. fill is invoked at
// most once per call, only when the predicted chunk is not already cached.
func (c *OracleCache[T]) Next(ctx context.Context, fill Filler[T]) (slab T, offset int, err error) {
	var zero T
	idx, ok := c.oracle.At(c.pos)
	if !ok {
		return zero, 0, ErrOracleExhausted
	}
	chunkID := c.grid.ChunkOf(idx)

	if s, ok := c.assigned[chunkID]; ok {
		c.pos++
		start, _ := c.grid.Range(chunkID)
		return s, int(idx - start), nil
	}

	window := c.lookAhead()
	needed := make(map[int]bool, len(window))
	for _, cid := range window {
		needed[cid] = true
	}

	// Free slabs whose currently-held chunk has fallen out of the
	// look-ahead window.
	var free []T
	for cid, s := range c.assigned {
		if !needed[cid] {
			free = append(free, s)
			delete(c.assigned, cid)
		}
	}

	var missing []int
	for _, cid := range window {
		if _, ok := c.assigned[cid]; !ok {
			missing = append(missing, cid)
		}
	}
	sort.Ints(missing)

	newAssignments := make(map[int]T, len(missing))
	for _, cid := range missing {
		var s T
		if n := len(free); n > 0 {
			s = free[n-1]
			free = free[:n-1]
		} else {
			s = c.alloc()
		}
		s.SetChunkID(cid)
		newAssignments[cid] = s
	}

	if len(missing) > 0 {
		slog.Debug("oracular cache batching boundary call", "chunk_ids", missing, "window_size", len(window))
		if err := fill(ctx, missing, newAssignments); err != nil {
			slog.Warn("oracular batched boundary call failed", "chunk_ids", missing, "error", err)
			return zero, 0, err
		}
	}
	for cid, s := range newAssignments {
		c.assigned[cid] = s
	}

	c.pos++
	s := c.assigned[chunkID]
	start, _ := c.grid.Range(chunkID)
	return s, int(idx - start), nil
}

// Reset rewinds the cache to position 0 with no assigned slabs, so the same
// OracleCache can be reused across independent scans in tests.
func (c *OracleCache[T]) Reset() {
	c.pos = 0
	c.assigned = make(map[int]T, c.maxSlabs)
}
