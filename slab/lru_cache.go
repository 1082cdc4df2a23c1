package slab

import (
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRUCache is a fixed-capacity least-recently-used cache keyed by chunk id,
// generic over the slab type it holds (*Dense or *Sparse). On eviction the
// slab is pushed onto an internal free list rather than dropped, so the
// caller (a core, through Acquire) gets it straight back for the next miss
// instead of allocating.
//
// Grounded on github.com/hashicorp/golang-lru/v2: the corpus's own
// fixed-size-chunk LRU (a decompressed-frame cache keyed by offset) uses the
// v1 sibling of this library for the same shape; this module needs the v2
// generic, eviction-callback variant because a miss that evicts must recycle
// the evicted slab, not just discard the mapping.
type LRUCache[T any] struct {
	cache *lru.Cache[int, T]
	free  []T
}

// NewLRUCache builds an LRUCache of the given capacity. capacity must be >=
// 1; callers with capacity == 0 should use a solo core instead.
func NewLRUCache[T any](capacity int) (*LRUCache[T], error) {
	c := &LRUCache[T]{}
	cache, err := lru.NewWithEvict[int, T](capacity, func(chunkID int, value T) {
		slog.Debug("slab evicted from cache", "chunk_id", chunkID)
		c.free = append(c.free, value)
	})
	if err != nil {
		return nil, err
	}
	c.cache = cache
	return c, nil
}

// Get looks up chunkID, returning ok=false on a miss.
func (c *LRUCache[T]) Get(chunkID int) (T, bool) {
	return c.cache.Get(chunkID)
}

// Acquire returns a recycled slab if the free list is non-empty, else calls
// alloc to build a new one. Use this instead of calling the Factory
// allocator directly so evicted slabs are actually reused.
func (c *LRUCache[T]) Acquire(alloc func() T) T {
	if n := len(c.free); n > 0 {
		v := c.free[n-1]
		c.free = c.free[:n-1]
		return v
	}
	return alloc()
}

// Insert records that chunkID now maps to slab, possibly evicting the
// current least-recently-used entry (which lands on the free list via the
// eviction callback). Insert must only be called after a successful decode;
// a failed miss must instead call Discard so the slab is recycled without
// ever being advertised as cached (cache state is not mutated on failure).
func (c *LRUCache[T]) Insert(chunkID int, slab T) {
	c.cache.Add(chunkID, slab)
}

// Discard returns a partially-populated slab straight to the free list
// without inserting it into the cache, for the failed-miss path.
func (c *LRUCache[T]) Discard(slab T) {
	c.free = append(c.free, slab)
}

// Len reports the number of chunk ids currently cached.
func (c *LRUCache[T]) Len() int { return c.cache.Len() }
