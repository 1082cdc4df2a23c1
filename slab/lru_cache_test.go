package slab_test

import (
	"testing"

	"github.com/katalvlaran/tatamigo/slab"
	"github.com/stretchr/testify/require"
)

func TestLRUCache_MissThenHit(t *testing.T) {
	c, err := slab.NewLRUCache[*slab.Dense](2)
	require.NoError(t, err)

	_, ok := c.Get(0)
	require.False(t, ok)

	d := c.Acquire(func() *slab.Dense { return slab.NewDense(4, 3) })
	d.ChunkID = 0
	c.Insert(0, d)

	got, ok := c.Get(0)
	require.True(t, ok)
	require.Same(t, d, got)
}

func TestLRUCache_EvictionRecyclesSlab(t *testing.T) {
	c, err := slab.NewLRUCache[*slab.Dense](1)
	require.NoError(t, err)

	a := slab.NewDense(2, 2)
	a.ChunkID = 0
	c.Insert(0, a)

	// Inserting a second key evicts `a`; Acquire should now hand it back out
	// rather than allocating fresh.
	b := slab.NewDense(2, 2)
	b.ChunkID = 1
	c.Insert(1, b)

	recycled := c.Acquire(func() *slab.Dense { return slab.NewDense(2, 2) })
	require.Same(t, a, recycled)
}

func TestLRUCache_DiscardDoesNotCache(t *testing.T) {
	c, err := slab.NewLRUCache[*slab.Dense](2)
	require.NoError(t, err)

	d := slab.NewDense(2, 2)
	c.Discard(d)

	_, ok := c.Get(0)
	require.False(t, ok)

	recycled := c.Acquire(func() *slab.Dense { return slab.NewDense(2, 2) })
	require.Same(t, d, recycled)
}
