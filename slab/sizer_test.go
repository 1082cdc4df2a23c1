package slab_test

import (
	"testing"

	"github.com/katalvlaran/tatamigo/slab"
	"github.com/stretchr/testify/require"
)

func TestSizer_BasicClamp(t *testing.T) {
	var sz slab.Sizer
	// slab = 10 * 4 * 8 bytes = 320 bytes; budget fits 3, but only 2 chunks exist.
	max, err := sz.MaxSlabs(10, 4, 2, 8, 1000, false)
	require.NoError(t, err)
	require.Equal(t, 2, max)
}

func TestSizer_ZeroBudgetSelectsSolo(t *testing.T) {
	var sz slab.Sizer
	max, err := sz.MaxSlabs(10, 4, 5, 8, 10, false)
	require.NoError(t, err)
	require.Equal(t, 0, max)
}

func TestSizer_RequireMinimumRaisesToOne(t *testing.T) {
	var sz slab.Sizer
	max, err := sz.MaxSlabs(10, 4, 5, 8, 10, true)
	require.NoError(t, err)
	require.Equal(t, 1, max)
}

func TestSizer_NegativeRejected(t *testing.T) {
	var sz slab.Sizer
	_, err := sz.MaxSlabs(-1, 4, 5, 8, 10, true)
	require.Error(t, err)
}

// A zero-length block request collapses nonTargetLen to 0; paired with an
// oracle (requireMinimum), the sizer must still raise to 1 rather than
// short-circuiting to 0, since NewOracleCache requires maxSlabs >= 1.
func TestSizer_ZeroLengthBlockWithOracleRaisesToOne(t *testing.T) {
	var sz slab.Sizer
	max, err := sz.MaxSlabs(10, 0, 5, 8, 1<<30, true)
	require.NoError(t, err)
	require.Equal(t, 1, max)
}

func TestSizer_ZeroLengthBlockWithoutOracleSelectsSolo(t *testing.T) {
	var sz slab.Sizer
	max, err := sz.MaxSlabs(10, 0, 5, 8, 1<<30, false)
	require.NoError(t, err)
	require.Equal(t, 0, max)
}
