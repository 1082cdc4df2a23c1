package matrix_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/tatamigo/chunkgrid"
	"github.com/katalvlaran/tatamigo/config"
	"github.com/katalvlaran/tatamigo/internal/testhost"
	"github.com/katalvlaran/tatamigo/matrix"
	"github.com/katalvlaran/tatamigo/slab"
	"github.com/stretchr/testify/require"
)

func denseGround(n, m int) [][]float64 {
	g := make([][]float64, n)
	for i := range g {
		g[i] = make([]float64, m)
		for j := range g[i] {
			g[i][j] = float64(i*m + j + 1)
		}
	}
	return g
}

func diag(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = float64(i + 1)
	}
	return m
}

// 3x4 dense (the fake serves C-order buffers), chunks rows=[0,2,3],
// cols=[0,2,4], full row scan, myopic, budget = 2 slabs (each slab is 2 rows
// x 4 cols x 8 bytes). Expected: 2 boundary calls, rows match the source
// row-for-row.
func TestDenseMyopicRowScan(t *testing.T) {
	ground := denseGround(3, 4)
	fake := testhost.New("Dense3x4", ground, false, []int64{2, 3}, []int64{2, 4})

	h, err := matrix.New(context.Background(), fake, config.WithMaximumCacheSize(2*2*4*8))
	require.NoError(t, err)

	ext, err := h.Dense(context.Background(), chunkgrid.Row, matrix.Full(), nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		buf := make([]float64, 4)
		got, err := ext.Fetch(context.Background(), int64(i), buf)
		require.NoError(t, err)
		require.Equal(t, ground[i], got)
	}
	require.EqualValues(t, 2, fake.BoundaryCallCount())
}

// 5x5 sparse diagonal matrix; dense full extraction of column 0 returns
// [1,0,0,0,0].
func TestSparseStorageDenseColumnExtraction(t *testing.T) {
	ground := diag(5)
	fake := testhost.New("Diag5", ground, true, nil, nil)

	h, err := matrix.New(context.Background(), fake)
	require.NoError(t, err)

	ext, err := h.Dense(context.Background(), chunkgrid.Col, matrix.Full(), nil)
	require.NoError(t, err)

	buf := make([]float64, 5)
	got, err := ext.Fetch(context.Background(), 0, buf)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0, 0, 0, 0}, got)
}

// Oracle = [2,0,2,1,0] over a 3-chunk axis (one row per chunk) with a
// 3-slab budget: all 3 distinct misses fit in a single look-ahead window, so
// one batched boundary call serves every fetch in the sequence.
func TestOracleBatchesMissesByChunkID(t *testing.T) {
	ground := denseGround(3, 2) // 3 rows, one row per chunk
	fake := testhost.New("Three", ground, false, []int64{1, 2, 3}, nil)

	h, err := matrix.New(context.Background(), fake, config.WithMaximumCacheSize(1<<30))
	require.NoError(t, err)

	oracle := slab.Sequence{2, 0, 2, 1, 0}
	ext, err := h.Dense(context.Background(), chunkgrid.Row, matrix.Full(), oracle)
	require.NoError(t, err)

	want := [][]float64{ground[2], ground[0], ground[2], ground[1], ground[0]}
	for k := range oracle {
		buf := make([]float64, 2)
		got, err := ext.Fetch(context.Background(), 0, buf)
		require.NoError(t, err)
		require.Equal(t, want[k], got)
	}
	require.EqualValues(t, 1, fake.BoundaryCallCount())
}

// Dense storage, sparse request: the framework-sparsify wrapper reports
// count = non_target_length structural non-zeros with indices
// 0..non_target_length.
func TestSparsifyReportsStructuralNonZeros(t *testing.T) {
	ground := denseGround(2, 4)
	fake := testhost.New("Dense", ground, false, nil, nil)

	h, err := matrix.New(context.Background(), fake)
	require.NoError(t, err)

	ext, err := h.Sparse(context.Background(), chunkgrid.Row, matrix.Full(), nil)
	require.NoError(t, err)

	res, err := ext.Fetch(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 4, res.Count)
	require.Equal(t, []int64{0, 1, 2, 3}, res.Indices)
	require.Equal(t, ground[1], res.Values)
}

// Block request start=1, length=2 on a 5-col matrix, sparse storage:
// indices rebased to (1..2) by the block adapter.
func TestBlockRequestRebasesIndices(t *testing.T) {
	ground := diag(5)
	fake := testhost.New("Diag5", ground, true, nil, nil)

	h, err := matrix.New(context.Background(), fake)
	require.NoError(t, err)

	ext, err := h.Sparse(context.Background(), chunkgrid.Row, matrix.Block(1, 2), nil)
	require.NoError(t, err)

	// Row 0's only non-zero is at column 0, outside the [1,3) block.
	res, err := ext.Fetch(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, 0, res.Count)

	// Row 1's non-zero at column 1 rebases to 1 (block start + local 0).
	res, err = ext.Fetch(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	require.Equal(t, int64(1), res.Indices[0])

	// Row 2's non-zero at column 2 rebases to 2 (block start + local 1).
	res, err = ext.Fetch(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	require.Equal(t, int64(2), res.Indices[0])
}

// Indexed request with duplicates [0,0,2]: each duplicate returns the same
// values.
func TestIndexedRequestWithDuplicates(t *testing.T) {
	ground := diag(3)
	fake := testhost.New("Diag3", ground, false, nil, nil)

	h, err := matrix.New(context.Background(), fake)
	require.NoError(t, err)

	ext, err := h.Dense(context.Background(), chunkgrid.Row, matrix.Indexed([]int64{0, 0, 2}), nil)
	require.NoError(t, err)

	buf := make([]float64, 3)
	got, err := ext.Fetch(context.Background(), 0, buf)
	require.NoError(t, err)
	require.Equal(t, []float64{ground[0][0], ground[0][0], ground[0][2]}, got)
}

// A zero-length block request collapses nonTargetLen to 0, which must not
// bypass the require-minimum raise: paired with an oracle over a 3-chunk
// target axis, the sizer still has to report maxSlabs=1 despite the
// degenerate slab shape, since NewOracleCache requires maxSlabs >= 1. With
// maxSlabs correctly clamped to 1 the look-ahead window holds one chunk at a
// time, so this scan makes one boundary call per chunk (3 total) rather than
// batching the whole axis into a single call.
func TestZeroLengthBlockWithOracleRespectsOneSlabBudget(t *testing.T) {
	ground := diag(3)
	fake := testhost.New("Diag3", ground, false, []int64{1, 2, 3}, nil)

	h, err := matrix.New(context.Background(), fake, config.WithMaximumCacheSize(1<<30))
	require.NoError(t, err)

	oracle := slab.Sequence{0, 1, 2}
	ext, err := h.Dense(context.Background(), chunkgrid.Row, matrix.Block(1, 0), oracle)
	require.NoError(t, err)

	for range oracle {
		got, err := ext.Fetch(context.Background(), 0, nil)
		require.NoError(t, err)
		require.Empty(t, got)
	}
	require.EqualValues(t, 3, fake.BoundaryCallCount())
}

// Oracular and myopic extractors produce byte-identical output to the solo
// extractor for the same inputs.
func TestOracularMyopicMatchSolo(t *testing.T) {
	ground := denseGround(6, 3)
	fakeSolo := testhost.New("A", ground, false, []int64{2, 4, 6}, nil)
	fakeMyopic := testhost.New("B", ground, false, []int64{2, 4, 6}, nil)
	fakeOracular := testhost.New("C", ground, false, []int64{2, 4, 6}, nil)

	hSolo, err := matrix.New(context.Background(), fakeSolo, config.WithMaximumCacheSize(1))
	require.NoError(t, err)
	hMyopic, err := matrix.New(context.Background(), fakeMyopic, config.WithMaximumCacheSize(1<<30))
	require.NoError(t, err)
	hOracular, err := matrix.New(context.Background(), fakeOracular, config.WithMaximumCacheSize(1<<30))
	require.NoError(t, err)

	soloExt, err := hSolo.Dense(context.Background(), chunkgrid.Row, matrix.Full(), nil)
	require.NoError(t, err)
	myopicExt, err := hMyopic.Dense(context.Background(), chunkgrid.Row, matrix.Full(), nil)
	require.NoError(t, err)
	oracularExt, err := hOracular.Dense(context.Background(), chunkgrid.Row, matrix.Full(), slab.Sequence{0, 1, 2, 3, 4, 5})
	require.NoError(t, err)

	for i := int64(0); i < 6; i++ {
		soloBuf, myopicBuf, oracularBuf := make([]float64, 3), make([]float64, 3), make([]float64, 3)
		soloGot, err := soloExt.Fetch(context.Background(), i, soloBuf)
		require.NoError(t, err)
		myopicGot, err := myopicExt.Fetch(context.Background(), i, myopicBuf)
		require.NoError(t, err)
		oracularGot, err := oracularExt.Fetch(context.Background(), i, oracularBuf)
		require.NoError(t, err)

		require.Equal(t, soloGot, myopicGot)
		require.Equal(t, soloGot, oracularGot)
	}
}

// Under a budget that allows only one slab, repeated access to two
// distinct chunks within one scan results in one boundary call per access
// (thrash baseline: no reuse across the alternation).
func TestOneSlabBudgetThrashes(t *testing.T) {
	ground := denseGround(4, 2)
	fake := testhost.New("Thrash", ground, false, []int64{2, 4}, nil)

	// One slab's worth of budget: targetLen=2 (max chunk length) x
	// nonTargetLen=2 x 8 bytes = 32 bytes.
	h, err := matrix.New(context.Background(), fake, config.WithMaximumCacheSize(2*2*8))
	require.NoError(t, err)

	ext, err := h.Dense(context.Background(), chunkgrid.Row, matrix.Full(), nil)
	require.NoError(t, err)

	order := []int64{0, 2, 0, 2}
	for _, i := range order {
		buf := make([]float64, 2)
		_, err := ext.Fetch(context.Background(), i, buf)
		require.NoError(t, err)
	}
	require.EqualValues(t, 4, fake.BoundaryCallCount())
}

// Under an oracle that predicts a consecutive permutation of the target
// axis, total boundary calls equal the chunk count along the target axis.
func TestConsecutiveOraclePermutation(t *testing.T) {
	ground := denseGround(6, 2)
	fake := testhost.New("Consecutive", ground, false, []int64{2, 4, 6}, nil)

	// One slab's worth of budget forces the oracle to fill one chunk at a
	// time instead of batching all three chunks into a single call.
	h, err := matrix.New(context.Background(), fake, config.WithMaximumCacheSize(2*2*8))
	require.NoError(t, err)

	oracle := slab.Sequence{0, 1, 2, 3, 4, 5}
	ext, err := h.Dense(context.Background(), chunkgrid.Row, matrix.Full(), oracle)
	require.NoError(t, err)

	for range oracle {
		buf := make([]float64, 2)
		_, err := ext.Fetch(context.Background(), 0, buf)
		require.NoError(t, err)
	}
	require.EqualValues(t, 3, fake.BoundaryCallCount())
}

func TestHandle_CachedShapeAndPreference(t *testing.T) {
	ground := denseGround(3, 4)
	fake := testhost.New("Shape", ground, false, nil, nil)

	h, err := matrix.New(context.Background(), fake)
	require.NoError(t, err)
	require.EqualValues(t, 3, h.NRow())
	require.EqualValues(t, 4, h.NCol())
	require.False(t, h.IsSparse())
	require.True(t, h.UsesOracle())
	require.True(t, h.PreferRows())
}
