package sparse_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/tatamigo/chunkgrid"
	"github.com/katalvlaran/tatamigo/host"
	"github.com/katalvlaran/tatamigo/internal/testhost"
	"github.com/katalvlaran/tatamigo/slab"
	"github.com/katalvlaran/tatamigo/sparse"
	"github.com/stretchr/testify/require"
)

// diag5 is a 5x5 sparse matrix with row i holding {(i,1.0)}; column 0 has
// exactly one non-zero, at row 0.
func diag5() *testhost.Matrix {
	data := make([][]float64, 5)
	for i := range data {
		data[i] = make([]float64, 5)
		data[i][i] = 1.0
	}
	return testhost.New("FakeSparse", data, true, nil, nil)
}

func TestSolo_ColumnMajorTarget_DiagonalMatrix(t *testing.T) {
	m := diag5()
	core := sparse.NewSolo(m, chunkgrid.Col, host.Full(5))
	res, err := core.Fetch(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	require.Equal(t, []int64{0}, res.Indices)
	require.Equal(t, []float64{1.0}, res.Values)
}

func TestSolo_ColumnMajorTarget_EmptyColumn(t *testing.T) {
	data := [][]float64{{0, 0}, {0, 0}}
	m := testhost.New("AllZero", data, true, nil, nil)
	core := sparse.NewSolo(m, chunkgrid.Col, host.Full(2))
	res, err := core.Fetch(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, 0, res.Count)
}

func TestMyopic_RowMajorTarget_TransposeScatter(t *testing.T) {
	m := diag5()
	grid, err := chunkgrid.Build(chunkgrid.Row, 5, []int64{2, 5})
	require.NoError(t, err)
	factory := slab.NewFactory(int(grid.MaxChunkLen()), 5, true)
	core, err := sparse.NewMyopic(m, chunkgrid.Row, host.Full(5), grid, factory, 2)
	require.NoError(t, err)

	for i := int64(0); i < 5; i++ {
		res, err := core.Fetch(context.Background(), i)
		require.NoError(t, err)
		require.Equal(t, 1, res.Count)
		require.Equal(t, []int64{i}, res.Indices)
		require.Equal(t, []float64{1.0}, res.Values)
	}
	require.EqualValues(t, 2, m.BoundaryCallCount())
}

func TestOracular_MatchesSolo_RowMajor(t *testing.T) {
	m1 := diag5()
	m2 := diag5()
	grid, err := chunkgrid.Build(chunkgrid.Row, 5, []int64{2, 5})
	require.NoError(t, err)

	soloCore := sparse.NewSolo(m1, chunkgrid.Row, host.Full(5))
	factory := slab.NewFactory(int(grid.MaxChunkLen()), 5, true)
	oracle := slab.Sequence{0, 1, 2, 3, 4}
	oracularCore := sparse.NewOracular(m2, chunkgrid.Row, host.Full(5), grid, factory, 2, oracle)

	for i := int64(0); i < 5; i++ {
		gotSolo, err := soloCore.Fetch(context.Background(), i)
		require.NoError(t, err)
		gotOracular, err := oracularCore.Fetch(context.Background(), i)
		require.NoError(t, err)
		require.Equal(t, gotSolo.Count, gotOracular.Count)
		require.Equal(t, gotSolo.Indices, gotOracular.Indices)
		require.Equal(t, gotSolo.Values, gotOracular.Values)
	}
}
