// Package testhost is a small in-memory stand-in for a foreign matrix
// object, implementing host.Foreign over a plain [][]float64 ground truth.
// It exists purely to exercise the engine's cache, oracle, and decode logic
// without a real cross-runtime binding; production code never imports it.
package testhost

import (
	"context"
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"

	"github.com/katalvlaran/tatamigo/host"
)

// Matrix is a host.Foreign backed by a dense ground-truth grid. It can
// report itself as dense or sparse storage while serving the same values
// either way, which lets callers assert that dense and sparse storage
// produce bit-identical output for the same ground truth.
type Matrix struct {
	class              string
	data               [][]float64 // nrow x ncol, row-major ground truth
	sparse             bool
	rowTicks, colTicks []int64

	mu          sync.Mutex
	denseCalls  int64
	sparseCalls int64
	callOrder   []int64 // first target index of each boundary call, in call order
}

// New builds a fake foreign matrix. rowTicks/colTicks follow host.Foreign's
// ChunkGrid convention (no leading 0, ending at the axis extent); nil means
// "one chunk spanning the whole axis".
func New(class string, data [][]float64, sparse bool, rowTicks, colTicks []int64) *Matrix {
	return &Matrix{class: class, data: data, sparse: sparse, rowTicks: rowTicks, colTicks: colTicks}
}

func (m *Matrix) ClassName() string { return m.class }

func (m *Matrix) Shape(ctx context.Context) (int64, int64, error) {
	if len(m.data) == 0 {
		return 0, 0, nil
	}
	return int64(len(m.data)), int64(len(m.data[0])), nil
}

func (m *Matrix) IsSparse(ctx context.Context) (bool, error) { return m.sparse, nil }

func (m *Matrix) ChunkGrid(ctx context.Context) ([]int64, []int64, error) {
	return m.rowTicks, m.colTicks, nil
}

// BoundaryCallCount returns the total number of ExtractDense+ExtractSparse
// calls made so far, for cache-thrash-baseline assertions.
func (m *Matrix) BoundaryCallCount() int64 {
	return atomic.LoadInt64(&m.denseCalls) + atomic.LoadInt64(&m.sparseCalls)
}

// CallOrder returns the first axis0 target index requested by each boundary
// call, in call order (used to assert ascending-by-chunk-id batching).
func (m *Matrix) CallOrder() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int64, len(m.callOrder))
	copy(out, m.callOrder)
	return out
}

func encodeF64(v float64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, math.Float64bits(v))
	return b
}

func (m *Matrix) recordCall(axis0Sel host.Selection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(axis0Sel) > 0 {
		m.callOrder = append(m.callOrder, axis0Sel[0])
	} else {
		m.callOrder = append(m.callOrder, -1)
	}
}

// ExtractDense reads axis0Sel (rows) x axis1Sel (cols) out of the ground
// truth and returns a C-order f64 buffer.
func (m *Matrix) ExtractDense(ctx context.Context, axis0Sel, axis1Sel host.Selection) (host.DenseBuffer, error) {
	atomic.AddInt64(&m.denseCalls, 1)
	m.recordCall(axis0Sel)

	bytes := make([]byte, 0, len(axis0Sel)*len(axis1Sel)*8)
	for _, r := range axis0Sel {
		for _, c := range axis1Sel {
			bytes = append(bytes, encodeF64(m.data[r][c])...)
		}
	}
	return host.DenseBuffer{
		Rows: len(axis0Sel), Cols: len(axis1Sel),
		DType: host.F64, Order: host.COrder, Bytes: bytes,
	}, nil
}

// ExtractSparse reads the same sub-block but emits one leaf per axis1Sel
// entry (i.e. the foreign store is always column-major for sparse), with
// indices local to axis0Sel (position k, not the original row id).
func (m *Matrix) ExtractSparse(ctx context.Context, axis0Sel, axis1Sel host.Selection) (host.SparseBlock, error) {
	atomic.AddInt64(&m.sparseCalls, 1)
	m.recordCall(axis0Sel)

	cols := make([]*host.SparseLeaf, len(axis1Sel))
	for j, c := range axis1Sel {
		var idx []int64
		var vals []float64
		for k, r := range axis0Sel {
			v := m.data[r][c]
			if v != 0 {
				idx = append(idx, int64(k))
				vals = append(vals, v)
			}
		}
		if len(idx) == 0 {
			continue
		}
		idxBytes := make([]byte, 0, len(idx)*8)
		valBytes := make([]byte, 0, len(vals)*8)
		for i, ix := range idx {
			b := make([]byte, 8)
			binary.LittleEndian.PutUint64(b, uint64(ix))
			idxBytes = append(idxBytes, b...)
			valBytes = append(valBytes, encodeF64(vals[i])...)
		}
		cols[j] = &host.SparseLeaf{
			IndexDType: host.I64, ValueDType: host.F64,
			IndexBytes: idxBytes, ValueBytes: valBytes, Count: len(idx),
		}
	}
	return host.SparseBlock{Columns: cols}, nil
}
