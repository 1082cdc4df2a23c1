package adapter

import (
	"context"

	"github.com/katalvlaran/tatamigo/dense"
	"github.com/katalvlaran/tatamigo/sparse"
)

// Sparsify serves a sparse request out of dense foreign storage:
// every one of NonTargetLen positions is reported as a structural non-zero
// (dense storage carries no sparsity pattern to preserve), with indices
// rebased through Shape into the caller's frame — Full requests report
// 0..N-1 unchanged, Block requests offset by Start, Indexed requests report
// back the caller's own index vector.
type Sparsify struct {
	Core         dense.Fetcher
	Shape        Shape
	NonTargetLen int

	buf []float64
}

// NewSparsify builds a Sparsify adapter.
func NewSparsify(core dense.Fetcher, shape Shape, nonTargetLen int) *Sparsify {
	return &Sparsify{Core: core, Shape: shape, NonTargetLen: nonTargetLen}
}

// Fetch runs the dense core and reports every position as a non-zero.
func (s *Sparsify) Fetch(ctx context.Context, i int64) (sparse.Result, error) {
	if cap(s.buf) < s.NonTargetLen {
		s.buf = make([]float64, s.NonTargetLen)
	}
	buf := s.buf[:s.NonTargetLen]
	values, err := s.Core.Fetch(ctx, i, buf)
	if err != nil {
		return sparse.Result{}, err
	}
	indices := make([]int64, s.NonTargetLen)
	for k := 0; k < s.NonTargetLen; k++ {
		indices[k] = s.Shape.Rebase(int64(k))
	}
	return sparse.Result{Count: s.NonTargetLen, Values: values, Indices: indices}, nil
}
