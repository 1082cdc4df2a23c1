// Package dense implements the three dense-core cache policies — solo,
// myopic, oracular — each turning a request for target index i into a
// cached dense chunk and the non-target slice to copy out of it.
package dense

import (
	"context"
	"log/slog"

	"github.com/katalvlaran/tatamigo/chunkgrid"
	"github.com/katalvlaran/tatamigo/host"
	"github.com/katalvlaran/tatamigo/tatamierr"
)

// Fetcher is what every dense core variant (and, through it, every dense
// adapter) exposes: fill buf with the non-target slice for target index i.
// The returned slice is either buf or a pointer to slab-owned memory valid
// until the next Fetch call, per the extractor contract.
type Fetcher interface {
	Fetch(ctx context.Context, i int64, buf []float64) ([]float64, error)
}

// dims captures which physical axis is the target axis, and builds the
// (axis0Sel, axis1Sel) pair ExtractDense expects from a target selection and
// the fixed non-target selection.
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

// decode pulls buf (shaped axis0Len x axis1Len per the host's report) into
// out, a targetLen x nonTargetLen, target-major row-major float64 buffer.
func (d dims) decode(buf host.DenseBuffer, out []float64) error {
	if d.axis == chunkgrid.Row {
		return host.DecodeDense(buf, out)
	}
	// buf is nonTargetLen x targetLen (axis0=nonTarget, axis1=target);
	// transpose into target-major order.
	tmp := make([]float64, buf.Rows*buf.Cols)
	if err := host.DecodeDense(buf, tmp); err != nil {
		return err
	}
	nonTargetLen, targetLen := buf.Rows, buf.Cols
	for t := 0; t < targetLen; t++ {
		for n := 0; n < nonTargetLen; n++ {
			out[t*nonTargetLen+n] = tmp[n*targetLen+t]
		}
	}
	return nil
}

func extractAndDecode(ctx context.Context, foreign host.Foreign, d dims, target host.Selection, out []float64) error {
	axis0, axis1 := d.selections(target)
	key := host.SelectionKey(foreign.ClassName(), axis0, axis1)
	buf, err := host.Coalesce(key, func() (host.DenseBuffer, error) {
		var buf host.DenseBuffer
		err := host.Serialize(func() error {
			var callErr error
			buf, callErr = foreign.ExtractDense(ctx, axis0, axis1)
			return callErr
		})
		return buf, err
	})
	if err != nil {
		slog.Warn("dense boundary call failed", "class", foreign.ClassName(), "error", err)
		return tatamierr.BoundaryCallFailedf(foreign.ClassName(), err)
	}
	return d.decode(buf, out)
}
