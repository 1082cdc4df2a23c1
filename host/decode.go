package host

import (
	"encoding/binary"
	"log/slog"
	"math"

	"github.com/katalvlaran/tatamigo/tatamierr"
)

// elemSize returns the on-wire byte width of dtype, used by the cache sizer
// to compute slab byte budgets without decoding anything.
func elemSize(dtype DType) (int, error) {
	switch dtype {
	case F64, I64, U64:
		return 8, nil
	case F32, I32, U32:
		return 4, nil
	case I16, U16:
		return 2, nil
	case I8, U8:
		return 1, nil
	default:
		return 0, tatamierr.DecodeTypeUnsupportedf(dtype.String())
	}
}

// ElemSize is the exported form of elemSize, used by slab.Sizer.
func ElemSize(dtype DType) (int, error) { return elemSize(dtype) }

func decodeOne(dtype DType, b []byte) (float64, error) {
	switch dtype {
	case F64:
		return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
	case F32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b))), nil
	case I64:
		return float64(int64(binary.LittleEndian.Uint64(b))), nil
	case I32:
		return float64(int32(binary.LittleEndian.Uint32(b))), nil
	case I16:
		return float64(int16(binary.LittleEndian.Uint16(b))), nil
	case I8:
		return float64(int8(b[0])), nil
	case U64:
		return float64(binary.LittleEndian.Uint64(b)), nil
	case U32:
		return float64(binary.LittleEndian.Uint32(b)), nil
	case U16:
		return float64(binary.LittleEndian.Uint16(b)), nil
	case U8:
		return float64(b[0]), nil
	default:
		return 0, tatamierr.DecodeTypeUnsupportedf(dtype.String())
	}
}

// DecodeDense decodes buf into out, a Rows x Cols row-major float64 buffer
// (out must already be sized rows*cols). C-order buffers are copied
// straight across; F-order buffers are transposed on the fly so every
// downstream consumer always sees row-major (axis0-major) float64 data.
// Reordering into target-major order for a column target is left to the
// caller (dense's dims.decode).
func DecodeDense(buf DenseBuffer, out []float64) error {
	size, err := elemSize(buf.DType)
	if err != nil {
		return err
	}
	want := buf.Rows * buf.Cols * size
	if len(buf.Bytes) < want {
		slog.Warn("dense boundary response too short", "dtype", buf.DType.String(), "want_bytes", want, "got_bytes", len(buf.Bytes))
		return tatamierr.ErrCapacityOverflow
	}
	if len(out) < buf.Rows*buf.Cols {
		slog.Warn("dense decode output buffer too small", "rows", buf.Rows, "cols", buf.Cols, "got_len", len(out))
		return tatamierr.ErrCapacityOverflow
	}

	for r := 0; r < buf.Rows; r++ {
		for c := 0; c < buf.Cols; c++ {
			var off int
			if buf.Order == COrder {
				off = (r*buf.Cols + c) * size
			} else {
				off = (c*buf.Rows + r) * size
			}
			v, err := decodeOne(buf.DType, buf.Bytes[off:off+size])
			if err != nil {
				slog.Warn("dense element decode failed", "dtype", buf.DType.String(), "row", r, "col", c, "error", err)
				return err
			}
			out[r*buf.Cols+c] = v
		}
	}
	return nil
}

// DecodeSparseLeaf decodes one column's (indices, values) pair into plain
// Go slices. A nil leaf decodes to (nil, nil, nil) representing an empty
// column.
func DecodeSparseLeaf(leaf *SparseLeaf) (indices []int64, values []float64, err error) {
	if leaf == nil {
		return nil, nil, nil
	}
	idxSize, err := elemSize(leaf.IndexDType)
	if err != nil {
		return nil, nil, err
	}
	valSize, err := elemSize(leaf.ValueDType)
	if err != nil {
		return nil, nil, err
	}
	if len(leaf.IndexBytes) < leaf.Count*idxSize || len(leaf.ValueBytes) < leaf.Count*valSize {
		slog.Warn("sparse leaf shorter than its declared count", "count", leaf.Count, "index_bytes", len(leaf.IndexBytes), "value_bytes", len(leaf.ValueBytes))
		return nil, nil, tatamierr.ErrMalformedSparseLeaf
	}

	indices = make([]int64, leaf.Count)
	values = make([]float64, leaf.Count)
	for k := 0; k < leaf.Count; k++ {
		iv, err := decodeOne(leaf.IndexDType, leaf.IndexBytes[k*idxSize:(k+1)*idxSize])
		if err != nil {
			slog.Warn("sparse leaf index decode failed", "position", k, "error", err)
			return nil, nil, err
		}
		indices[k] = int64(iv)
		vv, err := decodeOne(leaf.ValueDType, leaf.ValueBytes[k*valSize:(k+1)*valSize])
		if err != nil {
			slog.Warn("sparse leaf value decode failed", "position", k, "error", err)
			return nil, nil, err
		}
		values[k] = vv
	}
	return indices, values, nil
}
