// Package host defines the narrow contract a foreign matrix object must
// satisfy to be bridged into the matrix framework, and the primitives
// (selections, buffer decoding, the process-wide lock) used to talk to it.
//
// A real binding (cgo, a subprocess protocol, a language-runtime embedding)
// implements Foreign; this package never assumes how the foreign call
// actually crosses the boundary, only that it does so expensively enough to
// be worth batching and caching.
package host

import "context"

// DType tags the element type of a foreign buffer. The bridge decodes every
// value into a float64 internally; the tag only selects the decode routine.
type DType int

const (
	F64 DType = iota
	F32
	I64
	I32
	I16
	I8
	U64
	U32
	U16
	U8
)

// String names the dtype for error messages.
func (d DType) String() string {
	switch d {
	case F64:
		return "f64"
	case F32:
		return "f32"
	case I64:
		return "i64"
	case I32:
		return "i32"
	case I16:
		return "i16"
	case I8:
		return "i8"
	case U64:
		return "u64"
	case U32:
		return "u32"
	case U16:
		return "u16"
	case U8:
		return "u8"
	default:
		return "unknown"
	}
}

// Order names the memory layout of a decoded dense buffer.
type Order int

const (
	// COrder is row-major (C) layout.
	COrder Order = iota
	// FOrder is column-major (Fortran) layout.
	FOrder
)

// Selection is a monotonically increasing (for core-built selections) or
// user-supplied (for indexed requests) integer index vector passed to a
// foreign extractor along one axis.
type Selection []int64

// Full builds the selection [0, n).
func Full(n int64) Selection {
	sel := make(Selection, n)
	for i := range sel {
		sel[i] = int64(i)
	}
	return sel
}

// Block builds the selection [start, start+length).
func Block(start, length int64) Selection {
	sel := make(Selection, length)
	for i := range sel {
		sel[i] = start + int64(i)
	}
	return sel
}

// Indexed wraps a caller-supplied index vector verbatim; it is not required
// to be sorted or duplicate-free (scenario: indexed requests with repeated
// indices each return the same values).
func Indexed(indices []int64) Selection {
	sel := make(Selection, len(indices))
	copy(sel, indices)
	return sel
}

// DenseBuffer is the raw payload returned by ExtractDense before decoding:
// Rows x Cols elements of DType, laid out per Order.
type DenseBuffer struct {
	Rows, Cols int
	DType      DType
	Order      Order
	Bytes      []byte
}

// SparseLeaf is one column's (indices, values) pair from a sparse payload.
// A nil *SparseLeaf represents an all-zero (empty) column.
type SparseLeaf struct {
	IndexDType DType
	ValueDType DType
	// IndexBytes and ValueBytes hold Count entries each, encoded per
	// IndexDType/ValueDType. Indices are conventionally sorted ascending
	// within a leaf (see the open question on sortedness in the design
	// notes); the bridge relies on that convention but does not re-sort.
	IndexBytes []byte
	ValueBytes []byte
	Count      int
}

// SparseBlock is the raw payload returned by ExtractSparse: one entry per
// column of the requested sub-block (nil entries are empty columns).
type SparseBlock struct {
	Columns []*SparseLeaf
}

// Foreign is the downstream contract the core consumes. Every method other
// than ClassName crosses the host-runtime boundary and must only be called
// while holding the process-wide lock (see Serialize).
type Foreign interface {
	// ClassName identifies the foreign object for error messages and
	// Coalesce keys. The cores call it without holding the host lock.
	ClassName() string

	// Shape returns (nrow, ncol); both non-negative and fitting the index
	// type.
	Shape(ctx context.Context) (nrow, ncol int64, err error)

	// IsSparse reports whether the foreign matrix's native storage is
	// sparse.
	IsSparse(ctx context.Context) (bool, error)

	// ChunkGrid returns each axis's boundary ticks as described in
	// chunkgrid.Build: the interior/trailing boundaries ending at that
	// axis's extent, not including the implicit leading 0.
	ChunkGrid(ctx context.Context) (rowTicks, colTicks []int64, err error)

	// ExtractDense materializes a rectangular slab: axis0Sel selects along
	// rows, axis1Sel along columns.
	ExtractDense(ctx context.Context, axis0Sel, axis1Sel Selection) (DenseBuffer, error)

	// ExtractSparse materializes the same sub-block in sparse form: one
	// column-major leaf per axis1Sel entry, each addressed by local
	// positions into axis0Sel.
	ExtractSparse(ctx context.Context, axis0Sel, axis1Sel Selection) (SparseBlock, error)
}
