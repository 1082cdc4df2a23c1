// SPDX-License-Identifier: MIT
// Package tatamierr: sentinel error set for the chunk-aware caching extractor
// bridge (unified, consistent). This file defines ONLY package-level sentinel
// errors used across tatamigo. Every package MUST return these sentinels (or
// wrap them with %w) and tests MUST check them via errors.Is.
package tatamierr

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "tatamigo: ..." for consistency and to allow
// easy grepping across logs. Wrap with fmt.Errorf("ctx: %w", ErrX) at the
// outer boundary when context is essential; callers still match via
// errors.Is.

var (
	// ErrMalformedChunkGrid indicates the host-supplied chunk boundaries are
	// not strictly increasing, do not end at the axis extent, or the grid
	// tuple reported by the host is not 2-dimensional.
	ErrMalformedChunkGrid = errors.New("tatamigo: malformed chunk grid")

	// ErrShapeOutOfRange indicates a shape entry is negative or does not fit
	// the index type.
	ErrShapeOutOfRange = errors.New("tatamigo: shape out of range")

	// ErrBoundaryCallFailed indicates the foreign extractor raised; the
	// original payload is wrapped, not replaced.
	ErrBoundaryCallFailed = errors.New("tatamigo: boundary call failed")

	// ErrDecodeTypeUnsupported indicates the foreign extractor returned a
	// dtype this bridge does not know how to decode.
	ErrDecodeTypeUnsupported = errors.New("tatamigo: unsupported decode dtype")

	// ErrMalformedSparseLeaf indicates a sparse leaf was neither nil nor a
	// 2-tuple of parallel (indices, values) arrays.
	ErrMalformedSparseLeaf = errors.New("tatamigo: malformed sparse leaf")

	// ErrCapacityOverflow indicates an internal size computation (slab bytes,
	// tick value, chunk count) would overflow the index type.
	ErrCapacityOverflow = errors.New("tatamigo: capacity overflow")

	// ErrInvalidConfig indicates a configuration option failed validation
	// (e.g. a negative byte budget).
	ErrInvalidConfig = errors.New("tatamigo: invalid configuration")
)
