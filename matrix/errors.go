// SPDX-License-Identifier: MIT
package matrix

import "github.com/katalvlaran/tatamigo/tatamierr"

// This file re-exports the sentinels callers of the façade need. The kinds
// themselves live in tatamierr — the bridge has one unified error set, not
// one per package.

var (
	// ErrInvalidConfig is returned by New when the supplied config.Options
	// fail validation.
	ErrInvalidConfig = tatamierr.ErrInvalidConfig

	// ErrShapeOutOfRange is returned when the foreign matrix reports a
	// negative or overflowing shape.
	ErrShapeOutOfRange = tatamierr.ErrShapeOutOfRange

	// ErrMalformedChunkGrid is returned when the foreign matrix's chunk grid
	// fails chunkgrid.Build's validation.
	ErrMalformedChunkGrid = tatamierr.ErrMalformedChunkGrid

	// ErrBoundaryCallFailed is returned when a foreign extractor call raises.
	ErrBoundaryCallFailed = tatamierr.ErrBoundaryCallFailed
)
