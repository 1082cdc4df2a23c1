package slab

import (
	"math"

	"github.com/katalvlaran/tatamigo/tatamierr"
)

// Sizer converts a byte budget, element size, slab shape, and the
// minimum-cache policy into a maximum slab count, per the cache sizer
// component of the data model.
type Sizer struct{}

// MaxSlabs derives:
//
//	slabBytes           = targetLen * nonTargetLen * elemSize
//	maxSlabsInCache      = floor(budgetBytes / slabBytes), clamped to targetNumSlabs
//
// If requireMinimum is set and the result would be 0, it is raised to 1 so a
// single scan's working set always fits. This raise applies even when a
// degenerate slab shape (targetLen, nonTargetLen, or elemSize == 0 — e.g. a
// zero-length block request) would otherwise short-circuit straight to 0:
// an oracular cache still needs maxSlabs >= 1 to make progress regardless of
// how small each slab turns out to be. A result of exactly 0 (with
// requireMinimum false) tells the caller to select the solo (no-cache) core.
func (Sizer) MaxSlabs(targetLen, nonTargetLen int64, targetNumSlabs int, elemSize int, budgetBytes int64, requireMinimum bool) (int, error) {
	if targetLen < 0 || nonTargetLen < 0 || elemSize < 0 || budgetBytes < 0 {
		return 0, tatamierr.ErrShapeOutOfRange
	}
	if targetLen == 0 || nonTargetLen == 0 || elemSize == 0 {
		if requireMinimum {
			return 1, nil
		}
		return 0, nil
	}

	// Overflow guard: detect multiplication overflow before it happens by
	// checking against the max int64 budget any of these could represent.
	const maxInt64 = math.MaxInt64
	if targetLen != 0 && nonTargetLen > maxInt64/targetLen {
		return 0, tatamierr.ErrCapacityOverflow
	}
	product := targetLen * nonTargetLen
	if product != 0 && int64(elemSize) > maxInt64/product {
		return 0, tatamierr.ErrCapacityOverflow
	}
	slabBytes := product * int64(elemSize)
	if slabBytes == 0 {
		if requireMinimum {
			return 1, nil
		}
		return 0, nil
	}

	max := int(budgetBytes / slabBytes)
	if max > targetNumSlabs {
		max = targetNumSlabs
	}
	if max < 0 {
		max = 0
	}
	if requireMinimum && max < 1 {
		max = 1
	}
	return max, nil
}
