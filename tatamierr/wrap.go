package tatamierr

import "fmt"

// BoundaryCallFailedf wraps a foreign extractor failure with the class name
// of the foreign object, so callers can tell which foreign matrix misbehaved
// without losing the original error via errors.Is/errors.As.
func BoundaryCallFailedf(class string, err error) error {
	return fmt.Errorf("tatamigo: boundary call failed on %s: %w: %w", class, ErrBoundaryCallFailed, err)
}

// DecodeTypeUnsupportedf names the unsupported dtype tag reported by the
// foreign extractor.
func DecodeTypeUnsupportedf(dtype string) error {
	return fmt.Errorf("tatamigo: unsupported decode dtype %q: %w", dtype, ErrDecodeTypeUnsupported)
}

// MalformedChunkGridf names the axis and the reason a chunk grid failed
// validation.
func MalformedChunkGridf(axis string, reason string) error {
	return fmt.Errorf("tatamigo: malformed chunk grid on axis %s: %s: %w", axis, reason, ErrMalformedChunkGrid)
}
