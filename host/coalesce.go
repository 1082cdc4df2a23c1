package host

import (
	"strconv"
	"strings"

	"golang.org/x/sync/singleflight"
)

// coalesceGroup collapses concurrent identical boundary calls into one. A
// single extractor never triggers this itself — an extractor's
// fetches are causally ordered and never concurrent — but two extractors
// opened on the same Handle (e.g. from different parallel.For workers) can
// race on the same cold chunk; Coalesce lets the second arrival ride the
// first's in-flight call instead of paying for its own.
var coalesceGroup singleflight.Group

// Coalesce runs fn under key, sharing its result with any other Coalesce
// call for the same key already in flight. Callers that arrive after fn has
// returned always get a fresh call, exactly as if Coalesce were not there;
// it only ever removes duplicate work, never correctness.
func Coalesce[T any](key string, fn func() (T, error)) (T, error) {
	v, err, _ := coalesceGroup.Do(key, func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// SelectionKey builds a stable Coalesce key from a foreign class name and
// the two selections a boundary call was made with.
func SelectionKey(class string, axis0, axis1 Selection) string {
	var b strings.Builder
	b.WriteString(class)
	b.WriteByte('|')
	writeSelection(&b, axis0)
	b.WriteByte('|')
	writeSelection(&b, axis1)
	return b.String()
}

func writeSelection(b *strings.Builder, sel Selection) {
	for k, v := range sel {
		if k > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(v, 10))
	}
}
