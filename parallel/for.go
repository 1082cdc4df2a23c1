// Package parallel provides the "parallelize N tasks over T workers" driver
// used by numeric passes over extracted buffers (row sums, etc. — the
// kernels themselves are out of scope per the purpose statement; this
// package only owns the fan-out and the host-lock discipline around it).
package parallel

import (
	"context"

	"github.com/katalvlaran/tatamigo/host"
	"golang.org/x/sync/errgroup"
)

// For range-partitions [0, n) across workers goroutines, calling fn(ctx, lo,
// hi) once per partition. It releases the host lock (if held) before
// dispatching workers and reacquires it once every worker has joined, since
// worker bodies are expected to be numeric and lock-free except where they
// themselves call host.Serialize for a boundary call.
//
// Grounded on golang.org/x/sync/errgroup (present in the example corpus):
// errgroup gives first-error cancellation for free, which a hand-rolled
// WaitGroup fan-in does not, and which this driver needs because one
// partition's boundary-call failure should stop the others promptly rather
// than run every partition to completion before reporting it.
func For(ctx context.Context, n, workers int, heldLock bool, fn func(ctx context.Context, lo, hi int) error) error {
	if n <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	host.Release(heldLock)
	defer host.Reacquire(heldLock)

	g, gctx := errgroup.WithContext(ctx)
	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if lo >= n {
			break
		}
		if hi > n {
			hi = n
		}
		g.Go(func() error {
			return fn(gctx, lo, hi)
		})
	}
	return g.Wait()
}
