// Package parallelfor is the single parallel-for-over-an-index-range
// primitive used by every parallel region in the construction engine
// (metric preprocessing, random-edge seeding, block dispatch). It is built
// on golang.org/x/sync/errgroup, following the fan-out-with-bounded-limit
// idiom the reference module uses for its own parallel range fetches.
package parallelfor

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Workers returns the worker count Do uses: runtime.GOMAXPROCS(0). There is
// no separate override.
func Workers() int {
	return runtime.GOMAXPROCS(0)
}

// Do runs fn(lo, hi) for successive, disjoint, half-open [lo, hi) chunks
// that partition [0, n), sized to grain (the last chunk may be smaller).
// Chunks run concurrently across up to Workers() goroutines; Do blocks until
// all chunks complete or one returns an error, in which case the first
// error is returned: chunks already running are allowed to finish, and
// chunks that start after the error see the cancelled ctx and return without
// calling fn.
//
// grain <= 0 is treated as 1 (one index per task); callers doing
// row-oriented work (distance/permutation/rank matrices) typically pass a
// grain of a handful of rows to amortize goroutine scheduling overhead.
func Do(ctx context.Context, n int, grain int, fn func(lo, hi int) error) error {
	if n <= 0 {
		return nil
	}
	if grain <= 0 {
		grain = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(Workers())

	for lo := 0; lo < n; lo += grain {
		lo := lo
		hi := lo + grain
		if hi > n {
			hi = n
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(lo, hi)
		})
	}

	return g.Wait()
}
