// Package workerpool provides the bounded, data-parallel task runner
// used at every phase boundary of the pipeline (spec.md §5): a fixed
// number of workers consume independent units of work (a candidate
// face pair, a base triangle, a border edge) and the phase does not
// advance until every worker has returned, so results from one phase
// are safe to read without further synchronization in the next.
package workerpool

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Run calls fn(i) for every i in [0,n), bounded by at most workers
// concurrent calls, and returns the first error encountered (all other
// in-flight calls are allowed to finish; their results are discarded).
// workers <= 0 defaults to runtime.GOMAXPROCS(0).
func Run(ctx context.Context, n, workers int, fn func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	sem := semaphore.NewWeighted(int64(workers))
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < n; i++ {
		i := i
		if err := sem.Acquire(ctx, 1); err != nil {
			// A failed task cancels ctx; wait for the in-flight calls
			// and report that task's error rather than the cancellation.
			if werr := g.Wait(); werr != nil {
				return werr
			}
			return err
		}
		g.Go(func() error {
			defer sem.Release(1)
			return fn(ctx, i)
		})
	}
	return g.Wait()
}

// Collect runs fn(i) for every i in [0,n), bounded by workers, and
// gathers each call's result into a slice indexed by i. A result
// position for an index whose call errored is left at its zero value;
// the error returned by the first failing call is also returned.
func Collect[T any](ctx context.Context, n, workers int, fn func(ctx context.Context, i int) (T, error)) ([]T, error) {
	out := make([]T, n)
	err := Run(ctx, n, workers, func(ctx context.Context, i int) error {
		v, err := fn(ctx, i)
		if err != nil {
			return err
		}
		out[i] = v
		return nil
	})
	return out, err
}
