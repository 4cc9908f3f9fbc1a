package dynamo

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Workers resolves a requested worker count; n <= 0 means one per CPU.
func Workers(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// ParallelFor splits [0, n) into contiguous chunks of at least minChunk
// items and runs fn on each chunk across at most workers goroutines.
// The first error cancels ctx for the remaining chunks and is returned.
func ParallelFor(ctx context.Context, n, minChunk, workers int, fn func(ctx context.Context, start, end int) error) error {
	if n <= 0 {
		return nil
	}
	if minChunk < 1 {
		minChunk = 1
	}
	workers = Workers(workers)
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers <= 1 {
		return fn(ctx, 0, n)
	}

	chunkSize := (n + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		g.Go(func() error {
			return fn(gctx, start, end)
		})
	}
	return g.Wait()
}
