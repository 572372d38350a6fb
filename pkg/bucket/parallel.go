package bucket

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/calheat/pkg/timeseries"
)

// minChunkSize is the smallest partition worth a goroutine.
const minChunkSize = 4096

// defaultChunkSize is the partition size used when no worker count is given.
const defaultChunkSize = 1 << 16

// cancelCheckEvery is how many samples a worker folds between context checks.
const cancelCheckEvery = 1 << 14

// BucketizeParallel produces the same grid as Bucketize, splitting the input
// into contiguous partitions folded concurrently. workers > 0 splits the
// input into that many partitions; workers <= 0 uses fixed size partitions
// so float sums do not depend on the host, running at most GOMAXPROCS at a
// time. The only error is the context's.
func BucketizeParallel(ctx context.Context, samples []timeseries.Sample, cfg Config, workers int) (Grid, error) {
	err := ctx.Err()
	if err != nil {
		return Grid{}, fmt.Errorf("bucketize: %w", err)
	}

	cfg = resolveRange(samples, cfg.Normalize())

	chunk := chunkSize(len(samples), workers)
	parts := make([]*partial, (len(samples)+chunk-1)/chunk)

	g, gctx := errgroup.WithContext(ctx)
	if workers <= 0 {
		g.SetLimit(runtime.GOMAXPROCS(0))
	}

	for i := range parts {
		lo := i * chunk
		hi := min(lo+chunk, len(samples))

		g.Go(func() error {
			p := newPartial()

			for start := lo; start < hi; start += cancelCheckEvery {
				err := gctx.Err()
				if err != nil {
					return fmt.Errorf("bucketize partition %d: %w", i, err)
				}

				end := min(start+cancelCheckEvery, hi)
				fold(p, samples[start:end], start, cfg)
			}

			parts[i] = p

			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		return Grid{}, err
	}

	merged := newPartial()
	for _, p := range parts {
		merged.merge(p)
	}

	return assemble(merged, cfg), nil
}

// chunkSize is the partition length for n samples. It depends only on its
// arguments.
func chunkSize(n, workers int) int {
	if workers <= 0 {
		return defaultChunkSize
	}

	return max((n+workers-1)/workers, minChunkSize)
}
