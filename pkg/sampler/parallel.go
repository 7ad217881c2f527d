package sampler

import (
	"context"
	"runtime"
	"time"

	"github.com/chazu/mathgen/pkg/voxel"
	"golang.org/x/sync/errgroup"
)

// slabsPerWorker controls how finely the z range is split. More slabs than
// workers keeps goroutines busy when some slabs are cheaper than others.
const slabsPerWorker = 4

// SampleParallel materializes r into g using up to workers goroutines, each
// handling whole z-slabs. workers <= 0 means GOMAXPROCS.
//
// The grid must accept concurrent SetNode calls on distinct offsets; slabs
// never share an offset. ctx is checked between slabs: on cancellation the
// stats of finished slabs are returned with ctx's error, and g is left
// partially written.
func (s *Sampler) SampleParallel(ctx context.Context, r Region, g voxel.Grid, workers int) (Stats, error) {
	start := time.Now()
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if r.Empty() {
		s.finish(r, Stats{}, time.Since(start))
		return Stats{}, ctx.Err()
	}

	shape := s.Shape(r)
	slabs := splitZ(r.Min.Z, r.Max.Z, workers*slabsPerWorker)
	results := make([]Stats, len(slabs))
	done := make([]bool, len(slabs))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, sl := range slabs {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			results[i] = s.sampleSlab(shape, r, sl.z0, sl.z1, g)
			done[i] = true
			return nil
		})
	}
	err := eg.Wait()
	if err == nil {
		err = ctx.Err()
	}

	var st Stats
	for i := range results {
		if done[i] {
			st.add(results[i])
		}
	}
	s.finish(r, st, time.Since(start))
	if err != nil {
		s.logger.Warn("parallel sampling stopped", "error", err, "slabs", len(slabs))
	}
	return st, err
}

type slab struct {
	z0, z1 int
}

// splitZ divides [z0, z1] into at most n contiguous slabs of near-equal
// depth. n < 1 is treated as 1.
func splitZ(z0, z1, n int) []slab {
	depth := z1 - z0 + 1
	if depth <= 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	if n > depth {
		n = depth
	}
	out := make([]slab, 0, n)
	step, rem := depth/n, depth%n
	z := z0
	for i := 0; i < n; i++ {
		d := step
		if i < rem {
			d++
		}
		out = append(out, slab{z0: z, z1: z + d - 1})
		z += d
	}
	return out
}
