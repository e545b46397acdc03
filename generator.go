package huge

import (
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/huge/concurrency"
	"github.com/hupe1980/huge/partition"
)

// progressInterval throttles construction progress logs.
const progressInterval = time.Second

// WithGenerator allocates an array of length elements and stores gen(id) at
// every id, using up to c workers.
//
// The range is cut into page-aligned chunks so that every page is allocated
// and written by exactly one worker. Within a chunk ids are visited in
// increasing order; across chunks there is no ordering. WithGenerator
// returns after every chunk has finished. For a pure gen the result does
// not depend on c.
//
// Arrays that fit in one page are filled sequentially. If the termination
// flag from WithTerminationFlag trips, chunks that have not started are
// left zeroed and the partially filled array is returned without error.
func WithGenerator[T any](length int64, c concurrency.Concurrency, gen func(id int64) T, opts ...Option) (*Array[T], error) {
	return construct(length, c, opts, func(page []T, base int64) {
		for i := range page {
			page[i] = gen(base + int64(i))
		}
	})
}

// AtomicWithGenerator is WithGenerator for AtomicLongArray.
func AtomicWithGenerator(length int64, c concurrency.Concurrency, gen func(id int64) int64, opts ...Option) (*AtomicLongArray, error) {
	arr, err := construct(length, c, opts, func(page []atomic.Int64, base int64) {
		for i := range page {
			page[i].Store(gen(base + int64(i)))
		}
	})
	if err != nil {
		return nil, err
	}
	return &AtomicLongArray{arr: arr}, nil
}

// construct allocates the array and runs fill once per page, in parallel
// when the array spans more than one page.
func construct[T any](length int64, c concurrency.Concurrency, opts []Option, fill func(page []T, base int64)) (*Array[T], error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	o := applyOptions(opts)

	start := time.Now()
	a, err := allocate[T](length, o, false)
	if err != nil {
		return nil, err
	}

	if !a.paged {
		fill(a.single, 0)
		return a, nil
	}

	parts, err := partition.NumberAligned(c, length, a.layout.Size())
	if err != nil {
		a.Release()
		return nil, fmt.Errorf("huge: partition construction: %w", err)
	}

	ctx := o.flag.Context()
	logger := o.logger.WithLength(length).WithConcurrency(c.Value())
	progress := rate.Sometimes{Interval: progressInterval}
	var done atomic.Int64

	concurrency.Run(c, o.flag, func(s *concurrency.Scope) {
		for _, p := range parts {
			s.Spawn(func() {
				a.generatePartition(p, fill)
				n := done.Add(p.Length)
				progress.Do(func() { logger.LogProgress(ctx, n, length) })
			})
		}
	})

	// Skipped chunks still need their pages so that every index is readable.
	for i := range a.pages {
		if a.pages[i] == nil {
			a.pages[i] = a.newPage(int64(i))
		}
	}

	terminated := done.Load() < length
	elapsed := time.Since(start)
	logger.LogConstruction(ctx, length, len(parts), elapsed, terminated)
	o.metrics.RecordConstruction(length, len(parts), elapsed, terminated)
	return a, nil
}

// generatePartition allocates and fills the pages covering p. p must start
// on a page boundary.
func (a *Array[T]) generatePartition(p partition.Partition, fill func(page []T, base int64)) {
	first := a.layout.PageIndex(p.Start)
	last := a.layout.PageIndex(p.End() - 1)
	for pi := first; pi <= last; pi++ {
		page := a.newPage(pi)
		fill(page, a.layout.Combine(pi, 0))
		a.pages[pi] = page
	}
}
