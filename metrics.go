package huge

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting allocation and
// construction metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordAllocation is called after an array reserved bytes of memory.
	RecordAllocation(bytes int64)

	// RecordRelease is called after an array released bytes of memory.
	RecordRelease(bytes int64)

	// RecordConstruction is called after a parallel construction.
	// terminated reports whether the termination flag cut it short.
	RecordConstruction(length int64, partitions int, duration time.Duration, terminated bool)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAllocation(int64)                             {}
func (NoopMetricsCollector) RecordRelease(int64)                                {}
func (NoopMetricsCollector) RecordConstruction(int64, int, time.Duration, bool) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	Allocations         atomic.Int64
	AllocatedBytes      atomic.Int64
	Releases            atomic.Int64
	ReleasedBytes       atomic.Int64
	Constructions       atomic.Int64
	ConstructedElements atomic.Int64
	ConstructionNanos   atomic.Int64
	Terminations        atomic.Int64
}

// RecordAllocation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAllocation(bytes int64) {
	b.Allocations.Add(1)
	b.AllocatedBytes.Add(bytes)
}

// RecordRelease implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRelease(bytes int64) {
	b.Releases.Add(1)
	b.ReleasedBytes.Add(bytes)
}

// RecordConstruction implements MetricsCollector.
func (b *BasicMetricsCollector) RecordConstruction(length int64, _ int, duration time.Duration, terminated bool) {
	b.Constructions.Add(1)
	b.ConstructedElements.Add(length)
	b.ConstructionNanos.Add(duration.Nanoseconds())
	if terminated {
		b.Terminations.Add(1)
	}
}

// RetainedBytes returns allocated minus released bytes.
func (b *BasicMetricsCollector) RetainedBytes() int64 {
	return b.AllocatedBytes.Load() - b.ReleasedBytes.Load()
}
