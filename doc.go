// Package huge provides paged arrays for graph-analytics workloads that hold
// far more elements than one contiguous allocation should.
//
// A huge array decomposes a single logical index space [0, N) into fixed-size
// pages (32 KiB by default, 4096 elements for 8-byte values) that are
// allocated and filled independently, while random access stays a shift, a
// mask and two loads.
//
// # Quick Start
//
//	arr, _ := huge.NewLongArray(10_000_000_000)
//	arr.Set(42, 7)
//	v := arr.Get(42)
//
// Arrays that fit into one page use a single slice with no indirection. The
// two representations behave identically; the threshold only affects speed.
//
// # Parallel Construction
//
// WithGenerator fills a new array in parallel. The range is split into
// page-aligned chunks, one chunk per worker, inside one concurrency scope:
//
//	degrees, _ := huge.WithGenerator(nodeCount, concurrency.Available(),
//	    func(id int64) int64 { return graph.Degree(id) })
//
// For a pure generator the result is identical for every concurrency.
//
// # Value Kinds
//
// Array is generic. LongArray, IntArray, DoubleArray, FloatArray and
// ByteArray cover the primitive kinds; any other element type, pointers
// included, is stored as an opaque handle. AtomicLongArray offers lock-free
// read-modify-write for counters shared between workers.
//
// # Memory
//
// SizeOf reports the bytes an array retains and MemoryEstimate predicts it
// up front. WithMemoryTracker reserves memory before allocation, e.g. from a
// resource.Controller with a hard limit.
//
// # Errors
//
// Out-of-range indices panic with *IndexOutOfBoundsError, like slice
// indexing. Invalid lengths, page sizes and refused memory reservations are
// returned as errors.
package huge
