package huge

import (
	"context"
	"fmt"
	"iter"
	"unsafe"

	"github.com/hupe1980/huge/internal/conv"
	"github.com/hupe1980/huge/internal/layout"
)

type (
	// LongArray is a huge array of int64.
	LongArray = Array[int64]
	// IntArray is a huge array of int32.
	IntArray = Array[int32]
	// DoubleArray is a huge array of float64.
	DoubleArray = Array[float64]
	// FloatArray is a huge array of float32.
	FloatArray = Array[float32]
	// ByteArray is a huge array of bytes.
	ByteArray = Array[byte]
)

// ObjectArray is a huge array of opaque handles such as pointers.
type ObjectArray[T any] = Array[T]

const sliceHeaderBytes = int64(unsafe.Sizeof([]byte(nil)))

// Array is a fixed-length array decomposed into pages.
//
// Arrays that fit into one page are backed by a single slice; larger ones
// by ceil(length/pageSize) pages, the last sized to the remainder. Both
// forms behave identically.
//
// An Array is not safe for concurrent writes to the same index. Disjoint
// indices may be written from different goroutines.
type Array[T any] struct {
	size  int64
	shift uint
	mask  int64

	paged  bool
	single []T
	pages  [][]T

	layout   layout.Layout
	opts     options
	reserved int64
	released bool
}

// NewArray allocates a zeroed array of length elements.
func NewArray[T any](length int64, opts ...Option) (*Array[T], error) {
	return allocate[T](length, applyOptions(opts), true)
}

// NewLongArray allocates a zeroed LongArray.
func NewLongArray(length int64, opts ...Option) (*LongArray, error) {
	return NewArray[int64](length, opts...)
}

// NewIntArray allocates a zeroed IntArray.
func NewIntArray(length int64, opts ...Option) (*IntArray, error) {
	return NewArray[int32](length, opts...)
}

// NewDoubleArray allocates a zeroed DoubleArray.
func NewDoubleArray(length int64, opts ...Option) (*DoubleArray, error) {
	return NewArray[float64](length, opts...)
}

// NewObjectArray allocates an array of zero-valued handles.
func NewObjectArray[T any](length int64, opts ...Option) (*ObjectArray[T], error) {
	return NewArray[T](length, opts...)
}

// MemoryEstimate returns the bytes NewArray[T](length, opts...) retains,
// without allocating.
func MemoryEstimate[T any](length int64, opts ...Option) (int64, error) {
	if length < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	l, err := layoutFor[T](applyOptions(opts))
	if err != nil {
		return 0, err
	}
	return estimate[T](length, l)
}

func estimate[T any](length int64, l layout.Layout) (int64, error) {
	var zero T
	data, err := conv.MulInt64(length, int64(unsafe.Sizeof(zero)))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidLength, err)
	}
	overhead := int64(unsafe.Sizeof(Array[T]{}))
	if !l.FitsSinglePage(length) {
		overhead += l.NumPages(length) * sliceHeaderBytes
	}
	bytes, err := conv.AddInt64(data, overhead)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidLength, err)
	}
	return bytes, nil
}

// allocate creates the array. Without eager the page table of a paged
// array is left empty for the caller to fill.
func allocate[T any](length int64, o options, eager bool) (*Array[T], error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	l, err := layoutFor[T](o)
	if err != nil {
		return nil, err
	}

	bytes, err := estimate[T](length, l)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if o.tracker != nil {
		if err := o.tracker.AcquireMemory(bytes); err != nil {
			err = fmt.Errorf("%w: %w", ErrMemoryReservation, err)
			o.logger.LogAllocation(ctx, length, l.NumPages(length), bytes, err)
			return nil, err
		}
	}

	a := &Array[T]{
		size:     length,
		shift:    l.Shift(),
		mask:     l.Mask(),
		layout:   l,
		opts:     o,
		reserved: bytes,
	}
	if l.FitsSinglePage(length) {
		a.single = make([]T, length)
	} else {
		a.paged = true
		a.pages = make([][]T, l.NumPages(length))
		if eager {
			for p := range a.pages {
				a.pages[p] = a.newPage(int64(p))
			}
		}
	}

	o.metrics.RecordAllocation(bytes)
	o.logger.LogAllocation(ctx, length, l.NumPages(length), bytes, nil)
	return a, nil
}

func (a *Array[T]) newPage(p int64) []T {
	return make([]T, a.layout.ExclusiveIndexOfPage(p, a.size))
}

// Size returns the logical length.
func (a *Array[T]) Size() int64 { return a.size }

// SizeOf returns the bytes retained by the array.
func (a *Array[T]) SizeOf() int64 {
	if a.released {
		return 0
	}
	return a.reserved
}

// Get returns the element at id.
func (a *Array[T]) Get(id int64) T {
	if uint64(id) >= uint64(a.size) {
		panic(outOfBounds(id, a.size))
	}
	if !a.paged {
		return a.single[id]
	}
	return a.pages[id>>a.shift][id&a.mask]
}

// Set stores v at id.
func (a *Array[T]) Set(id int64, v T) {
	if uint64(id) >= uint64(a.size) {
		panic(outOfBounds(id, a.size))
	}
	if !a.paged {
		a.single[id] = v
		return
	}
	a.pages[id>>a.shift][id&a.mask] = v
}

// Update replaces the element at id with fn(old).
func (a *Array[T]) Update(id int64, fn func(T) T) {
	p := a.slot(id)
	*p = fn(*p)
}

func (a *Array[T]) slot(id int64) *T {
	if uint64(id) >= uint64(a.size) {
		panic(outOfBounds(id, a.size))
	}
	if !a.paged {
		return &a.single[id]
	}
	return &a.pages[id>>a.shift][id&a.mask]
}

// tail returns the slots from id to the end of its page.
func (a *Array[T]) tail(id int64) []T {
	if !a.paged {
		return a.single[id:]
	}
	return a.pages[id>>a.shift][id&a.mask:]
}

// Fill writes v to every slot.
func (a *Array[T]) Fill(v T) {
	for _, page := range a.Pages() {
		for i := range page {
			page[i] = v
		}
	}
}

// SetAll stores gen(id) for every id in increasing order.
func (a *Array[T]) SetAll(gen func(id int64) T) {
	for base, page := range a.Pages() {
		for i := range page {
			page[i] = gen(base + int64(i))
		}
	}
}

// CopyTo copies the first n elements into dst and zeroes dst beyond them.
// n is clamped to both sizes.
func (a *Array[T]) CopyTo(dst *Array[T], n int64) {
	n = max(0, min(n, a.size, dst.size))
	for id := int64(0); id < n; {
		src := a.tail(id)
		d := dst.tail(id)
		k := min(int64(len(src)), int64(len(d)), n-id)
		copy(d[:k], src[:k])
		id += k
	}
	for _, page := range dst.Range(n, dst.size) {
		clear(page)
	}
}

// CopyOf returns a new array of newLength holding the first
// min(Size(), newLength) elements, configured like a.
func (a *Array[T]) CopyOf(newLength int64) (*Array[T], error) {
	o := a.opts
	o.flag = nil
	out, err := allocate[T](newLength, o, true)
	if err != nil {
		return nil, err
	}
	a.CopyTo(out, a.size)
	return out, nil
}

// Pages iterates the array as (base index, slots) chunks in increasing
// order. Writes through the yielded slices are writes to the array. Chunk
// boundaries are an implementation detail.
func (a *Array[T]) Pages() iter.Seq2[int64, []T] {
	return a.Range(0, a.size)
}

// Range is Pages restricted to [start, end), clamped to the array.
func (a *Array[T]) Range(start, end int64) iter.Seq2[int64, []T] {
	return func(yield func(int64, []T) bool) {
		lo := max(start, 0)
		hi := min(end, a.size)
		for id := lo; id < hi; {
			t := a.tail(id)
			k := min(int64(len(t)), hi-id)
			if !yield(id, t[:k]) {
				return
			}
			id += k
		}
	}
}

// All iterates (index, value) pairs in increasing index order.
func (a *Array[T]) All() iter.Seq2[int64, T] {
	return func(yield func(int64, T) bool) {
		for base, page := range a.Pages() {
			for i, v := range page {
				if !yield(base+int64(i), v) {
					return
				}
			}
		}
	}
}

// Release drops all pages and returns the bytes that were retained.
// The array is empty afterwards. Calling Release again returns 0.
func (a *Array[T]) Release() int64 {
	if a.released {
		return 0
	}
	a.released = true

	bytes := a.reserved
	a.single = nil
	a.pages = nil
	a.paged = false
	a.size = 0

	if a.opts.tracker != nil {
		a.opts.tracker.ReleaseMemory(bytes)
	}
	a.opts.metrics.RecordRelease(bytes)
	a.opts.logger.LogRelease(context.Background(), bytes)
	return bytes
}

// ToSlice returns the backing slice of a single-page array. Writes through
// the slice are writes to the array. Paged arrays return ErrTooLargeForSlice.
func (a *Array[T]) ToSlice() ([]T, error) {
	if a.paged {
		return nil, fmt.Errorf("%w: length %d", ErrTooLargeForSlice, a.size)
	}
	return a.single, nil
}
