package huge

import (
	"sync/atomic"
)

// AtomicLongArray is a huge array of int64 whose elements are read and
// written atomically. It is safe for concurrent use.
type AtomicLongArray struct {
	arr *Array[atomic.Int64]
}

// NewAtomicLongArray allocates a zeroed AtomicLongArray.
func NewAtomicLongArray(length int64, opts ...Option) (*AtomicLongArray, error) {
	arr, err := allocate[atomic.Int64](length, applyOptions(opts), true)
	if err != nil {
		return nil, err
	}
	return &AtomicLongArray{arr: arr}, nil
}

// Size returns the logical length.
func (a *AtomicLongArray) Size() int64 { return a.arr.Size() }

// SizeOf returns the bytes retained by the array.
func (a *AtomicLongArray) SizeOf() int64 { return a.arr.SizeOf() }

// Get atomically loads the element at id.
func (a *AtomicLongArray) Get(id int64) int64 {
	return a.arr.slot(id).Load()
}

// Set atomically stores v at id.
func (a *AtomicLongArray) Set(id int64, v int64) {
	a.arr.slot(id).Store(v)
}

// GetAndAdd adds delta to the element at id and returns the previous value.
func (a *AtomicLongArray) GetAndAdd(id int64, delta int64) int64 {
	return a.arr.slot(id).Add(delta) - delta
}

// AddTo adds delta to the element at id.
func (a *AtomicLongArray) AddTo(id int64, delta int64) {
	a.arr.slot(id).Add(delta)
}

// CompareAndSet stores update at id if the current value is expected.
func (a *AtomicLongArray) CompareAndSet(id int64, expected, update int64) bool {
	return a.arr.slot(id).CompareAndSwap(expected, update)
}

// CompareAndExchange stores update at id if the current value is expected
// and returns the value witnessed before the operation, i.e. expected on
// success.
func (a *AtomicLongArray) CompareAndExchange(id int64, expected, update int64) int64 {
	p := a.arr.slot(id)
	for {
		cur := p.Load()
		if cur != expected {
			return cur
		}
		if p.CompareAndSwap(expected, update) {
			return expected
		}
	}
}

// Update atomically replaces the element at id with fn(old) and returns the
// new value. fn may be called more than once under contention.
func (a *AtomicLongArray) Update(id int64, fn func(int64) int64) int64 {
	p := a.arr.slot(id)
	for {
		cur := p.Load()
		next := fn(cur)
		if p.CompareAndSwap(cur, next) {
			return next
		}
	}
}

// Fill stores v in every slot. It is not atomic as a whole.
func (a *AtomicLongArray) Fill(v int64) {
	for _, page := range a.arr.Pages() {
		for i := range page {
			page[i].Store(v)
		}
	}
}

// Snapshot copies the current values into a new LongArray with the same
// configuration. Concurrent writers may or may not be observed.
func (a *AtomicLongArray) Snapshot() (*LongArray, error) {
	o := a.arr.opts
	o.flag = nil
	out, err := allocate[int64](a.Size(), o, true)
	if err != nil {
		return nil, err
	}
	for base, page := range a.arr.Pages() {
		dst := out.tail(base)
		for i := range page {
			dst[i] = page[i].Load()
		}
	}
	return out, nil
}

// Release drops all pages and returns the bytes that were retained.
func (a *AtomicLongArray) Release() int64 {
	return a.arr.Release()
}
