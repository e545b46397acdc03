package collections

import (
	"fmt"

	"github.com/hupe1980/huge"
)

// LongQueue is a fixed-capacity circular FIFO queue of int64.
type LongQueue struct {
	buf  *huge.LongArray
	head int64
	size int64
}

// NewLongQueue creates an empty queue holding at most capacity elements.
func NewLongQueue(capacity int64, opts ...huge.Option) (*LongQueue, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	buf, err := huge.NewLongArray(capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &LongQueue{buf: buf}, nil
}

// Add appends v to the tail.
func (q *LongQueue) Add(v int64) error {
	if q.size == q.buf.Size() {
		return ErrQueueFull
	}
	q.buf.Set(q.wrap(q.head+q.size), v)
	q.size++
	return nil
}

// Remove takes the element at the head.
func (q *LongQueue) Remove() (int64, error) {
	if q.size == 0 {
		return 0, ErrQueueEmpty
	}
	v := q.buf.Get(q.head)
	q.head = q.wrap(q.head + 1)
	q.size--
	return v, nil
}

// Peek returns the element at the head without removing it.
func (q *LongQueue) Peek() (int64, error) {
	if q.size == 0 {
		return 0, ErrQueueEmpty
	}
	return q.buf.Get(q.head), nil
}

func (q *LongQueue) wrap(i int64) int64 {
	if c := q.buf.Size(); i >= c {
		return i - c
	}
	return i
}

// Clear removes all elements.
func (q *LongQueue) Clear() {
	q.head = 0
	q.size = 0
}

// Size returns the number of queued elements.
func (q *LongQueue) Size() int64 { return q.size }

// IsEmpty reports whether the queue holds no elements.
func (q *LongQueue) IsEmpty() bool { return q.size == 0 }

// Capacity returns the maximum number of elements.
func (q *LongQueue) Capacity() int64 { return q.buf.Size() }

// SizeOf returns the bytes retained by the queue.
func (q *LongQueue) SizeOf() int64 { return q.buf.SizeOf() }

// Release drops the backing array and returns the bytes it retained.
func (q *LongQueue) Release() int64 {
	q.Clear()
	return q.buf.Release()
}
