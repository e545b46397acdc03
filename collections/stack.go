package collections

import (
	"fmt"

	"github.com/hupe1980/huge"
)

// LongStack is a fixed-capacity LIFO stack of int64.
type LongStack struct {
	buf  *huge.LongArray
	size int64
}

// NewLongStack creates an empty stack holding at most capacity elements.
func NewLongStack(capacity int64, opts ...huge.Option) (*LongStack, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	buf, err := huge.NewLongArray(capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &LongStack{buf: buf}, nil
}

// Push puts v on top.
func (s *LongStack) Push(v int64) error {
	if s.size == s.buf.Size() {
		return ErrStackFull
	}
	s.buf.Set(s.size, v)
	s.size++
	return nil
}

// Pop takes the top element.
func (s *LongStack) Pop() (int64, error) {
	if s.size == 0 {
		return 0, ErrStackEmpty
	}
	s.size--
	return s.buf.Get(s.size), nil
}

// Peek returns the top element without removing it.
func (s *LongStack) Peek() (int64, error) {
	if s.size == 0 {
		return 0, ErrStackEmpty
	}
	return s.buf.Get(s.size - 1), nil
}

// Size returns the number of elements.
func (s *LongStack) Size() int64 { return s.size }

// IsEmpty reports whether the stack holds no elements.
func (s *LongStack) IsEmpty() bool { return s.size == 0 }

// Capacity returns the maximum number of elements.
func (s *LongStack) Capacity() int64 { return s.buf.Size() }

// SizeOf returns the bytes retained by the stack.
func (s *LongStack) SizeOf() int64 { return s.buf.SizeOf() }

// Release drops the backing array and returns the bytes it retained.
func (s *LongStack) Release() int64 {
	s.size = 0
	return s.buf.Release()
}
