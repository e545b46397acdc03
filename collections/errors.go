package collections

import "errors"

var (
	// ErrInvalidCapacity is returned for negative capacities.
	ErrInvalidCapacity = errors.New("collections: capacity must not be negative")

	// ErrInvalidOrder is returned for negative or overflowing matrix orders.
	ErrInvalidOrder = errors.New("collections: invalid matrix order")

	// ErrQueueFull is returned by LongQueue.Add when the queue is at capacity.
	ErrQueueFull = errors.New("collections: queue is full")

	// ErrQueueEmpty is returned by LongQueue.Remove and Peek on an empty queue.
	ErrQueueEmpty = errors.New("collections: queue is empty")

	// ErrStackFull is returned by LongStack.Push when the stack is at capacity.
	ErrStackFull = errors.New("collections: stack is full")

	// ErrStackEmpty is returned by LongStack.Pop and Peek on an empty stack.
	ErrStackEmpty = errors.New("collections: stack is empty")

	// ErrBitOutOfRange is returned when a bitmap holds bits beyond the target size.
	ErrBitOutOfRange = errors.New("collections: bit out of range")
)
