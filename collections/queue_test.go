package collections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/huge"
)

func TestLongQueue(t *testing.T) {
	q, err := NewLongQueue(3, huge.WithPageSize(2))
	require.NoError(t, err)
	assert.True(t, q.IsEmpty())
	assert.Equal(t, int64(3), q.Capacity())

	_, err = q.Remove()
	assert.ErrorIs(t, err, ErrQueueEmpty)
	_, err = q.Peek()
	assert.ErrorIs(t, err, ErrQueueEmpty)

	require.NoError(t, q.Add(1))
	require.NoError(t, q.Add(2))
	require.NoError(t, q.Add(3))
	assert.ErrorIs(t, q.Add(4), ErrQueueFull)

	v, err := q.Peek()
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	v, err = q.Remove()
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	// Wraps around the end of the buffer.
	require.NoError(t, q.Add(4))
	for _, want := range []int64{2, 3, 4} {
		v, err = q.Remove()
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
	assert.True(t, q.IsEmpty())
}

func TestLongQueue_Cycles(t *testing.T) {
	q, err := NewLongQueue(5)
	require.NoError(t, err)

	next, expect := int64(0), int64(0)
	for round := range 20 {
		for range round%4 + 1 {
			require.NoError(t, q.Add(next))
			next++
		}
		for q.Size() > 1 {
			v, err := q.Remove()
			require.NoError(t, err)
			require.Equal(t, expect, v)
			expect++
		}
	}

	q.Clear()
	assert.Zero(t, q.Size())
	assert.Equal(t, q.SizeOf(), q.Release())
}

func TestLongQueue_ZeroCapacity(t *testing.T) {
	q, err := NewLongQueue(0)
	require.NoError(t, err)
	assert.ErrorIs(t, q.Add(1), ErrQueueFull)

	_, err = NewLongQueue(-3)
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestLongStack(t *testing.T) {
	s, err := NewLongStack(3, huge.WithPageSize(2))
	require.NoError(t, err)

	_, err = s.Pop()
	assert.ErrorIs(t, err, ErrStackEmpty)

	for v := range int64(3) {
		require.NoError(t, s.Push(v*10))
	}
	assert.ErrorIs(t, s.Push(99), ErrStackFull)
	assert.Equal(t, int64(3), s.Size())

	v, err := s.Peek()
	require.NoError(t, err)
	assert.Equal(t, int64(20), v)

	for _, want := range []int64{20, 10, 0} {
		v, err = s.Pop()
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
	assert.True(t, s.IsEmpty())
	_, err = s.Peek()
	assert.ErrorIs(t, err, ErrStackEmpty)

	assert.Equal(t, int64(3), s.Capacity())
	assert.Positive(t, s.SizeOf())
	s.Release()

	_, err = NewLongStack(-1)
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}
