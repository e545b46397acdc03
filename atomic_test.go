package huge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/huge/concurrency"
)

func TestAtomicLongArray_ConcurrentAdds(t *testing.T) {
	const (
		length = 100
		rounds = 1000
	)
	arr, err := NewAtomicLongArray(length, WithPageSize(16))
	require.NoError(t, err)

	concurrency.Run(concurrency.MustOf(8), nil, func(s *concurrency.Scope) {
		s.SpawnMany(length*rounds, func(i int64) {
			arr.AddTo(i%length, 1)
		})
	})

	for id := range int64(length) {
		assert.Equal(t, int64(rounds), arr.Get(id))
	}
}

func TestAtomicLongArray_CompareAndSet(t *testing.T) {
	arr, err := NewAtomicLongArray(10)
	require.NoError(t, err)

	assert.True(t, arr.CompareAndSet(3, 0, 5))
	assert.False(t, arr.CompareAndSet(3, 0, 6))
	assert.Equal(t, int64(5), arr.Get(3))

	assert.Equal(t, int64(5), arr.CompareAndExchange(3, 5, 9))
	assert.Equal(t, int64(9), arr.CompareAndExchange(3, 5, 1))
	assert.Equal(t, int64(9), arr.Get(3))

	assert.Equal(t, int64(9), arr.GetAndAdd(3, 1))
	assert.Equal(t, int64(20), arr.Update(3, func(v int64) int64 { return v * 2 }))
}

func TestAtomicLongArray_Snapshot(t *testing.T) {
	arr, err := NewAtomicLongArray(50, WithPageSize(8))
	require.NoError(t, err)
	arr.Fill(2)
	arr.Set(49, 10)

	snap, err := arr.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, int64(50), snap.Size())
	assert.Equal(t, int64(49*2+10), Sum(snap))

	arr.Set(0, 100)
	assert.Equal(t, int64(2), snap.Get(0))
}

func TestAtomicLongArray_Bounds(t *testing.T) {
	arr, err := NewAtomicLongArray(4)
	require.NoError(t, err)

	assert.PanicsWithError(t, "huge: index 4 out of bounds for length 4", func() { arr.Get(4) })
	assert.Positive(t, arr.SizeOf())
	assert.Equal(t, arr.SizeOf(), arr.Release())
}

func TestAtomicWithGenerator(t *testing.T) {
	for _, c := range []int{1, 3} {
		arr, err := AtomicWithGenerator(777, concurrency.MustOf(c), func(id int64) int64 { return 3 * id }, WithPageSize(32))
		require.NoError(t, err)
		assert.Equal(t, int64(777), arr.Size())
		for id := range int64(777) {
			require.Equal(t, 3*id, arr.Get(id))
		}
	}
}
