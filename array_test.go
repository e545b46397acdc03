package huge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/huge/internal/conv"
	"github.com/hupe1980/huge/resource"
	"github.com/hupe1980/huge/testutil"
)

func TestArray_RoundTrip(t *testing.T) {
	for _, length := range []int64{0, 1, 15, 16, 17, 100, 1000} {
		arr, err := NewLongArray(length, WithPageSize(16))
		require.NoError(t, err)
		assert.Equal(t, length, arr.Size())

		for id := range length {
			assert.Zero(t, arr.Get(id))
			arr.Set(id, id*7-3)
		}
		for id := range length {
			assert.Equal(t, id*7-3, arr.Get(id), "length=%d id=%d", length, id)
		}
	}
}

func TestArray_DefaultPageSize(t *testing.T) {
	longs, err := NewLongArray(4096)
	require.NoError(t, err)
	assert.False(t, longs.paged)

	longs, err = NewLongArray(4097)
	require.NoError(t, err)
	assert.True(t, longs.paged)
	assert.Len(t, longs.pages, 2)
	assert.Len(t, longs.pages[1], 1)

	bytes, err := NewArray[byte](32 * 1024)
	require.NoError(t, err)
	assert.False(t, bytes.paged)
}

// Single-page and paged arrays must be indistinguishable.
func TestArray_RepresentationsAgree(t *testing.T) {
	const length = 64
	values := testutil.NewRNG(7).DistinctInt64s(length, 1<<40)

	single, err := NewLongArray(length, WithPageSize(64))
	require.NoError(t, err)
	paged, err := NewLongArray(length, WithPageSize(8))
	require.NoError(t, err)
	require.False(t, single.paged)
	require.True(t, paged.paged)

	for _, arr := range []*LongArray{single, paged} {
		arr.SetAll(func(id int64) int64 { return values[id] })
		AddTo(arr, 3, 11)
		arr.Update(5, func(v int64) int64 { return v * 2 })
	}

	collect := func(a *LongArray) []int64 {
		var out []int64
		for _, v := range a.All() {
			out = append(out, v)
		}
		return out
	}
	assert.Equal(t, collect(single), collect(paged))
	assert.Equal(t, Sum(single), Sum(paged))

	grownSingle, err := single.CopyOf(100)
	require.NoError(t, err)
	grownPaged, err := paged.CopyOf(100)
	require.NoError(t, err)
	assert.Equal(t, collect(grownSingle), collect(grownPaged))

	single.Fill(9)
	paged.Fill(9)
	assert.Equal(t, collect(single), collect(paged))

	assert.PanicsWithError(t, "huge: index 64 out of bounds for length 64", func() { single.Get(length) })
	assert.PanicsWithError(t, "huge: index 64 out of bounds for length 64", func() { paged.Get(length) })
}

func TestArray_OutOfBounds(t *testing.T) {
	arr, err := NewLongArray(10, WithPageSize(4))
	require.NoError(t, err)

	for _, id := range []int64{-1, 10, 11, 1 << 40} {
		func() {
			defer func() {
				r := recover()
				require.NotNil(t, r, "id=%d", id)
				oob, ok := r.(*IndexOutOfBoundsError)
				require.True(t, ok)
				assert.Equal(t, id, oob.Index)
				assert.Equal(t, int64(10), oob.Length)
				assert.ErrorIs(t, oob, ErrIndexOutOfBounds)
			}()
			arr.Set(id, 1)
		}()
	}

	assert.Panics(t, func() { AddTo(arr, 10, 1) })
	assert.Panics(t, func() { arr.Update(-1, func(v int64) int64 { return v }) })
}

func TestArray_InvalidConfiguration(t *testing.T) {
	_, err := NewLongArray(-1)
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = NewLongArray(10, WithPageSize(3))
	assert.ErrorIs(t, err, ErrInvalidPageSize)

	_, err = MemoryEstimate[int64](-5)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestArray_FillAndSetAll(t *testing.T) {
	arr, err := NewDoubleArray(50, WithPageSize(8))
	require.NoError(t, err)

	arr.Fill(1.5)
	assert.InDelta(t, 75.0, Sum(arr), 1e-9)

	arr.SetAll(func(id int64) float64 { return float64(id) / 2 })
	for id := range int64(50) {
		assert.InDelta(t, float64(id)/2, arr.Get(id), 1e-12)
	}
}

func TestArray_BitOps(t *testing.T) {
	arr, err := NewLongArray(20, WithPageSize(4))
	require.NoError(t, err)

	arr.Set(13, 0b1010)
	Or(arr, 13, 0b0101)
	assert.Equal(t, int64(0b1111), arr.Get(13))
	And(arr, 13, 0b0110)
	assert.Equal(t, int64(0b0110), arr.Get(13))
}

func TestArray_ObjectHandles(t *testing.T) {
	type node struct{ name string }

	arr, err := NewObjectArray[*node](10, WithPageSize(4))
	require.NoError(t, err)

	n := &node{name: "a"}
	arr.Set(7, n)
	assert.Same(t, n, arr.Get(7))
	assert.Nil(t, arr.Get(6))
}

func TestArray_SizeOfMatchesEstimate(t *testing.T) {
	for _, length := range []int64{0, 1, 4096, 4097, 100_000} {
		est, err := MemoryEstimate[int64](length)
		require.NoError(t, err)

		arr, err := NewLongArray(length)
		require.NoError(t, err)
		assert.Equal(t, est, arr.SizeOf(), "length=%d", length)
	}

	single, err := MemoryEstimate[int64](4096)
	require.NoError(t, err)
	paged, err := MemoryEstimate[int64](4097)
	require.NoError(t, err)
	assert.Equal(t, int64(8+2*24), paged-single)
}

func TestArray_Release(t *testing.T) {
	rc := resource.NewController(resource.Config{})
	metrics := &BasicMetricsCollector{}

	arr, err := NewLongArray(10_000, WithMemoryTracker(rc), WithMetricsCollector(metrics))
	require.NoError(t, err)
	size := arr.SizeOf()
	assert.Equal(t, size, rc.MemoryUsage())
	assert.Equal(t, size, metrics.RetainedBytes())

	assert.Equal(t, size, arr.Release())
	assert.Zero(t, arr.Release())
	assert.Zero(t, arr.Size())
	assert.Zero(t, arr.SizeOf())
	assert.Zero(t, rc.MemoryUsage())
	assert.Zero(t, metrics.RetainedBytes())
	assert.Panics(t, func() { arr.Get(0) })
}

func TestArray_MemoryLimit(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1024})

	_, err := NewLongArray(1000, WithMemoryTracker(rc))
	assert.ErrorIs(t, err, ErrMemoryReservation)
	assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
	assert.Zero(t, rc.MemoryUsage())

	small, err := NewLongArray(10, WithMemoryTracker(rc))
	require.NoError(t, err)
	assert.Equal(t, small.SizeOf(), rc.MemoryUsage())
}

func TestArray_CopyTo(t *testing.T) {
	src, err := NewLongArray(30, WithPageSize(8))
	require.NoError(t, err)
	src.SetAll(func(id int64) int64 { return id + 1 })

	dst, err := NewLongArray(40, WithPageSize(16))
	require.NoError(t, err)
	dst.Fill(-1)

	src.CopyTo(dst, 20)
	for id := range int64(40) {
		if id < 20 {
			assert.Equal(t, id+1, dst.Get(id))
		} else {
			assert.Zero(t, dst.Get(id), "id=%d", id)
		}
	}

	// n larger than either array is clamped.
	src.CopyTo(dst, 1000)
	assert.Equal(t, int64(30), dst.Get(29))
	assert.Zero(t, dst.Get(30))
}

func TestArray_CopyOf(t *testing.T) {
	arr, err := NewLongArray(20, WithPageSize(8))
	require.NoError(t, err)
	arr.SetAll(func(id int64) int64 { return id })

	shrunk, err := arr.CopyOf(5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), shrunk.Size())
	assert.Equal(t, int64(4), shrunk.Get(4))

	grown, err := arr.CopyOf(50)
	require.NoError(t, err)
	assert.Equal(t, int64(50), grown.Size())
	assert.Equal(t, int64(19), grown.Get(19))
	assert.Zero(t, grown.Get(49))

	// The copy is independent of the source.
	grown.Set(0, 100)
	assert.Zero(t, arr.Get(0))
}

func TestArray_PagesAndRange(t *testing.T) {
	arr, err := NewLongArray(20, WithPageSize(8))
	require.NoError(t, err)
	arr.SetAll(func(id int64) int64 { return id })

	var bases []int64
	var total int64
	for base, page := range arr.Pages() {
		bases = append(bases, base)
		for i, v := range page {
			assert.Equal(t, base+int64(i), v)
		}
		total += int64(len(page))
	}
	assert.Equal(t, []int64{0, 8, 16}, bases)
	assert.Equal(t, int64(20), total)

	var got []int64
	for _, page := range arr.Range(6, 11) {
		got = append(got, page...)
	}
	assert.Equal(t, []int64{6, 7, 8, 9, 10}, got)

	// Early break stops iteration.
	var n int
	for range arr.All() {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestBinarySearch(t *testing.T) {
	arr, err := NewLongArray(100, WithPageSize(16))
	require.NoError(t, err)
	arr.SetAll(func(id int64) int64 { return id * 2 })

	assert.Equal(t, int64(0), BinarySearch(arr, 0))
	assert.Equal(t, int64(42), BinarySearch(arr, 84))
	assert.Equal(t, int64(99), BinarySearch(arr, 198))
	assert.Equal(t, int64(-2), BinarySearch(arr, 1))
	assert.Equal(t, int64(-101), BinarySearch(arr, 1000))
	assert.Equal(t, int64(-1), BinarySearch(arr, -5))

	empty, err := NewLongArray(0)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), BinarySearch(empty, 3))
}

func BenchmarkArray_Get(b *testing.B) {
	arr, err := NewLongArray(1 << 20)
	require.NoError(b, err)
	arr.SetAll(func(id int64) int64 { return id })

	var sink int64
	for b.Loop() {
		for id := int64(0); id < arr.Size(); id += 61 {
			sink += arr.Get(id)
		}
	}
	_ = sink
}

func TestArray_ToSlice(t *testing.T) {
	small, err := NewLongArray(8, WithPageSize(8))
	require.NoError(t, err)
	s, err := small.ToSlice()
	require.NoError(t, err)
	s[3] = 11
	assert.Equal(t, int64(11), small.Get(3))

	large, err := NewLongArray(9, WithPageSize(8))
	require.NoError(t, err)
	_, err = large.ToSlice()
	assert.ErrorIs(t, err, ErrTooLargeForSlice)
}

func TestArray_LengthOverflow(t *testing.T) {
	_, err := MemoryEstimate[int64](math.MaxInt64 / 4)
	assert.ErrorIs(t, err, ErrInvalidLength)
	assert.ErrorIs(t, err, conv.ErrOverflow)

	_, err = NewLongArray(math.MaxInt64)
	assert.ErrorIs(t, err, ErrInvalidLength)
}
