package huge

import (
	"bytes"
	"context"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/huge/concurrency"
	"github.com/hupe1980/huge/resource"
)

func TestWithGenerator_Deterministic(t *testing.T) {
	const length = 1000
	gen := func(id int64) int64 { return id*id - 17 }

	for _, c := range []int{1, 2, 3, 8} {
		arr, err := WithGenerator(length, concurrency.MustOf(c), gen, WithPageSize(64))
		require.NoError(t, err)
		require.Equal(t, int64(length), arr.Size())
		require.True(t, arr.paged)

		for id, v := range arr.All() {
			require.Equal(t, gen(id), v, "c=%d id=%d", c, id)
		}
	}
}

func TestWithGenerator_VisitsEveryIndexOnce(t *testing.T) {
	const length = 5000
	var calls atomic.Int64
	seen := make([]atomic.Int32, length)

	_, err := WithGenerator(length, concurrency.MustOf(4), func(id int64) int32 {
		calls.Add(1)
		seen[id].Add(1)
		return int32(id)
	}, WithPageSize(128))
	require.NoError(t, err)

	assert.Equal(t, int64(length), calls.Load())
	for id := range seen {
		assert.Equal(t, int32(1), seen[id].Load(), "id=%d", id)
	}
}

func TestWithGenerator_SinglePage(t *testing.T) {
	arr, err := WithGenerator(10, concurrency.MustOf(8), func(id int64) float64 { return float64(id) + 0.5 })
	require.NoError(t, err)
	assert.False(t, arr.paged)
	assert.InDelta(t, 50.0, Sum(arr), 1e-9)
}

func TestWithGenerator_Empty(t *testing.T) {
	arr, err := WithGenerator(0, concurrency.MustOf(2), func(int64) int64 { return 1 })
	require.NoError(t, err)
	assert.Zero(t, arr.Size())
}

func TestWithGenerator_InvalidConcurrency(t *testing.T) {
	_, err := WithGenerator(10, concurrency.Concurrency{}, func(int64) int64 { return 1 })
	assert.ErrorIs(t, err, concurrency.ErrInvalidConcurrency)

	_, err = WithGenerator(-1, concurrency.MustOf(1), func(int64) int64 { return 1 })
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestWithGenerator_Terminated(t *testing.T) {
	flag := concurrency.NewTerminationFlag(context.Background())
	flag.Terminate()
	metrics := &BasicMetricsCollector{}

	arr, err := WithGenerator(1000, concurrency.MustOf(4), func(int64) int64 { return 7 },
		WithPageSize(64),
		WithTerminationFlag(flag),
		WithMetricsCollector(metrics),
	)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), arr.Size())
	assert.Zero(t, Sum(arr))
	assert.Equal(t, int64(1), metrics.Constructions.Load())
	assert.Equal(t, int64(1), metrics.Terminations.Load())
}

func TestWithGenerator_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, nil))

	_, err := WithGenerator(256, concurrency.MustOf(2), func(id int64) int64 { return id },
		WithPageSize(32),
		WithLogger(logger),
	)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "construction completed")
	assert.Contains(t, buf.String(), "partitions=")
	assert.Contains(t, buf.String(), "concurrency=2")
}

func TestWithGenerator_MemoryTracker(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 20})

	arr, err := WithGenerator(10_000, concurrency.MustOf(2), func(id int64) int64 { return id },
		WithMemoryTracker(rc),
	)
	require.NoError(t, err)
	assert.Equal(t, arr.SizeOf(), rc.MemoryUsage())

	arr.Release()
	assert.Zero(t, rc.MemoryUsage())
}

func BenchmarkWithGenerator(b *testing.B) {
	c := concurrency.Available()
	for b.Loop() {
		arr, err := WithGenerator(1<<20, c, func(id int64) int64 { return id ^ 0x5bd1e995 })
		require.NoError(b, err)
		arr.Release()
	}
}
