package huge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Allocation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	arr, err := NewLongArray(8192, WithLogger(logger))
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "array allocated", entry["msg"])
	assert.InDelta(t, 8192, entry["length"], 0)
	assert.InDelta(t, 2, entry["pages"], 0)
	assert.Equal(t, "64 KiB", entry["size"])

	buf.Reset()
	arr.Release()
	assert.Contains(t, buf.String(), "array released")
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx := context.Background()

	logger.LogAllocation(ctx, 10, 1, 80, nil)
	logger.LogProgress(ctx, 5, 10)
	assert.Empty(t, buf.String())

	logger.LogAllocation(ctx, 10, 1, 80, errors.New("limit"))
	assert.Contains(t, buf.String(), "allocation failed")
	assert.Contains(t, buf.String(), "error=limit")

	buf.Reset()
	logger.LogConstruction(ctx, 10, 2, time.Millisecond, true)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "construction terminated early")
}

func TestLogger_Noop(t *testing.T) {
	assert.Same(t, NoopLogger(), LoggerOf())
	assert.Same(t, NoopLogger(), LoggerOf(WithLogger(nil)))

	custom := NewTextLogger(slog.LevelError)
	assert.Same(t, custom, LoggerOf(WithLogger(custom)))
	assert.NotNil(t, NewJSONLogger(slog.LevelDebug))
}

func TestBasicMetricsCollector(t *testing.T) {
	m := &BasicMetricsCollector{}

	a, err := NewLongArray(100, WithMetricsCollector(m))
	require.NoError(t, err)
	b, err := NewIntArray(100, WithMetricsCollector(m))
	require.NoError(t, err)

	assert.Equal(t, int64(2), m.Allocations.Load())
	assert.Equal(t, a.SizeOf()+b.SizeOf(), m.RetainedBytes())

	a.Release()
	assert.Equal(t, int64(1), m.Releases.Load())
	assert.Equal(t, b.SizeOf(), m.RetainedBytes())

	m.RecordConstruction(10, 1, time.Second, false)
	assert.Equal(t, int64(10), m.ConstructedElements.Load())
	assert.Equal(t, time.Second.Nanoseconds(), m.ConstructionNanos.Load())
	assert.Zero(t, m.Terminations.Load())
}
