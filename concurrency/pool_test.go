package concurrency

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_Submit(t *testing.T) {
	pool, err := NewPool(MustOf(4))
	require.NoError(t, err)
	assert.Equal(t, 4, pool.Workers())

	var wg sync.WaitGroup
	var counter atomic.Int64
	for range 100 {
		wg.Add(1)
		require.NoError(t, pool.Submit(t.Context(), func() {
			defer wg.Done()
			counter.Add(1)
		}))
	}
	wg.Wait()
	pool.Close()

	assert.Equal(t, int64(100), counter.Load())
}

func TestPool_Closed(t *testing.T) {
	pool, err := NewPool(MustOf(1))
	require.NoError(t, err)

	pool.Close()
	pool.Close()

	assert.ErrorIs(t, pool.Submit(t.Context(), func() {}), ErrPoolClosed)
}

func TestPool_ContextCancelled(t *testing.T) {
	pool, err := NewPool(MustOf(1))
	require.NoError(t, err)
	defer pool.Close()

	block := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, pool.Submit(t.Context(), func() {
		close(started)
		<-block
	}))
	<-started

	// The only worker is busy, so the next submit has to wait.
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	assert.ErrorIs(t, pool.Submit(ctx, func() {}), context.Canceled)

	close(block)
}

func TestPool_TrySubmit(t *testing.T) {
	pool, err := NewPool(MustOf(1))
	require.NoError(t, err)

	block := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, pool.Submit(t.Context(), func() {
		close(started)
		<-block
	}))
	<-started

	assert.Equal(t, 1, pool.Busy())
	assert.ErrorIs(t, pool.TrySubmit(func() {}), ErrPoolBusy)

	close(block)
	require.Eventually(t, func() bool { return pool.Busy() == 0 }, time.Second, time.Millisecond)

	ran := make(chan struct{})
	require.Eventually(t, func() bool {
		return pool.TrySubmit(func() { close(ran) }) == nil
	}, time.Second, time.Millisecond)
	<-ran

	pool.Close()
	assert.ErrorIs(t, pool.TrySubmit(func() {}), ErrPoolClosed)
}

func TestPool_CloseWaitsForRunningTask(t *testing.T) {
	pool, err := NewPool(MustOf(2))
	require.NoError(t, err)

	var finished atomic.Bool
	started := make(chan struct{})
	require.NoError(t, pool.Submit(t.Context(), func() {
		close(started)
		time.Sleep(20 * time.Millisecond)
		finished.Store(true)
	}))
	<-started

	pool.Close()
	assert.True(t, finished.Load())
	assert.Zero(t, pool.Busy())
}

func TestNewPool_Invalid(t *testing.T) {
	_, err := NewPool(Concurrency{})
	assert.ErrorIs(t, err, ErrInvalidConcurrency)
}
