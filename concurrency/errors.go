package concurrency

import "errors"

var (
	// ErrInvalidConcurrency is returned when a concurrency value is not positive.
	ErrInvalidConcurrency = errors.New("concurrency: value must be positive")

	// ErrTerminated is the cause recorded by Terminate and returned by AssertRunning.
	ErrTerminated = errors.New("concurrency: terminated")

	// ErrTimeout is the cause recorded when a flag created by WithTimeout expires.
	ErrTimeout = errors.New("concurrency: timeout")

	// ErrScopeClosed is the panic value raised when a scope is used after Run returned.
	ErrScopeClosed = errors.New("concurrency: scope used after it was closed")

	// ErrPoolClosed is returned when submitting to a closed pool.
	ErrPoolClosed = errors.New("concurrency: pool closed")

	// ErrPoolBusy is returned by TrySubmit when every worker is running a task.
	ErrPoolBusy = errors.New("concurrency: no idle worker")
)
