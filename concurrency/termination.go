package concurrency

import (
	"context"
	"time"
)

// TerminationFlag is the shared signal that allows cooperative early exit
// from parallel work. Reading it is lock-free and safe from any goroutine.
type TerminationFlag struct {
	ctx    context.Context
	cancel context.CancelCauseFunc // nil for flags that never trip
	stop   context.CancelFunc
}

// NewTerminationFlag returns a flag that trips when parent is done or
// Terminate is called.
func NewTerminationFlag(parent context.Context) *TerminationFlag {
	ctx, cancel := context.WithCancelCause(parent)
	return &TerminationFlag{ctx: ctx, cancel: cancel}
}

// WithTimeout returns a flag that additionally trips after d.
func WithTimeout(parent context.Context, d time.Duration) *TerminationFlag {
	timed, stop := context.WithTimeoutCause(parent, d, ErrTimeout)
	ctx, cancel := context.WithCancelCause(timed)
	return &TerminationFlag{ctx: ctx, cancel: cancel, stop: stop}
}

var runningTrue = &TerminationFlag{ctx: context.Background()}

// RunningTrue returns a flag that never trips.
func RunningTrue() *TerminationFlag { return runningTrue }

// Running reports whether work may continue.
func (f *TerminationFlag) Running() bool {
	if f == nil {
		return true
	}
	select {
	case <-f.ctx.Done():
		return false
	default:
		return true
	}
}

// Terminate trips the flag. Calling it more than once is a no-op.
func (f *TerminationFlag) Terminate() {
	if f == nil || f.cancel == nil {
		return
	}
	f.cancel(ErrTerminated)
	if f.stop != nil {
		f.stop()
	}
}

// Err returns the termination cause, or nil while running.
func (f *TerminationFlag) Err() error {
	if f == nil || f.Running() {
		return nil
	}
	return context.Cause(f.ctx)
}

// AssertRunning returns the termination cause once the flag has tripped.
func (f *TerminationFlag) AssertRunning() error {
	return f.Err()
}

// Context returns a context that is done once the flag trips.
func (f *TerminationFlag) Context() context.Context {
	if f == nil {
		return context.Background()
	}
	return f.ctx
}
