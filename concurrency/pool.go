package concurrency

import (
	"context"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of goroutines shared by the scopes of one computation,
// so that supersteps reuse workers instead of starting goroutines per step.
//
// Tasks are handed directly to an idle worker; the pool never holds a task
// that is not running. A scope that finds every worker busy runs the task
// on the spawning goroutine instead of waiting.
type Pool struct {
	workers int
	tasks   chan func()

	ctx    context.Context
	cancel context.CancelFunc
	done   sync.WaitGroup

	busy atomic.Int64
}

// NewPool starts c.Value() worker goroutines that live until Close.
func NewPool(c Concurrency) (*Pool, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		workers: c.Value(),
		tasks:   make(chan func()),
		ctx:     ctx,
		cancel:  cancel,
	}

	p.done.Add(p.workers)
	for range p.workers {
		go p.work()
	}

	return p, nil
}

func (p *Pool) work() {
	defer p.done.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case task := <-p.tasks:
			p.busy.Add(1)
			task()
			p.busy.Add(-1)
		}
	}
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int { return p.workers }

// Busy returns the number of workers currently running a task.
func (p *Pool) Busy() int { return int(p.busy.Load()) }

// TrySubmit hands task to an idle worker without blocking. It returns
// ErrPoolBusy when no worker is idle and ErrPoolClosed after Close.
func (p *Pool) TrySubmit(task func()) error {
	if p.ctx.Err() != nil {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolBusy
	}
}

// Submit hands task to the next idle worker, waiting until one is free.
// It returns ErrPoolClosed when the pool closes first and ctx.Err() when
// ctx is done first. A task that was accepted always runs.
func (p *Pool) Submit(ctx context.Context, task func()) error {
	if p.ctx.Err() != nil {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		return nil
	case <-p.ctx.Done():
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the workers and waits for running tasks to return. Calling
// Close more than once is safe.
func (p *Pool) Close() {
	p.cancel()
	p.done.Wait()
}
