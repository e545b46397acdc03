package concurrency

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/cpu"
)

// DefaultBatchesPerWorker is the number of batches SpawnMany creates per worker.
const DefaultBatchesPerWorker = 4

// WorkerBudget gates task execution on a budget shared between computations.
// resource.Controller implements it.
type WorkerBudget interface {
	AcquireWorker(ctx context.Context) error
	ReleaseWorker()
}

// Stats summarizes the tasks of one scope.
type Stats struct {
	Spawned   int64
	Completed int64
	Skipped   int64
	Panicked  int64
}

// counters are written by every worker; padding keeps them on separate
// cache lines.
type counters struct {
	spawned   atomic.Int64
	_         cpu.CacheLinePad
	completed atomic.Int64
	_         cpu.CacheLinePad
	skipped   atomic.Int64
	_         cpu.CacheLinePad
	panicked  atomic.Int64
}

type scopeOptions struct {
	pool             *Pool
	budget           WorkerBudget
	batchesPerWorker int
}

// ScopeOption configures Run.
type ScopeOption func(*scopeOptions)

// WithPool runs the scope's tasks on p instead of per-task goroutines.
func WithPool(p *Pool) ScopeOption {
	return func(o *scopeOptions) {
		o.pool = p
	}
}

// WithWorkerBudget acquires a worker slot from b around every task.
func WithWorkerBudget(b WorkerBudget) ScopeOption {
	return func(o *scopeOptions) {
		o.budget = b
	}
}

// WithBatchesPerWorker sets how many batches SpawnMany creates per worker.
// Values below 1 are ignored.
func WithBatchesPerWorker(n int) ScopeOption {
	return func(o *scopeOptions) {
		if n >= 1 {
			o.batchesPerWorker = n
		}
	}
}

// Scope is a synchronization boundary. It is only valid inside the body
// passed to Run.
type Scope struct {
	concurrency Concurrency
	flag        *TerminationFlag
	opts        scopeOptions

	group *errgroup.Group
	wg    sync.WaitGroup

	closed atomic.Bool
	stats  counters

	panicOnce sync.Once
	panicVal  any
}

// Run opens a scope with concurrency c, calls body and waits until every
// task spawned in body has returned. A nil flag never trips.
//
// If a task panics, the first panic value is re-raised from Run after all
// other tasks have finished. Run panics when c is invalid.
func Run(c Concurrency, flag *TerminationFlag, body func(s *Scope), opts ...ScopeOption) Stats {
	if err := c.Validate(); err != nil {
		panic(err)
	}
	if flag == nil {
		flag = RunningTrue()
	}

	s := &Scope{
		concurrency: c,
		flag:        flag,
		opts: scopeOptions{
			batchesPerWorker: DefaultBatchesPerWorker,
		},
	}
	for _, opt := range opts {
		opt(&s.opts)
	}

	// The spawning goroutine is one of the c workers, so the group only
	// ever holds c-1 goroutines and a single-threaded scope needs none.
	if s.opts.pool == nil && !c.IsSingleThreaded() {
		s.group = &errgroup.Group{}
		s.group.SetLimit(c.Value() - 1)
	}

	func() {
		// The barrier must hold even when body itself panics.
		defer s.barrier()
		body(s)
	}()

	if s.panicVal != nil {
		panic(s.panicVal)
	}

	return s.Stats()
}

func (s *Scope) barrier() {
	s.wg.Wait()
	if s.group != nil {
		_ = s.group.Wait()
	}
	s.closed.Store(true)
}

// Concurrency returns the configured concurrency.
func (s *Scope) Concurrency() Concurrency { return s.concurrency }

// ShouldContinue reports whether the termination flag is still running.
// Long task bodies may poll it to exit early.
func (s *Scope) ShouldContinue() bool {
	return s.flag.Running()
}

// Spawn runs task on a worker. The task is skipped if the termination flag
// has tripped before it starts. When every worker is busy, task runs on the
// calling goroutine before Spawn returns, which keeps Spawn safe to call
// from inside another task of the same scope.
func (s *Scope) Spawn(task func()) {
	s.submit(task, nil)
}

// SpawnMany invokes task(i) for every i in [0, count) and returns once every
// invocation has returned or was skipped because the flag tripped.
//
// The range is cut into batches; the flag is checked once per batch and
// indices inside one batch run sequentially in increasing order.
func (s *Scope) SpawnMany(count int64, task func(i int64)) {
	s.SpawnRange(0, count, task)
}

// SpawnRange is SpawnMany over [start, end).
func (s *Scope) SpawnRange(start, end int64, task func(i int64)) {
	if s.closed.Load() {
		panic(ErrScopeClosed)
	}
	count := end - start
	if count <= 0 {
		return
	}

	batches := int64(s.concurrency.Value() * s.opts.batchesPerWorker)
	batchSize := max(1, (count+batches-1)/batches)

	var local sync.WaitGroup
	for lo := start; lo < end; lo += batchSize {
		hi := min(lo+batchSize, end)
		local.Add(1)
		s.submit(func() {
			for i := lo; i < hi; i++ {
				task(i)
			}
		}, local.Done)
	}
	local.Wait()
}

// Stats returns a snapshot of the scope counters.
func (s *Scope) Stats() Stats {
	return Stats{
		Spawned:   s.stats.spawned.Load(),
		Completed: s.stats.completed.Load(),
		Skipped:   s.stats.skipped.Load(),
		Panicked:  s.stats.panicked.Load(),
	}
}

// submit dispatches task; done, if non-nil, is called exactly once whether
// the task ran or was skipped.
func (s *Scope) submit(task func(), done func()) {
	if s.closed.Load() {
		panic(ErrScopeClosed)
	}
	s.stats.spawned.Add(1)

	if !s.flag.Running() {
		s.stats.skipped.Add(1)
		if done != nil {
			done()
		}
		return
	}

	s.wg.Add(1)
	finish := func() {
		if done != nil {
			done()
		}
		s.wg.Done()
	}

	run := func() {
		defer finish()
		s.execute(task)
	}

	if s.opts.pool != nil {
		switch err := s.opts.pool.TrySubmit(run); {
		case err == nil:
		case errors.Is(err, ErrPoolBusy):
			run()
		default:
			s.stats.skipped.Add(1)
			finish()
		}
		return
	}

	if s.group == nil || !s.group.TryGo(func() error { run(); return nil }) {
		run()
	}
}

func (s *Scope) execute(task func()) {
	if !s.flag.Running() {
		s.stats.skipped.Add(1)
		return
	}
	if s.opts.budget != nil {
		if err := s.opts.budget.AcquireWorker(s.flag.Context()); err != nil {
			s.stats.skipped.Add(1)
			return
		}
		defer s.opts.budget.ReleaseWorker()
	}

	defer func() {
		if r := recover(); r != nil {
			s.stats.panicked.Add(1)
			s.panicOnce.Do(func() { s.panicVal = r })
		}
	}()

	task()
	s.stats.completed.Add(1)
}
