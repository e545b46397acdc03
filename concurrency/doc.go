// Package concurrency provides the structured fork/join boundary used to
// build and scan huge collections in parallel.
//
// # Concurrency
//
// A Concurrency is a configuration value, not a live resource:
//
//	c, err := concurrency.Of(8)       // rejects n <= 0
//	c := concurrency.Available()      // GOMAXPROCS
//
// # Termination
//
// A TerminationFlag is created once per computation and passed explicitly to
// every scope of that computation. It trips when the parent context is done,
// when its timeout elapses, or when Terminate is called:
//
//	flag := concurrency.WithTimeout(ctx, time.Minute)
//	defer flag.Terminate()
//
// Termination is cooperative: in-flight tasks run to completion, tasks that
// have not started yet are skipped.
//
// # Scope
//
// Run opens a scope, invokes the body and returns only after every task
// spawned inside the body has returned:
//
//	stats := concurrency.Run(c, flag, func(s *concurrency.Scope) {
//	    s.SpawnMany(n, func(i int64) {
//	        out.Set(i, f(i))
//	    })
//	})
//
// At most c tasks run at a time, and the goroutine calling Spawn counts as
// one of them: an errgroup limited to c-1 takes tasks while it has room and
// the caller runs the rest itself. WithPool hands tasks to a long-lived Pool
// instead, which avoids goroutine churn across many supersteps; a busy pool
// also falls back to the caller.
//
// Because a saturated scope never makes the caller wait, tasks may spawn
// into their own scope:
//
//	concurrency.Run(c, flag, func(s *concurrency.Scope) {
//	    for _, part := range parts {
//	        s.Spawn(func() {
//	            s.SpawnRange(part.Start, part.End(), visit)
//	        })
//	    }
//	})
package concurrency
