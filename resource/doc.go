// Package resource implements the Controller for memory and worker budgets
// shared between computations.
//
// The Controller manages two resource types:
//
//   - Memory: Track and limit the bytes retained by huge arrays (non-blocking, fail-fast)
//   - Workers: Limit the number of tasks running at once across all scopes
//
// # Architecture
//
//	┌───────────────────────────────────────────┐
//	│                Controller                 │
//	├─────────────────────┬─────────────────────┤
//	│  Memory Limit       │  Worker Slots (sem) │
//	│  (fail-fast)        │                     │
//	├─────────────────────┼─────────────────────┤
//	│  AcquireMemory      │  AcquireWorker      │
//	│  ReleaseMemory      │  TryAcquireWorker   │
//	│  MemoryUsage        │  ReleaseWorker      │
//	└─────────────────────┴─────────────────────┘
//
// # Memory Management
//
// Memory tracking uses a weighted semaphore for hard limits and atomic counters
// for usage tracking. AcquireMemory is non-blocking and returns immediately
// with ErrMemoryLimitExceeded if the limit would be exceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30, // 1GB limit
//	})
//
//	arr, err := huge.NewLongArray(n, huge.WithMemoryTracker(rc))
//	if errors.Is(err, resource.ErrMemoryLimitExceeded) {
//	    // caller decides: smaller batch, spill, or give up
//	}
//	defer arr.Release()
//
// # Worker Limits
//
// Bounds the tasks of all scopes that share the controller, on top of each
// scope's own concurrency:
//
//	concurrency.Run(c, flag, body, concurrency.WithWorkerBudget(rc))
//
// # Thread Safety
//
// All Controller methods are safe for concurrent use. The underlying
// implementations use atomic operations and sync primitives.
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
