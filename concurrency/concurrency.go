package concurrency

import (
	"fmt"
	"runtime"
)

// Concurrency is the number of workers that may run simultaneously.
type Concurrency struct {
	value int
}

// Of returns a Concurrency of n workers.
func Of(n int) (Concurrency, error) {
	if n <= 0 {
		return Concurrency{}, fmt.Errorf("%w: %d", ErrInvalidConcurrency, n)
	}
	return Concurrency{value: n}, nil
}

// MustOf is like Of but panics on invalid input.
func MustOf(n int) Concurrency {
	c, err := Of(n)
	if err != nil {
		panic(err)
	}
	return c
}

// Available returns a Concurrency sized to runtime.GOMAXPROCS.
func Available() Concurrency {
	return Concurrency{value: max(1, runtime.GOMAXPROCS(0))}
}

// Value returns the number of workers.
func (c Concurrency) Value() int { return c.value }

// Validate reports whether c was produced by Of, MustOf or Available.
func (c Concurrency) Validate() error {
	if c.value <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidConcurrency, c.value)
	}
	return nil
}

// IsSingleThreaded reports whether only one worker is allowed.
func (c Concurrency) IsSingleThreaded() bool { return c.value == 1 }

func (c Concurrency) String() string {
	return fmt.Sprintf("Concurrency(%d)", c.value)
}
