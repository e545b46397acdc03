package conv

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

// ErrOverflow is returned when a result does not fit the target type.
var ErrOverflow = errors.New("integer overflow")

// MulInt64 returns a*b for non-negative operands.
func MulInt64(a, b int64) (int64, error) {
	if a < 0 || b < 0 {
		return 0, fmt.Errorf("%w: %d * %d (negative operand)", ErrOverflow, a, b)
	}
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %d * %d", ErrOverflow, a, b)
	}
	return int64(lo), nil
}

// AddInt64 returns a+b for non-negative operands.
func AddInt64(a, b int64) (int64, error) {
	if a < 0 || b < 0 {
		return 0, fmt.Errorf("%w: %d + %d (negative operand)", ErrOverflow, a, b)
	}
	if a > math.MaxInt64-b {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
	}
	return a + b, nil
}

// Int64ToUint converts v to uint, failing for negative values and for values
// beyond the platform's uint.
func Int64ToUint(v int64) (uint, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: %d cannot be converted to uint (negative)", ErrOverflow, v)
	}
	if uint64(v) > uint64(math.MaxUint) {
		return 0, fmt.Errorf("%w: %d cannot be converted to uint (too large)", ErrOverflow, v)
	}
	return uint(v), nil
}
