package partition

import (
	"fmt"

	"github.com/hupe1980/huge/concurrency"
)

// Range divides [0, total) into c.Value() chunks whose sizes differ by at
// most one. Fewer chunks are returned when total < c.Value(); none for an
// empty range.
func Range(c concurrency.Concurrency, total int64) ([]Partition, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := validateTotal(total); err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, nil
	}

	n := min(int64(c.Value()), total)
	base := total / n
	rem := total % n

	parts := make([]Partition, 0, n)
	var start int64
	for i := range n {
		length := base
		if i < rem {
			length++
		}
		parts = append(parts, Partition{Start: start, Length: length})
		start += length
	}
	return parts, nil
}

// RangeWithBatchSize cuts [0, total) into chunks of batchSize elements; the
// last chunk holds the remainder.
func RangeWithBatchSize(total, batchSize int64) ([]Partition, error) {
	if err := validateTotal(total); err != nil {
		return nil, err
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBatchSize, batchSize)
	}

	parts := make([]Partition, 0, (total+batchSize-1)/batchSize)
	for start := int64(0); start < total; start += batchSize {
		parts = append(parts, Partition{Start: start, Length: min(batchSize, total-start)})
	}
	return parts, nil
}
