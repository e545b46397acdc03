package partition

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTotal is returned for negative element counts or weights.
	ErrInvalidTotal = errors.New("partition: total must not be negative")

	// ErrInvalidAlignment is returned when an alignment is not a positive power of two.
	ErrInvalidAlignment = errors.New("partition: alignment must be a positive power of two")

	// ErrInvalidBatchSize is returned for non-positive batch sizes.
	ErrInvalidBatchSize = errors.New("partition: batch size must be positive")
)

// Partition is the half-open range [Start, Start+Length).
type Partition struct {
	Start  int64
	Length int64
}

// End returns the exclusive end of the partition.
func (p Partition) End() int64 { return p.Start + p.Length }

// Consume calls fn for every index of the partition in increasing order.
func (p Partition) Consume(fn func(id int64)) {
	for id := p.Start; id < p.End(); id++ {
		fn(id)
	}
}

func (p Partition) String() string {
	return fmt.Sprintf("Partition[%d, %d)", p.Start, p.End())
}

// DegreePartition is a Partition that carries its accumulated weight.
type DegreePartition struct {
	Partition
	Weight int64
}

func (p DegreePartition) String() string {
	return fmt.Sprintf("DegreePartition[%d, %d) weight=%d", p.Start, p.End(), p.Weight)
}

// TotalLength sums the lengths of parts.
func TotalLength(parts []Partition) int64 {
	var n int64
	for _, p := range parts {
		n += p.Length
	}
	return n
}

func validateTotal(total int64) error {
	if total < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTotal, total)
	}
	return nil
}
