package partition

import (
	"fmt"

	"github.com/hupe1980/huge/concurrency"
)

// NumberAligned divides [0, total) into at most c.Value() chunks whose
// starts are multiples of alignTo. The alignment units are spread evenly,
// so the number of chunks is min(c.Value(), ceil(total/alignTo)) and chunk
// lengths differ by at most one unit. The final chunk absorbs the remainder.
func NumberAligned(c concurrency.Concurrency, total, alignTo int64) ([]Partition, error) {
	return NumberAlignedWithMaxSize(c, total, alignTo, 0)
}

// NumberAlignedWithMaxSize is NumberAligned with chunk lengths capped at
// maxSize rounded down to the alignment (but never below one alignment
// unit). maxSize <= 0 disables the cap. The cap may produce more than
// c.Value() chunks.
func NumberAlignedWithMaxSize(c concurrency.Concurrency, total, alignTo, maxSize int64) ([]Partition, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := validateTotal(total); err != nil {
		return nil, err
	}
	if alignTo <= 0 || alignTo&(alignTo-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAlignment, alignTo)
	}
	if total == 0 {
		return nil, nil
	}

	units := (total + alignTo - 1) / alignTo
	n := min(int64(c.Value()), units)
	base, extra := units/n, units%n

	if maxSize > 0 {
		capUnits := max(1, maxSize/alignTo)
		if base+min(extra, 1) > capUnits {
			return fixedAligned(total, capUnits*alignTo), nil
		}
	}

	parts := make([]Partition, 0, n)
	var start int64
	for i := range n {
		size := base
		if i < extra {
			size++
		}
		length := min(size*alignTo, total-start)
		parts = append(parts, Partition{Start: start, Length: length})
		start += length
	}
	return parts, nil
}

// fixedAligned cuts [0, total) into chunks of exactly chunk elements, the
// last one holding whatever is left.
func fixedAligned(total, chunk int64) []Partition {
	parts := make([]Partition, 0, (total+chunk-1)/chunk)
	for start := int64(0); start < total; start += chunk {
		parts = append(parts, Partition{Start: start, Length: min(chunk, total-start)})
	}
	return parts
}
