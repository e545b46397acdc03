package partition

import (
	"fmt"

	"github.com/hupe1980/huge/concurrency"
)

// WeightFunc returns the workload weight of element id, e.g. its degree.
type WeightFunc func(id int64) int64

// Degree partitions [0, total) into at most c.Value() chunks of roughly
// equal accumulated weight.
//
// A chunk is closed as soon as its weight reaches ceil(totalWeight/c); the
// final chunk absorbs whatever remains. When the greedy pass closes a chunk
// exactly at total no empty trailing chunk is emitted, so every returned
// chunk except possibly the last carries non-zero weight.
func Degree(total, totalWeight int64, weight WeightFunc, c concurrency.Concurrency) ([]DegreePartition, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := validateTotal(totalWeight); err != nil {
		return nil, err
	}
	target := max(1, (totalWeight+int64(c.Value())-1)/int64(c.Value()))
	return greedy(total, target, weight, c.Value())
}

// DegreeWithBatchSize partitions [0, total) into chunks that each reach
// batchWeight, without a cap on the number of chunks.
func DegreeWithBatchSize(total int64, weight WeightFunc, batchWeight int64) ([]DegreePartition, error) {
	if batchWeight <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBatchSize, batchWeight)
	}
	return greedy(total, batchWeight, weight, 0)
}

// greedy closes a chunk once its weight reaches target. maxParts > 0 bounds
// the number of chunks; the last one then takes the tail.
func greedy(total, target int64, weight WeightFunc, maxParts int) ([]DegreePartition, error) {
	if err := validateTotal(total); err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, nil
	}

	var (
		parts []DegreePartition
		start int64
		acc   int64
	)
	for id := range total {
		acc += weight(id)
		if acc < target {
			continue
		}
		if maxParts > 0 && len(parts) == maxParts-1 {
			// Last permitted chunk: keep accumulating to the end.
			continue
		}
		parts = append(parts, DegreePartition{
			Partition: Partition{Start: start, Length: id + 1 - start},
			Weight:    acc,
		})
		start = id + 1
		acc = 0
	}
	if start < total {
		parts = append(parts, DegreePartition{
			Partition: Partition{Start: start, Length: total - start},
			Weight:    acc,
		})
	}
	return parts, nil
}
