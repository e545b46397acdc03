package testutil

import (
	"math"
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Int63n returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Int63n(n int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Int63n(n)
}

// Int63 returns a non-negative pseudo-random int64.
func (r *RNG) Int63() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Int63()
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Int64s returns n pseudo-random int64 values, negative ones included.
func (r *RNG) Int64s(n int) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int64, n)
	for i := range out {
		out[i] = int64(r.rand.Uint64())
	}
	return out
}

// DistinctInt64s returns n distinct pseudo-random values in [0, limit).
// It panics if limit < n.
func (r *RNG) DistinctInt64s(n int, limit int64) []int64 {
	if limit < int64(n) {
		panic("testutil: limit smaller than n")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[int64]struct{}, n)
	out := make([]int64, 0, n)
	for len(out) < n {
		v := r.rand.Int63n(limit)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// SkewedWeights returns n weights where the first hotFraction of elements
// draw from [hot/2, hot] and the rest from [0, cold].
func (r *RNG) SkewedWeights(n int64, hotFraction float64, hot, cold int64) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	hotCount := int64(math.Ceil(float64(n) * hotFraction))
	weights := make([]int64, n)
	for i := range weights {
		if int64(i) < hotCount {
			weights[i] = hot/2 + r.rand.Int63n(hot-hot/2+1)
		} else {
			weights[i] = r.rand.Int63n(cold + 1)
		}
	}
	return weights
}

// ZipfWeights returns n weights in [1, maxWeight] following a power law
// with skew s > 1, like the degree distribution of real-world graphs.
func (r *RNG) ZipfWeights(n int64, s float64, maxWeight uint64) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	z := rand.NewZipf(r.rand, s, 1, maxWeight-1)
	weights := make([]int64, n)
	for i := range weights {
		weights[i] = int64(z.Uint64()) + 1
	}
	return weights
}

// Sum returns the sum of values.
func Sum(values []int64) int64 {
	var s int64
	for _, v := range values {
		s += v
	}
	return s
}

// Variance returns the population variance of values.
func Variance(values []int64) float64 {
	if len(values) == 0 {
		return 0
	}
	var mean float64
	for _, v := range values {
		mean += float64(v)
	}
	mean /= float64(len(values))

	var acc float64
	for _, v := range values {
		d := float64(v) - mean
		acc += d * d
	}
	return acc / float64(len(values))
}
