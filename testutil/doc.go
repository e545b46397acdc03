// Package testutil provides testing utilities for huge.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, goroutine-safe RNG and generators for the skewed
// per-element weights (degrees) that partitioning is tuned for.
//
// # Random Data
//
//	rng := testutil.NewRNG(seed)
//	values := rng.Int64s(1_000)
//
// # Skewed Weights
//
//	weights := rng.SkewedWeights(n, 0.1, 100, 1) // first 10% heavy
//	degrees := rng.ZipfWeights(n, 1.5, 1_000)     // power law
//
// # Statistics
//
//	testutil.Sum(weights)
//	testutil.Variance(weights)
package testutil
