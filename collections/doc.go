// Package collections provides higher-level structures built on huge arrays.
//
// Every structure stores its state in one or more huge.Array values and adds
// its own indexing on top:
//   - LongLongMap: open-addressing int64 to int64 map with linear probing
//   - LongQueue, LongStack: fixed-capacity FIFO and LIFO of int64
//   - LongSquareMatrix, LongTriangleMatrix: dense and symmetric matrices
//   - BitSet, AtomicBitSet: paged bitsets, the latter safe for concurrent writers
//
// Structures are not safe for concurrent use unless stated otherwise.
package collections
