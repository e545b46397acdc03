// Package partition splits an index range [0, N) into contiguous units of
// work.
//
// Every function returns partitions that are ordered, pairwise disjoint and
// together cover [0, N) exactly. Three policies are provided:
//
//   - Range: near-equal chunks, sizes differ by at most one.
//   - NumberAligned: chunk starts fall on multiples of an alignment, used to
//     give each worker whole pages of a huge array.
//   - Degree: chunks grown greedily until they carry an equal share of a
//     per-element weight, for skewed workloads such as relationship counts.
package partition
