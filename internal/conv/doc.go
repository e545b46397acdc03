// Package conv provides overflow-checked integer arithmetic and conversions.
//
// Lengths of huge collections are int64 and may come from user input, so
// products like order*order or length*elementSize are checked before they
// size an allocation.
//
// For arithmetic that is provably safe by domain constraints (e.g., loop
// indices, offsets inside a page), use plain operators instead.
package conv
