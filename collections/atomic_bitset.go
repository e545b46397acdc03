package collections

import (
	"fmt"
	"math/bits"

	"github.com/hupe1980/huge"
)

// AtomicBitSet is a fixed-size bitset whose operations are lock-free and safe
// for concurrent use. The words live in a huge.AtomicLongArray.
type AtomicBitSet struct {
	words *huge.AtomicLongArray
	size  int64
}

// NewAtomicBitSet creates a bitset of size cleared bits.
func NewAtomicBitSet(size int64, opts ...huge.Option) (*AtomicBitSet, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, size)
	}
	words, err := huge.NewAtomicLongArray((size+63)>>6, opts...)
	if err != nil {
		return nil, err
	}
	return &AtomicBitSet{words: words, size: size}, nil
}

func (b *AtomicBitSet) locate(i int64) (int64, int64) {
	if uint64(i) >= uint64(b.size) {
		panic(&huge.IndexOutOfBoundsError{Index: i, Length: b.size})
	}
	return i >> 6, int64(1) << (i & 63)
}

// Set sets bit i.
func (b *AtomicBitSet) Set(i int64) {
	b.GetAndSet(i)
}

// GetAndSet sets bit i and reports whether it was already set. Exactly one
// of several concurrent callers for the same bit observes false.
func (b *AtomicBitSet) GetAndSet(i int64) bool {
	word, mask := b.locate(i)
	for {
		old := b.words.Get(word)
		if old&mask != 0 {
			return true
		}
		if b.words.CompareAndSet(word, old, old|mask) {
			return false
		}
	}
}

// Clear clears bit i.
func (b *AtomicBitSet) Clear(i int64) {
	word, mask := b.locate(i)
	b.words.Update(word, func(v int64) int64 { return v &^ mask })
}

// Get reports whether bit i is set.
func (b *AtomicBitSet) Get(i int64) bool {
	word, mask := b.locate(i)
	return b.words.Get(word)&mask != 0
}

// NextSetBit returns the first set bit at or after from, or -1.
func (b *AtomicBitSet) NextSetBit(from int64) int64 {
	if from < 0 {
		from = 0
	}
	if from >= b.size {
		return -1
	}
	word := from >> 6
	// Mask out bits before from.
	v := uint64(b.words.Get(word)) &^ (uint64(1)<<(from&63) - 1)
	for {
		if v != 0 {
			if i := word<<6 + int64(bits.TrailingZeros64(v)); i < b.size {
				return i
			}
			return -1
		}
		word++
		if word >= b.words.Size() {
			return -1
		}
		v = uint64(b.words.Get(word))
	}
}

// Cardinality returns the number of set bits. Concurrent writers may or may
// not be observed.
func (b *AtomicBitSet) Cardinality() int64 {
	var n int64
	for w := range b.words.Size() {
		n += int64(bits.OnesCount64(uint64(b.words.Get(w))))
	}
	return n
}

// ClearAll clears every bit. It is not atomic as a whole.
func (b *AtomicBitSet) ClearAll() { b.words.Fill(0) }

// Size returns the number of bits.
func (b *AtomicBitSet) Size() int64 { return b.size }

// SizeOf returns the bytes retained by the bitset.
func (b *AtomicBitSet) SizeOf() int64 { return b.words.SizeOf() }

// Release drops the words and returns the bytes they retained.
func (b *AtomicBitSet) Release() int64 {
	b.size = 0
	return b.words.Release()
}
