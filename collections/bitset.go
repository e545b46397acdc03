package collections

import (
	"fmt"
	"iter"
	"unsafe"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/huge"
	"github.com/hupe1980/huge/internal/conv"
	"github.com/hupe1980/huge/internal/layout"
)

// bitsPerPage keeps each page at 32 KiB of words.
const bitsPerPage = 1 << 18

var pageLayout = layout.Must(bitsPerPage)

// BitSet is a fixed-size bitset of int64 indices split into pages. It is not
// safe for concurrent writers; see AtomicBitSet.
type BitSet struct {
	pages []*bitset.BitSet
	size  int64
}

// NewBitSet creates a bitset of size cleared bits.
func NewBitSet(size int64) (*BitSet, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, size)
	}
	n := pageLayout.NumPages(size)
	b := &BitSet{
		pages: make([]*bitset.BitSet, n),
		size:  size,
	}
	for p := range n {
		bits, err := conv.Int64ToUint(pageLayout.ExclusiveIndexOfPage(p, size))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCapacity, err)
		}
		b.pages[p] = bitset.New(bits)
	}
	return b, nil
}

func (b *BitSet) locate(i int64) (*bitset.BitSet, uint) {
	if uint64(i) >= uint64(b.size) {
		panic(&huge.IndexOutOfBoundsError{Index: i, Length: b.size})
	}
	// i is in bounds, so the in-page offset is non-negative.
	return b.pages[pageLayout.PageIndex(i)], uint(pageLayout.IndexInPage(i))
}

// Set sets bit i.
func (b *BitSet) Set(i int64) {
	page, off := b.locate(i)
	page.Set(off)
}

// Clear clears bit i.
func (b *BitSet) Clear(i int64) {
	page, off := b.locate(i)
	page.Clear(off)
}

// Get reports whether bit i is set.
func (b *BitSet) Get(i int64) bool {
	page, off := b.locate(i)
	return page.Test(off)
}

// Flip toggles bit i.
func (b *BitSet) Flip(i int64) {
	page, off := b.locate(i)
	page.Flip(off)
}

// Cardinality returns the number of set bits.
func (b *BitSet) Cardinality() int64 {
	var n int64
	for _, page := range b.pages {
		n += int64(page.Count())
	}
	return n
}

// NextSetBit returns the first set bit at or after from, or -1.
func (b *BitSet) NextSetBit(from int64) int64 {
	if from < 0 {
		from = 0
	}
	if from >= b.size {
		return -1
	}
	p := pageLayout.PageIndex(from)
	off := uint(pageLayout.IndexInPage(from))
	for ; p < int64(len(b.pages)); p++ {
		if next, ok := b.pages[p].NextSet(off); ok {
			return pageLayout.Combine(p, int64(next))
		}
		off = 0
	}
	return -1
}

// All iterates the set bits in increasing order.
func (b *BitSet) All() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		for i := b.NextSetBit(0); i >= 0; i = b.NextSetBit(i + 1) {
			if !yield(i) {
				return
			}
		}
	}
}

// ClearAll clears every bit.
func (b *BitSet) ClearAll() {
	for _, page := range b.pages {
		page.ClearAll()
	}
}

// Size returns the number of bits.
func (b *BitSet) Size() int64 { return b.size }

// SizeOf returns the bytes retained by the bitset.
func (b *BitSet) SizeOf() int64 {
	bytes := int64(unsafe.Sizeof(*b)) + int64(len(b.pages))*int64(unsafe.Sizeof(b.pages[0]))
	for _, page := range b.pages {
		bytes += int64(unsafe.Sizeof(*page)) + int64(len(page.Words()))*8
	}
	return bytes
}

// ToRoaring exports the set bits as a compressed bitmap.
func (b *BitSet) ToRoaring() *roaring64.Bitmap {
	bm := roaring64.New()
	for i := range b.All() {
		bm.Add(uint64(i))
	}
	return bm
}

// BitSetFromRoaring creates a bitset of size bits holding the bits of bm.
func BitSetFromRoaring(bm *roaring64.Bitmap, size int64) (*BitSet, error) {
	if !bm.IsEmpty() && (size <= 0 || bm.Maximum() >= uint64(size)) {
		return nil, fmt.Errorf("%w: %d >= %d", ErrBitOutOfRange, bm.Maximum(), size)
	}
	b, err := NewBitSet(size)
	if err != nil {
		return nil, err
	}
	it := bm.Iterator()
	for it.HasNext() {
		b.Set(int64(it.Next()))
	}
	return b, nil
}
