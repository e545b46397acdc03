// Package layout maps logical indices of a paged array to (page, offset)
// pairs and back.
//
// A Layout is pure arithmetic over a power-of-two page size, so the page
// index and in-page offset are derived with a shift and a mask.
package layout

import (
	"errors"
	"fmt"
	"math/bits"
)

const (
	// PageSizeInBytes is the target byte size of one page (32 KiB).
	PageSizeInBytes = 32 * 1024

	// MaxPageShift bounds the page size to 2^30 elements.
	MaxPageShift = 30
)

// ErrInvalidPageSize is returned when a page size is not a positive power of two.
var ErrInvalidPageSize = errors.New("layout: page size must be a positive power of two")

// Layout describes how a logical index space is cut into fixed-size pages.
type Layout struct {
	shift uint
	mask  int64
	size  int64
}

// New creates a layout with pageSize elements per page.
func New(pageSize int64) (Layout, error) {
	if pageSize <= 0 || pageSize&(pageSize-1) != 0 {
		return Layout{}, fmt.Errorf("%w: %d", ErrInvalidPageSize, pageSize)
	}
	shift := uint(bits.TrailingZeros64(uint64(pageSize)))
	if shift > MaxPageShift {
		return Layout{}, fmt.Errorf("%w: %d exceeds 2^%d", ErrInvalidPageSize, pageSize, MaxPageShift)
	}
	return Layout{
		shift: shift,
		mask:  pageSize - 1,
		size:  pageSize,
	}, nil
}

// Must is like New but panics on an invalid page size. It is meant for
// package-level layouts with constant sizes.
func Must(pageSize int64) Layout {
	l, err := New(pageSize)
	if err != nil {
		panic(err)
	}
	return l
}

// ForElementSize returns the layout whose pages occupy PageSizeInBytes for
// elements of the given byte size. 8-byte elements yield 4096 per page.
func ForElementSize(elementBytes int64) Layout {
	if elementBytes <= 0 {
		elementBytes = 1
	}
	perPage := int64(PageSizeInBytes) / elementBytes
	if perPage < 1 {
		perPage = 1
	}
	// Round down to a power of two.
	shift := uint(bits.Len64(uint64(perPage)) - 1)
	return Layout{
		shift: shift,
		mask:  int64(1)<<shift - 1,
		size:  int64(1) << shift,
	}
}

// Size returns the number of elements per page.
func (l Layout) Size() int64 { return l.size }

// Shift returns log2(Size()).
func (l Layout) Shift() uint { return l.shift }

// Mask returns Size()-1.
func (l Layout) Mask() int64 { return l.mask }

// PageIndex returns the page holding id.
func (l Layout) PageIndex(id int64) int64 {
	return id >> l.shift
}

// IndexInPage returns the offset of id inside its page.
func (l Layout) IndexInPage(id int64) int64 {
	return id & l.mask
}

// Combine is the inverse of PageIndex/IndexInPage.
func (l Layout) Combine(page, offset int64) int64 {
	return page<<l.shift | offset
}

// NumPages returns ceil(length / Size()).
func (l Layout) NumPages(length int64) int64 {
	if length <= 0 {
		return 0
	}
	return (length + l.mask) >> l.shift
}

// LastPageSize returns the number of used slots in the final page of an
// array with the given length. Zero for an empty array.
func (l Layout) LastPageSize(length int64) int64 {
	if length <= 0 {
		return 0
	}
	rem := length & l.mask
	if rem == 0 {
		return l.size
	}
	return rem
}

// ExclusiveIndexOfPage returns the exclusive end offset of the given page
// for an array of the given length.
func (l Layout) ExclusiveIndexOfPage(page, length int64) int64 {
	if page == l.NumPages(length)-1 {
		return l.LastPageSize(length)
	}
	return l.size
}

// FitsSinglePage reports whether length elements fit in one page.
func (l Layout) FitsSinglePage(length int64) bool {
	return length <= l.size
}

func (l Layout) String() string {
	return fmt.Sprintf("layout(page=%d, shift=%d)", l.size, l.shift)
}
