package huge

import "cmp"

// Integer is the set of integer element kinds.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Number is the set of numeric element kinds.
type Number interface {
	Integer | ~float32 | ~float64
}

// AddTo adds delta to the element at id.
func AddTo[T Number](a *Array[T], id int64, delta T) {
	*a.slot(id) += delta
}

// Or sets the element at id to its bitwise OR with v.
func Or[T Integer](a *Array[T], id int64, v T) {
	*a.slot(id) |= v
}

// And sets the element at id to its bitwise AND with v.
func And[T Integer](a *Array[T], id int64, v T) {
	*a.slot(id) &= v
}

// Sum returns the sum of all elements.
func Sum[T Number](a *Array[T]) T {
	var s T
	for _, page := range a.Pages() {
		for _, v := range page {
			s += v
		}
	}
	return s
}

// BinarySearch searches a sorted array for v. It returns the index of v if
// present, otherwise -(insertion point)-1.
func BinarySearch[T cmp.Ordered](a *Array[T], v T) int64 {
	lo, hi := int64(0), a.Size()-1
	for lo <= hi {
		mid := int64(uint64(lo+hi) >> 1)
		switch c := cmp.Compare(a.Get(mid), v); {
		case c < 0:
			lo = mid + 1
		case c > 0:
			hi = mid - 1
		default:
			return mid
		}
	}
	return -(lo + 1)
}
