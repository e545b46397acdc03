package huge

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLength is returned for negative array lengths.
	ErrInvalidLength = errors.New("huge: length must not be negative")

	// ErrMemoryReservation is returned when the memory tracker refuses an allocation.
	ErrMemoryReservation = errors.New("huge: memory reservation refused")

	// ErrInvalidPageSize is returned by options carrying an unusable page size.
	ErrInvalidPageSize = errors.New("huge: invalid page size")

	// ErrTooLargeForSlice is returned by ToSlice for arrays spanning several pages.
	ErrTooLargeForSlice = errors.New("huge: array does not fit a single slice")

	// ErrIndexOutOfBounds is wrapped by every IndexOutOfBoundsError.
	ErrIndexOutOfBounds = errors.New("huge: index out of bounds")
)

// IndexOutOfBoundsError is the panic value for accesses outside [0, Length).
type IndexOutOfBoundsError struct {
	Index  int64
	Length int64
}

func (e *IndexOutOfBoundsError) Error() string {
	return fmt.Sprintf("huge: index %d out of bounds for length %d", e.Index, e.Length)
}

func (e *IndexOutOfBoundsError) Unwrap() error { return ErrIndexOutOfBounds }

func outOfBounds(id, length int64) *IndexOutOfBoundsError {
	return &IndexOutOfBoundsError{Index: id, Length: length}
}
