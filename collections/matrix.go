package collections

import (
	"fmt"

	"github.com/hupe1980/huge"
	"github.com/hupe1980/huge/internal/conv"
)

// LongSquareMatrix is a dense order×order matrix of int64 in row-major order.
type LongSquareMatrix struct {
	cells *huge.LongArray
	order int64
}

// NewLongSquareMatrix allocates a zeroed matrix.
func NewLongSquareMatrix(order int64, opts ...huge.Option) (*LongSquareMatrix, error) {
	n, err := conv.MulInt64(order, order)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOrder, err)
	}
	cells, err := huge.NewLongArray(n, opts...)
	if err != nil {
		return nil, err
	}
	return &LongSquareMatrix{cells: cells, order: order}, nil
}

func (m *LongSquareMatrix) index(x, y int64) int64 {
	checkCoordinate(x, m.order)
	checkCoordinate(y, m.order)
	return x*m.order + y
}

// checkCoordinate panics like an out-of-range array index. Coordinates are
// checked individually since (0, order) and (1, 0) share a flat index.
func checkCoordinate(v, order int64) {
	if uint64(v) >= uint64(order) {
		panic(&huge.IndexOutOfBoundsError{Index: v, Length: order})
	}
}

// Get returns the cell at row x, column y.
func (m *LongSquareMatrix) Get(x, y int64) int64 { return m.cells.Get(m.index(x, y)) }

// Set stores v at row x, column y.
func (m *LongSquareMatrix) Set(x, y, v int64) { m.cells.Set(m.index(x, y), v) }

// AddTo adds delta to the cell at row x, column y.
func (m *LongSquareMatrix) AddTo(x, y, delta int64) { huge.AddTo(m.cells, m.index(x, y), delta) }

// SetAll stores gen(x, y) in every cell, row by row.
func (m *LongSquareMatrix) SetAll(gen func(x, y int64) int64) {
	if m.order == 0 {
		return
	}
	m.cells.SetAll(func(id int64) int64 { return gen(id/m.order, id%m.order) })
}

// RowSum returns the sum of row x.
func (m *LongSquareMatrix) RowSum(x int64) int64 {
	checkCoordinate(x, m.order)
	var sum int64
	start := x * m.order
	for _, page := range m.cells.Range(start, start+m.order) {
		for _, v := range page {
			sum += v
		}
	}
	return sum
}

// Order returns the number of rows and columns.
func (m *LongSquareMatrix) Order() int64 { return m.order }

// SizeOf returns the bytes retained by the matrix.
func (m *LongSquareMatrix) SizeOf() int64 { return m.cells.SizeOf() }

// Release drops the cells and returns the bytes they retained.
func (m *LongSquareMatrix) Release() int64 {
	m.order = 0
	return m.cells.Release()
}

// LongTriangleMatrix is a symmetric order×order matrix of int64 storing only
// the cells with x <= y. Get(x, y) and Get(y, x) address the same cell.
type LongTriangleMatrix struct {
	cells *huge.LongArray
	order int64
}

// NewLongTriangleMatrix allocates a zeroed matrix of order*(order+1)/2 cells.
func NewLongTriangleMatrix(order int64, opts ...huge.Option) (*LongTriangleMatrix, error) {
	n, err := triangleCells(order)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOrder, err)
	}
	cells, err := huge.NewLongArray(n, opts...)
	if err != nil {
		return nil, err
	}
	return &LongTriangleMatrix{cells: cells, order: order}, nil
}

func triangleCells(order int64) (int64, error) {
	next, err := conv.AddInt64(order, 1)
	if err != nil {
		return 0, err
	}
	n, err := conv.MulInt64(order, next)
	if err != nil {
		return 0, err
	}
	return n / 2, nil
}

func (m *LongTriangleMatrix) index(x, y int64) int64 {
	checkCoordinate(x, m.order)
	checkCoordinate(y, m.order)
	if x > y {
		x, y = y, x
	}
	// Row x starts after the rows 0..x-1 holding order, order-1, ... cells.
	return x*m.order - x*(x-1)/2 + (y - x)
}

// Get returns the cell at (x, y).
func (m *LongTriangleMatrix) Get(x, y int64) int64 { return m.cells.Get(m.index(x, y)) }

// Set stores v at (x, y), which is also (y, x).
func (m *LongTriangleMatrix) Set(x, y, v int64) { m.cells.Set(m.index(x, y), v) }

// AddTo adds delta to the cell at (x, y).
func (m *LongTriangleMatrix) AddTo(x, y, delta int64) { huge.AddTo(m.cells, m.index(x, y), delta) }

// SetAll stores gen(x, y) for every x <= y.
func (m *LongTriangleMatrix) SetAll(gen func(x, y int64) int64) {
	id := int64(0)
	for x := range m.order {
		for y := x; y < m.order; y++ {
			m.cells.Set(id, gen(x, y))
			id++
		}
	}
}

// Order returns the number of rows and columns.
func (m *LongTriangleMatrix) Order() int64 { return m.order }

// SizeOf returns the bytes retained by the matrix.
func (m *LongTriangleMatrix) SizeOf() int64 { return m.cells.SizeOf() }

// Release drops the cells and returns the bytes they retained.
func (m *LongTriangleMatrix) Release() int64 {
	m.order = 0
	return m.cells.Release()
}
