package matrix

import "fmt"

// Shape is the (rows, cols) pair of a matrix. A matrix with no rows has shape (0, 0).
type Shape struct {
	Rows int
	Cols int
}

// NumElements returns Rows*Cols.
func (s Shape) NumElements() int {
	return s.Rows * s.Cols
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	return s.Rows == other.Rows && s.Cols == other.Cols
}

// IsEmpty reports whether the shape holds no elements.
func (s Shape) IsEmpty() bool {
	return s.Rows == 0 || s.Cols == 0
}

// String formats the shape as [rows, cols].
func (s Shape) String() string {
	return fmt.Sprintf("[%d, %d]", s.Rows, s.Cols)
}
