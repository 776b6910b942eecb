package matrix

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrShapeMismatch   = errors.New("shape mismatch")
	ErrInvalidArgument = errors.New("invalid argument")
)

// ShapeError describes an operation rejected because of its operand shapes.
// It unwraps to ErrShapeMismatch.
type ShapeError struct {
	Op    string // Operation name (e.g., "add", "matmul")
	Left  Shape  // Left operand shape
	Right Shape  // Right operand shape
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: shape mismatch: lhs %s, rhs %s", e.Op, e.Left, e.Right)
}

// Unwrap returns ErrShapeMismatch so callers can use errors.Is.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

func invalidArgf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
