package autodiff

import (
	"fmt"

	"github.com/born-ml/minigrad/internal/matrix"
)

// Parameter is a trainable leaf that outlives any single tape.
//
// The value and the gradient accumulator always share one shape. Binding a
// parameter to a tape with Tape.Param makes the tape read and accumulate into
// this storage directly, so gradients from several per-sample tapes add up
// until an optimizer consumes and clears them.
//
// Example:
//
//	w := autodiff.NewParameter("w", matrix.New(784, 128))
//	tape := autodiff.NewTape()
//	wID := tape.Param(w)
type Parameter struct {
	name  string
	value matrix.Matrix
	grad  matrix.Matrix
}

// NewParameter creates a parameter owning a copy of value with a zeroed gradient.
func NewParameter(name string, value matrix.Matrix) *Parameter {
	return &Parameter{
		name:  name,
		value: value.Clone(),
		grad:  matrix.ZerosLike(value),
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Value returns the live value. Optimizers update it in place.
func (p *Parameter) Value() *matrix.Matrix {
	return &p.value
}

// Grad returns the live gradient accumulator.
func (p *Parameter) Grad() *matrix.Matrix {
	return &p.grad
}

// Shape returns the parameter shape.
func (p *Parameter) Shape() matrix.Shape {
	return p.value.Shape()
}

// SetValue replaces the value with a copy of m. The shape must not change.
func (p *Parameter) SetValue(m matrix.Matrix) error {
	if !m.Shape().Equal(p.value.Shape()) {
		return fmt.Errorf("parameter %q: %w", p.name,
			&matrix.ShapeError{Op: "set_value", Left: p.value.Shape(), Right: m.Shape()})
	}
	p.value = m.Clone()
	return nil
}

// ZeroGrad clears the gradient accumulator.
func (p *Parameter) ZeroGrad() {
	p.grad.FillZero()
}
