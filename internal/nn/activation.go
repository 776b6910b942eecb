package nn

import (
	"github.com/born-ml/minigrad/internal/autodiff"
)

// ReLU is a Rectified Linear Unit activation module.
//
// Applies the element-wise function: f(x) = max(0, x)
type ReLU struct{}

// NewReLU creates a new ReLU activation module.
func NewReLU() *ReLU {
	return &ReLU{}
}

// Forward applies ReLU activation: f(x) = max(0, x).
func (r *ReLU) Forward(tape *autodiff.Tape, input autodiff.NodeID) (autodiff.NodeID, error) {
	return tape.ReLU(input)
}

// Parameters returns an empty slice (ReLU has no trainable parameters).
func (r *ReLU) Parameters() []*autodiff.Parameter {
	return nil
}

// Softmax applies a row-wise softmax.
//
// Do not put it in front of CrossEntropy, which applies its own softmax.
type Softmax struct{}

// NewSoftmax creates a new Softmax module.
func NewSoftmax() *Softmax {
	return &Softmax{}
}

// Forward applies the row-wise softmax.
func (s *Softmax) Forward(tape *autodiff.Tape, input autodiff.NodeID) (autodiff.NodeID, error) {
	return tape.Softmax(input)
}

// Parameters returns an empty slice (Softmax has no trainable parameters).
func (s *Softmax) Parameters() []*autodiff.Parameter {
	return nil
}
