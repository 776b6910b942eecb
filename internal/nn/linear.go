package nn

import (
	"fmt"

	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/matrix"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x · W + b
// where:
//   - x is the input with shape [batch_size, in_features]
//   - W is the weight matrix with shape [in_features, out_features]
//   - b is the bias row with shape [1, out_features]
//   - y is the output with shape [batch_size, out_features]
//
// The bias is broadcast over the batch as ones · b, with ones a
// [batch_size, 1] column, so its gradient is the column sum of ∂y.
type Linear struct {
	inFeatures  int
	outFeatures int
	weight      *autodiff.Parameter
	bias        *autodiff.Parameter
}

// NewLinear creates a Linear layer with Xavier-uniform weights drawn from rng
// and zero biases. Parameter names are prefixed with name ("fc1.weight").
func NewLinear(name string, inFeatures, outFeatures int, rng matrix.Sampler) (*Linear, error) {
	if inFeatures <= 0 || outFeatures <= 0 {
		return nil, fmt.Errorf("%w: linear %s needs positive sizes, got %dx%d",
			matrix.ErrInvalidArgument, name, inFeatures, outFeatures)
	}

	w := matrix.New(inFeatures, outFeatures)
	if err := w.FillXavier(rng, inFeatures, outFeatures); err != nil {
		return nil, err
	}

	return &Linear{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      autodiff.NewParameter(name+".weight", w),
		bias:        autodiff.NewParameter(name+".bias", matrix.New(1, outFeatures)),
	}, nil
}

// Forward records x · W + ones · b.
func (l *Linear) Forward(tape *autodiff.Tape, input autodiff.NodeID) (autodiff.NodeID, error) {
	in := tape.Value(input).Shape()
	if in.Cols != l.inFeatures {
		return 0, fmt.Errorf("linear %s: %w", l.weight.Name(),
			&matrix.ShapeError{Op: "linear", Left: in, Right: l.weight.Shape()})
	}

	xw, err := tape.MatMul(input, tape.Param(l.weight))
	if err != nil {
		return 0, err
	}
	ones := tape.Constant(matrix.Ones(in.Rows, 1))
	bias, err := tape.MatMul(ones, tape.Param(l.bias))
	if err != nil {
		return 0, err
	}
	return tape.Add(xw, bias)
}

// Parameters returns [weight, bias].
func (l *Linear) Parameters() []*autodiff.Parameter {
	return []*autodiff.Parameter{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear) Weight() *autodiff.Parameter {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Linear) Bias() *autodiff.Parameter {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear) OutFeatures() int {
	return l.outFeatures
}
