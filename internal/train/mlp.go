package train

import (
	"fmt"

	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/matrix"
	"github.com/born-ml/minigrad/internal/nn"
	"github.com/born-ml/minigrad/internal/rng"
)

// DefaultSeed seeds weight initialization when the caller does not pick one.
const DefaultSeed = 42

// MLP is a two-layer perceptron: inputs → hidden (ReLU) → outputs.
//
// Weights use Xavier-uniform initialization, biases start at zero.
type MLP struct {
	FC1 *nn.Linear // [inputs, hidden]
	FC2 *nn.Linear // [hidden, outputs]

	net *nn.Sequential
}

// NewMLP creates a randomly initialized MLP. A nil r uses DefaultSeed.
func NewMLP(inputs, hidden, outputs int, r *rng.Random) (*MLP, error) {
	if inputs <= 0 || hidden <= 0 || outputs <= 0 {
		return nil, fmt.Errorf("%w: mlp layer sizes must be positive, got %d-%d-%d",
			matrix.ErrInvalidArgument, inputs, hidden, outputs)
	}
	if r == nil {
		r = rng.New(DefaultSeed)
	}

	fc1, err := nn.NewLinear("fc1", inputs, hidden, r)
	if err != nil {
		return nil, err
	}
	fc2, err := nn.NewLinear("fc2", hidden, outputs, r)
	if err != nil {
		return nil, err
	}

	return &MLP{
		FC1: fc1,
		FC2: fc2,
		net: nn.NewSequential(fc1, nn.NewReLU(), fc2),
	}, nil
}

// Parameters returns the trainable parameters in a stable order.
func (m *MLP) Parameters() []*autodiff.Parameter {
	return m.net.Parameters()
}

// Forward records the network on tape and returns the logits node.
//
// x is a [batch, inputs] node.
func (m *MLP) Forward(tape *autodiff.Tape, x autodiff.NodeID) (autodiff.NodeID, error) {
	return m.net.Forward(tape, x)
}

// Predict returns the arg-max class of every row of x.
func (m *MLP) Predict(x matrix.Matrix) ([]int, error) {
	tape := autodiff.NewTape()
	logits, err := m.Forward(tape, tape.Constant(x))
	if err != nil {
		return nil, err
	}
	return argMaxRows(tape.Value(logits)), nil
}

func argMaxRows(m matrix.Matrix) []int {
	out := make([]int, m.Rows())
	for i := range out {
		out[i] = m.ArgMaxRow(i)
	}
	return out
}
