package autodiff_test

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/matrix"
	"github.com/born-ml/minigrad/internal/rng"
)

func TestForwardValues(t *testing.T) {
	tape := autodiff.NewTape()
	a := tape.Constant(mustRows(t, [][]float32{{1, -2}, {3, -4}}))
	b := tape.Constant(mustRows(t, [][]float32{{5, 6}, {7, 8}}))

	sum, err := tape.Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float32{6, 4, 10, 4}, tape.Value(sum).Data())

	prod, err := tape.Mul(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float32{5, -12, 21, -32}, tape.Value(prod).Data())

	mm, err := tape.MatMul(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float32{-9, -10, -13, -14}, tape.Value(mm).Data())

	relu, err := tape.ReLU(a)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0, 3, 0}, tape.Value(relu).Data())

	sq, err := tape.Square(a)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 4, 9, 16}, tape.Value(sq).Data())

	sm, err := tape.Softmax(b)
	require.NoError(t, err)
	e := 1 / (1 + math32.Exp(1))
	assert.True(t, tape.Value(sm).AllClose(mustRows(t, [][]float32{{e, 1 - e}, {e, 1 - e}}), 1e-6))

	assert.Equal(t, []autodiff.OpKind{
		autodiff.OpAdd, autodiff.OpMul, autodiff.OpMatMul, autodiff.OpReLU, autodiff.OpSquare, autodiff.OpSoftmax,
	}, []autodiff.OpKind{
		tape.Kind(sum), tape.Kind(prod), tape.Kind(mm), tape.Kind(relu), tape.Kind(sq), tape.Kind(sm),
	})
}

func TestOps_ShapeErrors(t *testing.T) {
	tape := autodiff.NewTape()
	a := tape.Constant(matrix.New(2, 3))
	b := tape.Constant(matrix.New(2, 2))
	before := tape.Len()

	_, err := tape.Add(a, b)
	require.ErrorIs(t, err, matrix.ErrShapeMismatch)
	_, err = tape.Mul(a, b)
	require.ErrorIs(t, err, matrix.ErrShapeMismatch)
	_, err = tape.MatMul(a, b)
	require.ErrorIs(t, err, matrix.ErrShapeMismatch)

	// Rejected operations leave the tape untouched.
	assert.Equal(t, before, tape.Len())
}

func TestOps_InvalidNode(t *testing.T) {
	tape := autodiff.NewTape()
	x := tape.Scalar(1)

	_, err := tape.Add(x, 5)
	require.ErrorIs(t, err, autodiff.ErrInvalidNode)
	_, err = tape.ReLU(-1)
	require.ErrorIs(t, err, autodiff.ErrInvalidNode)
	_, err = tape.Softmax(9)
	require.ErrorIs(t, err, autodiff.ErrInvalidNode)
}

func TestReLU_GradientMask(t *testing.T) {
	tape := autodiff.NewTape()
	x := tape.Constant(mustRows(t, [][]float32{{-1, 0, 2}}))
	y, err := tape.ReLU(x)
	require.NoError(t, err)

	require.NoError(t, tape.SeedOnes(y))
	require.NoError(t, tape.Backward(y))
	assert.Equal(t, []float32{0, 0, 1}, tape.Grad(x).Data())
}

func TestSoftmax_RowsSumToOne(t *testing.T) {
	r := rng.New(3)
	tape := autodiff.NewTape()
	x := tape.Constant(randomMatrix(r, 4, 5).Scale(50))

	y, err := tape.Softmax(x)
	require.NoError(t, err)
	out := tape.Value(y)
	for i := 0; i < out.Rows(); i++ {
		var sum float32
		for _, v := range out.Row(i) {
			assert.GreaterOrEqual(t, v, float32(0))
			sum += v
		}
		assert.InDelta(t, 1, sum, 1e-5)
	}
}

func TestGradientCheck_Primitives(t *testing.T) {
	r := rng.New(11)

	tests := []struct {
		name   string
		inputs []matrix.Matrix
		wrt    []int
		build  graphFn
	}{
		{
			name:   "add",
			inputs: []matrix.Matrix{randomMatrix(r, 2, 3), randomMatrix(r, 2, 3)},
			wrt:    []int{0, 1},
			build: func(tape *autodiff.Tape, in []autodiff.NodeID) (autodiff.NodeID, error) {
				return tape.Add(in[0], in[1])
			},
		},
		{
			name:   "mul",
			inputs: []matrix.Matrix{randomMatrix(r, 3, 2), randomMatrix(r, 3, 2)},
			wrt:    []int{0, 1},
			build: func(tape *autodiff.Tape, in []autodiff.NodeID) (autodiff.NodeID, error) {
				return tape.Mul(in[0], in[1])
			},
		},
		{
			name:   "matmul",
			inputs: []matrix.Matrix{randomMatrix(r, 2, 3), randomMatrix(r, 3, 4)},
			wrt:    []int{0, 1},
			build: func(tape *autodiff.Tape, in []autodiff.NodeID) (autodiff.NodeID, error) {
				return tape.MatMul(in[0], in[1])
			},
		},
		{
			name:   "relu",
			inputs: []matrix.Matrix{mustRows(t, [][]float32{{-0.8, 0.5, 1.2}, {0.3, -0.4, -1.5}})},
			wrt:    []int{0},
			build: func(tape *autodiff.Tape, in []autodiff.NodeID) (autodiff.NodeID, error) {
				return tape.ReLU(in[0])
			},
		},
		{
			name:   "square",
			inputs: []matrix.Matrix{randomMatrix(r, 2, 2)},
			wrt:    []int{0},
			build: func(tape *autodiff.Tape, in []autodiff.NodeID) (autodiff.NodeID, error) {
				return tape.Square(in[0])
			},
		},
		{
			name:   "softmax",
			inputs: []matrix.Matrix{randomMatrix(r, 3, 4)},
			wrt:    []int{0},
			build: func(tape *autodiff.Tape, in []autodiff.NodeID) (autodiff.NodeID, error) {
				return tape.Softmax(in[0])
			},
		},
		{
			name:   "mse",
			inputs: []matrix.Matrix{randomMatrix(r, 3, 2), randomMatrix(r, 3, 2)},
			wrt:    []int{0, 1},
			build: func(tape *autodiff.Tape, in []autodiff.NodeID) (autodiff.NodeID, error) {
				return tape.MSE(in[0], in[1])
			},
		},
		{
			name:   "cross_entropy",
			inputs: []matrix.Matrix{randomMatrix(r, 3, 4), oneHotRows(t, 4, 2, 0, 3)},
			wrt:    []int{0},
			build: func(tape *autodiff.Tape, in []autodiff.NodeID) (autodiff.NodeID, error) {
				return tape.CrossEntropy(in[0], in[1])
			},
		},
		{
			name:   "cross_entropy_with_logits",
			inputs: []matrix.Matrix{randomMatrix(r, 3, 4), oneHotRows(t, 4, 1, 1, 2)},
			wrt:    []int{0},
			build: func(tape *autodiff.Tape, in []autodiff.NodeID) (autodiff.NodeID, error) {
				return tape.CrossEntropyWithLogits(in[0], in[1])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkGradients(t, tt.inputs, tt.wrt, tt.build)
		})
	}
}

// TestGradientCheck_Composite exercises full propagation through a fused loss
// into a composed prediction: x·w1 → square → ·w2 → +b → loss.
func TestGradientCheck_Composite(t *testing.T) {
	r := rng.New(5)
	inputs := []matrix.Matrix{
		randomMatrix(r, 2, 3).Scale(0.5), // x
		randomMatrix(r, 3, 4).Scale(0.5), // w1
		randomMatrix(r, 4, 3),            // w2
		randomMatrix(r, 2, 3),            // b
		oneHotRows(t, 3, 2, 0),           // targets
	}

	forward := func(tape *autodiff.Tape, in []autodiff.NodeID) (autodiff.NodeID, error) {
		h, err := tape.MatMul(in[0], in[1])
		if err != nil {
			return 0, err
		}
		a, err := tape.Square(h)
		if err != nil {
			return 0, err
		}
		z, err := tape.MatMul(a, in[2])
		if err != nil {
			return 0, err
		}
		return tape.Add(z, in[3])
	}

	losses := map[string]func(*autodiff.Tape, autodiff.NodeID, autodiff.NodeID) (autodiff.NodeID, error){
		"mse":                       (*autodiff.Tape).MSE,
		"cross_entropy":             (*autodiff.Tape).CrossEntropy,
		"cross_entropy_with_logits": (*autodiff.Tape).CrossEntropyWithLogits,
	}
	for name, loss := range losses {
		t.Run(name, func(t *testing.T) {
			checkGradients(t, inputs, []int{1, 2, 3}, func(tape *autodiff.Tape, in []autodiff.NodeID) (autodiff.NodeID, error) {
				logits, err := forward(tape, in)
				if err != nil {
					return 0, err
				}
				return loss(tape, logits, in[4])
			})
		})
	}
}

// oneHotRows builds one row per label with the given number of classes.
func oneHotRows(t *testing.T, classes int, labels ...int) matrix.Matrix {
	t.Helper()
	m := matrix.New(len(labels), classes)
	for i, label := range labels {
		m.Set(i, label, 1)
	}
	return m
}
