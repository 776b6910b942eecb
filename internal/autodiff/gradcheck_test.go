package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/matrix"
	"github.com/born-ml/minigrad/internal/rng"
)

// graphFn records a computation over the given input leaves and returns its output.
type graphFn func(tape *autodiff.Tape, in []autodiff.NodeID) (autodiff.NodeID, error)

// checkGradients compares Backward against central finite differences.
//
// The output is contracted with fixed random weights W, f = Σ W ⊙ out, and W is
// seeded as the output gradient, so the analytic gradient of every input in wrt
// must match ∂f/∂input.
func checkGradients(t *testing.T, inputs []matrix.Matrix, wrt []int, build graphFn) {
	t.Helper()

	r := rng.New(7)
	tape := autodiff.NewTape()
	ids := make([]autodiff.NodeID, len(inputs))
	for i, m := range inputs {
		ids[i] = tape.Constant(m)
	}
	out, err := build(tape, ids)
	require.NoError(t, err)

	outShape := tape.Value(out).Shape()
	weights := matrix.New(outShape.Rows, outShape.Cols)
	weights.FillUniform(r, -1, 1)
	require.NoError(t, tape.SetGrad(out, weights))
	require.NoError(t, tape.Backward(out))

	for _, k := range wrt {
		shape := inputs[k].Shape()
		f := func(x []float64) float64 {
			perturbed := make([]float32, len(x))
			for i, v := range x {
				perturbed[i] = float32(v)
			}
			m, err := matrix.FromSlice(shape.Rows, shape.Cols, perturbed)
			require.NoError(t, err)

			probe := autodiff.NewTape()
			pIDs := make([]autodiff.NodeID, len(inputs))
			for i, in := range inputs {
				if i == k {
					in = m
				}
				pIDs[i] = probe.Constant(in)
			}
			y, err := build(probe, pIDs)
			require.NoError(t, err)

			value := probe.Value(y).Data()
			w := weights.Data()
			var sum float64
			for i, v := range value {
				sum += float64(w[i]) * float64(v)
			}
			return sum
		}

		x0 := make([]float64, shape.NumElements())
		for i, v := range inputs[k].Data() {
			x0[i] = float64(v)
		}
		numeric := fd.Gradient(nil, f, x0, &fd.Settings{Formula: fd.Central, Step: 1e-2})
		analytic := tape.Grad(ids[k]).Data()

		require.Len(t, analytic, len(numeric))
		for i := range numeric {
			tol := 2e-3 * max(1, abs64(numeric[i]))
			require.InDeltaf(t, numeric[i], float64(analytic[i]), tol,
				"input %d element %d: analytic %v, numeric %v", k, i, analytic[i], numeric[i])
		}
	}
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func randomMatrix(r *rng.Random, rows, cols int) matrix.Matrix {
	m := matrix.New(rows, cols)
	m.FillUniform(r, -1, 1)
	return m
}
