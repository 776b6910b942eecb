package autodiff

import (
	"github.com/born-ml/minigrad/internal/matrix"
)

// Softmax records the row-wise softmax z = softmax(x).
//
// Forward (for each row, after subtracting the row maximum):
//
//	z_ij = exp(x_ij) / Σ_k exp(x_ik)
//
// Backward (full row Jacobian-vector product):
//
//	dx_ij += Σ_k dz_ik · z_ij · (δ_jk − z_ik)
//	       = z_ij · (dz_ij − Σ_k dz_ik · z_ik)
func (t *Tape) Softmax(x NodeID) (NodeID, error) {
	if err := t.check("softmax", x); err != nil {
		return 0, err
	}
	return t.record(OpSoftmax, t.valueRef(x).SoftmaxRows(), x), nil
}

func softmaxBackward(t *Tape, id NodeID) error {
	n := &t.nodes[id]
	x := n.inputs[0]

	shape := n.value.Shape()
	z := n.value.Data()
	dz := n.grad.Data()
	dx := make([]float32, len(z))

	for i := 0; i < shape.Rows; i++ {
		row := i * shape.Cols
		var dot float32
		for k := 0; k < shape.Cols; k++ {
			dot += dz[row+k] * z[row+k]
		}
		for j := 0; j < shape.Cols; j++ {
			dx[row+j] = z[row+j] * (dz[row+j] - dot)
		}
	}

	gradX, err := matrix.FromSlice(shape.Rows, shape.Cols, dx)
	if err != nil {
		return err
	}
	return t.gradRef(x).AddInPlace(gradX)
}
