package autodiff

// MatMul records the matrix product z = x · y.
//
// Backward:
//   - dx += dz · yᵗ
//   - dy += xᵗ · dz
func (t *Tape) MatMul(x, y NodeID) (NodeID, error) {
	if err := t.check("matmul", x, y); err != nil {
		return 0, err
	}
	value, err := t.valueRef(x).MatMul(*t.valueRef(y))
	if err != nil {
		return 0, err
	}
	return t.record(OpMatMul, value, x, y), nil
}

func matMulBackward(t *Tape, id NodeID) error {
	n := &t.nodes[id]
	x, y := n.inputs[0], n.inputs[1]

	gradX, err := n.grad.MatMul(t.valueRef(y).Transpose())
	if err != nil {
		return err
	}
	gradY, err := t.valueRef(x).Transpose().MatMul(n.grad)
	if err != nil {
		return err
	}

	if err := t.gradRef(x).AddInPlace(gradX); err != nil {
		return err
	}
	return t.gradRef(y).AddInPlace(gradY)
}
