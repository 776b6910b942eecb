package autodiff

// Mul records the element-wise product z = x ⊙ y. Shapes must be identical.
//
// Backward:
//   - dx += y ⊙ dz
//   - dy += x ⊙ dz
func (t *Tape) Mul(x, y NodeID) (NodeID, error) {
	if err := t.check("mul", x, y); err != nil {
		return 0, err
	}
	value, err := t.valueRef(x).Hadamard(*t.valueRef(y))
	if err != nil {
		return 0, err
	}
	return t.record(OpMul, value, x, y), nil
}

func mulBackward(t *Tape, id NodeID) error {
	n := &t.nodes[id]
	x, y := n.inputs[0], n.inputs[1]

	gradX, err := t.valueRef(y).Hadamard(n.grad)
	if err != nil {
		return err
	}
	gradY, err := t.valueRef(x).Hadamard(n.grad)
	if err != nil {
		return err
	}

	if err := t.gradRef(x).AddInPlace(gradX); err != nil {
		return err
	}
	return t.gradRef(y).AddInPlace(gradY)
}
