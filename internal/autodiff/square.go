package autodiff

// Square records z = x ⊙ x.
//
// Backward:
//   - dx += 2x ⊙ dz
func (t *Tape) Square(x NodeID) (NodeID, error) {
	if err := t.check("square", x); err != nil {
		return 0, err
	}
	xv := t.valueRef(x)
	value, err := xv.Hadamard(*xv)
	if err != nil {
		return 0, err
	}
	return t.record(OpSquare, value, x), nil
}

func squareBackward(t *Tape, id NodeID) error {
	n := &t.nodes[id]
	x := n.inputs[0]

	gradX, err := t.valueRef(x).Scale(2).Hadamard(n.grad)
	if err != nil {
		return err
	}
	return t.gradRef(x).AddInPlace(gradX)
}
