package autodiff

// Add records z = x + y. Shapes must be identical.
//
// Backward:
//   - dx += dz
//   - dy += dz
func (t *Tape) Add(x, y NodeID) (NodeID, error) {
	if err := t.check("add", x, y); err != nil {
		return 0, err
	}
	value, err := t.valueRef(x).Add(*t.valueRef(y))
	if err != nil {
		return 0, err
	}
	return t.record(OpAdd, value, x, y), nil
}

func addBackward(t *Tape, id NodeID) error {
	n := &t.nodes[id]
	x, y := n.inputs[0], n.inputs[1]
	if err := t.gradRef(x).AddInPlace(n.grad); err != nil {
		return err
	}
	return t.gradRef(y).AddInPlace(n.grad)
}
