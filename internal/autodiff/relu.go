package autodiff

// ReLU records z = max(0, x).
//
// Backward:
//   - dx += (x > 0 ? 1 : 0) ⊙ dz
//
// The derivative at exactly x == 0 is taken as 0.
func (t *Tape) ReLU(x NodeID) (NodeID, error) {
	if err := t.check("relu", x); err != nil {
		return 0, err
	}
	value := t.valueRef(x).Map(func(v float32) float32 {
		if v > 0 {
			return v
		}
		return 0
	})
	return t.record(OpReLU, value, x), nil
}

func reluBackward(t *Tape, id NodeID) error {
	n := &t.nodes[id]
	x := n.inputs[0]

	mask := t.valueRef(x).Map(func(v float32) float32 {
		if v > 0 {
			return 1
		}
		return 0
	})
	gradX, err := mask.Hadamard(n.grad)
	if err != nil {
		return err
	}
	return t.gradRef(x).AddInPlace(gradX)
}
