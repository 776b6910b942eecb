package autodiff

import (
	"github.com/born-ml/minigrad/internal/matrix"
)

// MSE records the mean squared error between predictions and targets as a
// 1×1 loss node:
//
//	loss = (1/N) Σ (pred − target)²,  N = rows·cols
//
// For its value the loss composes a negated-target leaf, an Add and a Square
// node. Those three are kept as Parts of the loss node: their own gradient
// rules are dead code. The loss node instead carries a fused rule over its
// Inputs [pred, target]:
//
//	dpred   += g · (2/N)(pred − target)
//	dtarget −= g · (2/N)(pred − target)
//
// where g is the upstream gradient of the loss (1 after SeedOnes).
func (t *Tape) MSE(pred, target NodeID) (NodeID, error) {
	pv, tv, err := t.lossOperands("mse", pred, target)
	if err != nil {
		return 0, err
	}
	t.resetOperandGrads(pred, target)

	negTarget := t.Constant(tv.Scale(-1))
	diff, err := t.Add(pred, negTarget)
	if err != nil {
		return 0, err
	}
	squared, err := t.Square(diff)
	if err != nil {
		return 0, err
	}

	n := float32(pv.Len())
	id := t.record(OpMSE, matrix.Scalar(t.valueRef(squared).Sum()/n), pred, target)
	t.nodes[id].parts = []NodeID{negTarget, diff, squared}
	return id, nil
}

func mseBackward(t *Tape, id NodeID) error {
	pred, target := t.nodes[id].inputs[0], t.nodes[id].inputs[1]

	diff, err := t.valueRef(pred).Sub(*t.valueRef(target))
	if err != nil {
		return err
	}
	scale := t.upstream(id) * 2 / float32(diff.Len())

	if err := t.gradRef(pred).AxpyInPlace(scale, diff); err != nil {
		return err
	}
	return t.gradRef(target).AxpyInPlace(-scale, diff)
}
