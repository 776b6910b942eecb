package autodiff

import (
	"fmt"

	"github.com/born-ml/minigrad/internal/matrix"
)

// crossEntropyEps keeps log() finite when a probability underflows to zero.
const crossEntropyEps = 1e-8

// lossOperands validates a (predictions, targets) pair: both IDs must exist,
// shapes must match and be non-empty.
func (t *Tape) lossOperands(op string, pred, target NodeID) (matrix.Matrix, matrix.Matrix, error) {
	if err := t.check(op, pred, target); err != nil {
		return matrix.Matrix{}, matrix.Matrix{}, err
	}
	pv, tv := *t.valueRef(pred), *t.valueRef(target)
	if !pv.Shape().Equal(tv.Shape()) {
		return matrix.Matrix{}, matrix.Matrix{}, &matrix.ShapeError{Op: op, Left: pv.Shape(), Right: tv.Shape()}
	}
	if pv.Shape().IsEmpty() {
		return matrix.Matrix{}, matrix.Matrix{}, fmt.Errorf("%s: %w: empty predictions", op, matrix.ErrInvalidArgument)
	}
	return pv, tv, nil
}

// resetOperandGrads zeroes the gradients of loss operands that belong to this
// tape. Bound parameters are skipped: their gradients may already hold
// contributions from earlier tapes that an optimizer has not consumed yet.
func (t *Tape) resetOperandGrads(ids ...NodeID) {
	for _, id := range ids {
		if t.nodes[id].param == nil {
			t.nodes[id].grad.FillZero()
		}
	}
}

// upstream returns the scalar gradient flowing into a 1×1 loss node.
func (t *Tape) upstream(id NodeID) float32 {
	return t.nodes[id].grad.At(0, 0)
}
