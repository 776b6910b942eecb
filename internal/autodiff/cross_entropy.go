package autodiff

import (
	"github.com/chewxy/math32"

	"github.com/born-ml/minigrad/internal/matrix"
)

// CrossEntropy records the mean cross-entropy between softmax(pred) and
// one-hot targets as a 1×1 loss node:
//
//	s    = softmax(pred)
//	loss = −(1/B) Σ_i Σ_j [target_ij == 1] · log(s_ij + ε),  ε = 1e-8
//
// The softmax node is recorded as a Part. The fused rule deposits
// ∂loss/∂s into it and then runs the softmax rule exactly once, which carries
// the gradient into pred:
//
//	ds_ij += −g · [target_ij == 1] / (B · (s_ij + ε))
//	dpred  = softmax Jacobian-vector product of ds
//
// This lands on the familiar (s − target)/B for one-hot targets. Traversal
// then continues from pred through the loss node's Inputs, so a composed pred
// keeps propagating into its own ancestors. Targets receive no gradient.
func (t *Tape) CrossEntropy(pred, target NodeID) (NodeID, error) {
	_, tv, err := t.lossOperands("cross_entropy", pred, target)
	if err != nil {
		return 0, err
	}
	t.resetOperandGrads(pred, target)

	probs, err := t.Softmax(pred)
	if err != nil {
		return 0, err
	}

	s := t.valueRef(probs)
	batch := s.Rows()
	var loss float32
	for i := 0; i < batch; i++ {
		for j := 0; j < s.Cols(); j++ {
			if tv.At(i, j) == 1 {
				loss -= math32.Log(s.At(i, j) + crossEntropyEps)
			}
		}
	}

	id := t.record(OpCrossEntropy, matrix.Scalar(loss/float32(batch)), pred, target)
	t.nodes[id].parts = []NodeID{probs}
	return id, nil
}

func crossEntropyBackward(t *Tape, id NodeID) error {
	target := t.nodes[id].inputs[1]
	probs := t.nodes[id].parts[0]

	s := t.valueRef(probs)
	tv := t.valueRef(target)
	scale := t.upstream(id) / float32(s.Rows())

	ds := matrix.ZerosLike(*s)
	for i := 0; i < s.Rows(); i++ {
		for j := 0; j < s.Cols(); j++ {
			if tv.At(i, j) == 1 {
				ds.Set(i, j, -scale/(s.At(i, j)+crossEntropyEps))
			}
		}
	}
	if err := t.gradRef(probs).AddInPlace(ds); err != nil {
		return err
	}

	// One explicit level of chaining: the softmax node is a Part, so
	// traversal will not run its rule again.
	return softmaxBackward(t, probs)
}

// CrossEntropyWithLogits records the same loss as CrossEntropy computed
// directly from logits with a per-row log-sum-exp:
//
//	loss = −(1/B) Σ_i Σ_j [target_ij == 1] · (logits_ij − logsumexp_i)
//
// No softmax node is created. The rule recomputes the probabilities locally:
//
//	dlogits += g · (softmax(logits) − target) / B
//
// Targets receive no gradient.
func (t *Tape) CrossEntropyWithLogits(logits, target NodeID) (NodeID, error) {
	lv, tv, err := t.lossOperands("cross_entropy_with_logits", logits, target)
	if err != nil {
		return 0, err
	}
	t.resetOperandGrads(logits, target)

	lse := lv.LogSumExpRows()
	var loss float32
	for i := 0; i < lv.Rows(); i++ {
		for j := 0; j < lv.Cols(); j++ {
			if tv.At(i, j) == 1 {
				loss -= lv.At(i, j) - lse[i]
			}
		}
	}

	return t.record(OpCrossEntropyWithLogits, matrix.Scalar(loss/float32(lv.Rows())), logits, target), nil
}

func crossEntropyWithLogitsBackward(t *Tape, id NodeID) error {
	logits, target := t.nodes[id].inputs[0], t.nodes[id].inputs[1]

	lv := t.valueRef(logits)
	delta, err := lv.SoftmaxRows().Sub(*t.valueRef(target))
	if err != nil {
		return err
	}
	scale := t.upstream(id) / float32(lv.Rows())
	return t.gradRef(logits).AxpyInPlace(scale, delta)
}
