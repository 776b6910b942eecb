package autodiff

// OpKind tags how a node was produced. Together with the node's operand list
// it fully determines the node's gradient rule.
type OpKind uint8

// Node kinds.
const (
	OpLeaf                   OpKind = iota // Constant input; no gradient rule
	OpParam                                // Bound Parameter; no gradient rule
	OpAdd                                  // x + y
	OpMul                                  // x ⊙ y
	OpMatMul                               // x · y
	OpReLU                                 // max(0, x)
	OpSquare                               // x ⊙ x
	OpSoftmax                              // row-wise softmax
	OpMSE                                  // fused mean squared error
	OpCrossEntropy                         // fused softmax + cross-entropy
	OpCrossEntropyWithLogits               // fused log-sum-exp cross-entropy
	numOpKinds
)

var opNames = [numOpKinds]string{
	OpLeaf:                   "leaf",
	OpParam:                  "param",
	OpAdd:                    "add",
	OpMul:                    "mul",
	OpMatMul:                 "matmul",
	OpReLU:                   "relu",
	OpSquare:                 "square",
	OpSoftmax:                "softmax",
	OpMSE:                    "mse",
	OpCrossEntropy:           "cross_entropy",
	OpCrossEntropyWithLogits: "cross_entropy_with_logits",
}

// String returns the operation name.
func (k OpKind) String() string {
	if k < numOpKinds {
		return opNames[k]
	}
	return "unknown"
}

// IsLeaf reports whether nodes of this kind stop gradient traversal.
func (k OpKind) IsLeaf() bool {
	return k < numOpKinds && backwardRules[k] == nil
}

// backwardRule distributes the accumulated gradient of node id into its
// operands. Rules always add into operand gradients, never assign.
type backwardRule func(t *Tape, id NodeID) error

// backwardRules is the dispatch table from node kind to gradient rule.
// Leaves have no entry.
var backwardRules [numOpKinds]backwardRule

func init() {
	backwardRules = [numOpKinds]backwardRule{
		OpAdd:                    addBackward,
		OpMul:                    mulBackward,
		OpMatMul:                 matMulBackward,
		OpReLU:                   reluBackward,
		OpSquare:                 squareBackward,
		OpSoftmax:                softmaxBackward,
		OpMSE:                    mseBackward,
		OpCrossEntropy:           crossEntropyBackward,
		OpCrossEntropyWithLogits: crossEntropyWithLogitsBackward,
	}
}
