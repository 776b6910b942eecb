// Package autodiff implements reverse-mode automatic differentiation over
// dense 2-D matrices.
//
// Architecture:
//   - Tape: a per-iteration arena of nodes addressed by NodeID
//   - Node: value, gradient accumulator, operation kind and operand IDs
//   - Gradient rules: a fixed table indexed by OpKind (see op.go)
//   - Backward: reverse-topological sweep, each rule runs exactly once
//
// Operands always precede their consumers on the tape, so walking the nodes
// reachable from the root in descending ID order visits every node only after
// all of its consumers have deposited their gradient.
//
// Lifetime is epoch-scoped. Parameters are created once and bound to a tape
// with Param; every other node lives until Reset bulk-releases the arena:
//
//	tape := autodiff.NewTape()
//	for epoch := range epochs {
//	    x := tape.Constant(input)
//	    y, _ := tape.MatMul(x, tape.Param(w))
//	    loss, _ := tape.MSE(y, tape.Constant(target))
//	    _ = tape.SeedOnes(loss)
//	    _ = tape.Backward(loss)
//	    _ = optimizer.Step(params)
//	    tape.Reset()
//	}
package autodiff

import (
	"github.com/born-ml/minigrad/internal/matrix"
)

// NodeID addresses a node on a Tape. IDs are invalidated by Tape.Reset.
type NodeID int

// node is a graph vertex. Parameter-bound nodes keep value and grad in the
// Parameter instead of inline.
type node struct {
	kind   OpKind
	value  matrix.Matrix
	grad   matrix.Matrix
	param  *Parameter
	inputs []NodeID // Gradient edges, in operand order
	parts  []NodeID // Sub-nodes built by a fused loss; traversal never enters them
}

// Tape records the computation graph of one forward pass.
//
// A Tape is not safe for concurrent use.
type Tape struct {
	nodes  []node
	params map[*Parameter]NodeID
}

// NewTape creates an empty tape.
func NewTape() *Tape {
	return &Tape{
		nodes:  make([]node, 0, 64), // Pre-allocate for common case
		params: make(map[*Parameter]NodeID),
	}
}

// Len returns the number of nodes currently on the tape.
func (t *Tape) Len() int {
	return len(t.nodes)
}

// Reset releases every node recorded since the last Reset.
//
// Bound parameters keep their values and accumulated gradients; only their
// tape bindings are dropped. All previously issued NodeIDs become invalid.
func (t *Tape) Reset() {
	clear(t.nodes)
	t.nodes = t.nodes[:0]
	clear(t.params)
}

// Constant records a leaf holding a copy of m with a zeroed gradient.
func (t *Tape) Constant(m matrix.Matrix) NodeID {
	return t.push(node{kind: OpLeaf, value: m.Clone(), grad: matrix.ZerosLike(m)})
}

// Scalar records a 1×1 leaf holding v.
func (t *Tape) Scalar(v float32) NodeID {
	return t.Constant(matrix.Scalar(v))
}

// Param binds p to the tape as a leaf and returns its ID.
//
// Binding the same parameter twice returns the same ID so that every use
// accumulates into one gradient.
func (t *Tape) Param(p *Parameter) NodeID {
	if id, ok := t.params[p]; ok {
		return id
	}
	id := t.push(node{kind: OpParam, param: p})
	t.params[p] = id
	return id
}

// push appends n and returns its ID.
func (t *Tape) push(n node) NodeID {
	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes) - 1)
}

// record appends an op node whose gradient starts zero-filled.
func (t *Tape) record(kind OpKind, value matrix.Matrix, inputs ...NodeID) NodeID {
	return t.push(node{
		kind:   kind,
		value:  value,
		grad:   matrix.ZerosLike(value),
		inputs: inputs,
	})
}

func (t *Tape) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// check validates operand IDs for op.
func (t *Tape) check(op string, ids ...NodeID) error {
	for _, id := range ids {
		if !t.valid(id) {
			return invalidNode(op, id, len(t.nodes))
		}
	}
	return nil
}

func (t *Tape) mustNode(id NodeID) *node {
	if !t.valid(id) {
		panic(invalidNode("autodiff", id, len(t.nodes)))
	}
	return &t.nodes[id]
}

// valueRef returns the live value of id.
func (t *Tape) valueRef(id NodeID) *matrix.Matrix {
	n := &t.nodes[id]
	if n.param != nil {
		return &n.param.value
	}
	return &n.value
}

// gradRef returns the live gradient accumulator of id.
func (t *Tape) gradRef(id NodeID) *matrix.Matrix {
	n := &t.nodes[id]
	if n.param != nil {
		return &n.param.grad
	}
	return &n.grad
}

// Value returns a copy of the node's value. It panics on an invalid ID.
func (t *Tape) Value(id NodeID) matrix.Matrix {
	t.mustNode(id)
	return t.valueRef(id).Clone()
}

// Grad returns a copy of the node's accumulated gradient. It panics on an
// invalid ID.
func (t *Tape) Grad(id NodeID) matrix.Matrix {
	t.mustNode(id)
	return t.gradRef(id).Clone()
}

// Kind returns the operation that produced the node. It panics on an invalid ID.
func (t *Tape) Kind(id NodeID) OpKind {
	return t.mustNode(id).kind
}

// Inputs returns the node's operands in registration order.
func (t *Tape) Inputs(id NodeID) []NodeID {
	return append([]NodeID(nil), t.mustNode(id).inputs...)
}

// Parts returns the sub-nodes a fused loss built for its value. Their
// gradient rules are never run by Backward.
func (t *Tape) Parts(id NodeID) []NodeID {
	return append([]NodeID(nil), t.mustNode(id).parts...)
}

// SetGrad overwrites the gradient of id with a copy of g.
//
// This is the seeding entry point for a backward pass; traversal itself never
// seeds the root.
func (t *Tape) SetGrad(id NodeID, g matrix.Matrix) error {
	if err := t.check("set_grad", id); err != nil {
		return err
	}
	ref := t.gradRef(id)
	if !ref.Shape().Equal(g.Shape()) {
		return &matrix.ShapeError{Op: "set_grad", Left: ref.Shape(), Right: g.Shape()}
	}
	*ref = g.Clone()
	return nil
}

// SeedOnes sets the gradient of id to all ones (∂loss/∂loss = 1).
func (t *Tape) SeedOnes(id NodeID) error {
	if err := t.check("seed", id); err != nil {
		return err
	}
	shape := t.valueRef(id).Shape()
	return t.SetGrad(id, matrix.Ones(shape.Rows, shape.Cols))
}

// ZeroGrad clears the gradient of every node on the tape, including bound
// parameters.
func (t *Tape) ZeroGrad() {
	for i := range t.nodes {
		t.gradRef(NodeID(i)).FillZero()
	}
}
