package autodiff

import (
	"fmt"
)

// Backward propagates the gradient already seeded on root to every node
// reachable from it.
//
// The root's gradient must be set first (SeedOnes or SetGrad); Backward never
// seeds it. Nodes are visited in reverse topological order, so each rule runs
// exactly once and only after every consumer of the node has contributed:
// a node shared by several paths receives the sum of all path contributions.
//
// Leaf and parameter nodes have no rule and end traversal. Parts of fused
// losses are never visited.
func (t *Tape) Backward(root NodeID) error {
	order, err := t.Order(root)
	if err != nil {
		return err
	}
	for _, id := range order {
		rule := backwardRules[t.nodes[id].kind]
		if rule == nil {
			continue
		}
		if err := rule(t, id); err != nil {
			return fmt.Errorf("backward %s node %d: %w", t.nodes[id].kind, id, err)
		}
	}
	return nil
}

// Order returns the nodes reachable from root through gradient edges in the
// order Backward visits them: root first, every node before its operands.
//
// Operands are always recorded before their consumers, so descending IDs over
// the reachable set is a valid reverse topological order.
func (t *Tape) Order(root NodeID) ([]NodeID, error) {
	if err := t.check("backward", root); err != nil {
		return nil, err
	}

	reachable := make([]bool, int(root)+1)
	reachable[root] = true
	order := make([]NodeID, 0, int(root)+1)
	for id := root; id >= 0; id-- {
		if !reachable[id] {
			continue
		}
		order = append(order, id)
		for _, in := range t.nodes[id].inputs {
			reachable[in] = true
		}
	}
	return order, nil
}

// BackwardNaive propagates gradients by plain pre-order recursion: run the
// node's rule, then recurse into each operand.
//
// A node reachable through k paths has its rule run k times, each time
// forwarding everything accumulated so far. On graphs where an interior node
// feeds several consumers this overcounts; it is exact only on trees and on
// graphs whose shared nodes are leaves. Kept for comparison with Backward.
func (t *Tape) BackwardNaive(root NodeID) error {
	if err := t.check("backward_naive", root); err != nil {
		return err
	}
	return t.backwardNaive(root)
}

func (t *Tape) backwardNaive(id NodeID) error {
	rule := backwardRules[t.nodes[id].kind]
	if rule == nil {
		return nil
	}
	if err := rule(t, id); err != nil {
		return fmt.Errorf("backward %s node %d: %w", t.nodes[id].kind, id, err)
	}
	for _, in := range t.nodes[id].inputs {
		if err := t.backwardNaive(in); err != nil {
			return err
		}
	}
	return nil
}
