package autodiff

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes the subgraph reachable from root as an indented tree, one node
// per line. A node reached again through another path is printed once and
// then referenced as "(seen)".
//
//	#4 mse [1, 1]
//	  #2 matmul [1, 1]
//	    #0 leaf [1, 2]
//	    #1 param w [2, 1]
//	  #3 leaf [1, 1]
func (t *Tape) Dump(w io.Writer, root NodeID) error {
	if err := t.check("dump", root); err != nil {
		return err
	}
	seen := make(map[NodeID]bool)
	return t.dump(w, root, 0, seen)
}

func (t *Tape) dump(w io.Writer, id NodeID, depth int, seen map[NodeID]bool) error {
	n := &t.nodes[id]
	indent := strings.Repeat("  ", depth)

	label := n.kind.String()
	if n.param != nil {
		label += " " + n.param.name
	}
	if seen[id] {
		_, err := fmt.Fprintf(w, "%s#%d %s (seen)\n", indent, id, label)
		return err
	}
	seen[id] = true

	if _, err := fmt.Fprintf(w, "%s#%d %s %s\n", indent, id, label, t.valueRef(id).Shape()); err != nil {
		return err
	}
	for _, in := range n.inputs {
		if err := t.dump(w, in, depth+1, seen); err != nil {
			return err
		}
	}
	return nil
}
