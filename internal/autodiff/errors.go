package autodiff

import (
	"errors"
	"fmt"
)

// ErrInvalidNode is returned when a NodeID does not name a node on the tape,
// typically because the tape was Reset after the ID was issued.
var ErrInvalidNode = errors.New("invalid node")

func invalidNode(op string, id NodeID, size int) error {
	return fmt.Errorf("%s: %w: id %d, tape holds %d nodes", op, ErrInvalidNode, id, size)
}
