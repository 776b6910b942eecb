// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation over
// dense matrices.
//
// A Tape records one forward pass as an arena of nodes. Parameters live
// outside the tape and collect gradients across passes until an optimizer
// consumes them.
//
// Example:
//
//	import (
//	    "github.com/born-ml/minigrad/autodiff"
//	    "github.com/born-ml/minigrad/matrix"
//	)
//
//	func main() {
//	    w := autodiff.NewParameter("w", matrix.Scalar(0.5))
//	    tape := autodiff.NewTape()
//
//	    y, _ := tape.Mul(tape.Param(w), tape.Scalar(3))
//	    loss, _ := tape.MSE(y, tape.Scalar(6))
//
//	    _ = tape.SeedOnes(loss)
//	    _ = tape.Backward(loss)
//	    fmt.Println(w.Grad()) // ∂loss/∂w
//	}
package autodiff

import (
	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/matrix"
)

// Tape records the computation graph of one forward pass.
type Tape = autodiff.Tape

// NodeID addresses a node on a Tape.
type NodeID = autodiff.NodeID

// OpKind identifies the operation that produced a node.
type OpKind = autodiff.OpKind

// Parameter is a named trainable matrix with its gradient accumulator.
type Parameter = autodiff.Parameter

// Node kinds.
const (
	OpLeaf                   = autodiff.OpLeaf
	OpParam                  = autodiff.OpParam
	OpAdd                    = autodiff.OpAdd
	OpMul                    = autodiff.OpMul
	OpMatMul                 = autodiff.OpMatMul
	OpReLU                   = autodiff.OpReLU
	OpSquare                 = autodiff.OpSquare
	OpSoftmax                = autodiff.OpSoftmax
	OpMSE                    = autodiff.OpMSE
	OpCrossEntropy           = autodiff.OpCrossEntropy
	OpCrossEntropyWithLogits = autodiff.OpCrossEntropyWithLogits
)

// ErrInvalidNode is returned for NodeIDs that do not address a node on the tape.
var ErrInvalidNode = autodiff.ErrInvalidNode

// NewTape creates an empty tape.
func NewTape() *Tape {
	return autodiff.NewTape()
}

// NewParameter creates a parameter holding a copy of value and a zeroed gradient.
func NewParameter(name string, value matrix.Matrix) *Parameter {
	return autodiff.NewParameter(name, value)
}
