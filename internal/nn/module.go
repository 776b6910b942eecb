// Package nn implements neural network modules on top of the autodiff tape.
//
// This package provides building blocks for constructing networks:
//   - Module interface: Base interface for all NN components
//   - Linear: Fully connected layer
//   - Activations: ReLU, Softmax
//   - Sequential: Container for stacking layers
//
// Modules own their autodiff.Parameters and record their forward pass on a
// caller-supplied tape, so one model can be replayed on a fresh tape every
// iteration.
package nn

import (
	"github.com/born-ml/minigrad/internal/autodiff"
)

// Module is the base interface for all neural network components.
//
// Every NN module must implement:
//   - Forward: Record the output of the module for an input node
//   - Parameters: Return all trainable parameters
//
// Modules can be composed to build complex architectures:
//
//	model := nn.NewSequential(
//	    fc1,
//	    nn.NewReLU(),
//	    fc2,
//	)
type Module interface {
	// Forward records the module on tape and returns the output node.
	//
	// For example, Linear expects a [batch_size, in_features] input.
	Forward(tape *autodiff.Tape, input autodiff.NodeID) (autodiff.NodeID, error)

	// Parameters returns all trainable parameters of this module.
	//
	// Returns an empty slice for modules without trainable parameters
	// (e.g., activation functions).
	Parameters() []*autodiff.Parameter
}
