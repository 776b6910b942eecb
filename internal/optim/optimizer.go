// Package optim implements optimization algorithms for training neural networks.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with optional momentum
//   - Adam: Adaptive Moment Estimation
//
// Optimizers consume the gradients already accumulated on each
// autodiff.Parameter, update the values in place and clear the gradients.
//
// Example usage:
//
//	optimizer := optim.NewAdam(optim.AdamConfig{LR: 0.001})
//	params := []*autodiff.Parameter{w1, b1, w2, b2}
//
//	for epoch := range epochs {
//	    loss, _ := forward(tape, batch)
//	    _ = tape.SeedOnes(loss)
//	    _ = tape.Backward(loss)
//
//	    // Update parameters and clear their gradients
//	    if err := optimizer.Step(params); err != nil {
//	        return err
//	    }
//	    tape.Reset()
//	}
package optim

import (
	"fmt"

	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/matrix"
)

// Optimizer is the base interface for all optimization algorithms.
//
// All optimizers must implement:
//   - Step: Apply gradient updates to parameters, then zero their gradients
//   - LR/SetLR: Read and adjust the learning rate (for monitoring/scheduling)
type Optimizer interface {
	// Step applies one update to every parameter using its accumulated
	// gradient, then clears that gradient.
	//
	// Step must follow a completed backward pass. It is not idempotent:
	// calling it twice without a backward pass in between applies a
	// zero gradient the second time.
	Step(params []*autodiff.Parameter) error

	// LR returns the current learning rate.
	LR() float32

	// SetLR updates the learning rate.
	SetLR(lr float32)
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float32 // Learning rate
}

// checkParams rejects nil entries before any parameter is touched, so a
// failed Step leaves every value unchanged.
func checkParams(params []*autodiff.Parameter) error {
	for i, p := range params {
		if p == nil {
			return fmt.Errorf("optim: %w: parameter %d is nil", matrix.ErrInvalidArgument, i)
		}
	}
	return nil
}

// zeroBuffers allocates one zero matrix per parameter, shape-matched to its
// gradient.
func zeroBuffers(params []*autodiff.Parameter) []matrix.Matrix {
	buffers := make([]matrix.Matrix, len(params))
	for i, p := range params {
		buffers[i] = matrix.ZerosLike(*p.Grad())
	}
	return buffers
}
