package optim

import (
	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/matrix"
)

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Example:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.01})
//
//	for epoch := range epochs {
//	    _ = tape.Backward(loss)
//	    _ = optimizer.Step(params)
//	    tape.Reset()
//	}
type SGD struct {
	lr         float32
	momentum   float32
	velocities []matrix.Matrix
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float32 // Learning rate (default: 0.01)
	Momentum float32 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD{
		lr:       config.LR,
		momentum: config.Momentum,
	}
}

// Step performs a single optimization step and zeroes every gradient.
//
// Velocity buffers are indexed by position in params and reallocated when
// the list length changes.
func (s *SGD) Step(params []*autodiff.Parameter) error {
	if err := checkParams(params); err != nil {
		return err
	}
	if s.momentum != 0 && len(s.velocities) != len(params) {
		s.velocities = zeroBuffers(params)
	}
	if s.momentum != 0 {
		for i, p := range params {
			if !s.velocities[i].Shape().Equal(p.Shape()) {
				return &matrix.ShapeError{Op: "sgd", Left: s.velocities[i].Shape(), Right: p.Shape()}
			}
		}
	}

	for i, p := range params {
		grad := *p.Grad()
		if s.momentum != 0 {
			velocity := &s.velocities[i]
			*velocity = velocity.Scale(s.momentum)
			if err := velocity.AddInPlace(grad); err != nil {
				return err
			}
			grad = *velocity
		}
		if err := p.Value().AxpyInPlace(-s.lr, grad); err != nil {
			return err
		}
		p.ZeroGrad()
	}
	return nil
}

// LR returns the current learning rate.
func (s *SGD) LR() float32 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD) SetLR(lr float32) {
	s.lr = lr
}
