// Package train wires the tape, losses and optimizers into training loops.
//
// Each iteration records a fresh forward pass on a reused tape, seeds the
// loss, runs Backward, steps the optimizer and resets the tape. Parameters
// are the only state that survives an iteration.
package train

import (
	"fmt"

	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/matrix"
	"github.com/born-ml/minigrad/internal/optim"
)

// LinearConfig configures FitLinear.
type LinearConfig struct {
	X, Y    []float32         // Samples of y = w·x + b
	LR      float32           // SGD learning rate (default: 0.01)
	Epochs  int               // Number of epochs (default: 5000)
	OnEpoch func(LinearStats) // Optional progress callback
}

// LinearStats reports the state after one epoch.
type LinearStats struct {
	Epoch int
	Loss  float32 // Mean per-sample MSE
	W, B  float32
}

// FitLinear fits a scalar linear model y = w·x + b starting from w = b = 0.
//
// Every sample gets its own graph on the shared tape; parameter gradients
// accumulate across the samples of an epoch and SGD takes one step per epoch.
func FitLinear(cfg LinearConfig) (LinearStats, error) {
	if len(cfg.X) == 0 || len(cfg.X) != len(cfg.Y) {
		return LinearStats{}, fmt.Errorf("%w: need equally many x and y samples, got %d and %d",
			matrix.ErrInvalidArgument, len(cfg.X), len(cfg.Y))
	}
	if cfg.LR == 0 {
		cfg.LR = 0.01
	}
	if cfg.Epochs == 0 {
		cfg.Epochs = 5000
	}

	w := autodiff.NewParameter("w", matrix.Scalar(0))
	b := autodiff.NewParameter("b", matrix.Scalar(0))
	params := []*autodiff.Parameter{w, b}
	optimizer := optim.NewSGD(optim.SGDConfig{LR: cfg.LR})
	tape := autodiff.NewTape()

	var stats LinearStats
	for epoch := range cfg.Epochs {
		var total float32
		for i := range cfg.X {
			loss, err := linearLoss(tape, w, b, cfg.X[i], cfg.Y[i])
			if err != nil {
				return LinearStats{}, err
			}
			total += tape.Value(loss).At(0, 0)
		}
		if err := optimizer.Step(params); err != nil {
			return LinearStats{}, err
		}
		tape.Reset()

		stats = LinearStats{
			Epoch: epoch + 1,
			Loss:  total / float32(len(cfg.X)),
			W:     w.Value().At(0, 0),
			B:     b.Value().At(0, 0),
		}
		if cfg.OnEpoch != nil {
			cfg.OnEpoch(stats)
		}
	}
	return stats, nil
}

// linearLoss records (w·x + b − y)² and back-propagates it into w and b.
func linearLoss(tape *autodiff.Tape, w, b *autodiff.Parameter, x, y float32) (autodiff.NodeID, error) {
	wx, err := tape.Mul(tape.Param(w), tape.Scalar(x))
	if err != nil {
		return 0, err
	}
	pred, err := tape.Add(wx, tape.Param(b))
	if err != nil {
		return 0, err
	}
	loss, err := tape.MSE(pred, tape.Scalar(y))
	if err != nil {
		return 0, err
	}
	if err := tape.SeedOnes(loss); err != nil {
		return 0, err
	}
	if err := tape.Backward(loss); err != nil {
		return 0, err
	}
	return loss, nil
}
