package train

import (
	"fmt"

	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/dataset"
	"github.com/born-ml/minigrad/internal/matrix"
	"github.com/born-ml/minigrad/internal/optim"
	"github.com/born-ml/minigrad/internal/rng"
)

// LossKind selects the classification loss.
type LossKind int

// Supported losses.
const (
	// LossCrossEntropy applies softmax and cross-entropy as one fused node.
	LossCrossEntropy LossKind = iota
	// LossCrossEntropyWithLogits uses the log-sum-exp formulation.
	LossCrossEntropyWithLogits
	// LossMSE compares softmax probabilities to one-hot targets.
	LossMSE
)

var lossNames = map[LossKind]string{
	LossCrossEntropy:           "cross_entropy",
	LossCrossEntropyWithLogits: "cross_entropy_with_logits",
	LossMSE:                    "mse",
}

// String returns the loss name.
func (k LossKind) String() string {
	if name, ok := lossNames[k]; ok {
		return name
	}
	return fmt.Sprintf("LossKind(%d)", int(k))
}

// ParseLoss maps a loss name back to its LossKind.
func ParseLoss(name string) (LossKind, error) {
	for k, n := range lossNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown loss %q", matrix.ErrInvalidArgument, name)
}

// EpochStats summarizes one pass over a set of batches.
type EpochStats struct {
	Epoch    int
	Loss     float32 // Mean batch loss
	Accuracy float32 // Fraction of correctly classified samples
	Samples  int
}

// Classifier trains an MLP on mini-batches.
type Classifier struct {
	Model     *MLP
	Optimizer optim.Optimizer
	Loss      LossKind

	tape  *autodiff.Tape
	epoch int
}

// NewClassifier creates a classifier that owns a reusable tape.
func NewClassifier(model *MLP, optimizer optim.Optimizer, loss LossKind) (*Classifier, error) {
	if model == nil || optimizer == nil {
		return nil, fmt.Errorf("%w: classifier needs a model and an optimizer", matrix.ErrInvalidArgument)
	}
	if _, ok := lossNames[loss]; !ok {
		return nil, fmt.Errorf("%w: unknown loss %s", matrix.ErrInvalidArgument, loss)
	}
	return &Classifier{
		Model:     model,
		Optimizer: optimizer,
		Loss:      loss,
		tape:      autodiff.NewTape(),
	}, nil
}

// Epoch runs one training pass: for every batch forward, loss, backward,
// optimizer step and tape reset.
func (c *Classifier) Epoch(batches []dataset.Batch) (EpochStats, error) {
	c.epoch++
	stats := EpochStats{Epoch: c.epoch}
	var correct int
	for i, batch := range batches {
		loss, n, err := c.step(batch)
		if err != nil {
			return stats, fmt.Errorf("epoch %d batch %d: %w", c.epoch, i, err)
		}
		stats.Loss += loss
		stats.Samples += batch.Size()
		correct += n
	}
	return finish(stats, correct, len(batches)), nil
}

func (c *Classifier) step(batch dataset.Batch) (float32, int, error) {
	defer c.tape.Reset()

	loss, logits, err := c.forward(batch)
	if err != nil {
		return 0, 0, err
	}
	if err := c.tape.SeedOnes(loss); err != nil {
		return 0, 0, err
	}
	if err := c.tape.Backward(loss); err != nil {
		return 0, 0, err
	}
	if err := c.Optimizer.Step(c.Model.Parameters()); err != nil {
		return 0, 0, err
	}
	return c.tape.Value(loss).At(0, 0), hits(c.tape.Value(logits), batch.Labels), nil
}

// Evaluate computes loss and accuracy without touching the parameters.
func (c *Classifier) Evaluate(batches []dataset.Batch) (EpochStats, error) {
	stats := EpochStats{Epoch: c.epoch}
	var correct int
	for i, batch := range batches {
		loss, logits, err := c.forward(batch)
		if err != nil {
			c.tape.Reset()
			return stats, fmt.Errorf("evaluate batch %d: %w", i, err)
		}
		stats.Loss += c.tape.Value(loss).At(0, 0)
		stats.Samples += batch.Size()
		correct += hits(c.tape.Value(logits), batch.Labels)
		c.tape.Reset()
	}
	return finish(stats, correct, len(batches)), nil
}

// forward records the network and the configured loss for one batch.
func (c *Classifier) forward(batch dataset.Batch) (loss, logits autodiff.NodeID, err error) {
	logits, err = c.Model.Forward(c.tape, c.tape.Constant(batch.Images))
	if err != nil {
		return 0, 0, err
	}
	target := c.tape.Constant(batch.Targets)

	switch c.Loss {
	case LossCrossEntropy:
		loss, err = c.tape.CrossEntropy(logits, target)
	case LossCrossEntropyWithLogits:
		loss, err = c.tape.CrossEntropyWithLogits(logits, target)
	case LossMSE:
		var probs autodiff.NodeID
		if probs, err = c.tape.Softmax(logits); err == nil {
			loss, err = c.tape.MSE(probs, target)
		}
	}
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", c.Loss, err)
	}
	return loss, logits, nil
}

// FitConfig configures Fit.
type FitConfig struct {
	Epochs    int         // Number of epochs (default: 10)
	BatchSize int         // Samples per batch (default: 64)
	Rand      *rng.Random // Shuffles training batches every epoch; nil keeps order
	OnEpoch   func(train, validation EpochStats)
}

// Fit trains on train for cfg.Epochs epochs and evaluates on validation
// after each one. validation may be nil.
func (c *Classifier) Fit(train, validation *dataset.Dataset, cfg FitConfig) (EpochStats, error) {
	if cfg.Epochs == 0 {
		cfg.Epochs = 10
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 64
	}

	var valBatches []dataset.Batch
	if validation != nil && validation.NumSamples() > 0 {
		var err error
		if valBatches, err = validation.Batches(cfg.BatchSize, nil); err != nil {
			return EpochStats{}, err
		}
	}

	var last EpochStats
	for range cfg.Epochs {
		batches, err := train.Batches(cfg.BatchSize, cfg.Rand)
		if err != nil {
			return last, err
		}
		if last, err = c.Epoch(batches); err != nil {
			return last, err
		}

		var val EpochStats
		if valBatches != nil {
			if val, err = c.Evaluate(valBatches); err != nil {
				return last, err
			}
		}
		if cfg.OnEpoch != nil {
			cfg.OnEpoch(last, val)
		}
	}
	return last, nil
}

func hits(logits matrix.Matrix, labels []int) int {
	var n int
	for i, pred := range argMaxRows(logits) {
		if pred == labels[i] {
			n++
		}
	}
	return n
}

func finish(stats EpochStats, correct, batches int) EpochStats {
	if batches > 0 {
		stats.Loss /= float32(batches)
	}
	if stats.Samples > 0 {
		stats.Accuracy = float32(correct) / float32(stats.Samples)
	}
	return stats
}
