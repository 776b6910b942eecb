package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/dataset"
	"github.com/born-ml/minigrad/internal/optim"
	"github.com/born-ml/minigrad/internal/rng"
	"github.com/born-ml/minigrad/internal/serialization"
	"github.com/born-ml/minigrad/internal/train"
)

func runMNIST(args []string, out io.Writer) error {
	flags := flag.NewFlagSet("mnist", flag.ContinueOnError)
	flags.SetOutput(out)
	csvPath := flags.String("csv", "", "Kaggle-style CSV file (label,pixel0..pixel783)")
	dataDir := flags.String("data", "", "Directory containing MNIST IDX files")
	useTrain := flags.Bool("train", true, "Use the IDX training set vs the test set")
	useSynthetic := flags.Bool("synthetic", false, "Use synthetic data (for testing without MNIST files)")
	maxSamples := flags.Int("samples", 0, "Max samples to load (0 = all)")
	epochs := flags.Int("epochs", 10, "Number of training epochs")
	batchSize := flags.Int("batch", 64, "Batch size for training")
	hidden := flags.Int("hidden", 128, "Hidden layer width")
	lr := flags.Float64("lr", 0.001, "Learning rate")
	optName := flags.String("optimizer", "adam", "Optimizer: adam or sgd")
	lossName := flags.String("loss", train.LossCrossEntropy.String(),
		"Loss: cross_entropy, cross_entropy_with_logits or mse")
	seed := flags.Uint64("seed", train.DefaultSeed, "Seed for initialization and shuffling")
	savePath := flags.String("save", "", "Write a checkpoint to this file after training")
	loadPath := flags.String("load", "", "Restore parameters from this checkpoint before training")
	exportDir := flags.String("export", "", "Write every parameter as a raw <name>.bin matrix into this directory")
	if err := flags.Parse(args); err != nil {
		return err
	}

	data, err := loadDigits(*csvPath, *dataDir, *useTrain, *useSynthetic, *maxSamples, *seed)
	if err != nil {
		return err
	}
	trainSet, valSet := data.Split(0.2)
	fmt.Fprintf(out, "Train: %d samples, Val: %d samples\n", trainSet.NumSamples(), valSet.NumSamples())

	r := rng.New(*seed)
	model, err := train.NewMLP(dataset.ImagePixels, *hidden, dataset.NumClasses, r)
	if err != nil {
		return err
	}
	if *loadPath != "" {
		ckpt, err := serialization.LoadCheckpoint(*loadPath)
		if err != nil {
			return err
		}
		if err := ckpt.Restore(model.Parameters()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Restored %s (epoch %d)\n", *loadPath, ckpt.Header.Checkpoint.Epoch)
	}

	optimizer, err := newOptimizer(*optName, float32(*lr))
	if err != nil {
		return err
	}
	loss, err := train.ParseLoss(*lossName)
	if err != nil {
		return err
	}
	classifier, err := train.NewClassifier(model, optimizer, loss)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Model: %d-%d-%d MLP, optimizer=%s lr=%.4f loss=%s batch=%d\n",
		dataset.ImagePixels, *hidden, dataset.NumClasses, *optName, *lr, loss, *batchSize)

	last, err := classifier.Fit(trainSet, valSet, train.FitConfig{
		Epochs:    *epochs,
		BatchSize: *batchSize,
		Rand:      r,
		OnEpoch: func(tr, val train.EpochStats) {
			fmt.Fprintf(out, "Epoch %2d/%d: Loss=%.4f, Train Acc=%.2f%%, Val Loss=%.4f, Val Acc=%.2f%%\n",
				tr.Epoch, *epochs, tr.Loss, tr.Accuracy*100, val.Loss, val.Accuracy*100)
		},
	})
	if err != nil {
		return err
	}

	if *savePath != "" {
		meta := serialization.CheckpointMeta{
			Epoch:     last.Epoch,
			Loss:      float64(last.Loss),
			Accuracy:  float64(last.Accuracy),
			Optimizer: *optName,
			Metadata:  map[string]string{"loss": loss.String()},
		}
		if err := serialization.SaveCheckpoint(*savePath, model.Parameters(), meta); err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved checkpoint to %s\n", *savePath)
	}
	if *exportDir != "" {
		if err := exportParameters(*exportDir, model.Parameters()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported %d parameters to %s\n", len(model.Parameters()), *exportDir)
	}
	return nil
}

// exportParameters writes each parameter to dir/<name>.bin in the raw matrix format.
func exportParameters(dir string, params []*autodiff.Parameter) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	for _, p := range params {
		path := filepath.Join(dir, p.Name()+".bin")
		if err := serialization.SaveMatrix(path, *p.Value()); err != nil {
			return fmt.Errorf("export %s: %w", p.Name(), err)
		}
	}
	return nil
}

func loadDigits(csvPath, dataDir string, useTrain, synthetic bool, maxSamples int, seed uint64) (*dataset.Dataset, error) {
	switch {
	case synthetic:
		n := maxSamples
		if n == 0 {
			n = 1000
		}
		return dataset.Synthetic(n, rng.New(seed)), nil
	case csvPath != "":
		return dataset.LoadCSV(csvPath, maxSamples)
	case dataDir != "":
		data, err := dataset.LoadIDX(dataDir, useTrain, maxSamples)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w (download the IDX files from http://yann.lecun.com/exdb/mnist/ or use -synthetic)", err)
		}
		return data, err
	default:
		return nil, errors.New("one of -csv, -data or -synthetic is required")
	}
}

func newOptimizer(name string, lr float32) (optim.Optimizer, error) {
	switch name {
	case "adam":
		return optim.NewAdam(optim.AdamConfig{LR: lr}), nil
	case "sgd":
		return optim.NewSGD(optim.SGDConfig{LR: lr}), nil
	default:
		return nil, fmt.Errorf("unknown optimizer %q", name)
	}
}
