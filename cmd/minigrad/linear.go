package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/born-ml/minigrad/internal/train"
)

func runLinear(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("linear", flag.ContinueOnError)
	fs.SetOutput(out)
	epochs := fs.Int("epochs", 5000, "Number of training epochs")
	lr := fs.Float64("lr", 0.01, "Learning rate for SGD")
	every := fs.Int("log-every", 1000, "Print progress every N epochs (0 = never)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Fprintln(out, "Fitting y = 2x + 1 on x = 1, 2, 3")
	stats, err := train.FitLinear(train.LinearConfig{
		X:      []float32{1, 2, 3},
		Y:      []float32{3, 5, 7},
		LR:     float32(*lr),
		Epochs: *epochs,
		OnEpoch: func(s train.LinearStats) {
			if *every > 0 && s.Epoch%*every == 0 {
				fmt.Fprintf(out, "Epoch %5d: loss=%.6f w=%.4f b=%.4f\n", s.Epoch, s.Loss, s.W, s.B)
			}
		},
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Learned: y = %.4fx + %.4f (loss %.6f)\n", stats.W, stats.B, stats.Loss)
	return nil
}
