package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/born-ml/minigrad/internal/serialization"
)

func runMatrix(args []string, out io.Writer) error {
	flags := flag.NewFlagSet("matrix", flag.ContinueOnError)
	flags.SetOutput(out)
	shapeOnly := flags.Bool("shape", false, "Print only the shape and summary statistics")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return errors.New("expected exactly one matrix file")
	}

	m, err := serialization.LoadMatrix(flags.Arg(0))
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "shape %s, sum %g\n", m.Shape(), m.Sum())
	if *shapeOnly {
		return nil
	}
	return m.Fprint(out)
}
