// Package main provides the minigrad CLI.
//
// Usage:
//
//	minigrad version
//	minigrad linear [-epochs N] [-lr LR]
//	minigrad mnist [-csv FILE | -data DIR | -synthetic] [-epochs N] [-optimizer adam|sgd] [-save FILE] [-export DIR]
//	minigrad bigrams [-tiktoken ENCODING] [-top N] FILE
//	minigrad matrix [-shape] FILE
package main

import (
	"fmt"
	"io"
	"log"
	"os"
)

const version = "v0.1.0"

// command is one CLI subcommand.
type command struct {
	name  string
	usage string
	run   func(args []string, out io.Writer) error
}

var commands = []command{
	{"version", "Show version", runVersion},
	{"linear", "Fit y = 2x + 1 with per-sample graphs and SGD", runLinear},
	{"mnist", "Train a 784-128-10 MLP digit classifier", runMNIST},
	{"bigrams", "Count adjacent token pairs in a text file", runBigrams},
	{"matrix", "Print a matrix stored in the raw binary format", runMatrix},
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("minigrad: ")

	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		printUsage(out)
		return nil
	}
	for _, cmd := range commands {
		if cmd.name == args[0] {
			if err := cmd.run(args[1:], out); err != nil {
				return fmt.Errorf("%s: %w", cmd.name, err)
			}
			return nil
		}
	}
	printUsage(out)
	return fmt.Errorf("unknown command %q", args[0])
}

func printUsage(out io.Writer) {
	fmt.Fprintf(out, "minigrad %s - reverse-mode autodiff on dense matrices\n\n", version)
	fmt.Fprintln(out, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(out, "  %-10s %s\n", cmd.name, cmd.usage)
	}
}

func runVersion(_ []string, out io.Writer) error {
	_, err := fmt.Fprintf(out, "minigrad %s\n", version)
	return err
}
