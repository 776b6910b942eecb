package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/born-ml/minigrad/internal/tokenizer"
)

func runBigrams(args []string, out io.Writer) error {
	flags := flag.NewFlagSet("bigrams", flag.ContinueOnError)
	flags.SetOutput(out)
	encoding := flags.String("tiktoken", "", "Tokenize with a tiktoken encoding (e.g. cl100k_base) instead of words")
	top := flags.Int("top", 10, "Number of most frequent pairs to print (0 = all)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return errors.New("expected exactly one input file")
	}

	f, err := os.Open(flags.Arg(0))
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = f.Close() }()

	tokens, err := readTokens(f, *encoding)
	if err != nil {
		return err
	}
	pairs, err := tokenizer.Bigrams(tokens)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%d tokens, %d distinct pairs\n", len(tokens), len(pairs))
	for _, p := range tokenizer.TopBigrams(pairs, *top) {
		fmt.Fprintf(out, "%6d  %q %q\n", p.Count, p.First, p.Second)
	}
	return nil
}

func readTokens(r io.Reader, encoding string) ([]string, error) {
	if encoding == "" {
		return tokenizer.Words(r)
	}

	tok, err := tokenizer.NewTikToken(encoding)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	if _, err := io.Copy(&sb, r); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return tokenizer.Pieces(tok, sb.String())
}
