// Package tokenizer provides text tokenization for minigrad.
//
// This package wraps the internal tokenizer implementations and provides
// a clean public API for tokenization tasks.
//
// Supported tokenizers:
//   - Words: whitespace and punctuation splitting with a learned vocabulary
//   - TikToken: OpenAI BPE tokenizers (GPT-3, GPT-4)
//
// Example usage:
//
//	import "github.com/born-ml/minigrad/tokenizer"
//
//	words, err := tokenizer.Words(strings.NewReader("the cat sat. the cat ran."))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pairs, err := tokenizer.Bigrams(words)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, p := range tokenizer.TopBigrams(pairs, 3) {
//	    fmt.Println(p.First, p.Second, p.Count)
//	}
package tokenizer

import (
	"io"

	"github.com/born-ml/minigrad/internal/tokenizer"
)

// Tokenizer is the core interface for text tokenization.
//
// All tokenizer implementations must implement this interface.
type Tokenizer = tokenizer.Tokenizer

// Bigram is an adjacent token pair and its count.
type Bigram = tokenizer.Bigram

// WordTokenizer maps words to IDs over a fixed vocabulary.
type WordTokenizer = tokenizer.WordTokenizer

// ErrTooFewTokens is returned when an operation needs more tokens than it got.
var ErrTooFewTokens = tokenizer.ErrTooFewTokens

// Words splits r into word tokens.
func Words(r io.Reader) ([]string, error) {
	return tokenizer.Words(r)
}

// NewWordTokenizer builds a vocabulary from corpus tokens.
func NewWordTokenizer(corpus []string) *WordTokenizer {
	return tokenizer.NewWordTokenizer(corpus)
}

// NewTikToken creates a new TikToken tokenizer with the specified encoding.
//
// Supported encodings: "cl100k_base" (GPT-4), "p50k_base" (GPT-3).
func NewTikToken(encodingName string) (Tokenizer, error) {
	tok, err := tokenizer.NewTikToken(encodingName)
	if err != nil {
		return nil, err
	}
	return tok, nil
}

// NewTikTokenForModel creates a TikToken tokenizer for a specific model.
//
// Example models: "gpt-4", "gpt-3.5-turbo", "text-embedding-ada-002".
func NewTikTokenForModel(modelName string) (Tokenizer, error) {
	tok, err := tokenizer.NewTikTokenForModel(modelName)
	if err != nil {
		return nil, err
	}
	return tok, nil
}

// Pieces returns the surface string of every token tok produces for text.
func Pieces(tok Tokenizer, text string) ([]string, error) {
	return tokenizer.Pieces(tok, text)
}

// Bigrams counts adjacent token pairs in order of first occurrence.
func Bigrams(tokens []string) ([]Bigram, error) {
	return tokenizer.Bigrams(tokens)
}

// TopBigrams returns the n most frequent pairs.
func TopBigrams(pairs []Bigram, n int) []Bigram {
	return tokenizer.TopBigrams(pairs, n)
}
