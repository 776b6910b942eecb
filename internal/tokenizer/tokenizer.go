package tokenizer

import (
	"errors"
	"fmt"
)

// ErrTooFewTokens is returned when an operation needs more tokens than it got.
var ErrTooFewTokens = errors.New("too few tokens")

// Tokenizer is the core interface for text tokenization.
//
// All tokenizer implementations (word, tiktoken) must implement this interface.
type Tokenizer interface {
	// Encode converts text to token IDs.
	Encode(text string) ([]int32, error)

	// Decode converts token IDs back to text.
	Decode(tokens []int32) (string, error)

	// VocabSize returns the total vocabulary size.
	VocabSize() int
}

// Pieces encodes text with tok and decodes every token ID on its own,
// yielding the surface string of each token.
func Pieces(tok Tokenizer, text string) ([]string, error) {
	ids, err := tok.Encode(text)
	if err != nil {
		return nil, fmt.Errorf("failed to encode: %w", err)
	}
	pieces := make([]string, len(ids))
	for i, id := range ids {
		piece, err := tok.Decode([]int32{id})
		if err != nil {
			return nil, fmt.Errorf("failed to decode token %d: %w", id, err)
		}
		pieces[i] = piece
	}
	return pieces, nil
}
