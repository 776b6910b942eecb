package tokenizer

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// isBoundary reports whether c ends the current word.
func isBoundary(c byte) bool {
	switch c {
	case '.', ' ', '\n', '?', '!', ';', ':', ',':
		return true
	}
	return false
}

// Words splits r into word tokens.
//
// Space, newline and the marks . ? ! ; : , end the current word. Spaces and
// newlines are dropped; a punctuation mark instead starts the next word, so
// "Hi, there." yields "Hi", ",", "there", ".". A mark directly followed by
// letters stays attached to them: "a,b" yields "a", ",b".
func Words(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	var (
		tokens []string
		word   strings.Builder
	)
	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, word.String())
			word.Reset()
		}
	}

	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read text: %w", err)
		}
		if isBoundary(c) {
			flush()
		}
		if c != ' ' && c != '\n' {
			word.WriteByte(c)
		}
	}
	flush()
	return tokens, nil
}

// WordTokenizer maps Words output to integer IDs over a fixed vocabulary.
//
// ID 0 is reserved for the unknown token; known words are numbered in order
// of first appearance in the corpus the tokenizer was built from.
type WordTokenizer struct {
	vocab map[string]int32
	words []string
}

// UnknownToken is the surface form of ID 0.
const UnknownToken = "<unk>"

// NewWordTokenizer builds a vocabulary from corpus tokens.
func NewWordTokenizer(corpus []string) *WordTokenizer {
	t := &WordTokenizer{
		vocab: map[string]int32{UnknownToken: 0},
		words: []string{UnknownToken},
	}
	for _, w := range corpus {
		if _, ok := t.vocab[w]; ok {
			continue
		}
		t.vocab[w] = int32(len(t.words)) //nolint:gosec // G115: vocabulary is far below 2^31
		t.words = append(t.words, w)
	}
	return t
}

// Encode splits text with Words and maps each word to its ID. Words outside
// the vocabulary map to the unknown token.
func (t *WordTokenizer) Encode(text string) ([]int32, error) {
	words, err := Words(strings.NewReader(text))
	if err != nil {
		return nil, err
	}
	ids := make([]int32, len(words))
	for i, w := range words {
		ids[i] = t.vocab[w]
	}
	return ids, nil
}

// Decode joins the words for tokens with single spaces.
func (t *WordTokenizer) Decode(tokens []int32) (string, error) {
	words := make([]string, len(tokens))
	for i, id := range tokens {
		if id < 0 || int(id) >= len(t.words) {
			return "", fmt.Errorf("token %d outside vocabulary of %d", id, len(t.words))
		}
		words[i] = t.words[id]
	}
	return strings.Join(words, " "), nil
}

// VocabSize returns the number of known words plus the unknown token.
func (t *WordTokenizer) VocabSize() int {
	return len(t.words)
}

// UnkToken returns the unknown token ID.
func (t *WordTokenizer) UnkToken() int32 {
	return 0
}
