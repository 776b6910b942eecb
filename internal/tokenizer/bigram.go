package tokenizer

import (
	"fmt"
	"sort"
)

// Bigram is an adjacent token pair and the number of times it occurs.
type Bigram struct {
	First  string
	Second string
	Count  int
}

// Bigrams counts every adjacent pair in tokens.
//
// Pairs are returned in order of first occurrence. Returns ErrTooFewTokens
// when tokens holds fewer than two entries.
func Bigrams(tokens []string) ([]Bigram, error) {
	if len(tokens) < 2 {
		return nil, fmt.Errorf("bigram requires at least 2 tokens, got %d: %w", len(tokens), ErrTooFewTokens)
	}

	type pair struct{ first, second string }
	index := make(map[pair]int)
	var out []Bigram
	for i := 0; i+1 < len(tokens); i++ {
		key := pair{tokens[i], tokens[i+1]}
		if at, ok := index[key]; ok {
			out[at].Count++
			continue
		}
		index[key] = len(out)
		out = append(out, Bigram{First: key.first, Second: key.second, Count: 1})
	}
	return out, nil
}

// TopBigrams returns the n most frequent pairs, ties broken by first
// occurrence. n <= 0 returns them all.
func TopBigrams(pairs []Bigram, n int) []Bigram {
	sorted := make([]Bigram, len(pairs))
	copy(sorted, pairs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if n > 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
