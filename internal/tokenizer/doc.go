// Package tokenizer splits text into tokens and counts adjacent token pairs.
//
// The tokenizer package implements two strategies:
//   - Words: splits on whitespace and the punctuation marks . ? ! ; : ,
//   - tiktoken: BPE tokenizer used by GPT-3/GPT-4 (cl100k_base, p50k_base)
//
// Both satisfy the Tokenizer interface, and Bigrams counts adjacent pairs of
// whatever tokens either produces.
//
// Example usage:
//
//	words, err := tokenizer.Words(file)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pairs, err := tokenizer.Bigrams(words)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, p := range pairs {
//	    fmt.Println(p.First, p.Second, p.Count)
//	}
package tokenizer
