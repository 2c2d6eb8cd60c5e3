// Package tokenizer turns text into token ids for the tokens dataset format.
//
// The only implementation wraps the tiktoken BPE encodings (cl100k_base,
// p50k_base, r50k_base). Token ids are later scaled into [0,1) by the dataset
// reader so that a sentence becomes a fixed-length numeric input vector.
//
// Example usage:
//
//	tok, err := tokenizer.NewTikToken("cl100k_base")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ids, _ := tok.Encode("Hello, world!")
package tokenizer
