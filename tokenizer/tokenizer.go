// Package tokenizer maps text to token ids for the tokens dataset format.
//
// Example usage:
//
//	import "github.com/bpn-ml/bpn/tokenizer"
//
//	tok, err := tokenizer.NewTikToken("cl100k_base")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ids, err := tok.Encode("Hello, world!")
package tokenizer

import (
	"github.com/bpn-ml/bpn/internal/tokenizer"
)

// Tokenizer is the interface used by the dataset reader.
type Tokenizer = tokenizer.Tokenizer

// TikToken wraps OpenAI's BPE encodings.
type TikToken = tokenizer.TikToken

// DefaultEncoding is the encoding used when none is configured.
const DefaultEncoding = tokenizer.DefaultEncoding

// NewTikToken loads the named encoding ("cl100k_base", "p50k_base", ...).
func NewTikToken(encoding string) (*TikToken, error) {
	return tokenizer.NewTikToken(encoding)
}
