package tokenizer

// Tokenizer converts text to token ids.
type Tokenizer interface {
	// Encode converts text to token IDs.
	Encode(text string) ([]int32, error)

	// VocabSize returns the total vocabulary size.
	VocabSize() int
}

// DefaultEncoding is the encoding used when none is configured.
const DefaultEncoding = encodingCL100kBase
