package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadOrSkip loads an encoding, skipping when its rank file is unavailable
// (tiktoken-go downloads it on first use).
func loadOrSkip(t *testing.T, name string) *TikToken {
	t.Helper()
	tok, err := NewTikToken(name)
	if err != nil {
		t.Skipf("encoding %s unavailable: %v", name, err)
	}
	return tok
}

func TestTikToken_InvalidEncoding(t *testing.T) {
	tok, err := NewTikToken("invalid_encoding_xyz")
	assert.Error(t, err)
	assert.Nil(t, tok)
}

func TestTikToken_Encode(t *testing.T) {
	tok := loadOrSkip(t, DefaultEncoding)
	assert.Equal(t, DefaultEncoding, tok.Name())

	ids, err := tok.Encode("Hello, world!")
	require.NoError(t, err)
	require.NotEmpty(t, ids)
	for _, id := range ids {
		assert.GreaterOrEqual(t, int(id), 0)
		assert.Less(t, int(id), tok.VocabSize())
	}

	empty, err := tok.Encode("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTikToken_VocabSize(t *testing.T) {
	tests := []struct {
		encoding string
		want     int
	}{
		{"cl100k_base", 100277},
		{"p50k_base", 50281},
		{"r50k_base", 50257},
	}
	for _, tt := range tests {
		t.Run(tt.encoding, func(t *testing.T) {
			tok := loadOrSkip(t, tt.encoding)
			assert.Equal(t, tt.want, tok.VocabSize())
		})
	}
}
