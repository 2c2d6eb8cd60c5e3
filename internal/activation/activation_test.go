package activation

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samples = []float64{-2, -0.5, 0, 0.5, 2}

// TestSigmoid_Values tests the closed form and its derivative.
func TestSigmoid_Values(t *testing.T) {
	f := NewSigmoid(1)

	assert.InDelta(t, 0.5, f.Evaluate(0), 1e-12)
	assert.InDelta(t, 1/(1+math.Exp(-2)), f.Evaluate(2), 1e-12)

	for _, x := range samples {
		fx := f.Evaluate(x)
		assert.InDelta(t, fx*(1-fx), f.Derivative(x, fx), 1e-12)
	}

	steep := NewSigmoid(2.5)
	fx := steep.Evaluate(0.3)
	assert.InDelta(t, 1/(1+math.Exp(-0.75)), fx, 1e-12)
	assert.InDelta(t, 2.5*fx*(1-fx), steep.Derivative(0.3, fx), 1e-12)
}

// TestReLU_Values tests ReLU and LeakyReLU including the subgradient at zero.
func TestReLU_Values(t *testing.T) {
	tests := []struct {
		name      string
		f         Func
		x         float64
		want      float64
		wantSlope float64
	}{
		{"relu positive", NewReLU(), 2, 2, 1},
		{"relu negative", NewReLU(), -2, 0, 0},
		{"relu zero", NewReLU(), 0, 0, 0},
		{"leaky positive", NewLeakyReLU(), 0.5, 0.5, 1},
		{"leaky negative", NewLeakyReLU(), -2, -0.02, 0.01},
		{"leaky zero", NewLeakyReLU(), 0, 0, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.f.Evaluate(tt.x), 1e-12)
			// fx is ignored by the rectifiers.
			assert.InDelta(t, tt.wantSlope, tt.f.Derivative(tt.x, 123), 1e-12)
		})
	}
}

// TestString_Canonical checks the canonical tokens.
func TestString_Canonical(t *testing.T) {
	assert.Equal(t, "Sigmoid(1.000000)", NewSigmoid(1).String())
	assert.Equal(t, "Sigmoid(0.250000)", NewSigmoid(0.25).String())
	assert.Equal(t, "ReLU", NewReLU().String())
	assert.Equal(t, "LeakyReLU", NewLeakyReLU().String())
}

// TestParse_RoundTrip checks that every variant survives String then Parse.
func TestParse_RoundTrip(t *testing.T) {
	for _, f := range []Func{NewSigmoid(1), NewSigmoid(3.5), NewSigmoid(0.125), NewReLU(), NewLeakyReLU()} {
		t.Run(f.String(), func(t *testing.T) {
			got, err := Parse(f.String())
			require.NoError(t, err)
			assert.Equal(t, f.Kind, got.Kind)
			for _, x := range samples {
				assert.Equal(t, f.Evaluate(x), got.Evaluate(x))
			}
		})
	}
}

// TestParse_Forms checks accepted spellings and rejected tokens.
func TestParse_Forms(t *testing.T) {
	f, err := Parse("  Sigmoid(2)  ")
	require.NoError(t, err)
	assert.Equal(t, NewSigmoid(2), f)

	f, err = Parse("Sigmoid")
	require.NoError(t, err)
	assert.Equal(t, NewSigmoid(1), f)

	// LeakyReLU must not be mistaken for ReLU.
	f, err = Parse("LeakyReLU")
	require.NoError(t, err)
	assert.Equal(t, LeakyReLU, f.Kind)

	for _, bad := range []string{"", "Tanh", "relu", "Sigmoid(x)", "Sigmoid(1", "Sigmoid(NaN)"} {
		_, err := Parse(bad)
		var perr *ParseError
		require.Error(t, err, bad)
		assert.True(t, errors.As(err, &perr), bad)
	}

	_, err = Parse("Softmax")
	assert.True(t, errors.Is(err, ErrUnknown))
}

// TestText_Marshaling checks the encoding.Text* implementations.
func TestText_Marshaling(t *testing.T) {
	text, err := NewSigmoid(1.5).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Sigmoid(1.500000)", string(text))

	var f Func
	require.NoError(t, f.UnmarshalText([]byte("LeakyReLU")))
	assert.Equal(t, NewLeakyReLU(), f)

	assert.Error(t, f.UnmarshalText([]byte("nope")))
	assert.Panics(t, func() { MustParse("nope") })
}
