// Copyright 2025 BPN Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpn-ml/bpn/nn"
)

// TestNetwork verifies the facade builds, evaluates and round trips networks.
func TestNetwork(t *testing.T) {
	tests := []struct {
		name  string
		sigma nn.ActivationFunc
	}{
		{"Sigmoid", nn.NewSigmoid(1)},
		{"ReLU", nn.NewReLU()},
		{"LeakyReLU", nn.NewLeakyReLU()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net, err := nn.NewNetwork([]int{3, 4, 2}, tt.sigma, "a b", nn.WithSeed(1))
			require.NoError(t, err)
			out := net.Evaluate([]float64{0.1, 0.2, 0.3})
			assert.Len(t, out, 2)

			var buf bytes.Buffer
			require.NoError(t, nn.Export(&buf, net, nn.Meta{}))
			got, _, err := nn.Import(&buf)
			require.NoError(t, err)
			assert.Equal(t, out, got.Evaluate([]float64{0.1, 0.2, 0.3}))
		})
	}
}

// TestActivationAndMatrix verifies the re-exported helpers.
func TestActivationAndMatrix(t *testing.T) {
	sigma, err := nn.ParseActivation("ReLU")
	require.NoError(t, err)
	assert.Equal(t, nn.NewReLU(), sigma)

	w0 := nn.NewMatrixFromRows([][]float64{{1}, {0}})
	w1 := nn.NewMatrixFromRows([][]float64{{1}, {0}})
	net, err := nn.NewNetwork([]int{1, 1, 1}, sigma, "", nn.WithWeights([]*nn.Matrix{w0, w1}))
	require.NoError(t, err)
	assert.Equal(t, []int32{1}, net.Evaluate([]float64{2}))
	assert.Equal(t, []int32{nn.Undecided}, net.Evaluate([]float64{0.5}))

	assert.Equal(t, int32(0), nn.ClampOutput(0.05))
	assert.Equal(t, 2, nn.NewMatrix(2, 3).Rows())
}
