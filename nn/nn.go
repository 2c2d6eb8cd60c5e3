// Copyright 2025 BPN Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/bpn-ml/bpn/internal/activation"
	"github.com/bpn-ml/bpn/internal/matrix"
	"github.com/bpn-ml/bpn/internal/network"
)

// Network is a fully connected feed-forward network.
type Network = network.Network

// Neuron holds the activation and value of one neuron.
type Neuron = network.Neuron

// Option configures NewNetwork.
type Option = network.Option

// Undecided is the clamped output between the two thresholds.
const Undecided = network.Undecided

// NewNetwork creates a network with the given layer sizes, input layer first.
//
// Example:
//
//	net, err := nn.NewNetwork([]int{4, 6, 3}, nn.NewSigmoid(1), "setosa versicolor virginica")
func NewNetwork(layerSizes []int, sigma ActivationFunc, labels string, opts ...Option) (*Network, error) {
	return network.New(layerSizes, sigma, labels, opts...)
}

// WithSeed seeds the weight initialization.
func WithSeed(seed uint64) Option {
	return network.WithSeed(seed)
}

// WithWeights sets explicit weights instead of random ones.
func WithWeights(weights []*Matrix) Option {
	return network.WithWeights(weights)
}

// ClampOutput maps an output activation to 0, 1 or Undecided.
func ClampOutput(x float64) int32 {
	return network.ClampOutput(x)
}

// Activations

// ActivationFunc is an activation function with its parameter.
type ActivationFunc = activation.Func

// NewSigmoid returns 1/(1+e^(-λx)).
func NewSigmoid(lambda float64) ActivationFunc {
	return activation.NewSigmoid(lambda)
}

// NewReLU returns max(0, x).
func NewReLU() ActivationFunc {
	return activation.NewReLU()
}

// NewLeakyReLU returns x for positive x and 0.01x otherwise.
func NewLeakyReLU() ActivationFunc {
	return activation.NewLeakyReLU()
}

// ParseActivation parses "Sigmoid(λ)", "Sigmoid", "ReLU" or "LeakyReLU".
func ParseActivation(token string) (ActivationFunc, error) {
	return activation.Parse(token)
}

// Matrices

// Matrix is a dense float64 matrix.
type Matrix = matrix.Matrix

// NewMatrix creates a zero matrix.
func NewMatrix(rows, cols int) *Matrix {
	return matrix.New(rows, cols)
}

// NewMatrixFromRows creates a matrix from row slices.
func NewMatrixFromRows(rows [][]float64) *Matrix {
	return matrix.NewFromRows(rows)
}
