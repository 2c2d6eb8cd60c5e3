// Package network implements a fully-connected feed-forward network.
//
// A Network owns its layers of neurons and one weight matrix per layer
// boundary. Every layer except the output layer ends with a bias neuron whose
// activation and value are fixed at 1.0, so weight matrix i has
// size(layer i)+1 rows and size(layer i+1) columns.
//
// Evaluate runs the forward pass and leaves every neuron populated; the
// trainer reads those values for backpropagation, so a training step must
// evaluate and backpropagate on the same Network without another Evaluate in
// between.
package network

import (
	"fmt"
	"math/rand/v2"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/bpn-ml/bpn/internal/activation"
	"github.com/bpn-ml/bpn/internal/matrix"
)

// Clamp thresholds applied to output activations.
const (
	ClampLow  = 0.1
	ClampHigh = 0.9
)

// Undecided is the clamped output of an activation between ClampLow and ClampHigh.
const Undecided int32 = -1

// initRange is the classic ±2.4/numInputs range, interpreted as 3σ.
const initRange = 2.4

// ErrInvalidTopology is returned for layer sizes that cannot form a network.
var ErrInvalidTopology = errors.New("invalid network topology")

// Neuron holds the state of one neuron after a forward pass.
//
// For input neurons Activation == Value == raw input. For other neurons
// Value = σ(Activation).
type Neuron struct {
	Activation float64
	Value      float64
}

// Network is a feed-forward network with bias neurons.
//
// A Network is not safe for concurrent use: Evaluate mutates neuron state.
type Network struct {
	numLayers  int
	numInputs  int
	numOutputs int
	layerSizes []int

	layers  [][]Neuron
	clamped []int32
	weights []*matrix.Matrix

	sigma  activation.Func
	labels string
}

// Option configures New.
type Option func(*options)

type options struct {
	seed    uint64
	weights []*matrix.Matrix
}

// WithSeed sets the seed of the weight initializer. The default seed is 0,
// so two networks built from the same configuration start identical.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithWeights uses the given matrices instead of random initialization.
// Matrices are copied; their shapes must match the topology.
func WithWeights(weights []*matrix.Matrix) Option {
	return func(o *options) {
		o.weights = weights
	}
}

// New creates a network with the given layer sizes, activation function and
// output labels.
//
// layerSizes lists the input layer, at least one hidden layer and the output
// layer; every size must be positive. Weights are drawn from
// Normal(0, (2.4/numInputs)/3) with a deterministic generator (see WithSeed).
//
// Example:
//
//	net, err := network.New([]int{2, 3, 1}, activation.NewSigmoid(1), "and")
//	out := net.Evaluate([]float64{1, 0})
func New(layerSizes []int, sigma activation.Func, labels string, opts ...Option) (*Network, error) {
	if err := validateSizes(layerSizes); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	n := build(layerSizes, sigma, labels)
	if o.weights != nil {
		if err := n.setWeights(o.weights); err != nil {
			return nil, err
		}
	} else {
		n.initializeWeights(o.seed)
	}
	return n, nil
}

// MustNew is like New but panics on error.
func MustNew(layerSizes []int, sigma activation.Func, labels string, opts ...Option) *Network {
	n, err := New(layerSizes, sigma, labels, opts...)
	if err != nil {
		panic(err)
	}
	return n
}

func validateSizes(layerSizes []int) error {
	if len(layerSizes) < 3 {
		return errors.Wrapf(ErrInvalidTopology, "need at least 3 layers, got %d", len(layerSizes))
	}
	for i, size := range layerSizes {
		if size <= 0 {
			return errors.Wrapf(ErrInvalidTopology, "layer %d has size %d", i, size)
		}
	}
	return nil
}

func build(layerSizes []int, sigma activation.Func, labels string) *Network {
	numLayers := len(layerSizes)
	n := &Network{
		numLayers:  numLayers,
		numInputs:  layerSizes[0],
		numOutputs: layerSizes[numLayers-1],
		layerSizes: append([]int(nil), layerSizes...),
		layers:     make([][]Neuron, numLayers),
		clamped:    make([]int32, layerSizes[numLayers-1]),
		weights:    make([]*matrix.Matrix, numLayers-1),
		sigma:      sigma,
		labels:     labels,
	}

	for i, size := range layerSizes {
		if i < numLayers-1 {
			n.layers[i] = make([]Neuron, size+1)
			n.layers[i][size] = Neuron{Activation: 1.0, Value: 1.0}
			n.weights[i] = matrix.New(size+1, layerSizes[i+1])
		} else {
			n.layers[i] = make([]Neuron, size)
		}
	}
	return n
}

// Clone returns an independent copy of n, neuron state included.
func (n *Network) Clone() *Network {
	c := build(n.layerSizes, n.sigma, n.labels)
	for l, layer := range n.layers {
		copy(c.layers[l], layer)
	}
	copy(c.clamped, n.clamped)
	for b, w := range n.weights {
		c.weights[b].Copy(w)
	}
	return c
}

func (n *Network) initializeWeights(seed uint64) {
	halfWidth := initRange / float64(n.numInputs)
	normal := distuv.Normal{
		Mu:    0,
		Sigma: halfWidth / 3,
		//nolint:gosec // Weight initialization is not security-critical.
		Src: rand.NewPCG(seed, seed),
	}

	for _, w := range n.weights {
		rows, cols := w.Dims()
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				w.Set(r, c, normal.Rand())
			}
		}
	}
}

func (n *Network) setWeights(weights []*matrix.Matrix) error {
	if len(weights) != len(n.weights) {
		return errors.Wrapf(ErrInvalidTopology, "got %d weight matrices, want %d", len(weights), len(n.weights))
	}
	for i, w := range weights {
		rows, cols := n.weights[i].Dims()
		if r, c := w.Dims(); r != rows || c != cols {
			return errors.Wrapf(ErrInvalidTopology, "weights %d are %dx%d, want %dx%d", i, r, c, rows, cols)
		}
		n.weights[i].Copy(w)
	}
	return nil
}

// Evaluate runs the forward pass and returns the clamped outputs.
//
// Input neurons take the raw input values; no activation function is applied
// at the input layer. Panics if len(input) != NumInputs.
func (n *Network) Evaluate(input []float64) []int32 {
	if len(input) != n.numInputs {
		panic(fmt.Sprintf("network: input has %d values, want %d", len(input), n.numInputs))
	}

	inputs := n.layers[0]
	for i, x := range input {
		inputs[i] = Neuron{Activation: x, Value: x}
	}

	output := n.numLayers - 1
	for l := 1; l < n.numLayers; l++ {
		sums := n.weights[l-1].MulTransVec(n.Values(l - 1))
		layer := n.layers[l]
		for j := 0; j < n.layerSizes[l]; j++ {
			a := sums[j]
			layer[j] = Neuron{Activation: a, Value: n.sigma.Evaluate(a)}
			if l == output {
				n.clamped[j] = ClampOutput(a)
			}
		}
	}

	return n.Output()
}

// ClampOutput maps an output activation to 0, 1 or Undecided.
func ClampOutput(x float64) int32 {
	switch {
	case x < ClampLow:
		return 0
	case x > ClampHigh:
		return 1
	default:
		return Undecided
	}
}

// NumLayers returns the number of layers, input and output included.
func (n *Network) NumLayers() int { return n.numLayers }

// NumInputs returns the size of the input layer.
func (n *Network) NumInputs() int { return n.numInputs }

// NumOutputs returns the size of the output layer.
func (n *Network) NumOutputs() int { return n.numOutputs }

// NumBoundaries returns the number of weight matrices.
func (n *Network) NumBoundaries() int { return n.numLayers - 1 }

// LayerSizes returns a copy of the layer sizes, bias neurons excluded.
func (n *Network) LayerSizes() []int {
	return append([]int(nil), n.layerSizes...)
}

// LayerSize returns the number of neurons of layer l, bias excluded.
func (n *Network) LayerSize(l int) int { return n.layerSizes[l] }

// InputLayer returns the index of the input layer.
func (n *Network) InputLayer() int { return 0 }

// LastHiddenLayer returns the index of the last hidden layer.
func (n *Network) LastHiddenLayer() int { return n.numLayers - 2 }

// OutputLayer returns the index of the output layer.
func (n *Network) OutputLayer() int { return n.numLayers - 1 }

// Layer returns a copy of the neurons of layer l, bias included.
func (n *Network) Layer(l int) []Neuron {
	return append([]Neuron(nil), n.layers[l]...)
}

// Value returns the value of neuron i of layer l.
func (n *Network) Value(l, i int) float64 { return n.layers[l][i].Value }

// Activation returns the activation of neuron i of layer l.
func (n *Network) Activation(l, i int) float64 { return n.layers[l][i].Activation }

// Values returns the values of layer l, bias neuron included.
func (n *Network) Values(l int) []float64 {
	layer := n.layers[l]
	out := make([]float64, len(layer))
	for i, neuron := range layer {
		out[i] = neuron.Value
	}
	return out
}

// Activations returns the activations of layer l, bias neuron included.
func (n *Network) Activations(l int) []float64 {
	layer := n.layers[l]
	out := make([]float64, len(layer))
	for i, neuron := range layer {
		out[i] = neuron.Activation
	}
	return out
}

// Output returns a copy of the clamped outputs of the last Evaluate.
func (n *Network) Output() []int32 {
	return append([]int32(nil), n.clamped...)
}

// UnclampedOutput returns the values of the output neurons.
func (n *Network) UnclampedOutput() []float64 {
	return n.Values(n.OutputLayer())
}

// ActivationFunc returns the activation function shared by all neurons.
func (n *Network) ActivationFunc() activation.Func { return n.sigma }

// Labels returns the output labels.
func (n *Network) Labels() string { return n.labels }

// WeightDims returns the shape of weight matrix b.
func (n *Network) WeightDims(b int) (rows, cols int) {
	return n.weights[b].Dims()
}

// Weight returns the weight from neuron r of layer b to neuron c of layer b+1.
func (n *Network) Weight(b, r, c int) float64 {
	return n.weights[b].At(r, c)
}

// Weights returns a copy of weight matrix b.
func (n *Network) Weights(b int) *matrix.Matrix {
	return n.weights[b].Clone()
}

// BackpropagateSignal returns W_b·signal: for every neuron r of layer b (bias
// included) the weighted sum of the signals of layer b+1 it feeds.
func (n *Network) BackpropagateSignal(b int, signal []float64) []float64 {
	return n.weights[b].MulVec(signal)
}

// ApplyDeltas adds delta to weight matrix b.
func (n *Network) ApplyDeltas(b int, delta *matrix.Matrix) {
	n.weights[b].AddMatrix(delta)
}
