package network

import (
	"fmt"
	"strings"
)

// String renders the topology, every weight matrix and the neuron state of
// the input and output layers.
func (n *Network) String() string {
	var sb strings.Builder

	sb.WriteString("+----------------------------------------------------+\n")
	fmt.Fprintf(&sb, "| Number of input  nodes: %d\n", n.numInputs)
	fmt.Fprintf(&sb, "| Layer sizes           : %v\n", n.layerSizes)
	fmt.Fprintf(&sb, "| Number of output nodes: %d\n", n.numOutputs)
	fmt.Fprintf(&sb, "| Activation function   : %s\n", n.sigma)
	if n.labels != "" {
		fmt.Fprintf(&sb, "| Labels                : %s\n", n.labels)
	}
	sb.WriteString("|\n")

	for b, w := range n.weights {
		fmt.Fprintf(&sb, "| %s (line)(last is bias) -> %s (column) weights:\n\n%v\n|\n",
			n.layerName(b), n.layerName(b+1), w)
	}

	fmt.Fprintf(&sb, "| Input  neurons    : %v\n", n.layers[n.InputLayer()])
	fmt.Fprintf(&sb, "| Output neurons    : %v\n", n.layers[n.OutputLayer()])
	fmt.Fprintf(&sb, "| Clamp o/p neurons : %v\n", n.clamped)
	sb.WriteString("+----------------------------------------------------+\n")

	return sb.String()
}

// String formats a neuron as (activation, value).
func (n Neuron) String() string {
	return fmt.Sprintf("(%g, %g)", n.Activation, n.Value)
}

func (n *Network) layerName(l int) string {
	switch l {
	case n.InputLayer():
		return "Input"
	case n.OutputLayer():
		return "Output"
	default:
		return fmt.Sprintf("Hidden #%d", l)
	}
}
