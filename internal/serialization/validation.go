package serialization

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bpn-ml/bpn/internal/network"
)

// Validation limits for resource protection.
const (
	MaxLayers    = 1024    // maximum number of layers, input and output included
	MaxLayerSize = 1 << 20 // maximum neurons in one layer, bias excluded
	MaxWeights   = 1 << 27 // maximum weights over all matrices
)

// ValidationLevel controls the strictness of validation.
type ValidationLevel int

const (
	// ValidationStrict checks the layout limits and that every weight is finite.
	ValidationStrict ValidationLevel = iota
	// ValidationNormal checks the layout limits only.
	ValidationNormal
	// ValidationNone skips validation. Use only with trusted input.
	ValidationNone
)

// ValidateLayout checks the "layers" record of network text against the size
// limits before any weight matrix is allocated. Text without a layers record
// is left for the network parser to reject.
func ValidateLayout(text []byte) error {
	scanner := bufio.NewScanner(bytes.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0] != "layers" {
			continue
		}
		return validateSizes(fields[1:], line)
	}
	return nil
}

func validateSizes(fields []string, line int) error {
	if len(fields) > MaxLayers {
		return &ValidationError{
			Type:    "too_many_layers",
			Line:    line,
			Details: fmt.Sprintf("got %d, max %d", len(fields), MaxLayers),
			Err:     ErrTooManyLayers,
		}
	}

	var total, prev int64
	for i, f := range fields {
		size, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			// Not a number: the network parser reports it with context.
			return nil
		}
		if size > MaxLayerSize {
			return &ValidationError{
				Type:    "layer_too_large",
				Line:    line,
				Details: fmt.Sprintf("layer %d has %d neurons, max %d", i, size, MaxLayerSize),
				Err:     ErrLayerTooLarge,
			}
		}
		if i > 0 {
			total += (prev + 1) * size
		}
		prev = size
	}
	if total > MaxWeights {
		return &ValidationError{
			Type:    "layer_too_large",
			Line:    line,
			Details: fmt.Sprintf("%d weights, max %d", total, MaxWeights),
			Err:     ErrLayerTooLarge,
		}
	}
	return nil
}

// ValidateWeights checks that every weight of net is finite.
func ValidateWeights(net *network.Network) error {
	for b := 0; b < net.NumBoundaries(); b++ {
		rows, cols := net.WeightDims(b)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if v := net.Weight(b, r, c); math.IsNaN(v) || math.IsInf(v, 0) {
					return &ValidationError{
						Type:    "non_finite_weight",
						Details: fmt.Sprintf("weights %d [%d,%d] is %v", b, r, c, v),
						Err:     ErrNonFinite,
					}
				}
			}
		}
	}
	return nil
}
