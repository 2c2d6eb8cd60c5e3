// Package activation implements the scalar activation functions used by every
// neuron of a network.
//
// An activation function is a tagged variant: a Kind plus its parameters.
// Evaluation dispatches through a function table indexed by Kind, so the inner
// loops of the forward and backward passes never go through an interface.
package activation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Kind identifies an activation function variant.
type Kind uint8

// Supported activation functions.
const (
	Sigmoid Kind = iota
	ReLU
	LeakyReLU
)

// leakySlope is the slope of LeakyReLU for non-positive inputs.
const leakySlope = 0.01

// Func is an activation function value.
//
// Lambda is only meaningful for Sigmoid, where it controls the steepness of
// the curve: f(x) = 1 / (1 + exp(-λx)).
//
// Example:
//
//	f := activation.NewSigmoid(1)
//	y := f.Evaluate(0.5)
//	dy := f.Derivative(0.5, y)
type Func struct {
	Kind   Kind
	Lambda float64
}

type table struct {
	name       string
	evaluate   func(f Func, x float64) float64
	derivative func(f Func, x, fx float64) float64
}

var funcs = [...]table{
	Sigmoid: {
		name: "Sigmoid",
		evaluate: func(f Func, x float64) float64 {
			return 1.0 / (1.0 + math.Exp(-f.Lambda*x))
		},
		derivative: func(f Func, _, fx float64) float64 {
			return f.Lambda * fx * (1.0 - fx)
		},
	},
	ReLU: {
		name: "ReLU",
		evaluate: func(_ Func, x float64) float64 {
			if x > 0 {
				return x
			}
			return 0
		},
		derivative: func(_ Func, x, _ float64) float64 {
			if x > 0 {
				return 1
			}
			return 0
		},
	},
	LeakyReLU: {
		name: "LeakyReLU",
		evaluate: func(_ Func, x float64) float64 {
			if x > 0 {
				return x
			}
			return leakySlope * x
		},
		derivative: func(_ Func, x, _ float64) float64 {
			if x > 0 {
				return 1
			}
			return leakySlope
		},
	},
}

// NewSigmoid creates a logistic activation with steepness lambda.
func NewSigmoid(lambda float64) Func {
	return Func{Kind: Sigmoid, Lambda: lambda}
}

// NewReLU creates a rectified linear activation.
func NewReLU() Func {
	return Func{Kind: ReLU}
}

// NewLeakyReLU creates a leaky rectified linear activation.
func NewLeakyReLU() Func {
	return Func{Kind: LeakyReLU}
}

// Evaluate returns f(x).
func (f Func) Evaluate(x float64) float64 {
	return funcs[f.Kind].evaluate(f, x)
}

// Derivative returns f'(x).
//
// fx must be the already computed f(x). Sigmoid derives its slope from fx;
// ReLU and LeakyReLU use x and ignore fx.
func (f Func) Derivative(x, fx float64) float64 {
	return funcs[f.Kind].derivative(f, x, fx)
}

// String returns the canonical token of the function, accepted by Parse.
func (f Func) String() string {
	if f.Kind == Sigmoid {
		return fmt.Sprintf("Sigmoid(%.6f)", f.Lambda)
	}
	if int(f.Kind) < len(funcs) {
		return funcs[f.Kind].name
	}
	return fmt.Sprintf("Kind(%d)", f.Kind)
}

// MarshalText implements encoding.TextMarshaler.
func (f Func) MarshalText() ([]byte, error) {
	if int(f.Kind) >= len(funcs) {
		return nil, errors.Errorf("activation: unknown kind %d", f.Kind)
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Func) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Parse reconstructs a Func from its canonical token.
//
// Accepted forms are "Sigmoid(<lambda>)", "Sigmoid" (lambda 1), "ReLU" and
// "LeakyReLU". Anything else yields a *ParseError.
func Parse(token string) (Func, error) {
	s := strings.TrimSpace(token)
	switch {
	case s == "ReLU":
		return NewReLU(), nil
	case s == "LeakyReLU":
		return NewLeakyReLU(), nil
	case s == "Sigmoid":
		return NewSigmoid(1), nil
	case strings.HasPrefix(s, "Sigmoid(") && strings.HasSuffix(s, ")"):
		arg := strings.TrimSpace(s[len("Sigmoid(") : len(s)-1])
		lambda, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return Func{}, &ParseError{Token: token, Err: errors.Wrap(err, "bad lambda")}
		}
		if math.IsNaN(lambda) || math.IsInf(lambda, 0) {
			return Func{}, &ParseError{Token: token, Err: errors.New("lambda must be finite")}
		}
		return NewSigmoid(lambda), nil
	}
	return Func{}, &ParseError{Token: token, Err: ErrUnknown}
}

// MustParse is like Parse but panics on error.
func MustParse(token string) Func {
	f, err := Parse(token)
	if err != nil {
		panic(err)
	}
	return f
}
