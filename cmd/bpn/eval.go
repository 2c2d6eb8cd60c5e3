package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/bpn-ml/bpn/internal/dataset"
	"github.com/bpn-ml/bpn/internal/network"
	"github.com/bpn-ml/bpn/internal/serialization"
	"github.com/bpn-ml/bpn/internal/tokenizer"
)

// runEval prints one line per input line: the clamped outputs, the
// unclamped outputs and, when the network has labels, the matching label.
func runEval(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	fs.SetOutput(stderr)
	importPath := fs.String("import", "", "Exported network file")
	formatName := fs.String("format", dataset.NumberList.String(), "Input format: numberList, binary or tokens")
	encoding := fs.String("encoding", tokenizer.DefaultEncoding, "Tokenizer encoding for the tokens format")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *importPath == "" {
		return errors.New("eval: -import is required")
	}

	format, err := dataset.ParseFormat(*formatName)
	if err != nil {
		return err
	}
	net, _, err := serialization.ImportFile(*importPath)
	if err != nil {
		return err
	}

	r := &dataset.Reader{NumInputs: net.NumInputs(), Format: format, InputsOnly: true}
	if format == dataset.Tokens {
		if r.Tokenizer, err = tokenizer.NewTikToken(*encoding); err != nil {
			return err
		}
	}
	entries, err := r.Read(stdin)
	if err != nil {
		return err
	}

	labels := strings.Fields(net.Labels())
	for _, e := range entries {
		out := net.Evaluate(e.Inputs)
		fmt.Fprintf(stdout, "%s\t%s", joinInts(out), joinFloats(net.UnclampedOutput()))
		if len(labels) > 0 {
			fmt.Fprintf(stdout, "\t%s", describe(out, labels))
		}
		fmt.Fprintln(stdout)
	}
	return nil
}

// describe names the outputs that fired. A single-output network with two
// labels reads them as the names of 0 and 1.
func describe(out []int32, labels []string) string {
	if len(out) == 1 && len(labels) == 2 {
		switch out[0] {
		case 0:
			return labels[0]
		case 1:
			return labels[1]
		}
		return "undecided"
	}

	var names []string
	for i, v := range out {
		switch {
		case v == network.Undecided:
			return "undecided"
		case v == 1 && i < len(labels):
			names = append(names, labels[i])
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

func joinInts(values []int32) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(int(v))
	}
	return strings.Join(parts, " ")
}

func joinFloats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', 4, 64)
	}
	return strings.Join(parts, " ")
}
