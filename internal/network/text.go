package network

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/bpn-ml/bpn/internal/activation"
	"github.com/bpn-ml/bpn/internal/matrix"
)

// Text format header and version.
const (
	textMagic   = "bpn-network"
	textVersion = 1
)

// ErrMalformed is returned when the text form of a network cannot be parsed.
var ErrMalformed = errors.New("malformed network text")

// MarshalText implements encoding.TextMarshaler.
//
// The canonical form is line oriented:
//
//	bpn-network 1
//	layers 2 3 1
//	activation Sigmoid(1.000000)
//	labels "and"
//	weights 0 3 3
//	<one line per row, values separated by spaces>
//	weights 1 4 1
//	...
//	end
//
// Weights use the shortest formatting that parses back to the same float64.
func (n *Network) MarshalText() ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s %d\n", textMagic, textVersion)
	buf.WriteString("layers")
	for _, size := range n.layerSizes {
		buf.WriteByte(' ')
		buf.WriteString(strconv.Itoa(size))
	}
	buf.WriteByte('\n')

	act, err := n.sigma.MarshalText()
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(&buf, "activation %s\n", act)
	fmt.Fprintf(&buf, "labels %s\n", strconv.Quote(n.labels))

	for b, w := range n.weights {
		rows, cols := w.Dims()
		fmt.Fprintf(&buf, "weights %d %d %d\n", b, rows, cols)
		for r := 0; r < rows; r++ {
			for c, v := range w.Row(r) {
				if c > 0 {
					buf.WriteByte(' ')
				}
				buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
			}
			buf.WriteByte('\n')
		}
	}
	buf.WriteString("end\n")

	return buf.Bytes(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Blank lines and lines
// starting with '#' are ignored.
func (n *Network) UnmarshalText(text []byte) error {
	p := textParser{scanner: bufio.NewScanner(bytes.NewReader(text))}
	p.scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	fields, err := p.record("header")
	if err != nil {
		return err
	}
	if len(fields) != 2 || fields[0] != textMagic {
		return p.errorf("expected %q header", textMagic)
	}
	if v, err := strconv.Atoi(fields[1]); err != nil || v != textVersion {
		return p.errorf("unsupported version %q", fields[1])
	}

	fields, err = p.keyed("layers")
	if err != nil {
		return err
	}
	sizes := make([]int, len(fields))
	for i, f := range fields {
		if sizes[i], err = strconv.Atoi(f); err != nil {
			return p.errorf("bad layer size %q", f)
		}
	}
	if err := validateSizes(sizes); err != nil {
		return errors.Wrapf(ErrMalformed, "line %d: %v", p.line, err)
	}

	fields, err = p.keyed("activation")
	if err != nil {
		return err
	}
	sigma, err := activation.Parse(strings.Join(fields, " "))
	if err != nil {
		return errors.Wrapf(ErrMalformed, "line %d: %v", p.line, err)
	}

	rest, err := p.rest("labels")
	if err != nil {
		return err
	}
	labels, err := strconv.Unquote(rest)
	if err != nil {
		return p.errorf("bad labels %s", rest)
	}

	built := build(sizes, sigma, labels)
	for b, w := range built.weights {
		if err := p.weights(b, w); err != nil {
			return err
		}
	}

	fields, err = p.record("end")
	if err != nil {
		return err
	}
	if len(fields) != 1 || fields[0] != "end" {
		return p.errorf("expected end, got %q", fields[0])
	}

	*n = *built
	return nil
}

type textParser struct {
	scanner *bufio.Scanner
	line    int
	text    string
}

func (p *textParser) errorf(format string, args ...any) error {
	return errors.Wrapf(ErrMalformed, "line %d: %s", p.line, fmt.Sprintf(format, args...))
}

// record returns the fields of the next significant line.
func (p *textParser) record(want string) ([]string, error) {
	for p.scanner.Scan() {
		p.line++
		p.text = strings.TrimSpace(p.scanner.Text())
		if p.text == "" || strings.HasPrefix(p.text, "#") {
			continue
		}
		return strings.Fields(p.text), nil
	}
	if err := p.scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading network text")
	}
	return nil, errors.Wrapf(ErrMalformed, "unexpected end of input, expected %s", want)
}

// keyed returns the fields following key on the next significant line.
func (p *textParser) keyed(key string) ([]string, error) {
	fields, err := p.record(key)
	if err != nil {
		return nil, err
	}
	if fields[0] != key {
		return nil, p.errorf("expected %s, got %q", key, fields[0])
	}
	return fields[1:], nil
}

// rest returns the raw text following key on the next significant line.
func (p *textParser) rest(key string) (string, error) {
	if _, err := p.keyed(key); err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.TrimPrefix(p.text, key)), nil
}

func (p *textParser) weights(b int, w *matrix.Matrix) error {
	fields, err := p.keyed("weights")
	if err != nil {
		return err
	}
	rows, cols := w.Dims()
	want := []int{b, rows, cols}
	if len(fields) != len(want) {
		return p.errorf("weights header needs boundary, rows and cols")
	}
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil || v != want[i] {
			return p.errorf("weights header %v does not match topology %v", fields, want)
		}
	}

	for r := 0; r < rows; r++ {
		values, err := p.record("weight row")
		if err != nil {
			return err
		}
		if len(values) != cols {
			return p.errorf("weight row has %d values, want %d", len(values), cols)
		}
		for c, s := range values {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return p.errorf("bad weight %q", s)
			}
			w.Set(r, c, v)
		}
	}
	return nil
}
