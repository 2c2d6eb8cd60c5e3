package dataset

import (
	"bufio"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/bpn-ml/bpn/internal/tokenizer"
)

// Format selects how dataset lines are decoded.
type Format int

// Supported formats.
const (
	NumberList Format = iota
	Binary
	Tokens
)

var formatNames = map[Format]string{
	NumberList: "numberList",
	Binary:     "binary",
	Tokens:     "tokens",
}

// ParseFormat returns the Format named s.
func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if s == name {
			return f, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownFormat, "%q", s)
}

// String returns the configuration name of the format.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// textScale maps a byte of the binary format into [0,1).
const textScale = 256.0

// Reader decodes dataset lines into entries of a fixed shape.
//
// Example:
//
//	r := &dataset.Reader{NumInputs: 4, NumOutputs: 3, Format: dataset.NumberList}
//	entries, err := r.ReadFile("iris.data")
type Reader struct {
	NumInputs  int
	NumOutputs int
	Format     Format

	// Tokenizer is required by the Tokens format.
	Tokenizer tokenizer.Tokenizer

	// InputsOnly reads lines that carry no expected outputs, as fed to a
	// trained network. Entries then have a nil Expected and NumOutputs is
	// ignored.
	InputsOnly bool

	// Logger, when set, receives every decoded entry at debug level.
	Logger *slog.Logger
}

// ReadFile reads entries from the named file; "-" reads standard input.
func (r *Reader) ReadFile(path string) ([]Entry, error) {
	if path == "-" {
		return r.Read(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening dataset")
	}
	defer f.Close()

	entries, err := r.Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return entries, nil
}

// Read decodes every entry of src.
func (r *Reader) Read(src io.Reader) ([]Entry, error) {
	if r.NumInputs <= 0 || (r.NumOutputs <= 0 && !r.InputsOnly) {
		return nil, errors.Errorf("dataset: invalid shape %d inputs, %d outputs", r.NumInputs, r.NumOutputs)
	}

	var (
		entries []Entry
		err     error
	)
	switch r.Format {
	case NumberList:
		entries, err = r.readNumberList(src)
	case Binary, Tokens:
		if r.Format == Tokens && r.Tokenizer == nil {
			return nil, ErrNoTokenizer
		}
		entries, err = r.readQuoted(src)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%v", r.Format)
	}
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrEmpty
	}
	return entries, nil
}

func (r *Reader) readNumberList(src io.Reader) ([]Entry, error) {
	cr := csv.NewReader(src)
	cr.Comment = '#'
	cr.FieldsPerRecord = r.NumInputs + r.numOutputs()
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var entries []Entry
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, &FormatError{Line: perr.Line, Details: "bad number list", Err: perr.Err}
			}
			return nil, errors.Wrap(err, "reading number list")
		}
		line, _ := cr.FieldPos(0)

		entry := Entry{
			Inputs:   make([]float64, r.NumInputs),
			Expected: r.newExpected(),
		}
		for i := 0; i < r.NumInputs; i++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
			if err != nil {
				return nil, &FormatError{Line: line, Details: "input " + strconv.Itoa(i), Err: err}
			}
			entry.Inputs[i] = v
		}
		if err := parseOutputs(record[r.NumInputs:], entry.Expected); err != nil {
			return nil, &FormatError{Line: line, Details: "expected outputs", Err: err}
		}

		r.logEntry(line, entry)
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *Reader) readQuoted(src io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var entries []Entry
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if text == "" || text[0] == '#' {
			continue
		}

		if text[0] != '"' {
			return nil, &FormatError{Line: line, Details: `must start with a text between "`}
		}
		last := strings.LastIndexByte(text, '"')
		if last == 0 {
			return nil, &FormatError{Line: line, Details: "missing closing quote"}
		}
		if r.InputsOnly && last+1 != len(text) {
			return nil, &FormatError{Line: line, Details: `should be "<text>"`}
		}
		if !r.InputsOnly && (last+1 >= len(text) || text[last+1] != ',') {
			return nil, &FormatError{Line: line, Details: `should be "<text>",<outputs>`}
		}

		inputs, err := r.encodeText(text[1:last])
		if err != nil {
			return nil, &FormatError{Line: line, Details: "tokenizing text", Err: err}
		}
		entry := Entry{
			Inputs:   inputs,
			Expected: r.newExpected(),
		}
		if r.InputsOnly {
			r.logEntry(line, entry)
			entries = append(entries, entry)
			continue
		}
		fields := strings.Split(text[last+2:], ",")
		if len(fields) != r.NumOutputs {
			return nil, &FormatError{
				Line:    line,
				Details: "got " + strconv.Itoa(len(fields)) + " outputs, want " + strconv.Itoa(r.NumOutputs),
			}
		}
		if err := parseOutputs(fields, entry.Expected); err != nil {
			return nil, &FormatError{Line: line, Details: "expected outputs", Err: err}
		}

		r.logEntry(line, entry)
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading dataset")
	}
	return entries, nil
}

// encodeText maps text to exactly NumInputs values, truncating or padding
// with zeros.
func (r *Reader) encodeText(text string) ([]float64, error) {
	inputs := make([]float64, r.NumInputs)

	if r.Format == Binary {
		for i := 0; i < len(text) && i < r.NumInputs; i++ {
			inputs[i] = float64(text[i]) / textScale
		}
		return inputs, nil
	}

	ids, err := r.Tokenizer.Encode(text)
	if err != nil {
		return nil, err
	}
	vocab := float64(r.Tokenizer.VocabSize())
	for i := 0; i < len(ids) && i < r.NumInputs; i++ {
		inputs[i] = float64(ids[i]) / vocab
	}
	return inputs, nil
}

func (r *Reader) numOutputs() int {
	if r.InputsOnly {
		return 0
	}
	return r.NumOutputs
}

func (r *Reader) newExpected() []int32 {
	if r.InputsOnly {
		return nil
	}
	return make([]int32, r.NumOutputs)
}

func parseOutputs(fields []string, dst []int32) error {
	for i, field := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(field), 10, 32)
		if err != nil {
			return errors.Wrapf(err, "output %d", i)
		}
		dst[i] = int32(v)
	}
	return nil
}

func (r *Reader) logEntry(line int, e Entry) {
	if r.Logger == nil {
		return
	}
	r.Logger.Debug("dataset entry", "line", line, "inputs", e.Inputs, "expected", e.Expected)
}
