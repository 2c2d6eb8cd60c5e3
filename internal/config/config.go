// Package config reads the key=value training configuration file.
//
// Example config.txt:
//
//	# iris classifier
//	datafile=iris.data
//	layers=[4,6,3]
//	activation=Sigmoid(1)
//	labels=setosa versicolor virginica
//	export=iris.net
//
// Lines starting with '#' and blank lines are ignored. Values are parsed with
// godotenv, so they may be quoted and may carry a trailing " # comment".
package config

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config holds the raw key=value pairs of a configuration file.
type Config struct {
	name   string
	values map[string]string
}

// Load reads and parses the named configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{File: path, Err: errors.Wrap(err, "opening configuration file")}
	}
	return Parse(bytes.NewReader(data), path)
}

// Parse parses configuration text read from r. name identifies the source in
// error messages.
func Parse(r io.Reader, name string) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &Error{File: name, Err: errors.Wrap(err, "reading configuration")}
	}
	if err := checkLines(data, name); err != nil {
		return nil, err
	}

	values, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &Error{File: name, Err: errors.Wrap(ErrNotKeyValue, err.Error())}
	}
	return &Config{name: name, values: values}, nil
}

// checkLines rejects lines that are neither blank, a comment nor a key=value
// pair, reporting the first offending line number.
func checkLines(data []byte, name string) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		key, _, ok := strings.Cut(text, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return &Error{File: name, Line: line, Err: ErrNotKeyValue}
		}
	}
	return scanner.Err()
}

// Name returns the file name the configuration was read from.
func (c *Config) Name() string { return c.name }

// Has reports whether key is present.
func (c *Config) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Required returns the value of key, or an *Error wrapping ErrMissing.
func (c *Config) Required(key string) (string, error) {
	v, ok := c.values[key]
	if !ok {
		return "", &Error{File: c.name, Key: key, Err: ErrMissing}
	}
	return v, nil
}

// String returns the value of key or def when absent.
func (c *Config) String(key, def string) string {
	if v, ok := c.values[key]; ok {
		return v
	}
	return def
}

// Float returns the value of key as a float64, or def when absent.
func (c *Config) Float(key string, def float64) (float64, error) {
	v, ok := c.values[key]
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, c.badValue(key, v, err)
	}
	return f, nil
}

// Uint returns the value of key as a uint64, or def when absent.
func (c *Config) Uint(key string, def uint64) (uint64, error) {
	v, ok := c.values[key]
	if !ok {
		return def, nil
	}
	u, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, c.badValue(key, v, err)
	}
	return u, nil
}

// Int returns the value of key as an int, or def when absent.
func (c *Config) Int(key string, def int) (int, error) {
	v, ok := c.values[key]
	if !ok {
		return def, nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, c.badValue(key, v, err)
	}
	return i, nil
}

// Bool returns the value of key as a bool, or def when absent. Only 1, 0,
// true, false, True, False, TRUE and FALSE are accepted.
func (c *Config) Bool(key string, def bool) (bool, error) {
	v, ok := c.values[key]
	if !ok {
		return def, nil
	}
	switch strings.TrimSpace(v) {
	case "1", "true", "True", "TRUE":
		return true, nil
	case "0", "false", "False", "FALSE":
		return false, nil
	}
	return false, c.badValue(key, v, nil)
}

func (c *Config) badValue(key, value string, cause error) error {
	err := errors.Wrapf(ErrBadValue, "%q", value)
	if cause != nil {
		err = errors.Wrapf(ErrBadValue, "%q: %v", value, cause)
	}
	return &Error{File: c.name, Key: key, Err: err}
}

// ParseLayers parses a layer size list such as "[4,6,3]". "[]" yields an
// empty list.
func ParseLayers(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, errors.Errorf("layers %q: expected [n,n,...]", s)
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		return nil, nil
	}

	fields := strings.Split(body, ",")
	sizes := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, errors.Wrapf(err, "layers %q: size %d", s, i)
		}
		if n <= 0 {
			return nil, errors.Errorf("layers %q: size %d is %d, must be positive", s, i, n)
		}
		sizes[i] = n
	}
	return sizes, nil
}
