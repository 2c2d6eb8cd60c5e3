package config

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Common errors.
var (
	ErrNotKeyValue = errors.New("not a key=value pair")
	ErrMissing     = errors.New("required field missing")
	ErrBadValue    = errors.New("bad value")
)

// Error describes a configuration problem. Line is 0 and Key is empty when
// they do not apply.
type Error struct {
	File string
	Line int
	Key  string
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("configuration file `")
	b.WriteString(e.File)
	b.WriteString("`")
	if e.Line > 0 {
		b.WriteString(" line ")
		b.WriteString(strconv.Itoa(e.Line))
	}
	if e.Key != "" {
		b.WriteString(" field `")
		b.WriteString(e.Key)
		b.WriteString("`")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}
