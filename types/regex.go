package types

import (
	"strings"

	"github.com/cockroachdb/errors"
)

var _ Value = Regex{}

// Regex is a regular expression pattern with matching options. Both parts
// are carried verbatim as cstrings: the codec neither compiles the
// pattern nor interprets the options, and preserves the option order
// given.
type Regex struct {
	Pattern string
	Options string
}

// NewRegex builds a Regex, rejecting NUL bytes in either part since both
// are NUL-delimited on the wire.
func NewRegex(pattern, options string) (Regex, error) {
	if strings.IndexByte(pattern, 0) >= 0 {
		return Regex{}, errors.Wrapf(ErrInvalidKey, "regex pattern %q contains a NUL byte", pattern)
	}
	if strings.IndexByte(options, 0) >= 0 {
		return Regex{}, errors.Wrapf(ErrInvalidKey, "regex options %q contain a NUL byte", options)
	}
	return Regex{Pattern: pattern, Options: options}, nil
}

func (r Regex) Type() Type { return TypeRegex }

func (r Regex) String() string {
	return "/" + r.Pattern + "/" + r.Options
}
