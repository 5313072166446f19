package encoding

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Decode and encode failure kinds. Errors returned by this package and by
// package raw wrap exactly one of these sentinels; match with errors.Is.
var (
	// ErrTruncated reports input that ends before a complete value.
	ErrTruncated = errors.New("unexpected end of input")

	// ErrMalformedLength reports a length field that is negative, below
	// the type's minimum, or inconsistent with its content.
	ErrMalformedLength = errors.New("malformed length")

	// ErrUnknownType reports an unrecognized element type marker.
	ErrUnknownType = errors.New("unknown type marker")

	// ErrInvalidKey reports key bytes that are not valid UTF-8.
	ErrInvalidKey = errors.New("invalid key bytes")

	// ErrInvalidScalar reports a payload that violates its scalar type's
	// encoding rules, such as a boolean byte other than 0 or 1.
	ErrInvalidScalar = errors.New("invalid scalar encoding")

	// ErrTerminator reports a NUL terminator that is missing or in the
	// wrong place.
	ErrTerminator = errors.New("terminator mismatch")

	// ErrInvalidUTF8 reports string content that is not valid UTF-8,
	// under strict decoding.
	ErrInvalidUTF8 = errors.New("invalid utf-8")

	// ErrTooLarge reports an encode that would overflow a length field.
	ErrTooLarge = errors.New("document too large")
)

// Error annotates a failure with the field path from the document root to
// the element where it occurred. Keys and array indices accumulate as the
// error unwinds out of nested decodes.
type Error struct {
	path []string
	err  error
}

func (e *Error) Error() string {
	if len(e.path) == 0 {
		return e.err.Error()
	}
	return "at " + e.PathString() + ": " + e.err.Error()
}

func (e *Error) Unwrap() error { return e.err }

// Path returns the field path segments from the root to the failure.
func (e *Error) Path() []string { return e.path }

// PathString renders the path with dots, "a.2.b".
func (e *Error) PathString() string { return strings.Join(e.path, ".") }

// WithPathSegment prepends seg to the error's path, wrapping err when it
// carries no path yet. Decoders and validators call it while unwinding, so
// the outermost caller ends up with the full root-to-leaf path. A nil err
// stays nil.
func WithPathSegment(err error, seg string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return &Error{path: append([]string{seg}, e.path...), err: e.err}
	}
	return &Error{path: []string{seg}, err: err}
}
