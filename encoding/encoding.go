// Package encoding implements the wire codec: length-prefixed, little-
// endian, NUL-terminated binary documents. Encoders append to a caller
// buffer; decoders are bounds-checked and return errors rather than
// panicking, whatever the input.
package encoding

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// Structural minimums, in bytes: the empty document (length field plus
// terminator), the empty string (length field plus NUL), and code with
// scope wrapping both.
const (
	MinDocumentSize      = 5
	MinStringSize        = 5
	MinCodeWithScopeSize = 14
)

func EncodeInt32(dst []byte, v int32) []byte {
	return binary.LittleEndian.AppendUint32(dst, uint32(v))
}

func EncodeInt64(dst []byte, v int64) []byte {
	return binary.LittleEndian.AppendUint64(dst, uint64(v))
}

func EncodeUint64(dst []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(dst, v)
}

func EncodeDouble(dst []byte, v float64) []byte {
	return binary.LittleEndian.AppendUint64(dst, math.Float64bits(v))
}

// EncodeCString appends s and its NUL delimiter. It fails when s contains
// a NUL byte, since that cannot be represented.
func EncodeCString(dst []byte, s string) ([]byte, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, errors.Newf("cstring %q contains a NUL byte", s)
	}
	dst = append(dst, s...)
	return append(dst, 0), nil
}

// EncodeString appends the length-prefixed form of s: an int32 counting
// the bytes of s plus the trailing NUL, then s, then the NUL. Interior
// NUL bytes are legal here.
func EncodeString(dst []byte, s string) ([]byte, error) {
	if int64(len(s))+1 > math.MaxInt32 {
		return nil, errors.Wrapf(ErrTooLarge, "string of %d bytes overflows the length field", len(s))
	}
	dst = EncodeInt32(dst, int32(len(s))+1)
	dst = append(dst, s...)
	return append(dst, 0), nil
}

func DecodeInt32(b []byte) (int32, error) {
	if len(b) < 4 {
		return 0, errors.Wrapf(ErrTruncated, "reading int32: need 4 bytes, have %d", len(b))
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

func DecodeInt64(b []byte) (int64, error) {
	if len(b) < 8 {
		return 0, errors.Wrapf(ErrTruncated, "reading int64: need 8 bytes, have %d", len(b))
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

func DecodeUint64(b []byte) (uint64, error) {
	if len(b) < 8 {
		return 0, errors.Wrapf(ErrTruncated, "reading uint64: need 8 bytes, have %d", len(b))
	}
	return binary.LittleEndian.Uint64(b), nil
}

func DecodeDouble(b []byte) (float64, error) {
	if len(b) < 8 {
		return 0, errors.Wrapf(ErrTruncated, "reading double: need 8 bytes, have %d", len(b))
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

// DecodeCString reads a NUL-delimited string from the start of b under
// strict UTF-8 rules and returns the bytes consumed including the
// delimiter.
func DecodeCString(b []byte) (string, int, error) {
	return readCString(b, false)
}

func readCString(b []byte, lossy bool) (string, int, error) {
	i := bytes.IndexByte(b, 0)
	if i < 0 {
		return "", 0, errors.Wrapf(ErrTruncated, "unterminated cstring in %d bytes", len(b))
	}
	s, err := decodeText(b[:i], lossy)
	if err != nil {
		return "", 0, err
	}
	return s, i + 1, nil
}

// DecodeString reads a length-prefixed string from the start of b under
// strict UTF-8 rules and returns the bytes consumed.
func DecodeString(b []byte) (string, int, error) {
	return readString(b, false)
}

func readString(b []byte, lossy bool) (string, int, error) {
	if len(b) < 4 {
		return "", 0, errors.Wrapf(ErrTruncated, "reading string length: need 4 bytes, have %d", len(b))
	}
	l := int32(binary.LittleEndian.Uint32(b))
	if l < MinStringSize-4 {
		return "", 0, errors.Wrapf(ErrMalformedLength, "string length %d, want at least %d", l, MinStringSize-4)
	}
	// Compare in int64: 4+int(l) can wrap on 32-bit platforms.
	if int64(l) > int64(len(b)-4) {
		return "", 0, errors.Wrapf(ErrTruncated, "string claims %d bytes, %d available", l, len(b)-4)
	}
	total := 4 + int(l)
	if b[total-1] != 0 {
		return "", 0, errors.Wrapf(ErrTerminator, "string is not NUL-terminated")
	}
	s, err := decodeText(b[4:total-1], lossy)
	if err != nil {
		return "", 0, err
	}
	return s, total, nil
}

func decodeText(b []byte, lossy bool) (string, error) {
	if lossy {
		return strings.ToValidUTF8(string(b), "�"), nil
	}
	if !utf8.Valid(b) {
		return "", errors.Wrapf(ErrInvalidUTF8, "%d content bytes", len(b))
	}
	return string(b), nil
}

// readKey reads an element key. Keys are cstrings; under strict rules
// invalid UTF-8 is an ErrInvalidKey rather than a content error.
func readKey(b []byte, lossy bool) (string, int, error) {
	i := bytes.IndexByte(b, 0)
	if i < 0 {
		return "", 0, errors.Wrap(ErrTruncated, "unterminated key")
	}
	kb := b[:i]
	if lossy {
		return strings.ToValidUTF8(string(kb), "�"), i + 1, nil
	}
	if !utf8.Valid(kb) {
		return "", 0, errors.Wrapf(ErrInvalidKey, "key bytes % X are not valid UTF-8", kb)
	}
	return string(kb), i + 1, nil
}
