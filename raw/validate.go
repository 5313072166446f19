package raw

import (
	"bytes"
	"encoding/binary"
	"strconv"
	"unicode/utf8"

	"github.com/chaisql/docwire/encoding"
	"github.com/chaisql/docwire/types"
	"github.com/cockroachdb/errors"
)

// Validate walks the whole document, nested values included, and reports
// the first problem it finds, annotated with the path to it. It performs
// every check the owned decoder would, without building the tree.
func (d Document) Validate() error {
	if err := checkEnvelope(d); err != nil {
		return err
	}
	return validateBody(d, false)
}

// Validate walks the whole array, nested values included, and reports the
// first problem it finds.
func (a Array) Validate() error {
	if err := checkEnvelope(a); err != nil {
		return err
	}
	return validateBody(a, true)
}

// validateBody checks every element of an encoded document or array body.
// Array index keys are skipped and positions used as path segments instead.
func validateBody(buf []byte, isArray bool) error {
	it := &Iterator{buf: buf, off: 4}
	idx := 0

	for it.Next() {
		el := it.Element()

		seg := strconv.Itoa(idx)
		if !isArray {
			if _, err := el.Key(); err != nil {
				return err
			}
			seg = string(el.key)
		}

		if err := validateElement(el); err != nil {
			return encoding.WithPathSegment(err, seg)
		}
		idx++
	}

	return it.Err()
}

// validateElement checks the payload content of one element. Sizes and
// bounds were already verified by the iterator; what remains is text
// validity, nested structure and scalar encoding rules.
func validateElement(el Element) error {
	switch el.typ {
	case types.TypeString, types.TypeJavaScript, types.TypeSymbol:
		return validateText(el.value[4 : len(el.value)-1])

	case types.TypeDocument:
		sub, err := NewDocument(el.value)
		if err != nil {
			return err
		}
		return validateBody(sub, false)

	case types.TypeArray:
		sub, err := NewArray(el.value)
		if err != nil {
			return err
		}
		return validateBody(sub, true)

	case types.TypeBoolean:
		if b := el.value[0]; b > 1 {
			return errors.Wrapf(encoding.ErrInvalidScalar, "boolean byte 0x%02X, want 0x00 or 0x01", b)
		}

	case types.TypeBinary:
		if types.BinarySubtype(el.value[4]) == types.SubtypeBinaryOld {
			payload := el.value[5:]
			if len(payload) < 4 {
				return errors.Wrapf(encoding.ErrMalformedLength, "legacy binary payload of %d bytes cannot hold its inner length", len(payload))
			}
			if inner := int32(binary.LittleEndian.Uint32(payload)); int(inner) != len(payload)-4 {
				return errors.Wrapf(encoding.ErrInvalidScalar, "legacy binary inner length %d, want %d", inner, len(payload)-4)
			}
		}

	case types.TypeRegex:
		p := bytes.IndexByte(el.value, 0)
		if err := validateText(el.value[:p]); err != nil {
			return errors.Wrap(err, "regex pattern")
		}
		if err := validateText(el.value[p+1 : len(el.value)-1]); err != nil {
			return errors.Wrap(err, "regex options")
		}

	case types.TypeDBPointer:
		return validateText(el.value[4 : len(el.value)-13])

	case types.TypeCodeWithScope:
		n, err := sizeString(el.value[4:], "code")
		if err != nil {
			return errors.Wrap(err, "code-with-scope code")
		}
		if err := validateText(el.value[8 : 4+n-1]); err != nil {
			return errors.Wrap(err, "code-with-scope code")
		}
		scope, err := NewDocument(el.value[4+n:])
		if err != nil {
			return errors.Wrap(err, "code-with-scope scope")
		}
		return validateBody(scope, false)
	}

	return nil
}

func validateText(b []byte) error {
	if !utf8.Valid(b) {
		return errors.Wrapf(encoding.ErrInvalidUTF8, "%d content bytes", len(b))
	}
	return nil
}
