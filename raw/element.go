package raw

import (
	"strings"
	"unicode/utf8"

	"github.com/chaisql/docwire/encoding"
	"github.com/chaisql/docwire/types"
	"github.com/cockroachdb/errors"
)

// Element is one key/value pair inside a raw document or array. It holds
// sub-slices of the enclosing buffer; nothing is parsed until asked for.
type Element struct {
	typ   types.Type
	key   []byte
	value []byte
	start int
	end   int
}

// Type returns the element's wire type.
func (e Element) Type() types.Type { return e.typ }

// KeyBytes returns the raw key bytes without the NUL delimiter. The slice
// aliases the enclosing buffer.
func (e Element) KeyBytes() []byte { return e.key }

// Key returns the key under strict UTF-8 rules.
func (e Element) Key() (string, error) {
	if !utf8.Valid(e.key) {
		return "", errors.Wrapf(encoding.ErrInvalidKey, "key bytes % X are not valid UTF-8", e.key)
	}
	return string(e.key), nil
}

// KeyLossy returns the key with invalid UTF-8 replaced.
func (e Element) KeyLossy() string {
	return strings.ToValidUTF8(string(e.key), "�")
}

// Payload returns the raw value bytes, marker and key excluded. The slice
// aliases the enclosing buffer.
func (e Element) Payload() []byte { return e.value }

// Span returns the element's byte offsets within the enclosing document,
// from the marker byte to just past the payload.
func (e Element) Span() (start, end int) { return e.start, e.end }

// Value decodes the payload into an owned value.
func (e Element) Value() (types.Value, error) {
	v, _, err := encoding.DecodeValue(e.typ, e.value)
	return v, err
}

// ValueLossy decodes the payload with invalid text replaced instead of
// rejected.
func (e Element) ValueLossy() (types.Value, error) {
	v, _, err := encoding.DecodeValueLossy(e.typ, e.value)
	return v, err
}

// Document reinterprets the payload as a nested raw document, without
// copying.
func (e Element) Document() (Document, error) {
	if e.typ != types.TypeDocument {
		return nil, errors.Wrapf(types.ErrTypeMismatch, "element %q holds a %s, not a %s", e.KeyLossy(), e.typ, types.TypeDocument)
	}
	return NewDocument(e.value)
}

// Array reinterprets the payload as a nested raw array, without copying.
func (e Element) Array() (Array, error) {
	if e.typ != types.TypeArray {
		return nil, errors.Wrapf(types.ErrTypeMismatch, "element %q holds a %s, not a %s", e.KeyLossy(), e.typ, types.TypeArray)
	}
	return NewArray(e.value)
}
