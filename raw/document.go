// Package raw provides read-only access to encoded documents without
// decoding them. A Document wraps the encoded bytes directly; iteration and
// lookups walk the buffer and hand out sub-slices, so nothing is copied or
// materialized until a value is actually asked for.
package raw

import (
	"encoding/binary"

	"github.com/chaisql/docwire/encoding"
	"github.com/chaisql/docwire/types"
	"github.com/cockroachdb/errors"
)

// Document is an encoded document viewed in place. The underlying buffer
// must not be mutated while the view is in use.
type Document []byte

// NewDocument checks b's envelope (length field, exact cover, terminator)
// and returns it as a Document. Element payloads are not inspected; a
// problem inside a nested value surfaces on iteration or access.
func NewDocument(b []byte) (Document, error) {
	if err := checkEnvelope(b); err != nil {
		return nil, err
	}
	return Document(b), nil
}

func checkEnvelope(b []byte) error {
	if len(b) < 4 {
		return errors.Wrapf(encoding.ErrTruncated, "reading document length: need 4 bytes, have %d", len(b))
	}
	l := int(int32(binary.LittleEndian.Uint32(b)))
	if l < encoding.MinDocumentSize {
		return errors.Wrapf(encoding.ErrMalformedLength, "document length %d, want at least %d", l, encoding.MinDocumentSize)
	}
	if l != len(b) {
		return errors.Wrapf(encoding.ErrMalformedLength, "document length %d does not cover the %d-byte buffer", l, len(b))
	}
	if b[len(b)-1] != 0 {
		return errors.Wrap(encoding.ErrTerminator, "document is not NUL-terminated")
	}
	return nil
}

// Iter returns an iterator positioned before the first element.
func (d Document) Iter() *Iterator {
	return &Iterator{buf: d, off: 4}
}

// Iterate calls fn for each element in order. It stops at the first error,
// either fn's or a structural one.
func (d Document) Iterate(fn func(Element) error) error {
	it := d.Iter()
	for it.Next() {
		if err := fn(it.Element()); err != nil {
			return err
		}
	}
	return it.Err()
}

// Lookup scans for the first element named key. Absence is reported as
// types.ErrKeyNotFound; malformed bytes on the way surface as encoding
// errors.
func (d Document) Lookup(key string) (Element, error) {
	it := d.Iter()
	for it.Next() {
		if el := it.Element(); string(el.key) == key {
			return el, nil
		}
	}
	if err := it.Err(); err != nil {
		return Element{}, err
	}
	return Element{}, errors.Wrapf(types.ErrKeyNotFound, "key %q", key)
}

// Decode materializes the whole document as an owned tree.
func (d Document) Decode() (*types.Document, error) {
	return encoding.DecodeDocument(d)
}

// DecodeLossy materializes the tree with invalid text replaced instead of
// rejected.
func (d Document) DecodeLossy() (*types.Document, error) {
	return encoding.DecodeDocumentLossy(d)
}

func (d Document) lookupTyped(key string, want types.Type) (Element, error) {
	el, err := d.Lookup(key)
	if err != nil {
		return Element{}, err
	}
	if el.typ != want {
		return Element{}, errors.Wrapf(types.ErrTypeMismatch, "key %q holds a %s, not a %s", key, el.typ, want)
	}
	return el, nil
}

// GetString returns the string element named key.
func (d Document) GetString(key string) (string, error) {
	el, err := d.lookupTyped(key, types.TypeString)
	if err != nil {
		return "", err
	}
	s, _, err := encoding.DecodeString(el.value)
	return s, err
}

// GetInt32 returns the int32 element named key.
func (d Document) GetInt32(key string) (int32, error) {
	el, err := d.lookupTyped(key, types.TypeInt32)
	if err != nil {
		return 0, err
	}
	return encoding.DecodeInt32(el.value)
}

// GetInt64 returns the int64 element named key.
func (d Document) GetInt64(key string) (int64, error) {
	el, err := d.lookupTyped(key, types.TypeInt64)
	if err != nil {
		return 0, err
	}
	return encoding.DecodeInt64(el.value)
}

// GetDouble returns the double element named key.
func (d Document) GetDouble(key string) (float64, error) {
	el, err := d.lookupTyped(key, types.TypeDouble)
	if err != nil {
		return 0, err
	}
	return encoding.DecodeDouble(el.value)
}

// GetBool returns the boolean element named key.
func (d Document) GetBool(key string) (bool, error) {
	el, err := d.lookupTyped(key, types.TypeBoolean)
	if err != nil {
		return false, err
	}
	v, _, err := encoding.DecodeValue(types.TypeBoolean, el.value)
	if err != nil {
		return false, err
	}
	return bool(v.(types.Boolean)), nil
}

// GetObjectID returns the object id element named key.
func (d Document) GetObjectID(key string) (types.ObjectID, error) {
	el, err := d.lookupTyped(key, types.TypeObjectID)
	if err != nil {
		return types.NilObjectID, err
	}
	var id types.ObjectID
	copy(id[:], el.value)
	return id, nil
}

// GetDateTime returns the datetime element named key.
func (d Document) GetDateTime(key string) (types.DateTime, error) {
	el, err := d.lookupTyped(key, types.TypeDateTime)
	if err != nil {
		return 0, err
	}
	v, err := encoding.DecodeInt64(el.value)
	return types.DateTime(v), err
}

// GetBinary returns the binary element named key, with the legacy subtype's
// inner length prefix already stripped.
func (d Document) GetBinary(key string) (types.Binary, error) {
	el, err := d.lookupTyped(key, types.TypeBinary)
	if err != nil {
		return types.Binary{}, err
	}
	v, _, err := encoding.DecodeValue(types.TypeBinary, el.value)
	if err != nil {
		return types.Binary{}, err
	}
	return v.(types.Binary), nil
}

// GetDocument returns the nested document named key as a raw view, without
// copying.
func (d Document) GetDocument(key string) (Document, error) {
	el, err := d.lookupTyped(key, types.TypeDocument)
	if err != nil {
		return nil, err
	}
	return el.Document()
}

// GetArray returns the nested array named key as a raw view, without
// copying.
func (d Document) GetArray(key string) (Array, error) {
	el, err := d.lookupTyped(key, types.TypeArray)
	if err != nil {
		return nil, err
	}
	return el.Array()
}
