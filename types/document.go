package types

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrInvalidKey is returned when a document key or other cstring-encoded
// component contains a NUL byte.
var ErrInvalidKey = errors.New("invalid key")

var _ Value = (*Document)(nil)

type field struct {
	name  string
	value Value
}

// Document is an ordered sequence of key/value fields. Keys are unique:
// setting an existing key replaces its value and keeps its position.
// Field order is preserved by encoding and by decoding.
type Document struct {
	fields []field
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

func (d *Document) Type() Type { return TypeDocument }

// ValidateKey returns ErrInvalidKey when key cannot be encoded as a
// cstring, i.e. when it contains a NUL byte.
func ValidateKey(key string) error {
	if strings.IndexByte(key, 0) >= 0 {
		return errors.Wrapf(ErrInvalidKey, "key %q contains a NUL byte", key)
	}
	return nil
}

// Set adds the field to the document, replacing the value in place when
// the key is already present. The key is validated here so that a built
// document always encodes cleanly.
func (d *Document) Set(key string, v Value) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if v == nil {
		return errors.Newf("nil value for key %q, use Null instead", key)
	}

	for i := range d.fields {
		if d.fields[i].name == key {
			d.fields[i].value = v
			return nil
		}
	}

	d.fields = append(d.fields, field{name: key, value: v})
	return nil
}

// MustSet is Set for keys known valid at compile time. It panics on an
// invalid key or a nil value and returns d for chaining.
func (d *Document) MustSet(key string, v Value) *Document {
	if err := d.Set(key, v); err != nil {
		panic(err)
	}
	return d
}

// Get returns the value stored under key.
func (d *Document) Get(key string) (Value, bool) {
	if d == nil {
		return nil, false
	}
	for i := range d.fields {
		if d.fields[i].name == key {
			return d.fields[i].value, true
		}
	}
	return nil, false
}

// Delete removes the field stored under key and reports whether it was
// present.
func (d *Document) Delete(key string) bool {
	for i := range d.fields {
		if d.fields[i].name == key {
			d.fields = append(d.fields[:i], d.fields[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of fields.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.fields)
}

// Keys returns the field names in insertion order.
func (d *Document) Keys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, len(d.fields))
	for i := range d.fields {
		keys[i] = d.fields[i].name
	}
	return keys
}

// Iterate calls fn for each field in insertion order and stops at the
// first error, returning it.
func (d *Document) Iterate(fn func(key string, v Value) error) error {
	if d == nil {
		return nil
	}
	for i := range d.fields {
		if err := fn(d.fields[i].name, d.fields[i].value); err != nil {
			return err
		}
	}
	return nil
}

// Equal reports whether both documents hold equal fields in the same
// order.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d.Len() == 0 && other.Len() == 0
	}
	if len(d.fields) != len(other.fields) {
		return false
	}
	for i := range d.fields {
		if d.fields[i].name != other.fields[i].name {
			return false
		}
		if !Equal(d.fields[i].value, other.fields[i].value) {
			return false
		}
	}
	return true
}

func (d *Document) String() string {
	if d == nil {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i := range d.fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Quote(d.fields[i].name))
		sb.WriteString(": ")
		sb.WriteString(d.fields[i].value.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// GetDocument returns the document stored under key.
func (d *Document) GetDocument(key string) (*Document, error) {
	return getTyped[*Document](d, key)
}

// GetArray returns the array stored under key.
func (d *Document) GetArray(key string) (*Array, error) {
	return getTyped[*Array](d, key)
}

// GetString returns the string stored under key.
func (d *Document) GetString(key string) (string, error) {
	v, err := getTyped[String](d, key)
	return string(v), err
}

// GetInt32 returns the 32-bit integer stored under key.
func (d *Document) GetInt32(key string) (int32, error) {
	v, err := getTyped[Int32](d, key)
	return int32(v), err
}

// GetInt64 returns the 64-bit integer stored under key.
func (d *Document) GetInt64(key string) (int64, error) {
	v, err := getTyped[Int64](d, key)
	return int64(v), err
}

// GetDouble returns the double stored under key.
func (d *Document) GetDouble(key string) (float64, error) {
	v, err := getTyped[Double](d, key)
	return float64(v), err
}

// GetBool returns the boolean stored under key.
func (d *Document) GetBool(key string) (bool, error) {
	v, err := getTyped[Boolean](d, key)
	return bool(v), err
}

// GetObjectID returns the object id stored under key.
func (d *Document) GetObjectID(key string) (ObjectID, error) {
	return getTyped[ObjectID](d, key)
}

// GetDateTime returns the datetime stored under key.
func (d *Document) GetDateTime(key string) (DateTime, error) {
	return getTyped[DateTime](d, key)
}

// GetBinary returns the binary value stored under key.
func (d *Document) GetBinary(key string) (Binary, error) {
	return getTyped[Binary](d, key)
}

func getTyped[T Value](d *Document, key string) (T, error) {
	var zero T
	v, ok := d.Get(key)
	if !ok {
		return zero, errors.Wrapf(ErrKeyNotFound, "key %q", key)
	}
	t, ok := v.(T)
	if !ok {
		return zero, errors.Wrapf(ErrTypeMismatch, "key %q holds a %s, not a %s", key, v.Type(), zero.Type())
	}
	return t, nil
}
