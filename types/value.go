// Package types defines the value model of the docwire format: the owned
// document and array containers, the scalar variants, and the extended
// scalar types with fixed wire layouts (ObjectID, DateTime, Decimal128,
// Binary, Regex, Timestamp).
//
// Values are plain data. They are safe for concurrent reads; callers
// synchronize writes.
package types

import (
	"math"
	"strconv"
)

// Value is implemented by every variant of the value model.
type Value interface {
	// Type returns the wire marker of the variant.
	Type() Type

	// String returns a compact diagnostic representation. It is not a
	// serialization format.
	String() string
}

var (
	_ Value = Double(0)
	_ Value = String("")
	_ Value = Int32(0)
	_ Value = Int64(0)
	_ Value = Boolean(false)
	_ Value = Null{}
	_ Value = Undefined{}
	_ Value = MinKey{}
	_ Value = MaxKey{}
)

// As extracts the concrete value of v when it is a T. It returns the zero
// T and false when the variant doesn't match.
func As[T Value](v Value) (T, bool) {
	t, ok := v.(T)
	return t, ok
}

// Double is a 64-bit IEEE 754 floating point number.
type Double float64

func (v Double) Type() Type { return TypeDouble }

func (v Double) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64)
}

// String is a UTF-8 string. Interior NUL bytes are legal and round-trip:
// the wire layout is length-prefixed, not NUL-delimited.
type String string

func (v String) Type() Type { return TypeString }

func (v String) String() string { return strconv.Quote(string(v)) }

// Int32 is a 32-bit signed integer.
type Int32 int32

func (v Int32) Type() Type { return TypeInt32 }

func (v Int32) String() string { return strconv.FormatInt(int64(v), 10) }

// Int64 is a 64-bit signed integer.
type Int64 int64

func (v Int64) Type() Type { return TypeInt64 }

func (v Int64) String() string { return strconv.FormatInt(int64(v), 10) }

// Boolean is a single-byte boolean.
type Boolean bool

func (v Boolean) Type() Type { return TypeBoolean }

func (v Boolean) String() string { return strconv.FormatBool(bool(v)) }

// Null is the null value.
type Null struct{}

func (Null) Type() Type { return TypeNull }

func (Null) String() string { return "null" }

// Undefined is a legacy variant kept so that documents containing it
// round-trip losslessly. New documents should use Null.
type Undefined struct{}

func (Undefined) Type() Type { return TypeUndefined }

func (Undefined) String() string { return "undefined" }

// MinKey sorts before every other value in a document database.
type MinKey struct{}

func (MinKey) Type() Type { return TypeMinKey }

func (MinKey) String() string { return "MinKey" }

// MaxKey sorts after every other value in a document database.
type MaxKey struct{}

func (MaxKey) Type() Type { return TypeMaxKey }

func (MaxKey) String() string { return "MaxKey" }

// Equal reports structural equality of two values, variant by variant.
// Values of different types are never equal: Int32(1), Int64(1) and
// Double(1) are three distinct values. Doubles compare by bit pattern, so
// NaN equals NaN and +0 differs from -0.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}

	switch x := a.(type) {
	case Double:
		y, ok := b.(Double)
		return ok && math.Float64bits(float64(x)) == math.Float64bits(float64(y))
	case *Document:
		y, ok := b.(*Document)
		return ok && x.Equal(y)
	case *Array:
		y, ok := b.(*Array)
		return ok && x.Equal(y)
	case Binary:
		y, ok := b.(Binary)
		return ok && x.Equal(y)
	case CodeWithScope:
		y, ok := b.(CodeWithScope)
		return ok && x.Code == y.Code && x.Scope.Equal(y.Scope)
	default:
		// Remaining variants are comparable scalars.
		return a == b
	}
}
