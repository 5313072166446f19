package types

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrKeyNotFound is returned by document and raw lookups when the
	// requested key is absent.
	ErrKeyNotFound = errors.New("key not found")

	// ErrTypeMismatch is returned by typed getters when the key exists but
	// holds a value of a different type.
	ErrTypeMismatch = errors.New("type mismatch")
)

// Type is the wire marker byte identifying an element's type.
type Type uint8

// List of element types, in marker order.
const (
	TypeDouble        Type = 0x01
	TypeString        Type = 0x02
	TypeDocument      Type = 0x03
	TypeArray         Type = 0x04
	TypeBinary        Type = 0x05
	TypeUndefined     Type = 0x06
	TypeObjectID      Type = 0x07
	TypeBoolean       Type = 0x08
	TypeDateTime      Type = 0x09
	TypeNull          Type = 0x0A
	TypeRegex         Type = 0x0B
	TypeDBPointer     Type = 0x0C
	TypeJavaScript    Type = 0x0D
	TypeSymbol        Type = 0x0E
	TypeCodeWithScope Type = 0x0F
	TypeInt32         Type = 0x10
	TypeTimestamp     Type = 0x11
	TypeInt64         Type = 0x12
	TypeDecimal128    Type = 0x13
	TypeMaxKey        Type = 0x7F
	TypeMinKey        Type = 0xFF
)

// Valid reports whether t is a known type marker.
func (t Type) Valid() bool {
	return (t >= TypeDouble && t <= TypeDecimal128) || t == TypeMinKey || t == TypeMaxKey
}

func (t Type) String() string {
	switch t {
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeDocument:
		return "document"
	case TypeArray:
		return "array"
	case TypeBinary:
		return "binary"
	case TypeUndefined:
		return "undefined"
	case TypeObjectID:
		return "objectID"
	case TypeBoolean:
		return "boolean"
	case TypeDateTime:
		return "datetime"
	case TypeNull:
		return "null"
	case TypeRegex:
		return "regex"
	case TypeDBPointer:
		return "dbPointer"
	case TypeJavaScript:
		return "javascript"
	case TypeSymbol:
		return "symbol"
	case TypeCodeWithScope:
		return "codeWithScope"
	case TypeInt32:
		return "int32"
	case TypeTimestamp:
		return "timestamp"
	case TypeInt64:
		return "int64"
	case TypeDecimal128:
		return "decimal128"
	case TypeMinKey:
		return "minKey"
	case TypeMaxKey:
		return "maxKey"
	}

	return fmt.Sprintf("0x%02X", uint8(t))
}
