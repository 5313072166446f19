package types

import (
	"bytes"
	"fmt"
)

// BinarySubtype tags the interpretation of a binary value's payload.
type BinarySubtype byte

// Binary subtypes. Values from SubtypeUserDefined up are reserved for
// applications.
const (
	SubtypeGeneric     BinarySubtype = 0x00
	SubtypeFunction    BinarySubtype = 0x01
	SubtypeBinaryOld   BinarySubtype = 0x02
	SubtypeUUIDOld     BinarySubtype = 0x03
	SubtypeUUID        BinarySubtype = 0x04
	SubtypeMD5         BinarySubtype = 0x05
	SubtypeEncrypted   BinarySubtype = 0x06
	SubtypeColumn      BinarySubtype = 0x07
	SubtypeSensitive   BinarySubtype = 0x08
	SubtypeVector      BinarySubtype = 0x09
	SubtypeUserDefined BinarySubtype = 0x80
)

// IsUserDefined reports whether s is in the application-reserved range.
func (s BinarySubtype) IsUserDefined() bool {
	return s >= SubtypeUserDefined
}

var _ Value = Binary{}

// Binary is a byte payload tagged with a subtype. Data never includes the
// redundant inner length prefix of SubtypeBinaryOld: the wire codec
// strips it on decode and re-emits it on encode.
type Binary struct {
	Subtype BinarySubtype
	Data    []byte
}

// NewBinary returns a generic-subtype binary value wrapping data.
func NewBinary(data []byte) Binary {
	return Binary{Subtype: SubtypeGeneric, Data: data}
}

func (b Binary) Type() Type { return TypeBinary }

// Equal reports whether both values have the same subtype and payload.
func (b Binary) Equal(other Binary) bool {
	return b.Subtype == other.Subtype && bytes.Equal(b.Data, other.Data)
}

func (b Binary) String() string {
	return fmt.Sprintf("Binary(subtype=0x%02X, %d bytes)", byte(b.Subtype), len(b.Data))
}
