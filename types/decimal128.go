package types

import (
	"encoding/binary"
	"fmt"
)

var _ Value = Decimal128{}

// Decimal128 is an IEEE 754-2008 128-bit decimal floating point value,
// carried as an opaque bit pattern. The codec performs no arithmetic and
// no validation: every bit pattern is legal transport and round-trips
// exactly.
type Decimal128 struct {
	h, l uint64
}

// NewDecimal128 builds a value from the high and low 64-bit halves of the
// bit pattern.
func NewDecimal128(h, l uint64) Decimal128 {
	return Decimal128{h: h, l: l}
}

// Decimal128FromBytes reinterprets 16 bytes in wire order (little-endian
// low half, then little-endian high half).
func Decimal128FromBytes(b [16]byte) Decimal128 {
	return Decimal128{
		l: binary.LittleEndian.Uint64(b[0:8]),
		h: binary.LittleEndian.Uint64(b[8:16]),
	}
}

func (d Decimal128) Type() Type { return TypeDecimal128 }

// Bits returns the high and low 64-bit halves of the bit pattern.
func (d Decimal128) Bits() (h, l uint64) {
	return d.h, d.l
}

// Bytes returns the 16-byte wire form: little-endian low half, then
// little-endian high half.
func (d Decimal128) Bytes() [16]byte {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[0:8], d.l)
	binary.LittleEndian.PutUint64(b[8:16], d.h)
	return b
}

func (d Decimal128) String() string {
	return fmt.Sprintf("Decimal128(%016x%016x)", d.h, d.l)
}
