package types

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

// ErrInvalidVector is returned when binary payloads claiming the vector
// subtype violate the vector layout.
var ErrInvalidVector = errors.New("invalid vector")

// VectorDType identifies the element type of a packed vector.
type VectorDType byte

const (
	DTypeInt8      VectorDType = 0x03
	DTypePackedBit VectorDType = 0x10
	DTypeFloat32   VectorDType = 0x27
)

func (d VectorDType) String() string {
	switch d {
	case DTypeInt8:
		return "int8"
	case DTypePackedBit:
		return "packedBit"
	case DTypeFloat32:
		return "float32"
	}
	return fmt.Sprintf("0x%02X", byte(d))
}

// Vector is a densely packed numeric array carried inside a binary value
// of SubtypeVector. The payload is two header bytes (dtype, padding)
// followed by the element bytes.
type Vector interface {
	DType() VectorDType

	// Binary encodes the vector into its wire carrier.
	Binary() Binary

	isVector()
}

var (
	_ Vector = Int8Vector(nil)
	_ Vector = Float32Vector(nil)
	_ Vector = PackedBitVector{}
)

// Int8Vector packs signed 8-bit integers.
type Int8Vector []int8

// NewInt8VectorOf converts a wider integer slice into an Int8Vector,
// rejecting elements outside the int8 range.
func NewInt8VectorOf[T constraints.Signed](xs []T) (Int8Vector, error) {
	v := make(Int8Vector, len(xs))
	for i, x := range xs {
		if int64(x) < math.MinInt8 || int64(x) > math.MaxInt8 {
			return nil, errors.Wrapf(ErrInvalidVector, "element %d (%d) does not fit in int8", i, int64(x))
		}
		v[i] = int8(x)
	}
	return v, nil
}

func (Int8Vector) DType() VectorDType { return DTypeInt8 }

func (Int8Vector) isVector() {}

func (v Int8Vector) Binary() Binary {
	data := make([]byte, 2, 2+len(v))
	data[0] = byte(DTypeInt8)
	for _, x := range v {
		data = append(data, byte(x))
	}
	return Binary{Subtype: SubtypeVector, Data: data}
}

func (v Int8Vector) String() string {
	return fmt.Sprintf("Vector(int8, %d elements)", len(v))
}

// Float32Vector packs IEEE 754 single-precision floats.
type Float32Vector []float32

func (Float32Vector) DType() VectorDType { return DTypeFloat32 }

func (Float32Vector) isVector() {}

func (v Float32Vector) Binary() Binary {
	data := make([]byte, 2, 2+4*len(v))
	data[0] = byte(DTypeFloat32)
	for _, x := range v {
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(x))
	}
	return Binary{Subtype: SubtypeVector, Data: data}
}

func (v Float32Vector) String() string {
	return fmt.Sprintf("Vector(float32, %d elements)", len(v))
}

// PackedBitVector packs single bits most-significant-bit first. The final
// byte may carry 0 to 7 unused low-order padding bits; their contents are
// preserved verbatim by the codec and compared verbatim by equality.
type PackedBitVector struct {
	bits    []byte
	padding uint8
}

// NewPackedBitVector wraps packed bit bytes. padding counts the unused
// low-order bits of the final byte and must be 0 through 7, and 0 when
// bits is empty.
func NewPackedBitVector(bits []byte, padding uint8) (PackedBitVector, error) {
	if padding > 7 {
		return PackedBitVector{}, errors.Wrapf(ErrInvalidVector, "padding %d exceeds 7", padding)
	}
	if padding != 0 && len(bits) == 0 {
		return PackedBitVector{}, errors.Wrapf(ErrInvalidVector, "padding %d with no element bytes", padding)
	}
	return PackedBitVector{bits: bits, padding: padding}, nil
}

func (PackedBitVector) DType() VectorDType { return DTypePackedBit }

func (PackedBitVector) isVector() {}

// Bits returns the packed bytes, including any padding bits.
func (v PackedBitVector) Bits() []byte { return v.bits }

// Padding returns the count of unused low-order bits in the final byte.
func (v PackedBitVector) Padding() uint8 { return v.padding }

// Len returns the number of usable bits.
func (v PackedBitVector) Len() int {
	return len(v.bits)*8 - int(v.padding)
}

// Bit returns usable bit i, counting from the most significant bit of the
// first byte.
func (v PackedBitVector) Bit(i int) (bool, bool) {
	if i < 0 || i >= v.Len() {
		return false, false
	}
	return v.bits[i/8]>>(7-uint(i%8))&1 == 1, true
}

func (v PackedBitVector) Binary() Binary {
	data := make([]byte, 2, 2+len(v.bits))
	data[0] = byte(DTypePackedBit)
	data[1] = v.padding
	data = append(data, v.bits...)
	return Binary{Subtype: SubtypeVector, Data: data}
}

func (v PackedBitVector) String() string {
	return fmt.Sprintf("Vector(packedBit, %d bits)", v.Len())
}

// VectorFromBinary validates and unpacks a binary value carrying a
// vector. The payload must be at least the two header bytes; padding must
// be 0 through 7, 0 for non-bit dtypes and 0 when there are no element
// bytes; float32 element bytes must be a multiple of 4.
func VectorFromBinary(b Binary) (Vector, error) {
	if b.Subtype != SubtypeVector {
		return nil, errors.Wrapf(ErrInvalidVector, "binary subtype 0x%02X is not a vector", byte(b.Subtype))
	}
	if len(b.Data) < 2 {
		return nil, errors.Wrapf(ErrInvalidVector, "payload has %d bytes, want at least 2", len(b.Data))
	}

	dtype := VectorDType(b.Data[0])
	padding := b.Data[1]
	elems := b.Data[2:]

	if padding > 7 {
		return nil, errors.Wrapf(ErrInvalidVector, "padding %d exceeds 7", padding)
	}
	if padding != 0 && len(elems) == 0 {
		return nil, errors.Wrapf(ErrInvalidVector, "padding %d with no element bytes", padding)
	}

	switch dtype {
	case DTypeInt8:
		if padding != 0 {
			return nil, errors.Wrapf(ErrInvalidVector, "padding %d invalid for int8 elements", padding)
		}
		v := make(Int8Vector, len(elems))
		for i, x := range elems {
			v[i] = int8(x)
		}
		return v, nil

	case DTypeFloat32:
		if padding != 0 {
			return nil, errors.Wrapf(ErrInvalidVector, "padding %d invalid for float32 elements", padding)
		}
		if len(elems)%4 != 0 {
			return nil, errors.Wrapf(ErrInvalidVector, "%d element bytes, want a multiple of 4", len(elems))
		}
		v := make(Float32Vector, 0, len(elems)/4)
		for i := 0; i < len(elems); i += 4 {
			v = append(v, math.Float32frombits(binary.LittleEndian.Uint32(elems[i:])))
		}
		return v, nil

	case DTypePackedBit:
		bits := make([]byte, len(elems))
		copy(bits, elems)
		return PackedBitVector{bits: bits, padding: padding}, nil
	}

	return nil, errors.Wrapf(ErrInvalidVector, "unknown element dtype 0x%02X", b.Data[0])
}
