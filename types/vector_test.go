package types_test

import (
	"testing"

	"github.com/chaisql/docwire/types"
	"github.com/stretchr/testify/require"
)

func TestVectorRoundTrip(t *testing.T) {
	pb, err := types.NewPackedBitVector([]byte{0b10110000}, 4)
	require.NoError(t, err)

	tests := []struct {
		name string
		vec  types.Vector
	}{
		{"int8", types.Int8Vector{-128, -1, 0, 1, 127}},
		{"int8 empty", types.Int8Vector{}},
		{"float32", types.Float32Vector{0, 1.5, -3.25e7}},
		{"float32 empty", types.Float32Vector{}},
		{"packed bit", pb},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bin := tt.vec.Binary()
			require.Equal(t, types.SubtypeVector, bin.Subtype)

			back, err := types.VectorFromBinary(bin)
			require.NoError(t, err)
			require.Equal(t, tt.vec.DType(), back.DType())
			require.Equal(t, tt.vec, back)

			// A second encode is byte-identical.
			require.True(t, bin.Equal(back.Binary()))
		})
	}
}

func TestVectorSingleBit(t *testing.T) {
	// dtype 0x10, padding 7, one element byte: a single usable bit.
	bin := types.Binary{Subtype: types.SubtypeVector, Data: []byte{0x10, 0x07, 0xFF}}

	vec, err := types.VectorFromBinary(bin)
	require.NoError(t, err)

	pb, ok := vec.(types.PackedBitVector)
	require.True(t, ok)
	require.Equal(t, 1, pb.Len())

	bit, ok := pb.Bit(0)
	require.True(t, ok)
	require.True(t, bit)

	_, ok = pb.Bit(1)
	require.False(t, ok)

	// Padding bits are preserved verbatim.
	require.Equal(t, bin.Data, vec.Binary().Data)
}

func TestVectorFromBinaryErrors(t *testing.T) {
	tests := []struct {
		name string
		bin  types.Binary
	}{
		{"wrong subtype", types.NewBinary([]byte{0x03, 0x00})},
		{"empty payload", types.Binary{Subtype: types.SubtypeVector, Data: nil}},
		{"one header byte", types.Binary{Subtype: types.SubtypeVector, Data: []byte{0x03}}},
		{"padding too large", types.Binary{Subtype: types.SubtypeVector, Data: []byte{0x10, 0x08, 0xFF}}},
		{"padding without elements", types.Binary{Subtype: types.SubtypeVector, Data: []byte{0x10, 0x01}}},
		{"padding on int8", types.Binary{Subtype: types.SubtypeVector, Data: []byte{0x03, 0x01, 0x00}}},
		{"padding on float32", types.Binary{Subtype: types.SubtypeVector, Data: []byte{0x27, 0x01, 0, 0, 0, 0}}},
		{"float32 ragged", types.Binary{Subtype: types.SubtypeVector, Data: []byte{0x27, 0x00, 0, 0, 0}}},
		{"unknown dtype", types.Binary{Subtype: types.SubtypeVector, Data: []byte{0x55, 0x00}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := types.VectorFromBinary(tt.bin)
			require.ErrorIs(t, err, types.ErrInvalidVector)
		})
	}
}

func TestNewPackedBitVector(t *testing.T) {
	_, err := types.NewPackedBitVector(nil, 0)
	require.NoError(t, err)

	_, err = types.NewPackedBitVector(nil, 1)
	require.ErrorIs(t, err, types.ErrInvalidVector)

	_, err = types.NewPackedBitVector([]byte{0xFF}, 8)
	require.ErrorIs(t, err, types.ErrInvalidVector)
}

func TestPackedBitVectorBits(t *testing.T) {
	v, err := types.NewPackedBitVector([]byte{0b10100101, 0b11000000}, 6)
	require.NoError(t, err)
	require.Equal(t, 10, v.Len())

	want := []bool{true, false, true, false, false, true, false, true, true, true}
	for i, w := range want {
		got, ok := v.Bit(i)
		require.True(t, ok, "bit %d", i)
		require.Equal(t, w, got, "bit %d", i)
	}
}

func TestNewInt8VectorOf(t *testing.T) {
	v, err := types.NewInt8VectorOf([]int{-128, 0, 127})
	require.NoError(t, err)
	require.Equal(t, types.Int8Vector{-128, 0, 127}, v)

	_, err = types.NewInt8VectorOf([]int{128})
	require.ErrorIs(t, err, types.ErrInvalidVector)

	_, err = types.NewInt8VectorOf([]int64{-129})
	require.ErrorIs(t, err, types.ErrInvalidVector)
}
