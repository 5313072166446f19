package encoding_test

import (
	"encoding/hex"
	"math"
	"strings"
	"testing"

	"github.com/chaisql/docwire/encoding"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	require.NoError(t, err)
	return b
}

func TestFixedWidthRoundTrips(t *testing.T) {
	t.Run("int32", func(t *testing.T) {
		b := encoding.EncodeInt32(nil, -2)
		require.Equal(t, []byte{0xFE, 0xFF, 0xFF, 0xFF}, b)

		v, err := encoding.DecodeInt32(b)
		require.NoError(t, err)
		require.Equal(t, int32(-2), v)
	})

	t.Run("int64", func(t *testing.T) {
		b := encoding.EncodeInt64(nil, math.MinInt64)
		v, err := encoding.DecodeInt64(b)
		require.NoError(t, err)
		require.Equal(t, int64(math.MinInt64), v)
	})

	t.Run("uint64", func(t *testing.T) {
		b := encoding.EncodeUint64(nil, 0x1122334455667788)
		require.Equal(t, mustHex(t, "88 77 66 55 44 33 22 11"), b)

		v, err := encoding.DecodeUint64(b)
		require.NoError(t, err)
		require.Equal(t, uint64(0x1122334455667788), v)
	})

	t.Run("double", func(t *testing.T) {
		b := encoding.EncodeDouble(nil, 13.37)
		v, err := encoding.DecodeDouble(b)
		require.NoError(t, err)
		require.Equal(t, 13.37, v)
	})

	t.Run("double keeps nan bits", func(t *testing.T) {
		nan := math.Float64frombits(0x7FF8000000000001)
		b := encoding.EncodeDouble(nil, nan)
		v, err := encoding.DecodeDouble(b)
		require.NoError(t, err)
		require.Equal(t, math.Float64bits(nan), math.Float64bits(v))
	})

	t.Run("appends to dst", func(t *testing.T) {
		b := encoding.EncodeInt32([]byte{0xAA}, 1)
		require.Equal(t, []byte{0xAA, 0x01, 0x00, 0x00, 0x00}, b)
	})
}

func TestFixedWidthTruncated(t *testing.T) {
	_, err := encoding.DecodeInt32([]byte{0x01, 0x02})
	require.ErrorIs(t, err, encoding.ErrTruncated)

	_, err = encoding.DecodeInt64(nil)
	require.ErrorIs(t, err, encoding.ErrTruncated)

	_, err = encoding.DecodeDouble(mustHex(t, "00 00 00 00"))
	require.ErrorIs(t, err, encoding.ErrTruncated)
}

func TestCString(t *testing.T) {
	b, err := encoding.EncodeCString(nil, "abc")
	require.NoError(t, err)
	require.Equal(t, []byte{'a', 'b', 'c', 0x00}, b)

	s, n, err := encoding.DecodeCString(append(b, 0xFF))
	require.NoError(t, err)
	require.Equal(t, "abc", s)
	require.Equal(t, 4, n)

	t.Run("rejects interior NUL", func(t *testing.T) {
		_, err := encoding.EncodeCString(nil, "a\x00b")
		require.Error(t, err)
	})

	t.Run("unterminated", func(t *testing.T) {
		_, _, err := encoding.DecodeCString([]byte("abc"))
		require.ErrorIs(t, err, encoding.ErrTruncated)
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		_, _, err := encoding.DecodeCString([]byte{0xFF, 0x00})
		require.ErrorIs(t, err, encoding.ErrInvalidUTF8)
	})
}

func TestString(t *testing.T) {
	b, err := encoding.EncodeString(nil, "world")
	require.NoError(t, err)
	require.Equal(t, mustHex(t, "06 00 00 00 77 6F 72 6C 64 00"), b)

	s, n, err := encoding.DecodeString(b)
	require.NoError(t, err)
	require.Equal(t, "world", s)
	require.Equal(t, 10, n)

	t.Run("empty", func(t *testing.T) {
		b, err := encoding.EncodeString(nil, "")
		require.NoError(t, err)
		require.Equal(t, mustHex(t, "01 00 00 00 00"), b)

		s, n, err := encoding.DecodeString(b)
		require.NoError(t, err)
		require.Equal(t, "", s)
		require.Equal(t, 5, n)
	})

	t.Run("interior NUL is content", func(t *testing.T) {
		b, err := encoding.EncodeString(nil, "a\x00b")
		require.NoError(t, err)

		s, _, err := encoding.DecodeString(b)
		require.NoError(t, err)
		require.Equal(t, "a\x00b", s)
	})

	errs := []struct {
		name string
		in   string
		want error
	}{
		{"short prefix", "01 00", encoding.ErrTruncated},
		{"zero length", "00 00 00 00 00", encoding.ErrMalformedLength},
		{"negative length", "FF FF FF FF 00", encoding.ErrMalformedLength},
		{"content overruns buffer", "0A 00 00 00 61 00", encoding.ErrTruncated},
		{"missing terminator", "03 00 00 00 61 62 63", encoding.ErrTerminator},
		{"invalid utf-8", "03 00 00 00 FF FE 00", encoding.ErrInvalidUTF8},
	}
	for _, tc := range errs {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := encoding.DecodeString(mustHex(t, tc.in))
			require.ErrorIs(t, err, tc.want)
		})
	}
}
