package raw_test

import (
	"testing"

	"github.com/chaisql/docwire/encoding"
	"github.com/chaisql/docwire/raw"
	"github.com/chaisql/docwire/types"
	"github.com/stretchr/testify/require"
)

func encodeArr(t *testing.T, a *types.Array) []byte {
	t.Helper()

	b, err := encoding.EncodeArray(nil, a)
	require.NoError(t, err)
	return b
}

func TestArrayIterate(t *testing.T) {
	arr, err := raw.NewArray(encodeArr(t, types.NewArray(
		types.Int32(10),
		types.String("twenty"),
		types.Boolean(true),
	)))
	require.NoError(t, err)

	var idx []int
	var vals []types.Value
	err = arr.Iterate(func(i int, el raw.Element) error {
		v, err := el.Value()
		require.NoError(t, err)
		idx = append(idx, i)
		vals = append(vals, v)
		return nil
	})
	require.NoError(t, err)

	require.Equal(t, []int{0, 1, 2}, idx)
	require.Equal(t, []types.Value{types.Int32(10), types.String("twenty"), types.Boolean(true)}, vals)
}

func TestArrayIndex(t *testing.T) {
	arr, err := raw.NewArray(encodeArr(t, types.NewArray(
		types.Int32(10),
		types.Int32(20),
	)))
	require.NoError(t, err)

	el, err := arr.Index(1)
	require.NoError(t, err)
	v, err := el.Value()
	require.NoError(t, err)
	require.Equal(t, types.Int32(20), v)

	_, err = arr.Index(2)
	require.ErrorIs(t, err, types.ErrKeyNotFound)

	_, err = arr.Index(-1)
	require.ErrorIs(t, err, types.ErrKeyNotFound)
}

func TestArrayCountAndValues(t *testing.T) {
	arr, err := raw.NewArray(encodeArr(t, types.NewArray(
		types.Double(1.5),
		types.Null{},
	)))
	require.NoError(t, err)

	n, err := arr.Count()
	require.NoError(t, err)
	require.Equal(t, 2, n)

	vs, err := arr.Values()
	require.NoError(t, err)
	require.Equal(t, []types.Value{types.Double(1.5), types.Null{}}, vs)
}

func TestArrayEmpty(t *testing.T) {
	arr, err := raw.NewArray(mustHex(t, "05 00 00 00 00"))
	require.NoError(t, err)

	n, err := arr.Count()
	require.NoError(t, err)
	require.Equal(t, 0, n)

	vs, err := arr.Values()
	require.NoError(t, err)
	require.Empty(t, vs)
}

func TestArrayIgnoresKeyBytes(t *testing.T) {
	// Index keys lie ("9", "x") but positions still work: the view never
	// reads them back as numbers.
	arr, err := raw.NewArray(mustHex(t, "13 00 00 00 10 39 00 0A 00 00 00 10 78 00 14 00 00 00 00"))
	require.NoError(t, err)

	el, err := arr.Index(1)
	require.NoError(t, err)
	v, err := el.Value()
	require.NoError(t, err)
	require.Equal(t, types.Int32(20), v)

	require.NoError(t, arr.Validate())
}

func TestArrayStructuralError(t *testing.T) {
	// Second element's int32 payload is cut short by the declared length.
	arr, err := raw.NewArray(mustHex(t, "10 00 00 00 10 30 00 0A 00 00 00 10 31 00 01 00"))
	require.NoError(t, err)

	_, err = arr.Count()
	require.ErrorIs(t, err, encoding.ErrTruncated)

	_, err = arr.Index(1)
	require.ErrorIs(t, err, encoding.ErrTruncated)
}
