package types_test

import (
	"testing"
	"time"

	"github.com/chaisql/docwire/types"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestNewObjectID(t *testing.T) {
	before := time.Now().Add(-time.Second)
	id := types.NewObjectID()
	after := time.Now().Add(time.Second)

	require.False(t, id.IsZero())

	ts := id.Timestamp().Time()
	require.False(t, ts.Before(before.Truncate(time.Second)))
	require.False(t, ts.After(after))
}

func TestObjectIDCounter(t *testing.T) {
	at := time.Unix(1700000000, 0)
	a := types.NewObjectIDFromTime(at)
	b := types.NewObjectIDFromTime(at)

	// Same second, same process: only the trailing counter differs, by one.
	require.Equal(t, a[:9], b[:9])

	ca := uint32(a[9])<<16 | uint32(a[10])<<8 | uint32(a[11])
	cb := uint32(b[9])<<16 | uint32(b[10])<<8 | uint32(b[11])
	require.Equal(t, (ca+1)&0xFFFFFF, cb)
}

func TestObjectIDHex(t *testing.T) {
	id := types.NewObjectID()
	h := id.Hex()
	require.Len(t, h, 24)

	parsed, err := types.ObjectIDFromHex(h)
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	t.Run("upper case accepted", func(t *testing.T) {
		parsed, err := types.ObjectIDFromHex("5F92A0C9E4B0F1D2A3B4C5D6")
		require.NoError(t, err)
		require.Equal(t, "5f92a0c9e4b0f1d2a3b4c5d6", parsed.Hex())
	})

	tests := []struct {
		name string
		in   string
	}{
		{"too short", "5f92a0c9e4b0f1d2a3b4c5"},
		{"too long", "5f92a0c9e4b0f1d2a3b4c5d6ff"},
		{"bad digit", "5f92a0c9e4b0f1d2a3b4c5zz"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := types.ObjectIDFromHex(tt.in)
			require.ErrorIs(t, err, types.ErrInvalidObjectID)
		})
	}
}

func TestObjectIDTimestamp(t *testing.T) {
	at := time.Unix(1591700287, 0).UTC()
	id := types.NewObjectIDFromTime(at)
	require.Equal(t, types.DateTime(1591700287000), id.Timestamp())
	require.Equal(t, at, id.Timestamp().Time())
}

func TestObjectIDConcurrentUniqueness(t *testing.T) {
	const (
		goroutines = 16
		perG       = 1000
	)

	ids := make([][]types.ObjectID, goroutines)

	var g errgroup.Group
	for n := 0; n < goroutines; n++ {
		n := n
		g.Go(func() error {
			out := make([]types.ObjectID, perG)
			for i := range out {
				out[i] = types.NewObjectID()
			}
			ids[n] = out
			return nil
		})
	}
	require.NoError(t, g.Wait())

	seen := make(map[types.ObjectID]struct{}, goroutines*perG)
	for _, batch := range ids {
		for _, id := range batch {
			_, dup := seen[id]
			require.False(t, dup, "duplicate id %s", id.Hex())
			seen[id] = struct{}{}
		}
	}
}
