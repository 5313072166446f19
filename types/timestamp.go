package types

import "fmt"

var _ Value = Timestamp{}

// Timestamp is an internal replication timestamp: a second-resolution
// time and an ordinal distinguishing operations within that second. On
// the wire it is a single uint64 with the time in the high 32 bits.
type Timestamp struct {
	T uint32
	I uint32
}

// TimestampFromUint64 splits the wire form into its halves.
func TimestampFromUint64(u uint64) Timestamp {
	return Timestamp{T: uint32(u >> 32), I: uint32(u)}
}

// Uint64 packs the timestamp into its wire form.
func (t Timestamp) Uint64() uint64 {
	return uint64(t.T)<<32 | uint64(t.I)
}

func (t Timestamp) Type() Type { return TypeTimestamp }

func (t Timestamp) String() string {
	return fmt.Sprintf("Timestamp(%d, %d)", t.T, t.I)
}
