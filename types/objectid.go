package types

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrInvalidObjectID is returned when parsing a malformed object id hex
// string.
var ErrInvalidObjectID = errors.New("invalid object id")

var _ Value = ObjectID{}

// ObjectID is a 12-byte unique identifier:
//
//	bytes 0..3   seconds since the Unix epoch, big endian
//	bytes 4..8   per-process random discriminator
//	bytes 9..11  counter, big endian, random start, wraps at 2^24
type ObjectID [12]byte

// NilObjectID is the all-zero object id.
var NilObjectID ObjectID

var (
	oidOnce    sync.Once
	oidProcess [5]byte
	oidCounter atomic.Uint32
)

func oidInit() {
	var b [9]byte
	if _, err := rand.Read(b[:]); err != nil {
		// Ids minted without entropy collide across processes.
		panic(errors.Wrap(err, "docwire: reading random bytes for object id state"))
	}
	copy(oidProcess[:], b[:5])
	oidCounter.Store(binary.BigEndian.Uint32(b[5:]))
}

// NewObjectID generates an object id from the current time. It is safe to
// call from any number of goroutines.
func NewObjectID() ObjectID {
	return NewObjectIDFromTime(time.Now())
}

// NewObjectIDFromTime generates an object id whose leading 4 bytes are the
// second-resolution timestamp of t.
func NewObjectIDFromTime(t time.Time) ObjectID {
	oidOnce.Do(oidInit)

	var id ObjectID
	binary.BigEndian.PutUint32(id[0:4], uint32(t.Unix()))
	copy(id[4:9], oidProcess[:])

	c := oidCounter.Add(1) & 0xFFFFFF
	id[9] = byte(c >> 16)
	id[10] = byte(c >> 8)
	id[11] = byte(c)
	return id
}

// ObjectIDFromHex parses a 24-digit hex string. Both digit cases are
// accepted.
func ObjectIDFromHex(s string) (ObjectID, error) {
	if len(s) != 24 {
		return NilObjectID, errors.Wrapf(ErrInvalidObjectID, "hex string has length %d, want 24", len(s))
	}
	var id ObjectID
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return NilObjectID, errors.Wrapf(ErrInvalidObjectID, "%v", err)
	}
	return id, nil
}

func (id ObjectID) Type() Type { return TypeObjectID }

// Hex returns the 24-digit lower-case hex form of the id.
func (id ObjectID) Hex() string {
	return hex.EncodeToString(id[:])
}

// Timestamp recovers the generation time stored in the leading 4 bytes,
// at second resolution.
func (id ObjectID) Timestamp() DateTime {
	secs := binary.BigEndian.Uint32(id[0:4])
	return DateTime(int64(secs) * 1000)
}

// IsZero reports whether the id is NilObjectID.
func (id ObjectID) IsZero() bool {
	return id == NilObjectID
}

func (id ObjectID) String() string {
	return `ObjectID("` + id.Hex() + `")`
}
