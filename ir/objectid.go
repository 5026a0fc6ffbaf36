package ir

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/bson-format/go-bson/wire"
)

// ObjectID is a 12-byte object identifier: a 4-byte big-endian
// timestamp, 5 bytes of per-process randomness, and a 3-byte
// big-endian counter.
type ObjectID [12]byte

// NilObjectID is the zero identifier.
var NilObjectID ObjectID

var (
	oidProcess [5]byte
	oidCounter atomic.Uint32
)

func init() {
	if _, err := rand.Read(oidProcess[:]); err != nil {
		panic(fmt.Sprintf("objectid process randomness: %v", err))
	}
	var seed [4]byte
	if _, err := rand.Read(seed[:]); err != nil {
		panic(fmt.Sprintf("objectid counter seed: %v", err))
	}
	oidCounter.Store(binary.BigEndian.Uint32(seed[:]))
}

// NewObjectID generates an identifier from the current time.
func NewObjectID() ObjectID {
	return NewObjectIDFromTime(time.Now())
}

// NewObjectIDFromTime generates an identifier whose timestamp field
// is t.
func NewObjectIDFromTime(t time.Time) ObjectID {
	var id ObjectID
	binary.BigEndian.PutUint32(id[:4], uint32(t.Unix()))
	copy(id[4:9], oidProcess[:])
	n := oidCounter.Add(1)
	id[9] = byte(n >> 16)
	id[10] = byte(n >> 8)
	id[11] = byte(n)
	return id
}

// ObjectIDFromHex parses a 24-character hex string.
func ObjectIDFromHex(s string) (ObjectID, error) {
	var id ObjectID
	if len(s) != 24 {
		return id, fmt.Errorf("objectid hex must be 24 characters, got %d", len(s))
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return id, fmt.Errorf("objectid hex: %w", err)
	}
	return id, nil
}

// Hex returns the 24-character hex rendering.
func (id ObjectID) Hex() string {
	return hex.EncodeToString(id[:])
}

func (id ObjectID) String() string {
	return "ObjectID(" + id.Hex() + ")"
}

// Timestamp returns the identifier's embedded creation time.
func (id ObjectID) Timestamp() time.Time {
	return time.Unix(int64(binary.BigEndian.Uint32(id[:4])), 0).UTC()
}

func (ObjectID) Kind() wire.Type { return wire.TypeObjectID }

func (id ObjectID) appendTo(b *wire.Buffer, key string) error {
	return b.AppendObjectID(key, id)
}
