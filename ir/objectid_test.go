package ir

import (
	"testing"
	"time"
)

func TestObjectIDHexRoundTrip(t *testing.T) {
	id := NewObjectID()
	hex := id.Hex()
	if len(hex) != 24 {
		t.Fatalf("Hex() length = %d, want 24", len(hex))
	}
	back, err := ObjectIDFromHex(hex)
	if err != nil {
		t.Fatal(err)
	}
	if back != id {
		t.Errorf("ObjectIDFromHex(Hex()) = %s, want %s", back.Hex(), hex)
	}
}

func TestObjectIDFromHexRejects(t *testing.T) {
	for _, in := range []string{"", "zz", "0102030405060708090a0b", "0102030405060708090a0b0cff"} {
		if _, err := ObjectIDFromHex(in); err == nil {
			t.Errorf("ObjectIDFromHex(%q) accepted bad input", in)
		}
	}
}

func TestObjectIDUnique(t *testing.T) {
	seen := map[ObjectID]bool{}
	for range 1000 {
		id := NewObjectID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id.Hex())
		}
		seen[id] = true
	}
}

func TestObjectIDTimestamp(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	id := NewObjectIDFromTime(now)
	if got := id.Timestamp(); !got.Equal(now) {
		t.Errorf("Timestamp() = %v, want %v", got, now)
	}
}
