package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDocumentSetOrder(t *testing.T) {
	d := NewDocument()
	d.Set("a", Int32(1))
	d.Set("b", Int32(2))
	d.Set("c", Int32(3))
	d.Set("b", String("two")) // overwrite keeps position

	want := []string{"a", "b", "c"}
	if diff := cmp.Diff(want, d.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if v := d.Get("b"); !Equal(v, String("two")) {
		t.Errorf("Get(b) = %#v", v)
	}
}

func TestDocumentSetNilRemoves(t *testing.T) {
	d := NewDocument()
	d.Set("a", Int32(1))
	d.Set("b", Int32(2))
	d.Set("a", nil)
	if d.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", d.Len())
	}
	if _, ok := d.Lookup("a"); ok {
		t.Error("Lookup(a) found a removed key")
	}
}

func TestDocumentDelete(t *testing.T) {
	d := NewDocument()
	d.Set("a", Int32(1))
	d.Set("b", Int32(2))
	if !d.Delete("a") {
		t.Error("Delete(a) = false")
	}
	if d.Delete("a") {
		t.Error("second Delete(a) = true")
	}
	if diff := cmp.Diff([]string{"b"}, d.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestDocumentRangeStops(t *testing.T) {
	d := NewDocument()
	d.Set("a", Int32(1))
	d.Set("b", Int32(2))
	d.Set("c", Int32(3))
	n := 0
	d.Range(func(key string, v Value) bool {
		n++
		return key != "b"
	})
	if n != 2 {
		t.Errorf("Range visited %d elements, want 2", n)
	}
}

func TestArrayInsert(t *testing.T) {
	a := NewArray(Int32(1), Int32(3))
	a.Insert(1, Int32(2))
	a.Insert(3, Int32(4))
	want := NewArray(Int32(1), Int32(2), Int32(3), Int32(4))
	if !Equal(a, want) {
		t.Errorf("Insert() produced wrong order: %#v", a.Values())
	}
}

func TestDocumentEncodeGolden(t *testing.T) {
	d := NewDocument()
	d.Set("hello", String("world"))
	got, err := d.Encode()
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		0x16, 0x00, 0x00, 0x00,
		0x02, 'h', 'e', 'l', 'l', 'o', 0x00,
		0x06, 0x00, 0x00, 0x00, 'w', 'o', 'r', 'l', 'd', 0x00,
		0x00,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Encode() mismatch (-want +got):\n%s", diff)
	}
}

func TestArrayEncodeIndexKeys(t *testing.T) {
	a := NewArray(String("x"), String("y"))
	raw, err := a.Encode()
	if err != nil {
		t.Fatal(err)
	}
	d, err := ReadDocument(raw)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"0", "1"}, d.Keys()); diff != "" {
		t.Errorf("array keys mismatch (-want +got):\n%s", diff)
	}
}
