package ir

import (
	"errors"
	"testing"

	"github.com/bson-format/go-bson/wire"
)

func TestReadDocumentRoundTrip(t *testing.T) {
	scope := NewDocument()
	scope.Set("x", Int32(1))

	inner := NewDocument()
	inner.Set("deep", Boolean(true))

	d := NewDocument()
	d.Set("d", Double(0.5))
	d.Set("s", String("text"))
	d.Set("doc", inner)
	d.Set("arr", NewArray(Int32(1), String("two"), Null{}))
	d.Set("bin", Binary{Subtype: wire.BinaryUUID, Data: []byte{1, 2, 3, 4}})
	d.Set("id", ObjectID{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12})
	d.Set("ok", Boolean(false))
	d.Set("when", DateTime(1700000000000))
	d.Set("none", Null{})
	d.Set("re", Regex{Pattern: "^x", Options: "mi"})
	d.Set("js", Code("f()"))
	d.Set("jss", CodeWithScope{Code: "g()", Scope: scope})
	d.Set("i32", Int32(-9))
	d.Set("ts", Timestamp{T: 77, I: 3})
	d.Set("i64", Int64(1<<50))
	d.Set("dec", NewDecimal128(0x3040000000000000, 12345))
	d.Set("min", MinKey{})
	d.Set("max", MaxKey{})

	raw, err := d.Encode()
	if err != nil {
		t.Fatal(err)
	}
	got, err := ReadDocument(raw)
	if err != nil {
		t.Fatal(err)
	}
	// regex options canonicalize on encode
	wantRe := Regex{Pattern: "^x", Options: "im"}
	if v := got.Get("re"); !Equal(v, wantRe) {
		t.Errorf("re = %#v, want %#v", v, wantRe)
	}
	d.Set("re", wantRe)
	if !Equal(d, got) {
		t.Errorf("round trip mismatch:\n in: %v\nout: %v", d.Keys(), got.Keys())
	}
}

// deprecatedDoc builds a document carrying the retired element types
// by hand, since no encoder produces them.
func deprecatedDoc(t *testing.T) []byte {
	t.Helper()
	var body []byte
	// undefined "u"
	body = append(body, byte(wire.TypeUndefined), 'u', 0)
	// symbol "sym" -> "abc"
	body = append(body, byte(wire.TypeSymbol), 's', 'y', 'm', 0)
	body = append(body, 4, 0, 0, 0, 'a', 'b', 'c', 0)
	// dbpointer "p" -> "db.c" + 12-byte id
	body = append(body, byte(wire.TypeDBPointer), 'p', 0)
	body = append(body, 5, 0, 0, 0, 'd', 'b', '.', 'c', 0)
	body = append(body, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)

	doc := make([]byte, 4, 5+len(body))
	doc = append(doc, body...)
	doc = append(doc, 0)
	doc[0] = byte(len(doc))
	return doc
}

func TestReadDeprecatedFails(t *testing.T) {
	_, err := ReadDocument(deprecatedDoc(t))
	var de *DeprecatedTypeError
	if !errors.As(err, &de) {
		t.Fatalf("ReadDocument err = %v, want DeprecatedTypeError", err)
	}
	if de.Type != wire.TypeUndefined {
		t.Errorf("DeprecatedTypeError.Type = %s, want undefined", de.Type)
	}
}

func TestReadDeprecatedAs(t *testing.T) {
	got, err := ReadDocument(deprecatedDoc(t), ReadDeprecatedAs())
	if err != nil {
		t.Fatal(err)
	}
	if v := got.Get("u"); !Equal(v, Null{}) {
		t.Errorf("u = %#v, want null", v)
	}
	if v := got.Get("sym"); !Equal(v, String("abc")) {
		t.Errorf("sym = %#v, want \"abc\"", v)
	}
	want := NewDocument()
	want.Set("$ref", String("db.c"))
	want.Set("$id", ObjectID{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12})
	if v := got.Get("p"); !Equal(v, want) {
		t.Errorf("p = %#v, want %#v", v, want)
	}
}

func TestDeprecatedEncodeFails(t *testing.T) {
	d := NewDocument()
	d.Set("u", Undefined{})
	_, err := d.Encode()
	var de *DeprecatedTypeError
	if !errors.As(err, &de) {
		t.Fatalf("Encode err = %v, want DeprecatedTypeError", err)
	}
	if de.Decode {
		t.Error("DeprecatedTypeError.Decode = true on encode")
	}
}
