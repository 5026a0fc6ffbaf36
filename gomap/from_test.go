package gomap

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/bson-format/go-bson/ir"
	"github.com/bson-format/go-bson/wire"
)

func TestFromIRStruct(t *testing.T) {
	doc := ir.NewDocument()
	doc.Set("name", ir.String("ada"))
	doc.Set("age", ir.Int32(36))
	inner := ir.NewDocument()
	inner.Set("city", ir.String("london"))
	inner.Set("postalCode", ir.String("N1"))
	doc.Set("address", inner)

	var p person
	if err := FromIR(doc, &p); err != nil {
		t.Fatal(err)
	}
	want := person{Name: "ada", Age: 36, Address: address{City: "london", Zip: "N1"}}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("FromIR mismatch (-want +got):\n%s", diff)
	}
}

func TestFromIRMissingFieldsKeepZero(t *testing.T) {
	doc := ir.NewDocument()
	doc.Set("name", ir.String("n"))
	p := person{Age: 99}
	if err := FromIR(doc, &p); err != nil {
		t.Fatal(err)
	}
	if p.Age != 99 {
		t.Errorf("absent field overwrote target: age = %d", p.Age)
	}
}

func TestFromIRNullClearsPointer(t *testing.T) {
	var target struct {
		Next *address `bson:"next"`
	}
	target.Next = &address{City: "c"}
	doc := ir.NewDocument()
	doc.Set("next", ir.Null{})
	if err := FromIR(doc, &target); err != nil {
		t.Fatal(err)
	}
	if target.Next != nil {
		t.Errorf("null left pointer set: %v", target.Next)
	}
}

func TestFromIRAllocatesPointer(t *testing.T) {
	var target struct {
		Next *address `bson:"next"`
	}
	doc := ir.NewDocument()
	inner := ir.NewDocument()
	inner.Set("city", ir.String("c"))
	doc.Set("next", inner)
	if err := FromIR(doc, &target); err != nil {
		t.Fatal(err)
	}
	if target.Next == nil || target.Next.City != "c" {
		t.Errorf("pointer target = %v", target.Next)
	}
}

func TestFromIRScalarConversions(t *testing.T) {
	type target struct {
		I   int     `bson:"i"`
		I8  int8    `bson:"i8"`
		U   uint    `bson:"u"`
		F   float64 `bson:"f"`
		FI  float64 `bson:"fi"`
		B   []byte  `bson:"b"`
		At  time.Time
		Any any `bson:"any"`
	}
	at := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	doc := ir.NewDocument()
	doc.Set("i", ir.Int64(100))
	doc.Set("i8", ir.Double(7)) // integral double
	doc.Set("u", ir.Int32(42))
	doc.Set("f", ir.Int32(3))
	doc.Set("fi", ir.Double(2.5))
	doc.Set("b", ir.Binary{Subtype: wire.BinaryGeneric, Data: []byte{9}})
	doc.Set("at", ir.FromTime(at))
	doc.Set("any", ir.Int32(5))

	var got target
	if err := FromIR(doc, &got); err != nil {
		t.Fatal(err)
	}
	if got.I != 100 || got.I8 != 7 || got.U != 42 {
		t.Errorf("ints = %d %d %d", got.I, got.I8, got.U)
	}
	if got.F != 3 || got.FI != 2.5 {
		t.Errorf("floats = %v %v", got.F, got.FI)
	}
	if !cmp.Equal([]byte{9}, got.B) {
		t.Errorf("bytes = %v", got.B)
	}
	if !got.At.Equal(at) {
		t.Errorf("time = %v", got.At)
	}
	if v, ok := got.Any.(int64); !ok || v != 5 {
		t.Errorf("any = %#v, want int64(5)", got.Any)
	}
}

func TestFromIROverflow(t *testing.T) {
	doc := ir.NewDocument()
	doc.Set("i8", ir.Int32(1000))
	var target struct {
		I8 int8 `bson:"i8"`
	}
	err := FromIR(doc, &target)
	var ue *UnmarshalError
	if !errors.As(err, &ue) {
		t.Fatalf("err = %v, want UnmarshalError", err)
	}
}

func TestFromIRFractionalIntoInt(t *testing.T) {
	doc := ir.NewDocument()
	doc.Set("i", ir.Double(1.5))
	var target struct {
		I int `bson:"i"`
	}
	err := FromIR(doc, &target)
	var ue *UnmarshalError
	if !errors.As(err, &ue) {
		t.Fatalf("err = %v, want UnmarshalError", err)
	}
	if ue.FieldPath != "i" {
		t.Errorf("FieldPath = %q, want %q", ue.FieldPath, "i")
	}
}

func TestFromIRTypeMismatchPath(t *testing.T) {
	doc := ir.NewDocument()
	inner := ir.NewDocument()
	inner.Set("city", ir.Int32(1))
	doc.Set("address", inner)
	var p person
	err := FromIR(doc, &p)
	var ue *UnmarshalError
	if !errors.As(err, &ue) {
		t.Fatalf("err = %v, want UnmarshalError", err)
	}
	if ue.FieldPath != "address.city" {
		t.Errorf("FieldPath = %q, want %q", ue.FieldPath, "address.city")
	}
}

func TestFromIRDirectIRTarget(t *testing.T) {
	doc := ir.NewDocument()
	doc.Set("id", ir.NewObjectID())
	var target struct {
		ID ir.ObjectID `bson:"id"`
	}
	if err := FromIR(doc, &target); err != nil {
		t.Fatal(err)
	}
	if target.ID == (ir.ObjectID{}) {
		t.Error("ObjectID did not pass through")
	}
}

func TestFromIRDestinationChecks(t *testing.T) {
	doc := ir.NewDocument()
	if err := FromIR(doc, nil); err == nil {
		t.Error("nil destination accepted")
	}
	var p person
	if err := FromIR(doc, p); err == nil {
		t.Error("non-pointer destination accepted")
	}
	var pp *person
	if err := FromIR(doc, pp); err == nil {
		t.Error("nil pointer destination accepted")
	}
}

func TestFromIRIntoAny(t *testing.T) {
	doc := ir.NewDocument()
	doc.Set("n", ir.Int32(5))
	inner := ir.NewDocument()
	inner.Set("s", ir.String("x"))
	doc.Set("sub", inner)

	var got any
	if err := FromIR(doc, &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"n": int64(5), "sub": map[string]any{"s": "x"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromIR into any mismatch (-want +got):\n%s", diff)
	}
}

func TestFromIRAnyFieldGetsPlainValue(t *testing.T) {
	doc := ir.NewDocument()
	doc.Set("any", ir.Int32(5))
	var target struct {
		Any any `bson:"any"`
	}
	if err := FromIR(doc, &target); err != nil {
		t.Fatal(err)
	}
	if v, ok := target.Any.(int64); !ok || v != 5 {
		t.Errorf("any = %v (%T), want int64(5)", target.Any, target.Any)
	}
}

func TestFromIREmbeddedUnexportedType(t *testing.T) {
	doc := ir.NewDocument()
	doc.Set("_id", ir.String("e1"))
	doc.Set("label", ir.String("l"))
	var got tagged
	if err := FromIR(doc, &got); err != nil {
		t.Fatal(err)
	}
	if got.ID != "e1" || got.Label != "l" {
		t.Errorf("FromIR() = %+v, want promoted _id and label", got)
	}
}

func TestToAny(t *testing.T) {
	doc := ir.NewDocument()
	doc.Set("s", ir.String("x"))
	doc.Set("n", ir.Int32(1))
	doc.Set("arr", ir.NewArray(ir.Boolean(true), ir.Null{}))
	oid := ir.NewObjectID()
	doc.Set("id", oid)
	doc.Set("ts", ir.Timestamp{T: 1, I: 2})

	got := ToAny(doc)
	want := map[string]any{
		"s":   "x",
		"n":   int64(1),
		"arr": []any{true, nil},
		"id":  oid.Hex(),
		"ts":  uint64(1)<<32 | 2,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToAny mismatch (-want +got):\n%s", diff)
	}
}
