package encode

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/bson-format/go-bson/ir"
)

type user struct {
	ID   int64
	Name string
	Tags []string
}

func (u user) EncodeBSON(e *Encoder) error {
	c := e.KeyedContainer()
	if err := c.Encode("id", u.ID); err != nil {
		return err
	}
	if err := c.Encode("name", u.Name); err != nil {
		return err
	}
	tags := c.NestedOrdered("tags")
	for _, tag := range u.Tags {
		if err := tags.Encode(tag); err != nil {
			return err
		}
	}
	return nil
}

func TestMarshalEncodable(t *testing.T) {
	raw, err := Marshal(user{ID: 42, Name: "a", Tags: []string{"x", "y"}})
	if err != nil {
		t.Fatal(err)
	}
	got, err := ir.ReadDocument(raw)
	if err != nil {
		t.Fatal(err)
	}
	want := ir.NewDocument()
	want.Set("id", ir.Int32(42))
	want.Set("name", ir.String("a"))
	want.Set("tags", ir.NewArray(ir.String("x"), ir.String("y")))
	if !ir.Equal(got, want) {
		t.Errorf("Marshal() decoded to %v, want %v", got.Keys(), want.Keys())
	}
}

func TestMarshalWidensLargeInt(t *testing.T) {
	d, err := EncodeDocument(user{ID: 9_999_999_999, Name: "n"})
	if err != nil {
		t.Fatal(err)
	}
	if v := d.Get("id"); !ir.Equal(v, ir.Int64(9_999_999_999)) {
		t.Errorf("id = %#v, want Int64", v)
	}
}

type silent struct{}

func (silent) EncodeBSON(*Encoder) error { return nil }

func TestTopLevelEncodedNothing(t *testing.T) {
	_, err := EncodeDocument(silent{})
	var tle *TopLevelError
	if !errors.As(err, &tle) {
		t.Fatalf("EncodeDocument err = %v, want TopLevelError", err)
	}
	if !strings.Contains(tle.Error(), "did not encode any values") {
		t.Errorf("message = %q", tle.Error())
	}
}

type scalarOnly struct{}

func (scalarOnly) EncodeBSON(e *Encoder) error { return e.EncodeScalar("just me") }

func TestTopLevelNotADocument(t *testing.T) {
	_, err := EncodeDocument(scalarOnly{})
	var tle *TopLevelError
	if !errors.As(err, &tle) {
		t.Fatalf("EncodeDocument err = %v, want TopLevelError", err)
	}
	if !strings.Contains(tle.Error(), "was not encoded as a complete document") {
		t.Errorf("message = %q", tle.Error())
	}
}

type scores struct{}

func (scores) EncodeBSON(e *Encoder) error {
	c := e.KeyedContainer()
	nums := c.NestedOrdered("nums")
	if err := nums.Encode(1.0); err != nil {
		return err
	}
	return nums.Encode(math.NaN())
}

func TestErrorCarriesPath(t *testing.T) {
	_, err := EncodeDocument(scores{})
	var ee *EncodeError
	if !errors.As(err, &ee) {
		t.Fatalf("EncodeDocument err = %v, want EncodeError", err)
	}
	if ee.Path != "nums[1]" {
		t.Errorf("Path = %q, want %q", ee.Path, "nums[1]")
	}
	var ne *ir.NumberError
	if !errors.As(err, &ne) {
		t.Errorf("cause %v is not a NumberError", err)
	}
}

type nested struct {
	Inner user
}

func (n nested) EncodeBSON(e *Encoder) error {
	c := e.KeyedContainer()
	return c.Encode("inner", n.Inner)
}

func TestNestedEncodable(t *testing.T) {
	d, err := EncodeDocument(nested{Inner: user{ID: 1, Name: "in"}})
	if err != nil {
		t.Fatal(err)
	}
	inner, ok := d.Get("inner").(*ir.Document)
	if !ok {
		t.Fatalf("inner = %#v, want document", d.Get("inner"))
	}
	if v := inner.Get("name"); !ir.Equal(v, ir.String("in")) {
		t.Errorf("inner.name = %#v", v)
	}
}

type silentField struct{}

func (silentField) EncodeBSON(*Encoder) error { return nil }

type withSilent struct{}

func (withSilent) EncodeBSON(e *Encoder) error {
	return e.KeyedContainer().Encode("empty", silentField{})
}

func TestSilentFieldBecomesEmptyDocument(t *testing.T) {
	d, err := EncodeDocument(withSilent{})
	if err != nil {
		t.Fatal(err)
	}
	inner, ok := d.Get("empty").(*ir.Document)
	if !ok || inner.Len() != 0 {
		t.Errorf("empty = %#v, want empty document", d.Get("empty"))
	}
}

type shapeConflict struct{}

func (shapeConflict) EncodeBSON(e *Encoder) error {
	e.KeyedContainer()
	e.OrderedContainer()
	return nil
}

func TestContainerShapeConflictPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("conflicting container shapes did not panic")
		}
	}()
	EncodeDocument(shapeConflict{})
}

type reclaimed struct{}

func (reclaimed) EncodeBSON(e *Encoder) error {
	if err := e.EncodeScalar(int32(1)); err != nil {
		return err
	}
	return e.EncodeScalar(int32(2))
}

func TestScalarReclaimPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("claiming a filled scalar slot did not panic")
		}
	}()
	EncodeDocument(reclaimed{})
}

type containerAsValue struct{}

func (containerAsValue) EncodeBSON(e *Encoder) error {
	c := e.KeyedContainer()
	return c.Encode("self", c)
}

func TestContainerPassedAsValuePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("container passed as a value did not panic")
		}
	}()
	EncodeDocument(containerAsValue{})
}

func TestKeyedContainerIdempotent(t *testing.T) {
	e := NewEncoder()
	a := e.KeyedContainer()
	b := e.KeyedContainer()
	if a.doc != b.doc {
		t.Error("repeated KeyedContainer() returned a different document")
	}
}

func TestKeyedRemoveAndNil(t *testing.T) {
	e := NewEncoder()
	c := e.KeyedContainer()
	if err := c.Encode("keep", int32(1)); err != nil {
		t.Fatal(err)
	}
	if err := c.Encode("drop", int32(2)); err != nil {
		t.Fatal(err)
	}
	c.Remove("drop")
	c.EncodeNil("none")
	doc := c.doc
	if _, ok := doc.Lookup("drop"); ok {
		t.Error("removed key still present")
	}
	if v := doc.Get("none"); !ir.Equal(v, ir.Null{}) {
		t.Errorf("none = %#v, want null", v)
	}
}
