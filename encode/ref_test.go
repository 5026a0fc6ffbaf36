package encode

import (
	"testing"

	"github.com/bson-format/go-bson/ir"
)

type base struct {
	Kind string
}

func (b base) EncodeBSON(e *Encoder) error {
	return e.KeyedContainer().Encode("kind", b.Kind)
}

type derived struct {
	Base base
	Name string
}

func (d derived) EncodeBSON(e *Encoder) error {
	c := e.KeyedContainer()
	super := c.SuperEncoder("base")
	defer super.Finalize()
	if err := d.Base.EncodeBSON(&super.Encoder); err != nil {
		return err
	}
	return c.Encode("name", d.Name)
}

func TestSuperEncoderSplicesAtKey(t *testing.T) {
	d, err := EncodeDocument(derived{Base: base{Kind: "b"}, Name: "n"})
	if err != nil {
		t.Fatal(err)
	}
	want := ir.NewDocument()
	inner := ir.NewDocument()
	inner.Set("kind", ir.String("b"))
	want.Set("base", inner)
	want.Set("name", ir.String("n"))
	if !ir.Equal(d, want) {
		t.Errorf("document mismatch: got keys %v", d.Keys())
	}
}

type emptyBase struct{}

func (emptyBase) EncodeBSON(*Encoder) error { return nil }

type derivedEmpty struct{}

func (derivedEmpty) EncodeBSON(e *Encoder) error {
	c := e.KeyedContainer()
	super := c.SuperEncoder("base")
	defer super.Finalize()
	return emptyBase{}.EncodeBSON(&super.Encoder)
}

func TestSuperEncoderEmptySplicesEmptyDocument(t *testing.T) {
	d, err := EncodeDocument(derivedEmpty{})
	if err != nil {
		t.Fatal(err)
	}
	inner, ok := d.Get("base").(*ir.Document)
	if !ok || inner.Len() != 0 {
		t.Errorf("base = %#v, want empty document", d.Get("base"))
	}
}

func TestSuperEncoderSplicesAtIndex(t *testing.T) {
	e := NewEncoder()
	o := e.OrderedContainer()
	super := o.SuperEncoder()
	if err := o.Encode(int32(2)); err != nil {
		t.Fatal(err)
	}
	inner := super.Encoder.KeyedContainer()
	if err := inner.Encode("kind", "first"); err != nil {
		t.Fatal(err)
	}
	super.Finalize()

	arr := o.arr
	if arr.Len() != 2 {
		t.Fatalf("array length = %d, want 2", arr.Len())
	}
	doc, ok := arr.At(0).(*ir.Document)
	if !ok {
		t.Fatalf("element 0 = %#v, want document", arr.At(0))
	}
	if v := doc.Get("kind"); !ir.Equal(v, ir.String("first")) {
		t.Errorf("kind = %#v", v)
	}
	if v := arr.At(1); !ir.Equal(v, ir.Int32(2)) {
		t.Errorf("element 1 = %#v, want 2", v)
	}
}

func TestFinalizeIdempotent(t *testing.T) {
	e := NewEncoder()
	o := e.OrderedContainer()
	super := o.SuperEncoder()
	super.Encoder.KeyedContainer()
	super.Finalize()
	super.Finalize()
	if o.Len() != 1 {
		t.Errorf("array length = %d after repeated Finalize, want 1", o.Len())
	}
}

func TestSuperEncoderInterleavedKeyOrder(t *testing.T) {
	e := NewEncoder()
	c := e.KeyedContainer()
	if err := c.Encode("before", int32(1)); err != nil {
		t.Fatal(err)
	}
	super := c.SuperEncoder("base")
	if err := c.Encode("after", int32(2)); err != nil {
		t.Fatal(err)
	}
	inner := super.Encoder.KeyedContainer()
	if err := inner.Encode("kind", "b"); err != nil {
		t.Fatal(err)
	}
	super.Finalize()

	got := c.doc.Keys()
	want := []string{"before", "base", "after"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keys = %v, want %v", got, want)
		}
	}
}

func TestSuperEncoderSecondWritePanics(t *testing.T) {
	e := NewEncoder()
	c := e.KeyedContainer()
	super := c.SuperEncoder("base")
	defer super.Finalize()
	if err := super.Encoder.EncodeScalar(int32(1)); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Error("second top-level write on a referencing encoder did not panic")
		}
	}()
	super.Encoder.EncodeScalar(int32(2))
}

func TestFinalizeMultipleValuesPanics(t *testing.T) {
	e := NewEncoder()
	o := e.OrderedContainer()
	super := o.SuperEncoder()
	super.Encoder.push(ir.Int32(1))
	super.Encoder.push(ir.Int32(2))
	defer func() {
		if recover() == nil {
			t.Error("Finalize with two finished values did not panic")
		}
	}()
	super.Finalize()
}

func TestSuperEncoderPathContinuesParent(t *testing.T) {
	e := NewEncoder()
	c := e.KeyedContainer()
	super := c.SuperEncoder("base")
	defer super.Finalize()
	if got := super.PathString(); got != "base" {
		t.Errorf("PathString() = %q, want %q", got, "base")
	}
}
