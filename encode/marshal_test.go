package encode

import (
	"testing"

	"github.com/bson-format/go-bson/ir"
)

type maybe struct {
	Set bool
}

func (m maybe) EncodeBSON(e *Encoder) error {
	if !m.Set {
		return nil
	}
	return e.KeyedContainer().Encode("set", true)
}

func TestEncodeDocumentOrNil(t *testing.T) {
	var nilPtr *user
	var nilIface Encodable
	var nilMap map[string]any
	tests := []struct {
		name string
		v    any
		nil_ bool
	}{
		{"nil", nil, true},
		{"typed nil pointer", nilPtr, true},
		{"typed nil interface", nilIface, true},
		{"typed nil map", nilMap, true},
		{"encodable writing nothing", maybe{}, true},
		{"empty document", ir.NewDocument(), true},
		{"encodable writing fields", maybe{Set: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := EncodeDocumentOrNil(tt.v)
			if err != nil {
				t.Fatal(err)
			}
			if got := d == nil; got != tt.nil_ {
				t.Errorf("EncodeDocumentOrNil() = %v, want nil=%v", d, tt.nil_)
			}
		})
	}
}

func TestEncodeDocumentOrNilScalarStillErrors(t *testing.T) {
	if _, err := EncodeDocumentOrNil(scalarOnly{}); err == nil {
		t.Error("scalar top level did not error")
	}
}

func TestEncodeAllPreservesAbsence(t *testing.T) {
	docs, err := EncodeAll([]any{maybe{Set: true}, maybe{}, maybe{Set: true}})
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 3 {
		t.Fatalf("EncodeAll() returned %d documents, want 3", len(docs))
	}
	if docs[0] == nil || docs[2] == nil {
		t.Error("present elements encoded to nil")
	}
	if docs[1] != nil {
		t.Errorf("absent element encoded to %v, want nil", docs[1])
	}
}

func TestEncodeDocumentPassesThroughDocument(t *testing.T) {
	d := ir.NewDocument()
	d.Set("a", ir.Int32(1))
	got, err := EncodeDocument(d)
	if err != nil {
		t.Fatal(err)
	}
	if got != d {
		t.Error("EncodeDocument copied an already built document")
	}
}

func TestMarshalBytesRoundTrip(t *testing.T) {
	raw, err := Marshal(user{ID: 7, Name: "r", Tags: []string{"t"}})
	if err != nil {
		t.Fatal(err)
	}
	d, err := ir.ReadDocument(raw)
	if err != nil {
		t.Fatal(err)
	}
	if v := d.Get("name"); !ir.Equal(v, ir.String("r")) {
		t.Errorf("name = %#v", v)
	}
}
