package ir

import (
	"github.com/bson-format/go-bson/wire"
)

// The retired kinds below may appear in decoded input but are not
// encodable: their append contract always fails with a
// DeprecatedTypeError, and the uniform read path rejects them unless
// conversion is requested (see ReadDeprecatedAs).

// Undefined is the retired undefined value.
type Undefined struct{}

func (Undefined) Kind() wire.Type { return wire.TypeUndefined }

func (Undefined) appendTo(*wire.Buffer, string) error {
	return &DeprecatedTypeError{Type: wire.TypeUndefined}
}

// DBPointer is the retired namespace/identifier reference value.
type DBPointer struct {
	Namespace string
	Pointer   ObjectID
}

func (DBPointer) Kind() wire.Type { return wire.TypeDBPointer }

func (DBPointer) appendTo(*wire.Buffer, string) error {
	return &DeprecatedTypeError{Type: wire.TypeDBPointer}
}

// AsDocument re-expresses the pointer as a {"$ref", "$id"} document,
// the one sanctioned way to carry a decoded dbPointer forward.
func (p DBPointer) AsDocument() *Document {
	doc := NewDocument()
	doc.Set("$ref", String(p.Namespace))
	doc.Set("$id", p.Pointer)
	return doc
}

// Symbol is the retired symbol value.
type Symbol string

func (Symbol) Kind() wire.Type { return wire.TypeSymbol }

func (Symbol) appendTo(*wire.Buffer, string) error {
	return &DeprecatedTypeError{Type: wire.TypeSymbol}
}

// AsString re-expresses the symbol as a plain string value.
func (s Symbol) AsString() String {
	return String(s)
}
