package encode

import (
	"reflect"

	"github.com/bson-format/go-bson/ir"
)

// EncodeDocument encodes v as a complete document. Values that are
// already documents pass through; anything else must box to a
// document, and a value that encodes nothing at all is an error at
// the top level.
func EncodeDocument(v any) (*ir.Document, error) {
	if d, ok := v.(*ir.Document); ok && d != nil {
		return d, nil
	}
	e := NewEncoder()
	node, err := e.box(v)
	if err != nil {
		return nil, e.wrap(err)
	}
	if node == nil {
		return nil, &TopLevelError{Value: v, Message: "did not encode any values"}
	}
	d, ok := node.(*ir.Document)
	if !ok {
		return nil, &TopLevelError{Value: v, Message: "was not encoded as a complete document"}
	}
	return d, nil
}

// Marshal encodes v as a complete document and returns its wire bytes.
func Marshal(v any) ([]byte, error) {
	d, err := EncodeDocument(v)
	if err != nil {
		return nil, err
	}
	return d.Encode()
}

// EncodeDocumentOrNil is EncodeDocument with absence folded in: a nil
// value, a typed nil pointer, or a value that encodes an empty
// document all yield (nil, nil).
func EncodeDocumentOrNil(v any) (*ir.Document, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return nil, nil
		}
	}
	e := NewEncoder()
	node, err := e.box(v)
	if err != nil {
		return nil, e.wrap(err)
	}
	if node == nil {
		return nil, nil
	}
	d, ok := node.(*ir.Document)
	if !ok {
		return nil, &TopLevelError{Value: v, Message: "was not encoded as a complete document"}
	}
	if d.Len() == 0 {
		return nil, nil
	}
	return d, nil
}

// EncodeAll encodes each element of vs as a document, preserving
// per-element absence: elements that encode nothing contribute a nil
// entry rather than an empty document.
func EncodeAll(vs []any) ([]*ir.Document, error) {
	out := make([]*ir.Document, len(vs))
	for i, v := range vs {
		d, err := EncodeDocumentOrNil(v)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}
