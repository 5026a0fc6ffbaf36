package ir

import (
	"fmt"

	"github.com/bson-format/go-bson/wire"
)

// ReadOption configures the read constructors.
type ReadOption func(*readOpts)

type readOpts struct {
	convertDeprecated bool
}

// ReadDeprecatedAs enables conversion of retired kinds on read:
// dbPointer elements become {"$ref", "$id"} documents, symbols become
// strings, and undefined becomes null. Without this option retired
// kinds fail with a DeprecatedTypeError.
func ReadDeprecatedAs() ReadOption {
	return func(o *readOpts) { o.convertDeprecated = true }
}

// ReadDocument builds the value tree of one framed document.
func ReadDocument(doc []byte, opts ...ReadOption) (*Document, error) {
	o := &readOpts{}
	for _, opt := range opts {
		opt(o)
	}
	return readDocument(doc, o)
}

func readDocument(doc []byte, o *readOpts) (*Document, error) {
	it, err := wire.NewIterator(doc)
	if err != nil {
		return nil, err
	}
	res := NewDocument()
	for it.Next() {
		v, err := readValue(it, o)
		if err != nil {
			return nil, fmt.Errorf("element %q: %w", it.Key(), err)
		}
		res.Set(it.Key(), v)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func readArray(doc []byte, o *readOpts) (*Array, error) {
	it, err := wire.NewIterator(doc)
	if err != nil {
		return nil, err
	}
	res := NewArray()
	for it.Next() {
		v, err := readValue(it, o)
		if err != nil {
			return nil, fmt.Errorf("element %q: %w", it.Key(), err)
		}
		res.Append(v)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// ReadValue constructs the value at the iterator's current element.
// The constructed value's kind always matches the element type.
func ReadValue(it *wire.Iterator, opts ...ReadOption) (Value, error) {
	o := &readOpts{}
	for _, opt := range opts {
		opt(o)
	}
	return readValue(it, o)
}

func readValue(it *wire.Iterator, o *readOpts) (Value, error) {
	switch it.Type() {
	case wire.TypeDouble:
		f, err := it.Double()
		return Double(f), err
	case wire.TypeString:
		s, err := it.StringValue()
		return String(s), err
	case wire.TypeDocument:
		raw, err := it.Document()
		if err != nil {
			return nil, err
		}
		return readDocument(raw, o)
	case wire.TypeArray:
		raw, err := it.Array()
		if err != nil {
			return nil, err
		}
		return readArray(raw, o)
	case wire.TypeBinary:
		sub, data, err := it.Binary()
		if err != nil {
			return nil, err
		}
		cp := make([]byte, len(data))
		copy(cp, data)
		return Binary{Subtype: sub, Data: cp}, nil
	case wire.TypeObjectID:
		oid, err := it.ObjectID()
		return ObjectID(oid), err
	case wire.TypeBool:
		v, err := it.Bool()
		return Boolean(v), err
	case wire.TypeDateTime:
		ms, err := it.DateTime()
		return DateTime(ms), err
	case wire.TypeNull:
		return Null{}, nil
	case wire.TypeRegex:
		pat, ropts, err := it.Regex()
		return Regex{Pattern: pat, Options: ropts}, err
	case wire.TypeCode:
		c, err := it.Code()
		return Code(c), err
	case wire.TypeCodeWithScope:
		code, scope, err := it.CodeWithScope()
		if err != nil {
			return nil, err
		}
		doc, err := readDocument(scope, o)
		if err != nil {
			return nil, err
		}
		return CodeWithScope{Code: code, Scope: doc}, nil
	case wire.TypeInt32:
		v, err := it.Int32()
		return Int32(v), err
	case wire.TypeTimestamp:
		t, i, err := it.Timestamp()
		return Timestamp{T: t, I: i}, err
	case wire.TypeInt64:
		v, err := it.Int64()
		return Int64(v), err
	case wire.TypeDecimal128:
		h, l, err := it.Decimal128()
		return NewDecimal128(h, l), err
	case wire.TypeMinKey:
		return MinKey{}, nil
	case wire.TypeMaxKey:
		return MaxKey{}, nil
	case wire.TypeUndefined:
		if o.convertDeprecated {
			return Null{}, nil
		}
		return nil, &DeprecatedTypeError{Type: wire.TypeUndefined, Decode: true}
	case wire.TypeDBPointer:
		if o.convertDeprecated {
			ns, oid, err := it.DBPointer()
			if err != nil {
				return nil, err
			}
			return DBPointer{Namespace: ns, Pointer: ObjectID(oid)}.AsDocument(), nil
		}
		return nil, &DeprecatedTypeError{Type: wire.TypeDBPointer, Decode: true}
	case wire.TypeSymbol:
		if o.convertDeprecated {
			s, err := it.Symbol()
			if err != nil {
				return nil, err
			}
			return Symbol(s).AsString(), nil
		}
		return nil, &DeprecatedTypeError{Type: wire.TypeSymbol, Decode: true}
	}
	return nil, &DeprecatedTypeError{Type: it.Type(), Decode: true}
}
