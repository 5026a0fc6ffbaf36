package ir

import (
	"bytes"
	"fmt"
)

// Equal reports whether two values are equal under kind-exact
// equality: values of different kinds are always unequal (Int32(4)
// != Double(4)), and same-kind values compare by content. Retired
// kinds must never reach an equality check; doing so is a programming
// error and panics.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind().Deprecated() || b.Kind().Deprecated() {
		panic(fmt.Sprintf("ir: equality on deprecated type %s", deprecatedKind(a, b)))
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Double:
		return av == b.(Double)
	case String:
		return av == b.(String)
	case Boolean:
		return av == b.(Boolean)
	case Int32:
		return av == b.(Int32)
	case Int64:
		return av == b.(Int64)
	case DateTime:
		return av == b.(DateTime)
	case Null:
		return true
	case MinKey:
		return true
	case MaxKey:
		return true
	case Code:
		return av == b.(Code)
	case ObjectID:
		return av == b.(ObjectID)
	case Decimal128:
		return av == b.(Decimal128)
	case Timestamp:
		return av == b.(Timestamp)
	case Regex:
		return av == b.(Regex)
	case Binary:
		bv := b.(Binary)
		return av.Subtype == bv.Subtype && bytes.Equal(av.Data, bv.Data)
	case CodeWithScope:
		bv := b.(CodeWithScope)
		return av.Code == bv.Code && Equal(orEmpty(av.Scope), orEmpty(bv.Scope))
	case *Document:
		return equalDocuments(av, b.(*Document))
	case *Array:
		return equalArrays(av, b.(*Array))
	}
	panic(fmt.Sprintf("ir: equality on unknown value type %T", a))
}

func deprecatedKind(a, b Value) string {
	if a.Kind().Deprecated() {
		return a.Kind().String()
	}
	return b.Kind().String()
}

func orEmpty(d *Document) *Document {
	if d == nil {
		return NewDocument()
	}
	return d
}

func equalDocuments(a, b *Document) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.keys {
		if a.keys[i] != b.keys[i] {
			return false
		}
		if !Equal(a.values[i], b.values[i]) {
			return false
		}
	}
	return true
}

func equalArrays(a, b *Array) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.values {
		if !Equal(a.values[i], b.values[i]) {
			return false
		}
	}
	return true
}
