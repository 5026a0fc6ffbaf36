package gomap

import (
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/bson-format/go-bson/ir"
)

// FromIR converts an ir value to a Go value. v must be a non-nil
// pointer to the target.
func FromIR(node ir.Value, v any) error {
	if v == nil {
		return &UnmarshalError{Message: "destination value cannot be nil"}
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer {
		return &UnmarshalError{Message: "destination value must be a pointer"}
	}
	if val.IsNil() {
		return &UnmarshalError{Message: "destination pointer cannot be nil"}
	}
	return fromIRValue(node, val.Elem(), "")
}

// ToAny converts an ir value to plain Go values: documents become
// map[string]any, arrays []any, scalars their natural Go type. The
// result is what expression evaluation and generic JSON/YAML
// machinery expect.
func ToAny(node ir.Value) any {
	switch t := node.(type) {
	case nil, ir.Null:
		return nil
	case ir.Double:
		return float64(t)
	case ir.String:
		return string(t)
	case ir.Boolean:
		return bool(t)
	case ir.Int32:
		return int64(t)
	case ir.Int64:
		return int64(t)
	case ir.DateTime:
		return t.Time()
	case ir.Binary:
		return t.Data
	case ir.ObjectID:
		return t.Hex()
	case ir.Decimal128:
		return t.String()
	case ir.Regex:
		return t.Pattern
	case ir.Code:
		return string(t)
	case ir.Timestamp:
		return uint64(t.T)<<32 | uint64(t.I)
	case ir.MinKey, ir.MaxKey:
		return nil
	case *ir.Document:
		m := make(map[string]any, t.Len())
		t.Range(func(key string, v ir.Value) bool {
			m[key] = ToAny(v)
			return true
		})
		return m
	case *ir.Array:
		s := make([]any, 0, t.Len())
		for _, v := range t.Values() {
			s = append(s, ToAny(v))
		}
		return s
	}
	return nil
}

func fromIRValue(node ir.Value, val reflect.Value, fieldPath string) error {
	if node == nil {
		return &UnmarshalError{FieldPath: fieldPath, Message: "value is nil"}
	}

	typ := val.Type()

	// a null clears pointers and leaves everything else zero
	if _, ok := node.(ir.Null); ok {
		val.Set(reflect.Zero(typ))
		return nil
	}

	if typ.Kind() == reflect.Pointer {
		if val.IsNil() {
			val.Set(reflect.New(typ.Elem()))
		}
		return fromIRValue(node, val.Elem(), fieldPath)
	}

	// empty interfaces get plain Go values, checked first since every
	// node is assignable to any
	if typ.Kind() == reflect.Interface && typ.NumMethod() == 0 {
		a := ToAny(node)
		if a == nil {
			val.Set(reflect.Zero(typ))
			return nil
		}
		val.Set(reflect.ValueOf(a))
		return nil
	}

	// direct ir targets take the node as-is
	if reflect.TypeOf(node).AssignableTo(typ) {
		val.Set(reflect.ValueOf(node))
		return nil
	}

	switch typ.Kind() {
	case reflect.Interface:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("cannot unmarshal into interface type %s", typ),
		}

	case reflect.String:
		s, ok := node.(ir.String)
		if !ok {
			return typeMismatch(node, typ, fieldPath)
		}
		val.SetString(string(s))
		return nil

	case reflect.Bool:
		b, ok := node.(ir.Boolean)
		if !ok {
			return typeMismatch(node, typ, fieldPath)
		}
		val.SetBool(bool(b))
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := asInt64(node, typ, fieldPath)
		if err != nil {
			return err
		}
		if val.OverflowInt(n) {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("%d overflows %s", n, typ),
			}
		}
		val.SetInt(n)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := asInt64(node, typ, fieldPath)
		if err != nil {
			return err
		}
		if n < 0 || val.OverflowUint(uint64(n)) {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("%d overflows %s", n, typ),
			}
		}
		val.SetUint(uint64(n))
		return nil

	case reflect.Float32, reflect.Float64:
		switch t := node.(type) {
		case ir.Double:
			val.SetFloat(float64(t))
		case ir.Int32:
			val.SetFloat(float64(t))
		case ir.Int64:
			val.SetFloat(float64(t))
		default:
			return typeMismatch(node, typ, fieldPath)
		}
		return nil

	case reflect.Slice:
		if typ.Elem().Kind() == reflect.Uint8 {
			b, ok := node.(ir.Binary)
			if !ok {
				return typeMismatch(node, typ, fieldPath)
			}
			val.SetBytes(b.Data)
			return nil
		}
		arr, ok := node.(*ir.Array)
		if !ok {
			return typeMismatch(node, typ, fieldPath)
		}
		out := reflect.MakeSlice(typ, arr.Len(), arr.Len())
		for i, elem := range arr.Values() {
			elemPath := fmt.Sprintf("%s[%d]", fieldPath, i)
			if err := fromIRValue(elem, out.Index(i), elemPath); err != nil {
				return err
			}
		}
		val.Set(out)
		return nil

	case reflect.Map:
		if typ.Key().Kind() != reflect.String {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("map keys must be strings, got %s", typ.Key()),
			}
		}
		doc, ok := node.(*ir.Document)
		if !ok {
			return typeMismatch(node, typ, fieldPath)
		}
		out := reflect.MakeMapWithSize(typ, doc.Len())
		var rerr error
		doc.Range(func(key string, v ir.Value) bool {
			valuePath := key
			if fieldPath != "" {
				valuePath = fieldPath + "." + key
			}
			ev := reflect.New(typ.Elem()).Elem()
			if rerr = fromIRValue(v, ev, valuePath); rerr != nil {
				return false
			}
			out.SetMapIndex(reflect.ValueOf(key).Convert(typ.Key()), ev)
			return true
		})
		if rerr != nil {
			return rerr
		}
		val.Set(out)
		return nil

	case reflect.Struct:
		if typ == reflect.TypeOf(time.Time{}) {
			dt, ok := node.(ir.DateTime)
			if !ok {
				return typeMismatch(node, typ, fieldPath)
			}
			val.Set(reflect.ValueOf(dt.Time()))
			return nil
		}
		doc, ok := node.(*ir.Document)
		if !ok {
			return typeMismatch(node, typ, fieldPath)
		}
		return fromIRStruct(doc, val, fieldPath)
	}

	return &UnmarshalError{
		FieldPath: fieldPath,
		Message:   fmt.Sprintf("unsupported type: %s", typ),
	}
}

func fromIRStruct(doc *ir.Document, val reflect.Value, fieldPath string) error {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		fieldVal := val.Field(i)

		// embedded structs promote even when the embedded type name
		// is unexported, matching encoding/json
		if field.Anonymous {
			ev := fieldVal
			if ev.Kind() == reflect.Pointer {
				if ev.IsNil() {
					// a nil embedded pointer of unexported type
					// cannot be allocated
					if !field.IsExported() {
						continue
					}
					ev.Set(reflect.New(ev.Type().Elem()))
				}
				ev = ev.Elem()
			}
			if ev.Kind() == reflect.Struct {
				if err := fromIRStruct(doc, ev, fieldPath); err != nil {
					return err
				}
				continue
			}
		}
		if !field.IsExported() {
			continue
		}

		info := parseFieldTag(field)
		if info.Skip {
			continue
		}
		node, ok := doc.Lookup(info.Name)
		if !ok {
			continue
		}
		nextPath := info.Name
		if fieldPath != "" {
			nextPath = fieldPath + "." + info.Name
		}
		if err := fromIRValue(node, fieldVal, nextPath); err != nil {
			return err
		}
	}
	return nil
}

// asInt64 extracts an integral value, accepting doubles only when
// they are exactly integral.
func asInt64(node ir.Value, typ reflect.Type, fieldPath string) (int64, error) {
	switch t := node.(type) {
	case ir.Int32:
		return int64(t), nil
	case ir.Int64:
		return int64(t), nil
	case ir.Double:
		f := float64(t)
		if math.Trunc(f) != f || f < -(1<<63) || f >= 1<<63 {
			return 0, &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("%v is not an exact %s", f, typ),
			}
		}
		return int64(f), nil
	}
	return 0, typeMismatch(node, typ, fieldPath)
}

func typeMismatch(node ir.Value, typ reflect.Type, fieldPath string) error {
	return &UnmarshalError{
		FieldPath: fieldPath,
		Message:   fmt.Sprintf("cannot unmarshal %s into %s", node.Kind(), typ),
	}
}
