package gomap

import (
	"encoding"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/bson-format/go-bson/debug"
	"github.com/bson-format/go-bson/ir"
	"github.com/bson-format/go-bson/wire"
)

// ToIR converts a Go value to an ir value by reflection.
func ToIR(v any, opts ...Option) (ir.Value, error) {
	if v == nil {
		return ir.Null{}, nil
	}
	o := buildOptions(opts)
	visited := make(map[uintptr]string) // pointer address -> field path
	return toIRValue(reflect.ValueOf(v), "", visited, o)
}

// ToDocument is ToIR constrained to values that convert to documents.
func ToDocument(v any, opts ...Option) (*ir.Document, error) {
	node, err := ToIR(v, opts...)
	if err != nil {
		return nil, err
	}
	d, ok := node.(*ir.Document)
	if !ok {
		return nil, &MarshalError{
			Message: fmt.Sprintf("%T converts to %s, not a document", v, node.Kind()),
		}
	}
	return d, nil
}

// toIRValue converts a reflect.Value to an ir value. fieldPath is for
// error reporting; visited tracks pointer addresses so reference
// cycles fail instead of recursing forever.
func toIRValue(val reflect.Value, fieldPath string, visited map[uintptr]string, o *options) (ir.Value, error) {
	if !val.IsValid() {
		return ir.Null{}, nil
	}

	typ := val.Type()
	kind := typ.Kind()

	if (kind == reflect.Pointer || kind == reflect.Interface) && val.IsNil() {
		return ir.Null{}, nil
	}

	if o.resolver != nil && val.CanInterface() {
		node, handled, err := o.resolve(val, fieldPath)
		if err != nil || handled {
			return node, err
		}
	}

	if kind == reflect.Pointer {
		ptrAddr := val.Pointer()
		if prevPath, seen := visited[ptrAddr]; seen {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("circular reference detected: %s -> %s", prevPath, fieldPath),
			}
		}
		visited[ptrAddr] = fieldPath
		node, err := toIRValue(val.Elem(), fieldPath, visited, o)
		delete(visited, ptrAddr)
		return node, err
	}

	// time.Time before the struct case
	if t, ok := val.Interface().(time.Time); ok {
		return ir.FromTime(t), nil
	}

	if tm, ok := val.Interface().(encoding.TextMarshaler); ok {
		text, err := tm.MarshalText()
		if err != nil {
			return nil, &MarshalError{FieldPath: fieldPath, Message: "MarshalText failed", Err: err}
		}
		return ir.String(text), nil
	}
	if val.CanAddr() {
		if tm, ok := val.Addr().Interface().(encoding.TextMarshaler); ok {
			text, err := tm.MarshalText()
			if err != nil {
				return nil, &MarshalError{FieldPath: fieldPath, Message: "MarshalText failed", Err: err}
			}
			return ir.String(text), nil
		}
	}

	switch kind {
	case reflect.String:
		return ir.String(val.String()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.Int(val.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		node, err := ir.Uint(val.Uint())
		if err != nil {
			return nil, &MarshalError{FieldPath: fieldPath, Message: "value out of range", Err: err}
		}
		return node, nil

	case reflect.Float32, reflect.Float64:
		node, err := ir.ExactNumber(val.Float())
		if err != nil {
			return nil, &MarshalError{FieldPath: fieldPath, Message: "value not representable", Err: err}
		}
		return node, nil

	case reflect.Bool:
		return ir.Boolean(val.Bool()), nil

	case reflect.Slice, reflect.Array:
		return toIRSlice(val, fieldPath, visited, o)

	case reflect.Map:
		return toIRMap(val, fieldPath, visited, o)

	case reflect.Struct:
		return toIRStruct(val, fieldPath, visited, o)

	case reflect.Interface:
		if val.IsNil() {
			return ir.Null{}, nil
		}
		return toIRValue(val.Elem(), fieldPath, visited, o)

	default:
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("unsupported type: %s", typ),
		}
	}
}

// resolve runs the installed resolver on val's interface value.
func (o *options) resolve(val reflect.Value, fieldPath string) (ir.Value, bool, error) {
	node, handled, err := o.resolver(val.Interface())
	if err != nil {
		return nil, true, err
	}
	if handled && debug.Gomap() {
		debug.Logf("gomap: resolver handled %s at %q\n", val.Type(), fieldPath)
	}
	return node, handled, nil
}

// toIRSlice converts a slice or array to an ir array. Byte slices
// become generic binary values instead.
func toIRSlice(val reflect.Value, fieldPath string, visited map[uintptr]string, o *options) (ir.Value, error) {
	if val.Kind() == reflect.Slice {
		if val.IsNil() {
			return ir.Null{}, nil
		}
		if val.Type().Elem().Kind() == reflect.Uint8 {
			return ir.Binary{Subtype: wire.BinaryGeneric, Data: val.Bytes()}, nil
		}
		slicePtr := val.Pointer()
		if prevPath, seen := visited[slicePtr]; seen {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("circular reference detected: %s -> %s", prevPath, fieldPath),
			}
		}
		visited[slicePtr] = fieldPath
		defer delete(visited, slicePtr)
	}

	arr := ir.NewArray()
	for i := 0; i < val.Len(); i++ {
		elemPath := fmt.Sprintf("%s[%d]", fieldPath, i)
		node, err := toIRValue(val.Index(i), elemPath, visited, o)
		if err != nil {
			return nil, err
		}
		arr.Append(node)
	}
	return arr, nil
}

// toIRMap converts a string-keyed map to a document with sorted keys.
func toIRMap(val reflect.Value, fieldPath string, visited map[uintptr]string, o *options) (ir.Value, error) {
	if val.IsNil() {
		return ir.Null{}, nil
	}
	if val.Type().Key().Kind() != reflect.String {
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("map keys must be strings, got %s", val.Type().Key()),
		}
	}

	mapPtr := val.Pointer()
	if prevPath, seen := visited[mapPtr]; seen {
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("circular reference detected: %s -> %s", prevPath, fieldPath),
		}
	}
	visited[mapPtr] = fieldPath
	defer delete(visited, mapPtr)

	keys := make([]string, 0, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		keys = append(keys, iter.Key().String())
	}
	sort.Strings(keys)

	doc := ir.NewDocument()
	for _, key := range keys {
		valuePath := key
		if fieldPath != "" {
			valuePath = fieldPath + "." + key
		}
		node, err := toIRValue(val.MapIndex(reflect.ValueOf(key)), valuePath, visited, o)
		if err != nil {
			return nil, err
		}
		doc.Set(key, node)
	}
	return doc, nil
}

// toIRStruct converts a struct to a document in field declaration
// order. Embedded structs flatten their fields into the parent.
func toIRStruct(val reflect.Value, fieldPath string, visited map[uintptr]string, o *options) (ir.Value, error) {
	doc := ir.NewDocument()
	if err := structFields(val, fieldPath, visited, o, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func structFields(val reflect.Value, fieldPath string, visited map[uintptr]string, o *options, doc *ir.Document) error {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		fieldVal := val.Field(i)

		// embedded structs flatten even when the embedded type name
		// is unexported, matching encoding/json promotion
		if field.Anonymous {
			ev := fieldVal
			if ev.Kind() == reflect.Pointer {
				if ev.IsNil() {
					continue
				}
				ev = ev.Elem()
			}
			if ev.Kind() == reflect.Struct {
				if err := structFields(ev, fieldPath, visited, o, doc); err != nil {
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
		if info.OmitEmpty && isEmptyValue(fieldVal) {
			continue
		}
		if _, exists := doc.Lookup(info.Name); exists {
			return &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("duplicate field name %q", info.Name),
			}
		}

		nextPath := info.Name
		if fieldPath != "" {
			nextPath = fieldPath + "." + info.Name
		}
		node, err := toIRValue(fieldVal, nextPath, visited, o)
		if err != nil {
			return err
		}
		doc.Set(info.Name, node)
	}
	return nil
}
