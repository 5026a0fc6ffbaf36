package gomap

import (
	"reflect"
	"strings"
)

// fieldInfo holds field metadata extracted from a `bson` struct tag.
type fieldInfo struct {
	// Name is the element key, after any tag rename.
	Name string

	// OmitEmpty drops the field when its value is the zero value.
	OmitEmpty bool

	// Skip drops the field unconditionally (tag "-").
	Skip bool
}

// parseFieldTag reads the `bson` tag of f. An absent tag keeps the
// field name with its first letter lowered, matching the common
// driver convention.
func parseFieldTag(f reflect.StructField) fieldInfo {
	info := fieldInfo{Name: lowerFirst(f.Name)}
	tag, ok := f.Tag.Lookup("bson")
	if !ok {
		return info
	}
	if tag == "-" {
		info.Skip = true
		return info
	}
	parts := strings.Split(tag, ",")
	if parts[0] != "" {
		info.Name = parts[0]
	}
	for _, p := range parts[1:] {
		if p == "omitempty" {
			info.OmitEmpty = true
		}
	}
	return info
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'A' && r[0] <= 'Z' {
		r[0] += 'a' - 'A'
	}
	return string(r)
}

// isEmptyValue reports whether v is the zero value for omitempty.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}
