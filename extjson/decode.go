package extjson

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bson-format/go-bson/ir"
)

// DecodeError reports invalid extended JSON input.
type DecodeError struct {
	Message string
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Err != nil && e.Message != "" {
		return fmt.Sprintf("extjson: %s: %v", e.Message, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("extjson: %v", e.Err)
	}
	return fmt.Sprintf("extjson: %s", e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode parses one extended JSON value, recognizing $-keyed
// wrappers. Key order is preserved in decoded documents.
func Decode(data []byte) (ir.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &DecodeError{Message: "trailing data after value"}
	}
	return v, nil
}

// DecodeDocument is Decode constrained to a top-level document.
func DecodeDocument(data []byte) (*ir.Document, error) {
	v, err := Decode(data)
	if err != nil {
		return nil, err
	}
	d, ok := v.(*ir.Document)
	if !ok {
		return nil, &DecodeError{Message: fmt.Sprintf("top-level value is %s, not a document", v.Kind())}
	}
	return d, nil
}

func decodeValue(dec *json.Decoder) (ir.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (ir.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, &DecodeError{Message: fmt.Sprintf("unexpected delimiter %q", t.String())}
	case string:
		return ir.String(t), nil
	case json.Number:
		return decodeNumber(t)
	case bool:
		return ir.Boolean(t), nil
	case nil:
		return ir.Null{}, nil
	}
	return nil, &DecodeError{Message: fmt.Sprintf("unexpected token %v", tok)}
}

func decodeNumber(n json.Number) (ir.Value, error) {
	s := n.String()
	if strings.ContainsAny(s, ".eE") {
		f, err := n.Float64()
		if err != nil {
			return nil, &DecodeError{Message: fmt.Sprintf("bad number %q", s), Err: err}
		}
		return ir.Double(f), nil
	}
	i, err := n.Int64()
	if err != nil {
		// out of int64 range, take the double
		f, ferr := n.Float64()
		if ferr != nil {
			return nil, &DecodeError{Message: fmt.Sprintf("bad number %q", s), Err: ferr}
		}
		return ir.Double(f), nil
	}
	return ir.Int(i), nil
}

func decodeObject(dec *json.Decoder) (ir.Value, error) {
	doc := ir.NewDocument()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, &DecodeError{Err: err}
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, &DecodeError{Message: fmt.Sprintf("object key is %v, not a string", keyTok)}
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		doc.Set(key, v)
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return nil, &DecodeError{Err: err}
	}
	return promote(doc)
}

func decodeArray(dec *json.Decoder) (ir.Value, error) {
	arr := ir.NewArray()
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr.Append(v)
	}
	if _, err := dec.Token(); err != nil { // closing bracket
		return nil, &DecodeError{Err: err}
	}
	return arr, nil
}

// promote rewrites a decoded object into the typed value its $-keyed
// wrapper denotes, or returns it unchanged when no wrapper matches.
func promote(doc *ir.Document) (ir.Value, error) {
	if doc.Len() == 0 || !strings.HasPrefix(doc.Keys()[0], "$") {
		return doc, nil
	}
	first := doc.Keys()[0]

	if doc.Len() == 1 {
		v := doc.Get(first)
		switch first {
		case "$oid":
			s, err := wrapperString(first, v)
			if err != nil {
				return nil, err
			}
			id, err := ir.ObjectIDFromHex(s)
			if err != nil {
				return nil, &DecodeError{Message: "bad $oid", Err: err}
			}
			return id, nil
		case "$numberInt":
			s, err := wrapperString(first, v)
			if err != nil {
				return nil, err
			}
			i, err := strconv.ParseInt(s, 10, 32)
			if err != nil {
				return nil, &DecodeError{Message: "bad $numberInt", Err: err}
			}
			return ir.Int32(i), nil
		case "$numberLong":
			s, err := wrapperString(first, v)
			if err != nil {
				return nil, err
			}
			i, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, &DecodeError{Message: "bad $numberLong", Err: err}
			}
			return ir.Int64(i), nil
		case "$numberDouble":
			s, err := wrapperString(first, v)
			if err != nil {
				return nil, err
			}
			return parseDouble(s)
		case "$numberDecimal":
			s, err := wrapperString(first, v)
			if err != nil {
				return nil, err
			}
			d, err := ir.ParseDecimal128(s)
			if err != nil {
				return nil, &DecodeError{Message: "bad $numberDecimal", Err: err}
			}
			return d, nil
		case "$date":
			return promoteDate(v)
		case "$binary":
			return promoteBinary(v)
		case "$regularExpression":
			return promoteRegex(v)
		case "$timestamp":
			return promoteTimestamp(v)
		case "$code":
			s, err := wrapperString(first, v)
			if err != nil {
				return nil, err
			}
			return ir.Code(s), nil
		case "$symbol":
			s, err := wrapperString(first, v)
			if err != nil {
				return nil, err
			}
			return ir.Symbol(s), nil
		case "$minKey":
			return ir.MinKey{}, nil
		case "$maxKey":
			return ir.MaxKey{}, nil
		case "$undefined":
			return ir.Undefined{}, nil
		case "$dbPointer":
			return promoteDBPointer(v)
		}
		return doc, nil
	}

	if doc.Len() == 2 && first == "$code" {
		scope, ok := doc.Lookup("$scope")
		if !ok {
			return doc, nil
		}
		code, err := wrapperString("$code", doc.Get("$code"))
		if err != nil {
			return nil, err
		}
		sd, ok := scope.(*ir.Document)
		if !ok {
			return nil, &DecodeError{Message: "$scope is not a document"}
		}
		return ir.CodeWithScope{Code: code, Scope: sd}, nil
	}
	return doc, nil
}

func wrapperString(key string, v ir.Value) (string, error) {
	s, ok := v.(ir.String)
	if !ok {
		return "", &DecodeError{Message: fmt.Sprintf("%s value is not a string", key)}
	}
	return string(s), nil
}

func parseDouble(s string) (ir.Value, error) {
	switch s {
	case "NaN":
		return ir.Double(math.NaN()), nil
	case "Infinity":
		return ir.Double(math.Inf(1)), nil
	case "-Infinity":
		return ir.Double(math.Inf(-1)), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, &DecodeError{Message: "bad $numberDouble", Err: err}
	}
	return ir.Double(f), nil
}

func promoteDate(v ir.Value) (ir.Value, error) {
	switch t := v.(type) {
	case ir.String:
		ts, err := time.Parse(time.RFC3339Nano, string(t))
		if err != nil {
			return nil, &DecodeError{Message: "bad $date", Err: err}
		}
		return ir.FromTime(ts), nil
	case *ir.Document:
		inner, ok := t.Lookup("$numberLong")
		if !ok || t.Len() != 1 {
			return nil, &DecodeError{Message: "bad $date document"}
		}
		s, err := wrapperString("$numberLong", inner)
		if err != nil {
			return nil, err
		}
		ms, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, &DecodeError{Message: "bad $date", Err: err}
		}
		return ir.DateTime(ms), nil
	case ir.Int64:
		return ir.DateTime(t), nil
	case ir.DateTime:
		// yaml decoding may hand us an already parsed timestamp
		return t, nil
	}
	return nil, &DecodeError{Message: "bad $date value"}
}

func promoteBinary(v ir.Value) (ir.Value, error) {
	d, ok := v.(*ir.Document)
	if !ok {
		return nil, &DecodeError{Message: "$binary is not a document"}
	}
	b64, err := wrapperString("base64", d.Get("base64"))
	if err != nil {
		return nil, err
	}
	st, err := wrapperString("subType", d.Get("subType"))
	if err != nil {
		return nil, err
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, &DecodeError{Message: "bad $binary base64", Err: err}
	}
	sub, err := strconv.ParseUint(st, 16, 8)
	if err != nil {
		return nil, &DecodeError{Message: "bad $binary subType", Err: err}
	}
	return ir.Binary{Subtype: byte(sub), Data: data}, nil
}

func promoteRegex(v ir.Value) (ir.Value, error) {
	d, ok := v.(*ir.Document)
	if !ok {
		return nil, &DecodeError{Message: "$regularExpression is not a document"}
	}
	pattern, err := wrapperString("pattern", d.Get("pattern"))
	if err != nil {
		return nil, err
	}
	options, err := wrapperString("options", d.Get("options"))
	if err != nil {
		return nil, err
	}
	canonical, err := ir.CanonicalRegexOptions(options)
	if err != nil {
		return nil, &DecodeError{Message: "bad $regularExpression options", Err: err}
	}
	return ir.Regex{Pattern: pattern, Options: canonical}, nil
}

func promoteTimestamp(v ir.Value) (ir.Value, error) {
	d, ok := v.(*ir.Document)
	if !ok {
		return nil, &DecodeError{Message: "$timestamp is not a document"}
	}
	t, err := wrapperUint32(d.Get("t"))
	if err != nil {
		return nil, &DecodeError{Message: "bad $timestamp t", Err: err}
	}
	i, err := wrapperUint32(d.Get("i"))
	if err != nil {
		return nil, &DecodeError{Message: "bad $timestamp i", Err: err}
	}
	return ir.Timestamp{T: t, I: i}, nil
}

func wrapperUint32(v ir.Value) (uint32, error) {
	switch t := v.(type) {
	case ir.Int32:
		if t < 0 {
			return 0, fmt.Errorf("negative value %d", t)
		}
		return uint32(t), nil
	case ir.Int64:
		if t < 0 || t > math.MaxUint32 {
			return 0, fmt.Errorf("value %d out of range", t)
		}
		return uint32(t), nil
	}
	return 0, fmt.Errorf("not an integer")
}

func promoteDBPointer(v ir.Value) (ir.Value, error) {
	d, ok := v.(*ir.Document)
	if !ok {
		return nil, &DecodeError{Message: "$dbPointer is not a document"}
	}
	ref, err := wrapperString("$ref", d.Get("$ref"))
	if err != nil {
		return nil, err
	}
	id, ok := d.Get("$id").(ir.ObjectID)
	if !ok {
		return nil, &DecodeError{Message: "$dbPointer $id is not an object id"}
	}
	return ir.DBPointer{Namespace: ref, Pointer: id}, nil
}
