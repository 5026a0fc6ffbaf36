package extjson

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/bson-format/go-bson/ir"
	"github.com/bson-format/go-bson/wire"
)

type EncState struct {
	depth     int
	indent    int
	canonical bool

	Color func(wire.Type, ColorAttr, string) string
}

// Encode writes v to w as extended JSON, without a trailing newline.
func Encode(v ir.Value, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	p := &printer{w: w}
	encodeValue(v, p, es)
	return p.err
}

// EncodeToString is Encode into a string.
func EncodeToString(v ir.Value, opts ...EncodeOption) (string, error) {
	var sb stringsBuilder
	if err := Encode(v, &sb, opts...); err != nil {
		return "", err
	}
	return sb.String(), nil
}

type stringsBuilder struct {
	buf []byte
}

func (b *stringsBuilder) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *stringsBuilder) String() string { return string(b.buf) }

// printer latches the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) ws(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (es *EncState) color(t wire.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

func (es *EncState) sep(t wire.Type, s string) string {
	return es.color(t, SepColor, s)
}

func (es *EncState) nl(p *printer) {
	if es.indent == 0 {
		return
	}
	p.ws("\n")
	for i := 0; i < es.depth*es.indent; i++ {
		p.ws(" ")
	}
}

func encodeValue(v ir.Value, p *printer, es *EncState) {
	if v == nil {
		p.ws(es.color(wire.TypeNull, ValueColor, "null"))
		return
	}
	switch t := v.(type) {
	case *ir.Document:
		encodeDocument(t, p, es)
	case *ir.Array:
		encodeArray(t, p, es)
	case ir.String:
		p.ws(es.color(wire.TypeString, ValueColor, jsonString(string(t))))
	case ir.Boolean:
		p.ws(es.color(wire.TypeBool, ValueColor, strconv.FormatBool(bool(t))))
	case ir.Null:
		p.ws(es.color(wire.TypeNull, ValueColor, "null"))
	case ir.Double:
		encodeDouble(float64(t), p, es)
	case ir.Int32:
		if es.canonical {
			wrapString(wire.TypeInt32, "$numberInt", strconv.FormatInt(int64(t), 10), p, es)
		} else {
			p.ws(es.color(wire.TypeInt32, ValueColor, strconv.FormatInt(int64(t), 10)))
		}
	case ir.Int64:
		if es.canonical {
			wrapString(wire.TypeInt64, "$numberLong", strconv.FormatInt(int64(t), 10), p, es)
		} else {
			p.ws(es.color(wire.TypeInt64, ValueColor, strconv.FormatInt(int64(t), 10)))
		}
	case ir.Decimal128:
		wrapString(wire.TypeDecimal128, "$numberDecimal", t.String(), p, es)
	case ir.ObjectID:
		wrapString(wire.TypeObjectID, "$oid", t.Hex(), p, es)
	case ir.DateTime:
		encodeDateTime(t, p, es)
	case ir.Binary:
		encodeBinary(t, p, es)
	case ir.Regex:
		encodeRegex(t, p, es)
	case ir.Code:
		wrapString(wire.TypeCode, "$code", string(t), p, es)
	case ir.CodeWithScope:
		encodeCodeWithScope(t, p, es)
	case ir.Timestamp:
		encodeTimestamp(t, p, es)
	case ir.MinKey:
		wrapRaw(wire.TypeMinKey, "$minKey", "1", p, es)
	case ir.MaxKey:
		wrapRaw(wire.TypeMaxKey, "$maxKey", "1", p, es)
	case ir.Undefined:
		wrapRaw(wire.TypeUndefined, "$undefined", "true", p, es)
	case ir.Symbol:
		wrapString(wire.TypeSymbol, "$symbol", string(t), p, es)
	case ir.DBPointer:
		encodeDBPointer(t, p, es)
	default:
		p.err = fmt.Errorf("extjson: cannot encode %T", v)
	}
}

func encodeDocument(d *ir.Document, p *printer, es *EncState) {
	if d.Len() == 0 {
		p.ws(es.sep(wire.TypeDocument, "{}"))
		return
	}
	p.ws(es.sep(wire.TypeDocument, "{"))
	es.depth++
	first := true
	d.Range(func(key string, v ir.Value) bool {
		if !first {
			p.ws(es.sep(wire.TypeDocument, ","))
		}
		first = false
		es.nl(p)
		p.ws(es.color(wire.TypeDocument, FieldColor, jsonString(key)))
		p.ws(es.sep(wire.TypeDocument, ":"))
		if es.indent > 0 {
			p.ws(" ")
		}
		encodeValue(v, p, es)
		return p.err == nil
	})
	es.depth--
	es.nl(p)
	p.ws(es.sep(wire.TypeDocument, "}"))
}

func encodeArray(a *ir.Array, p *printer, es *EncState) {
	if a.Len() == 0 {
		p.ws(es.sep(wire.TypeArray, "[]"))
		return
	}
	p.ws(es.sep(wire.TypeArray, "["))
	es.depth++
	for i, v := range a.Values() {
		if i > 0 {
			p.ws(es.sep(wire.TypeArray, ","))
		}
		es.nl(p)
		encodeValue(v, p, es)
		if p.err != nil {
			break
		}
	}
	es.depth--
	es.nl(p)
	p.ws(es.sep(wire.TypeArray, "]"))
}

// wrapString writes {"$key":"value"}.
func wrapString(t wire.Type, key, value string, p *printer, es *EncState) {
	wrapRaw(t, key, es.color(t, ValueColor, jsonString(value)), p, es)
}

// wrapRaw writes {"$key":raw} with raw already rendered.
func wrapRaw(t wire.Type, key, raw string, p *printer, es *EncState) {
	p.ws(es.sep(t, "{"))
	p.ws(es.color(t, WrapperColor, jsonString(key)))
	p.ws(es.sep(t, ":"))
	p.ws(raw)
	p.ws(es.sep(t, "}"))
}

func encodeDouble(f float64, p *printer, es *EncState) {
	switch {
	case math.IsNaN(f):
		wrapString(wire.TypeDouble, "$numberDouble", "NaN", p, es)
	case math.IsInf(f, 1):
		wrapString(wire.TypeDouble, "$numberDouble", "Infinity", p, es)
	case math.IsInf(f, -1):
		wrapString(wire.TypeDouble, "$numberDouble", "-Infinity", p, es)
	case es.canonical:
		wrapString(wire.TypeDouble, "$numberDouble", formatDouble(f), p, es)
	default:
		p.ws(es.color(wire.TypeDouble, ValueColor, formatDouble(f)))
	}
}

// formatDouble keeps relaxed doubles distinguishable from integers.
func formatDouble(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if math.Trunc(f) == f && !hasExpOrDot(s) {
		s += ".0"
	}
	return s
}

func hasExpOrDot(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' || s[i] == 'e' || s[i] == 'E' {
			return true
		}
	}
	return false
}

func encodeDateTime(d ir.DateTime, p *printer, es *EncState) {
	t := d.Time().UTC()
	if !es.canonical && t.Year() >= 1970 && t.Year() <= 9999 {
		wrapString(wire.TypeDateTime, "$date", t.Format("2006-01-02T15:04:05.999Z07:00"), p, es)
		return
	}
	p.ws(es.sep(wire.TypeDateTime, "{"))
	p.ws(es.color(wire.TypeDateTime, WrapperColor, `"$date"`))
	p.ws(es.sep(wire.TypeDateTime, ":"))
	wrapString(wire.TypeDateTime, "$numberLong", strconv.FormatInt(int64(d), 10), p, es)
	p.ws(es.sep(wire.TypeDateTime, "}"))
}

func encodeBinary(b ir.Binary, p *printer, es *EncState) {
	p.ws(es.sep(wire.TypeBinary, "{"))
	p.ws(es.color(wire.TypeBinary, WrapperColor, `"$binary"`))
	p.ws(es.sep(wire.TypeBinary, ":{"))
	p.ws(es.color(wire.TypeBinary, WrapperColor, `"base64"`))
	p.ws(es.sep(wire.TypeBinary, ":"))
	p.ws(es.color(wire.TypeBinary, ValueColor, jsonString(base64.StdEncoding.EncodeToString(b.Data))))
	p.ws(es.sep(wire.TypeBinary, ","))
	p.ws(es.color(wire.TypeBinary, WrapperColor, `"subType"`))
	p.ws(es.sep(wire.TypeBinary, ":"))
	p.ws(es.color(wire.TypeBinary, ValueColor, fmt.Sprintf("%q", fmt.Sprintf("%02x", b.Subtype))))
	p.ws(es.sep(wire.TypeBinary, "}}"))
}

func encodeRegex(r ir.Regex, p *printer, es *EncState) {
	p.ws(es.sep(wire.TypeRegex, "{"))
	p.ws(es.color(wire.TypeRegex, WrapperColor, `"$regularExpression"`))
	p.ws(es.sep(wire.TypeRegex, ":{"))
	p.ws(es.color(wire.TypeRegex, WrapperColor, `"pattern"`))
	p.ws(es.sep(wire.TypeRegex, ":"))
	p.ws(es.color(wire.TypeRegex, ValueColor, jsonString(r.Pattern)))
	p.ws(es.sep(wire.TypeRegex, ","))
	p.ws(es.color(wire.TypeRegex, WrapperColor, `"options"`))
	p.ws(es.sep(wire.TypeRegex, ":"))
	opts, err := ir.CanonicalRegexOptions(r.Options)
	if err != nil {
		p.err = err
		return
	}
	p.ws(es.color(wire.TypeRegex, ValueColor, jsonString(opts)))
	p.ws(es.sep(wire.TypeRegex, "}}"))
}

func encodeCodeWithScope(c ir.CodeWithScope, p *printer, es *EncState) {
	p.ws(es.sep(wire.TypeCodeWithScope, "{"))
	p.ws(es.color(wire.TypeCodeWithScope, WrapperColor, `"$code"`))
	p.ws(es.sep(wire.TypeCodeWithScope, ":"))
	p.ws(es.color(wire.TypeCodeWithScope, ValueColor, jsonString(c.Code)))
	p.ws(es.sep(wire.TypeCodeWithScope, ","))
	p.ws(es.color(wire.TypeCodeWithScope, WrapperColor, `"$scope"`))
	p.ws(es.sep(wire.TypeCodeWithScope, ":"))
	scope := c.Scope
	if scope == nil {
		scope = ir.NewDocument()
	}
	encodeDocument(scope, p, es)
	p.ws(es.sep(wire.TypeCodeWithScope, "}"))
}

func encodeTimestamp(t ir.Timestamp, p *printer, es *EncState) {
	p.ws(es.sep(wire.TypeTimestamp, "{"))
	p.ws(es.color(wire.TypeTimestamp, WrapperColor, `"$timestamp"`))
	p.ws(es.sep(wire.TypeTimestamp, ":{"))
	p.ws(es.color(wire.TypeTimestamp, WrapperColor, `"t"`))
	p.ws(es.sep(wire.TypeTimestamp, ":"))
	p.ws(es.color(wire.TypeTimestamp, ValueColor, strconv.FormatUint(uint64(t.T), 10)))
	p.ws(es.sep(wire.TypeTimestamp, ","))
	p.ws(es.color(wire.TypeTimestamp, WrapperColor, `"i"`))
	p.ws(es.sep(wire.TypeTimestamp, ":"))
	p.ws(es.color(wire.TypeTimestamp, ValueColor, strconv.FormatUint(uint64(t.I), 10)))
	p.ws(es.sep(wire.TypeTimestamp, "}}"))
}

func encodeDBPointer(d ir.DBPointer, p *printer, es *EncState) {
	p.ws(es.sep(wire.TypeDBPointer, "{"))
	p.ws(es.color(wire.TypeDBPointer, WrapperColor, `"$dbPointer"`))
	p.ws(es.sep(wire.TypeDBPointer, ":{"))
	p.ws(es.color(wire.TypeDBPointer, WrapperColor, `"$ref"`))
	p.ws(es.sep(wire.TypeDBPointer, ":"))
	p.ws(es.color(wire.TypeDBPointer, ValueColor, jsonString(d.Namespace)))
	p.ws(es.sep(wire.TypeDBPointer, ","))
	p.ws(es.color(wire.TypeDBPointer, WrapperColor, `"$id"`))
	p.ws(es.sep(wire.TypeDBPointer, ":"))
	wrapString(wire.TypeObjectID, "$oid", d.Pointer.Hex(), p, es)
	p.ws(es.sep(wire.TypeDBPointer, "}}"))
}

// jsonString renders s as a JSON string literal.
func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
