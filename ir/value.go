package ir

import (
	"time"

	"github.com/bson-format/go-bson/wire"
)

// Value is one storable unit of a document: a tagged member of the
// closed set of wire kinds. The set is closed by construction: the
// append contract is unexported, so all variants live in this package.
type Value interface {
	// Kind returns the wire element type this value appends and
	// reads as.
	Kind() wire.Type

	// appendTo writes the value under key into b.
	appendTo(b *wire.Buffer, key string) error
}

// Append writes v under key into b. It is the package-external entry
// to the append contract.
func Append(b *wire.Buffer, key string, v Value) error {
	return v.appendTo(b, key)
}

// Double is a 64-bit IEEE 754 floating point value.
type Double float64

func (Double) Kind() wire.Type { return wire.TypeDouble }

func (d Double) appendTo(b *wire.Buffer, key string) error {
	return b.AppendDouble(key, float64(d))
}

// String is a UTF-8 string value.
type String string

func (String) Kind() wire.Type { return wire.TypeString }

func (s String) appendTo(b *wire.Buffer, key string) error {
	return b.AppendString(key, string(s))
}

// Boolean is a boolean value.
type Boolean bool

func (Boolean) Kind() wire.Type { return wire.TypeBool }

func (v Boolean) appendTo(b *wire.Buffer, key string) error {
	return b.AppendBool(key, bool(v))
}

// Int32 is a 32-bit integer value.
type Int32 int32

func (Int32) Kind() wire.Type { return wire.TypeInt32 }

func (i Int32) appendTo(b *wire.Buffer, key string) error {
	return b.AppendInt32(key, int32(i))
}

// Int64 is a 64-bit integer value.
type Int64 int64

func (Int64) Kind() wire.Type { return wire.TypeInt64 }

func (i Int64) appendTo(b *wire.Buffer, key string) error {
	return b.AppendInt64(key, int64(i))
}

// DateTime is a UTC datetime value, milliseconds since the Unix epoch.
type DateTime int64

func (DateTime) Kind() wire.Type { return wire.TypeDateTime }

func (d DateTime) appendTo(b *wire.Buffer, key string) error {
	return b.AppendDateTime(key, int64(d))
}

// FromTime converts t to a DateTime, truncating to milliseconds.
func FromTime(t time.Time) DateTime {
	return DateTime(t.UnixMilli())
}

// Time returns d as a time.Time in UTC.
func (d DateTime) Time() time.Time {
	return time.UnixMilli(int64(d)).UTC()
}

// Null is the null value.
type Null struct{}

func (Null) Kind() wire.Type { return wire.TypeNull }

func (Null) appendTo(b *wire.Buffer, key string) error {
	return b.AppendNull(key)
}

// MinKey is the ordering sentinel that sorts before every other value.
type MinKey struct{}

func (MinKey) Kind() wire.Type { return wire.TypeMinKey }

func (MinKey) appendTo(b *wire.Buffer, key string) error {
	return b.AppendMinKey(key)
}

// MaxKey is the ordering sentinel that sorts after every other value.
type MaxKey struct{}

func (MaxKey) Kind() wire.Type { return wire.TypeMaxKey }

func (MaxKey) appendTo(b *wire.Buffer, key string) error {
	return b.AppendMaxKey(key)
}

// Code is a JavaScript code value.
type Code string

func (Code) Kind() wire.Type { return wire.TypeCode }

func (c Code) appendTo(b *wire.Buffer, key string) error {
	return b.AppendCode(key, string(c))
}

// CodeWithScope is a JavaScript code value with a scope document.
type CodeWithScope struct {
	Code  string
	Scope *Document
}

func (CodeWithScope) Kind() wire.Type { return wire.TypeCodeWithScope }

func (c CodeWithScope) appendTo(b *wire.Buffer, key string) error {
	scope := c.Scope
	if scope == nil {
		scope = NewDocument()
	}
	raw, err := scope.Encode()
	if err != nil {
		return err
	}
	return b.AppendCodeWithScope(key, c.Code, raw)
}

// Binary is a binary value with a wire subtype.
type Binary struct {
	Subtype byte
	Data    []byte
}

func (Binary) Kind() wire.Type { return wire.TypeBinary }

func (v Binary) appendTo(b *wire.Buffer, key string) error {
	return b.AppendBinary(key, v.Subtype, v.Data)
}

// Timestamp is an internal timestamp value: seconds since the Unix
// epoch plus an ordering increment.
type Timestamp struct {
	T uint32
	I uint32
}

func (Timestamp) Kind() wire.Type { return wire.TypeTimestamp }

func (t Timestamp) appendTo(b *wire.Buffer, key string) error {
	return b.AppendTimestamp(key, t.T, t.I)
}
