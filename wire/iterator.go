package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Iterator walks the elements of finished document bytes. After Next
// reports true the iterator is positioned at one key/type/value triple
// and the typed extraction methods read that element's payload.
//
// Malformed input surfaces through Err after Next returns false, or
// through the extraction methods; the iterator never panics on bad
// bytes.
type Iterator struct {
	buf []byte
	pos int
	end int

	typ Type
	key string
	val []byte
	err error
}

// NewIterator validates the framing of doc and returns an iterator
// positioned before the first element.
func NewIterator(doc []byte) (*Iterator, error) {
	if len(doc) < 5 {
		return nil, &ParseError{Offset: 0, Message: "document shorter than framing", Err: ErrTruncated}
	}
	length := int(int32(binary.LittleEndian.Uint32(doc[:4])))
	if length < 5 || length > len(doc) {
		return nil, &ParseError{Offset: 0, Message: fmt.Sprintf("length prefix %d outside [5, %d]", length, len(doc))}
	}
	if doc[length-1] != 0 {
		return nil, &ParseError{Offset: length - 1, Message: "missing trailing NUL"}
	}
	return &Iterator{buf: doc[:length], pos: 4, end: length - 1}, nil
}

// Remainder returns any bytes past the current document's framing.
// Files may concatenate documents back to back.
func Remainder(doc []byte) []byte {
	if len(doc) < 5 {
		return nil
	}
	length := int(int32(binary.LittleEndian.Uint32(doc[:4])))
	if length < 5 || length > len(doc) {
		return nil
	}
	return doc[length:]
}

// Next advances to the next element. It returns false at the end of
// the document or on malformed input; check Err to distinguish.
func (it *Iterator) Next() bool {
	if it.err != nil {
		return false
	}
	if it.pos >= it.end {
		return false
	}
	it.typ = Type(it.buf[it.pos])
	it.pos++
	keyEnd := bytes.IndexByte(it.buf[it.pos:it.end], 0)
	if keyEnd < 0 {
		it.err = &ParseError{Offset: it.pos, Message: "unterminated key", Err: ErrTruncated}
		return false
	}
	it.key = string(it.buf[it.pos : it.pos+keyEnd])
	it.pos += keyEnd + 1
	size, err := it.valueSize()
	if err != nil {
		it.err = err
		return false
	}
	if it.pos+size > it.end {
		it.err = &ParseError{Offset: it.pos, Message: fmt.Sprintf("%s value overruns document", it.typ), Err: ErrTruncated}
		return false
	}
	it.val = it.buf[it.pos : it.pos+size]
	it.pos += size
	return true
}

// Err returns the first malformed-input error encountered by Next.
func (it *Iterator) Err() error {
	return it.err
}

// Type returns the element type at the current position.
func (it *Iterator) Type() Type {
	return it.typ
}

// Key returns the element key at the current position.
func (it *Iterator) Key() string {
	return it.key
}

func (it *Iterator) valueSize() (int, error) {
	rem := it.end - it.pos
	fixed := func(n int) (int, error) {
		if rem < n {
			return 0, &ParseError{Offset: it.pos, Message: fmt.Sprintf("%s value truncated", it.typ), Err: ErrTruncated}
		}
		return n, nil
	}
	switch it.typ {
	case TypeDouble, TypeDateTime, TypeInt64, TypeTimestamp:
		return fixed(8)
	case TypeInt32:
		return fixed(4)
	case TypeDecimal128:
		return fixed(16)
	case TypeBool:
		return fixed(1)
	case TypeObjectID:
		return fixed(12)
	case TypeNull, TypeMinKey, TypeMaxKey, TypeUndefined:
		return 0, nil
	case TypeString, TypeCode, TypeSymbol:
		n, err := it.peekInt32()
		if err != nil {
			return 0, err
		}
		if n < 1 {
			return 0, &ParseError{Offset: it.pos, Message: fmt.Sprintf("%s length %d < 1", it.typ, n)}
		}
		return 4 + int(n), nil
	case TypeDocument, TypeArray, TypeCodeWithScope:
		n, err := it.peekInt32()
		if err != nil {
			return 0, err
		}
		if n < 5 {
			return 0, &ParseError{Offset: it.pos, Message: fmt.Sprintf("%s length %d < 5", it.typ, n)}
		}
		return int(n), nil
	case TypeBinary:
		n, err := it.peekInt32()
		if err != nil {
			return 0, err
		}
		if n < 0 {
			return 0, &ParseError{Offset: it.pos, Message: fmt.Sprintf("binary length %d < 0", n)}
		}
		return 4 + 1 + int(n), nil
	case TypeRegex:
		p := 0
		for range 2 {
			i := bytes.IndexByte(it.buf[it.pos+p:it.end], 0)
			if i < 0 {
				return 0, &ParseError{Offset: it.pos, Message: "unterminated regex cstring", Err: ErrTruncated}
			}
			p += i + 1
		}
		return p, nil
	case TypeDBPointer:
		n, err := it.peekInt32()
		if err != nil {
			return 0, err
		}
		if n < 1 {
			return 0, &ParseError{Offset: it.pos, Message: fmt.Sprintf("dbPointer length %d < 1", n)}
		}
		return 4 + int(n) + 12, nil
	}
	return 0, &ParseError{Offset: it.pos - 1, Message: fmt.Sprintf("unknown element type 0x%02X", byte(it.typ))}
}

func (it *Iterator) peekInt32() (int32, error) {
	if it.end-it.pos < 4 {
		return 0, &ParseError{Offset: it.pos, Message: "length prefix truncated", Err: ErrTruncated}
	}
	return int32(binary.LittleEndian.Uint32(it.buf[it.pos:])), nil
}

func (it *Iterator) want(t Type) error {
	if it.typ != t {
		return &TypeMismatchError{Key: it.key, Want: t, Got: it.typ}
	}
	return nil
}

// Double reads the current element as a 64-bit float.
func (it *Iterator) Double() (float64, error) {
	if err := it.want(TypeDouble); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(it.val)), nil
}

// StringValue reads the current element as a UTF-8 string.
func (it *Iterator) StringValue() (string, error) {
	if err := it.want(TypeString); err != nil {
		return "", err
	}
	return it.lenString(it.val)
}

// lenString decodes a length-prefixed NUL-terminated string payload.
func (it *Iterator) lenString(v []byte) (string, error) {
	n := int(int32(binary.LittleEndian.Uint32(v[:4])))
	if n < 1 || 4+n > len(v) {
		return "", &ParseError{Offset: it.pos, Message: "string payload length mismatch"}
	}
	if v[4+n-1] != 0 {
		return "", &ParseError{Offset: it.pos, Message: "string missing NUL terminator"}
	}
	return string(v[4 : 4+n-1]), nil
}

// Document reads the current element as embedded document bytes.
func (it *Iterator) Document() ([]byte, error) {
	if err := it.want(TypeDocument); err != nil {
		return nil, err
	}
	return it.val, nil
}

// Array reads the current element as embedded array document bytes.
func (it *Iterator) Array() ([]byte, error) {
	if err := it.want(TypeArray); err != nil {
		return nil, err
	}
	return it.val, nil
}

// Binary reads the current element as subtype plus data bytes.
func (it *Iterator) Binary() (subtype byte, data []byte, err error) {
	if err := it.want(TypeBinary); err != nil {
		return 0, nil, err
	}
	subtype = it.val[4]
	data = it.val[5:]
	if subtype == BinaryOld {
		if len(data) < 4 {
			return 0, nil, &ParseError{Offset: it.pos, Message: "old binary inner length truncated", Err: ErrTruncated}
		}
		inner := int(int32(binary.LittleEndian.Uint32(data[:4])))
		if inner != len(data)-4 {
			return 0, nil, &ParseError{Offset: it.pos, Message: "old binary inner length mismatch"}
		}
		data = data[4:]
	}
	return subtype, data, nil
}

// ObjectID reads the current element's 12 identifier bytes.
func (it *Iterator) ObjectID() ([12]byte, error) {
	var oid [12]byte
	if err := it.want(TypeObjectID); err != nil {
		return oid, err
	}
	copy(oid[:], it.val)
	return oid, nil
}

// Bool reads the current element as a boolean.
func (it *Iterator) Bool() (bool, error) {
	if err := it.want(TypeBool); err != nil {
		return false, err
	}
	switch it.val[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, &ParseError{Offset: it.pos, Message: fmt.Sprintf("bool byte 0x%02X", it.val[0])}
}

// DateTime reads the current element as milliseconds since the Unix
// epoch.
func (it *Iterator) DateTime() (int64, error) {
	if err := it.want(TypeDateTime); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(it.val)), nil
}

// Regex reads the current element's pattern and option strings.
func (it *Iterator) Regex() (pattern, options string, err error) {
	if err := it.want(TypeRegex); err != nil {
		return "", "", err
	}
	i := bytes.IndexByte(it.val, 0)
	pattern = string(it.val[:i])
	options = string(it.val[i+1 : len(it.val)-1])
	return pattern, options, nil
}

// Code reads the current element as JavaScript code.
func (it *Iterator) Code() (string, error) {
	if err := it.want(TypeCode); err != nil {
		return "", err
	}
	return it.lenString(it.val)
}

// CodeWithScope reads the current element as JavaScript code plus
// scope document bytes.
func (it *Iterator) CodeWithScope() (code string, scope []byte, err error) {
	if err := it.want(TypeCodeWithScope); err != nil {
		return "", nil, err
	}
	if len(it.val) < 4+4+1+5 {
		return "", nil, &ParseError{Offset: it.pos, Message: "code-with-scope truncated", Err: ErrTruncated}
	}
	code, err = it.lenString(it.val[4:])
	if err != nil {
		return "", nil, err
	}
	scope = it.val[4+4+len(code)+1:]
	if len(scope) < 5 {
		return "", nil, &ParseError{Offset: it.pos, Message: "code-with-scope scope truncated", Err: ErrTruncated}
	}
	return code, scope, nil
}

// Int32 reads the current element as a 32-bit integer.
func (it *Iterator) Int32() (int32, error) {
	if err := it.want(TypeInt32); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(it.val)), nil
}

// Timestamp reads the current element's seconds and increment.
func (it *Iterator) Timestamp() (t, i uint32, err error) {
	if err := it.want(TypeTimestamp); err != nil {
		return 0, 0, err
	}
	i = binary.LittleEndian.Uint32(it.val[:4])
	t = binary.LittleEndian.Uint32(it.val[4:])
	return t, i, nil
}

// Int64 reads the current element as a 64-bit integer.
func (it *Iterator) Int64() (int64, error) {
	if err := it.want(TypeInt64); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(it.val)), nil
}

// Decimal128 reads the current element's high and low halves.
func (it *Iterator) Decimal128() (high, low uint64, err error) {
	if err := it.want(TypeDecimal128); err != nil {
		return 0, 0, err
	}
	low = binary.LittleEndian.Uint64(it.val[:8])
	high = binary.LittleEndian.Uint64(it.val[8:])
	return high, low, nil
}

// DBPointer reads the current deprecated dbPointer element's namespace
// and identifier bytes.
func (it *Iterator) DBPointer() (ns string, oid [12]byte, err error) {
	if err := it.want(TypeDBPointer); err != nil {
		return "", oid, err
	}
	ns, err = it.lenString(it.val[:len(it.val)-12])
	if err != nil {
		return "", oid, err
	}
	copy(oid[:], it.val[len(it.val)-12:])
	return ns, oid, nil
}

// Symbol reads the current deprecated symbol element as a string.
func (it *Iterator) Symbol() (string, error) {
	if err := it.want(TypeSymbol); err != nil {
		return "", err
	}
	return it.lenString(it.val)
}
