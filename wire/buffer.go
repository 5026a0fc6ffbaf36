package wire

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// Buffer builds one wire document. Elements are appended under string
// keys; Finish frames the document with its length prefix and trailing
// NUL. A Buffer is single-use and not safe for concurrent use.
type Buffer struct {
	buf      []byte
	finished bool
}

// NewBuffer returns an empty document buffer with the length prefix
// reserved.
func NewBuffer() *Buffer {
	return &Buffer{buf: make([]byte, 4, 64)}
}

// Len returns the current number of bytes, including the reserved
// length prefix.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// Finish closes the document: trailing NUL plus the little-endian
// int32 length prefix. The buffer cannot be appended to afterwards.
func (b *Buffer) Finish() ([]byte, error) {
	if b.finished {
		return nil, ErrFinished
	}
	b.finished = true
	b.buf = append(b.buf, 0)
	if len(b.buf) > math.MaxInt32 {
		return nil, fmt.Errorf("document exceeds maximum size: %d bytes", len(b.buf))
	}
	binary.LittleEndian.PutUint32(b.buf[:4], uint32(len(b.buf)))
	return b.buf, nil
}

// header writes the element type byte and key cstring.
func (b *Buffer) header(t Type, key string) error {
	if b.finished {
		return &AppendError{Key: key, Type: t, Err: ErrFinished}
	}
	if strings.IndexByte(key, 0) >= 0 {
		return &AppendError{Key: key, Type: t, Err: ErrInvalidKey}
	}
	b.buf = append(b.buf, byte(t))
	b.buf = append(b.buf, key...)
	b.buf = append(b.buf, 0)
	return nil
}

func (b *Buffer) int32(v int32) {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, uint32(v))
}

func (b *Buffer) int64(v int64) {
	b.buf = binary.LittleEndian.AppendUint64(b.buf, uint64(v))
}

// str writes a length-prefixed, NUL-terminated string payload.
func (b *Buffer) str(s string) {
	b.int32(int32(len(s) + 1))
	b.buf = append(b.buf, s...)
	b.buf = append(b.buf, 0)
}

// cstr writes a NUL-terminated string payload without length prefix.
// The caller must have rejected embedded NULs.
func (b *Buffer) cstr(s string) {
	b.buf = append(b.buf, s...)
	b.buf = append(b.buf, 0)
}

// AppendDouble appends a 64-bit IEEE 754 floating point element.
func (b *Buffer) AppendDouble(key string, v float64) error {
	if err := b.header(TypeDouble, key); err != nil {
		return err
	}
	b.int64(int64(math.Float64bits(v)))
	return nil
}

// AppendString appends a UTF-8 string element.
func (b *Buffer) AppendString(key, v string) error {
	if err := b.header(TypeString, key); err != nil {
		return err
	}
	b.str(v)
	return nil
}

// AppendDocument appends an embedded document element. doc must be
// finished document bytes (as produced by Finish).
func (b *Buffer) AppendDocument(key string, doc []byte) error {
	if err := b.header(TypeDocument, key); err != nil {
		return err
	}
	b.buf = append(b.buf, doc...)
	return nil
}

// AppendArray appends an array element. doc must be finished document
// bytes whose keys are the decimal indices "0", "1", ...
func (b *Buffer) AppendArray(key string, doc []byte) error {
	if err := b.header(TypeArray, key); err != nil {
		return err
	}
	b.buf = append(b.buf, doc...)
	return nil
}

// AppendBinary appends a binary element with the given subtype.
func (b *Buffer) AppendBinary(key string, subtype byte, data []byte) error {
	if err := b.header(TypeBinary, key); err != nil {
		return err
	}
	if subtype == BinaryOld {
		// old binary carries an inner length prefix
		b.int32(int32(len(data) + 4))
		b.buf = append(b.buf, subtype)
		b.int32(int32(len(data)))
	} else {
		b.int32(int32(len(data)))
		b.buf = append(b.buf, subtype)
	}
	b.buf = append(b.buf, data...)
	return nil
}

// AppendObjectID appends a 12-byte object identifier element.
func (b *Buffer) AppendObjectID(key string, oid [12]byte) error {
	if err := b.header(TypeObjectID, key); err != nil {
		return err
	}
	b.buf = append(b.buf, oid[:]...)
	return nil
}

// AppendBool appends a boolean element.
func (b *Buffer) AppendBool(key string, v bool) error {
	if err := b.header(TypeBool, key); err != nil {
		return err
	}
	if v {
		b.buf = append(b.buf, 1)
	} else {
		b.buf = append(b.buf, 0)
	}
	return nil
}

// AppendDateTime appends a UTC datetime element, milliseconds since
// the Unix epoch.
func (b *Buffer) AppendDateTime(key string, ms int64) error {
	if err := b.header(TypeDateTime, key); err != nil {
		return err
	}
	b.int64(ms)
	return nil
}

// AppendNull appends a null element.
func (b *Buffer) AppendNull(key string) error {
	return b.header(TypeNull, key)
}

// AppendRegex appends a regular expression element. Neither pattern
// nor options may contain NUL bytes.
func (b *Buffer) AppendRegex(key, pattern, options string) error {
	if strings.IndexByte(pattern, 0) >= 0 || strings.IndexByte(options, 0) >= 0 {
		return &AppendError{Key: key, Type: TypeRegex, Err: ErrInvalidKey}
	}
	if err := b.header(TypeRegex, key); err != nil {
		return err
	}
	b.cstr(pattern)
	b.cstr(options)
	return nil
}

// AppendCode appends a JavaScript code element.
func (b *Buffer) AppendCode(key, code string) error {
	if err := b.header(TypeCode, key); err != nil {
		return err
	}
	b.str(code)
	return nil
}

// AppendCodeWithScope appends a JavaScript code element with a scope
// document. scope must be finished document bytes.
func (b *Buffer) AppendCodeWithScope(key, code string, scope []byte) error {
	if err := b.header(TypeCodeWithScope, key); err != nil {
		return err
	}
	// total = int32 length + string + scope doc
	b.int32(int32(4 + 4 + len(code) + 1 + len(scope)))
	b.str(code)
	b.buf = append(b.buf, scope...)
	return nil
}

// AppendInt32 appends a 32-bit integer element.
func (b *Buffer) AppendInt32(key string, v int32) error {
	if err := b.header(TypeInt32, key); err != nil {
		return err
	}
	b.int32(v)
	return nil
}

// AppendTimestamp appends an internal timestamp element: increment in
// the low 4 bytes, seconds in the high 4 bytes.
func (b *Buffer) AppendTimestamp(key string, t, i uint32) error {
	if err := b.header(TypeTimestamp, key); err != nil {
		return err
	}
	b.int32(int32(i))
	b.int32(int32(t))
	return nil
}

// AppendInt64 appends a 64-bit integer element.
func (b *Buffer) AppendInt64(key string, v int64) error {
	if err := b.header(TypeInt64, key); err != nil {
		return err
	}
	b.int64(v)
	return nil
}

// AppendDecimal128 appends a 128-bit decimal element, low half first.
func (b *Buffer) AppendDecimal128(key string, high, low uint64) error {
	if err := b.header(TypeDecimal128, key); err != nil {
		return err
	}
	b.int64(int64(low))
	b.int64(int64(high))
	return nil
}

// AppendMinKey appends a min-key ordering sentinel element.
func (b *Buffer) AppendMinKey(key string) error {
	return b.header(TypeMinKey, key)
}

// AppendMaxKey appends a max-key ordering sentinel element.
func (b *Buffer) AppendMaxKey(key string) error {
	return b.header(TypeMaxKey, key)
}
