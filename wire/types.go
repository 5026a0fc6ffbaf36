package wire

import "fmt"

// Type is the single-byte element type tag used on the wire.
type Type byte

const (
	TypeInvalid       Type = 0x00
	TypeDouble        Type = 0x01
	TypeString        Type = 0x02
	TypeDocument      Type = 0x03
	TypeArray         Type = 0x04
	TypeBinary        Type = 0x05
	TypeUndefined     Type = 0x06 // deprecated
	TypeObjectID      Type = 0x07
	TypeBool          Type = 0x08
	TypeDateTime      Type = 0x09
	TypeNull          Type = 0x0A
	TypeRegex         Type = 0x0B
	TypeDBPointer     Type = 0x0C // deprecated
	TypeCode          Type = 0x0D
	TypeSymbol        Type = 0x0E // deprecated
	TypeCodeWithScope Type = 0x0F
	TypeInt32         Type = 0x10
	TypeTimestamp     Type = 0x11
	TypeInt64         Type = 0x12
	TypeDecimal128    Type = 0x13
	TypeMinKey        Type = 0xFF
	TypeMaxKey        Type = 0x7F
)

// Deprecated reports whether t is one of the retired element types that
// may appear in decoded input but must never be produced by an encoder.
func (t Type) Deprecated() bool {
	switch t {
	case TypeUndefined, TypeDBPointer, TypeSymbol, TypeInvalid:
		return true
	}
	return false
}

// Types returns the element types an encoder may produce.
func Types() []Type {
	return []Type{
		TypeDouble, TypeString, TypeDocument, TypeArray, TypeBinary,
		TypeObjectID, TypeBool, TypeDateTime, TypeNull, TypeRegex,
		TypeCode, TypeCodeWithScope, TypeInt32, TypeTimestamp,
		TypeInt64, TypeDecimal128, TypeMinKey, TypeMaxKey,
	}
}

func (t Type) String() string {
	switch t {
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeDocument:
		return "document"
	case TypeArray:
		return "array"
	case TypeBinary:
		return "binary"
	case TypeUndefined:
		return "undefined"
	case TypeObjectID:
		return "objectID"
	case TypeBool:
		return "bool"
	case TypeDateTime:
		return "datetime"
	case TypeNull:
		return "null"
	case TypeRegex:
		return "regex"
	case TypeDBPointer:
		return "dbPointer"
	case TypeCode:
		return "code"
	case TypeSymbol:
		return "symbol"
	case TypeCodeWithScope:
		return "codeWithScope"
	case TypeInt32:
		return "int32"
	case TypeTimestamp:
		return "timestamp"
	case TypeInt64:
		return "int64"
	case TypeDecimal128:
		return "decimal128"
	case TypeMinKey:
		return "minKey"
	case TypeMaxKey:
		return "maxKey"
	case TypeInvalid:
		return "invalid"
	}
	return fmt.Sprintf("wire.Type(0x%02X)", byte(t))
}

// Binary subtypes.
const (
	BinaryGeneric     byte = 0x00
	BinaryFunction    byte = 0x01
	BinaryOld         byte = 0x02
	BinaryUUIDOld     byte = 0x03
	BinaryUUID        byte = 0x04
	BinaryMD5         byte = 0x05
	BinaryEncrypted   byte = 0x06
	BinaryUserDefined byte = 0x80
)
