package ir

import (
	"errors"
	"fmt"

	"github.com/bson-format/go-bson/wire"
)

// ErrRegexOptions is returned for regex option strings containing
// characters outside the supported set.
var ErrRegexOptions = errors.New("invalid regex options")

// DeprecatedTypeError reports an attempt to move a retired wire kind
// through the uniform encode or decode contract.
type DeprecatedTypeError struct {
	Type   wire.Type
	Decode bool
}

func (e *DeprecatedTypeError) Error() string {
	if e.Decode {
		return fmt.Sprintf("deprecated type %s cannot be decoded; convert it explicitly", e.Type)
	}
	return fmt.Sprintf("deprecated type %s cannot be encoded", e.Type)
}

// NumberError reports a numeric value with no lossless int32, int64,
// or double representation.
type NumberError struct {
	Value any
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("number %v (%T) has no exact int32, int64, or double representation", e.Value, e.Value)
}
