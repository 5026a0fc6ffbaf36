package wire

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKey is returned when an element key cannot be written
	// as a wire cstring (it contains a NUL byte).
	ErrInvalidKey = errors.New("key contains NUL byte")

	// ErrFinished is returned when appending to a finished buffer.
	ErrFinished = errors.New("buffer already finished")

	// ErrTruncated is returned when document bytes end before the
	// framing says they should.
	ErrTruncated = errors.New("truncated document")
)

// AppendError reports a rejected append: the key and element type that
// could not be written, with the cause.
type AppendError struct {
	Key  string
	Type Type
	Err  error
}

func (e *AppendError) Error() string {
	return fmt.Sprintf("cannot append %s element %q: %v", e.Type, e.Key, e.Err)
}

func (e *AppendError) Unwrap() error {
	return e.Err
}

// ParseError reports malformed document bytes at a byte offset.
type ParseError struct {
	Offset  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed document at offset %d: %s: %v", e.Offset, e.Message, e.Err)
	}
	return fmt.Sprintf("malformed document at offset %d: %s", e.Offset, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// TypeMismatchError reports a typed extraction called on an element of
// another type.
type TypeMismatchError struct {
	Key  string
	Want Type
	Got  Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("element %q is %s, not %s", e.Key, e.Got, e.Want)
}
