package encode

import (
	"errors"
	"fmt"
)

// EncodeError wraps a failure with the path of the encoding position
// where it occurred.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("encode error: %v", e.Err)
	}
	return fmt.Sprintf("encode error at %q: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// TopLevelError reports a top-level value that could not produce a
// complete document: it either encoded nothing at all or encoded to a
// non-document shape.
type TopLevelError struct {
	Value   any
	Message string
}

func (e *TopLevelError) Error() string {
	return fmt.Sprintf("top-level value (%T) %s", e.Value, e.Message)
}

// wrap attaches the deepest available path to err once; errors that
// already carry a path pass through unchanged.
func (e *Encoder) wrap(err error) error {
	var ee *EncodeError
	if errors.As(err, &ee) {
		return err
	}
	return &EncodeError{Path: PathString(e.path), Err: err}
}
