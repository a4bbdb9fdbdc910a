package msgpack

import (
	"errors"
	"fmt"
)

// ErrWrite is the sentinel every writer-side protocol error wraps.
var ErrWrite = errors.New("msgpack: protocol error")

// ProtocolError reports an event sequence the writer cannot encode:
// an indeterminate-size composite, a frame overflow, or an
// unencodable value (Simple, an out-of-range big-int).
type ProtocolError struct {
	Message string
}

func (e *ProtocolError) Error() string { return fmt.Sprintf("%s: %s", ErrWrite, e.Message) }

func (e *ProtocolError) Unwrap() error { return ErrWrite }

func protoErrorf(format string, args ...any) error {
	return &ProtocolError{Message: fmt.Sprintf(format, args...)}
}
