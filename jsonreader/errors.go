package jsonreader

import (
	"errors"
	"fmt"

	"github.com/mcvoid/streamcodec/internal/codectext"
	"github.com/mcvoid/streamcodec/source"
)

// ErrParse is the sentinel every protocol error wraps, mirroring the
// teacher's ErrType/ErrParse sentinel-plus-%w convention.
var ErrParse = errors.New("jsonreader: parse error")

// ProtocolError is a terminal, unrecoverable error: malformed input or
// an illegal event sequence. It embeds the offending token/character
// (control characters escaped \uXXXX) and, where available, the
// source position (spec.md §7).
type ProtocolError struct {
	Message  string
	Position source.Position
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", ErrParse, e.Message, e.Position)
}

func (e *ProtocolError) Unwrap() error { return ErrParse }

func (r *Reader) fail(pos source.Position, format string, args ...any) error {
	err := &ProtocolError{Message: fmt.Sprintf(format, args...), Position: pos}
	r.err = err
	return err
}

func unexpectedRune(r rune) string {
	return fmt.Sprintf("unexpected character %q", codectext.EscapeRune(r))
}

func unexpectedEOF() string {
	return "unexpected end of input"
}
