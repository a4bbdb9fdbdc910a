package jsonreader

import (
	"math"

	"github.com/mcvoid/streamcodec/event"
)

// tokenLiterals lists every bare-word literal the token leaf can
// match, including the cborDiag additions. -Infinity is entered from
// the number leaf (see numActionNegInfinity) with "-" already queued.
var tokenLiterals = []struct {
	text     string
	cborOnly bool
	build    func() event.Event
}{
	{"true", false, func() event.Event { return event.Bool(true) }},
	{"false", false, func() event.Event { return event.Bool(false) }},
	{"null", false, event.Nil},
	{"undefined", true, event.Undef},
	{"NaN", true, func() event.Event { return event.Num(event.Float64(math.NaN())) }},
	{"Infinity", true, func() event.Event { return event.Num(event.Float64(math.Inf(1))) }},
	{"-Infinity", true, func() event.Event { return event.Num(event.Float64(math.Inf(-1))) }},
}

// stepToken feeds the in-progress bare word one character at a time,
// matching against the literals whose prefix still agrees with r.tok.
// Because none of the accepted literals is a prefix of another, the
// first literal that no longer matches on the next character ends the
// token: either r.tok already equals a full literal (success) or it
// doesn't (parse error).
func (r *Reader) stepToken() (bool, error) {
	if err := r.src.Mark(1); err != nil {
		return false, err
	}
	ch, rr, err := r.getRune()
	if err != nil {
		return false, err
	}
	switch rr {
	case rrSuspend:
		if err := r.src.Reset(); err != nil {
			return false, err
		}
		return false, nil
	case rrEOF:
		return true, r.finishToken()
	}

	candidate := string(r.tok) + string(ch)
	if tokenHasPrefix(candidate, r.opts.cborDiag) {
		r.tok = append(r.tok, byte(ch))
		return true, nil
	}
	if err := r.src.Reset(); err != nil {
		return false, err
	}
	return true, r.finishToken()
}

func tokenHasPrefix(s string, cborDiag bool) bool {
	for _, lit := range tokenLiterals {
		if lit.cborOnly && !cborDiag {
			continue
		}
		if len(lit.text) >= len(s) && lit.text[:len(s)] == s {
			return true
		}
	}
	return false
}

func (r *Reader) finishToken() error {
	word := string(r.tok)
	for _, lit := range tokenLiterals {
		if lit.cborOnly && !r.opts.cborDiag {
			continue
		}
		if lit.text == word {
			r.emit(lit.build())
			r.leaf = leafNone
			return r.valueCompleted()
		}
	}
	return r.fail(r.src.Position(), "invalid literal %q", word)
}

// stepHex feeds the h'...' buffer leaf one hex digit at a time,
// emitting a BufferData event per completed byte pair.
func (r *Reader) stepHex() (bool, error) {
	ch, rr, err := r.getRune()
	if err != nil {
		return false, err
	}
	switch rr {
	case rrSuspend:
		return false, nil
	case rrEOF:
		return false, r.fail(r.src.Position(), unexpectedEOF()+" inside h'...' literal")
	}
	if ch == '\'' {
		if err := r.hexDec.Close(); err != nil {
			return false, r.fail(r.src.Position(), "%s", err.Error())
		}
		r.emit(event.BufEnd())
		r.leaf = leafNone
		return true, r.valueCompleted()
	}
	if ch > 0x7F {
		return false, r.fail(r.src.Position(), "invalid hex digit %q", ch)
	}
	b, produced, perr := r.hexDec.Push(byte(ch))
	if perr != nil {
		return false, r.fail(r.src.Position(), "%s", perr.Error())
	}
	if produced {
		r.emit(event.BufData([]byte{b}))
	}
	return true, nil
}

// stepB64 feeds the b'...' buffer leaf one base64 character at a
// time, emitting a BufferData event per completed (or final partial)
// quantum.
func (r *Reader) stepB64() (bool, error) {
	ch, rr, err := r.getRune()
	if err != nil {
		return false, err
	}
	switch rr {
	case rrSuspend:
		return false, nil
	case rrEOF:
		return false, r.fail(r.src.Position(), unexpectedEOF()+" inside b'...' literal")
	}
	if ch == '\'' {
		out, perr := r.b64Dec.Close()
		if perr != nil {
			return false, r.fail(r.src.Position(), "%s", perr.Error())
		}
		if len(out) > 0 {
			r.emit(event.BufData(out))
		}
		r.emit(event.BufEnd())
		r.leaf = leafNone
		return true, r.valueCompleted()
	}
	if ch > 0x7F {
		return false, r.fail(r.src.Position(), "invalid base64 character %q", ch)
	}
	out, perr := r.b64Dec.Push(byte(ch))
	if perr != nil {
		return false, r.fail(r.src.Position(), "%s", perr.Error())
	}
	if len(out) > 0 {
		r.emit(event.BufData(out))
	}
	return true, nil
}
