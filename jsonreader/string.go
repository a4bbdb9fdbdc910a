package jsonreader

import (
	"unicode/utf8"

	"github.com/mcvoid/streamcodec/event"
	"github.com/mcvoid/streamcodec/internal/codectext"
)

const stringChunkThreshold = 4096

// stepString drives the string leaf sub-machine one character at a
// time: plain bytes accumulate in strRun, escapes decode in place, and
// each \uXXXX resolves independently — surrogate halves are never
// recombined across escapes.
func (r *Reader) stepString() (bool, error) {
	ch, rr, err := r.getRune()
	if err != nil {
		return false, err
	}
	switch rr {
	case rrSuspend:
		return false, nil
	case rrEOF:
		return false, r.fail(r.src.Position(), unexpectedEOF()+" inside string")
	}

	if r.strUniRemain > 0 {
		v, ok := hexVal4(ch)
		if !ok {
			return false, r.fail(r.src.Position(), "invalid hex digit %q in \\u escape", ch)
		}
		r.strUniVal = r.strUniVal<<4 | v
		r.strUniRemain--
		if r.strUniRemain == 0 {
			r.resolveUnicodeEscape(r.strUniVal)
		}
		return true, nil
	}

	if r.strEsc {
		r.strEsc = false
		switch ch {
		case '"':
			r.strRun = append(r.strRun, '"')
		case '\\':
			r.strRun = append(r.strRun, '\\')
		case '/':
			r.strRun = append(r.strRun, '/')
		case 'b':
			r.strRun = append(r.strRun, '\b')
		case 'f':
			r.strRun = append(r.strRun, '\f')
		case 'n':
			r.strRun = append(r.strRun, '\n')
		case 'r':
			r.strRun = append(r.strRun, '\r')
		case 't':
			r.strRun = append(r.strRun, '\t')
		case 'u':
			r.strUniRemain = 4
			r.strUniVal = 0
		default:
			return false, r.fail(r.src.Position(), "invalid escape \\%c", ch)
		}
		return true, nil
	}

	switch {
	case ch == '\\':
		r.strEsc = true
		return true, nil
	case ch == '"':
		r.flushStringRun()
		r.emit(event.StrEnd())
		r.leaf = leafNone
		return true, r.valueCompleted()
	case codectext.IsDisallowedStringChar(ch):
		return false, r.fail(r.src.Position(), "disallowed control character %q in string", codectext.EscapeRune(ch))
	default:
		r.strRun = utf8.AppendRune(r.strRun, ch)
		if len(r.strRun) >= stringChunkThreshold {
			r.flushStringRun()
		}
		return true, nil
	}
}

func hexVal4(c rune) (rune, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

const (
	surrHighLo = 0xD800
	surrLowHi  = 0xDFFF
)

// resolveUnicodeEscape handles one completed \uXXXX code unit. Every
// escape decodes and emits independently: a high or low surrogate
// value is never looked ahead/combined with a neighboring escape into
// an astral code point, even when a valid pair appears back to back —
// each half is its own WTF-8 code unit.
func (r *Reader) resolveUnicodeEscape(v rune) {
	if v >= surrHighLo && v <= surrLowHi {
		r.strRun = appendSurrogateUnit(r.strRun, v)
		return
	}
	r.strRun = utf8.AppendRune(r.strRun, v)
}

// appendSurrogateUnit encodes an unpaired surrogate as its raw 3-byte
// UTF-8 form (WTF-8) rather than the U+FFFD replacement utf8.AppendRune
// would produce, so a lone \uDxxx escape round-trips as one code unit.
func appendSurrogateUnit(buf []byte, v rune) []byte {
	return append(buf, byte(0xE0|(v>>12)), byte(0x80|((v>>6)&0x3F)), byte(0x80|(v&0x3F)))
}

func (r *Reader) flushStringRun() {
	if len(r.strRun) == 0 {
		return
	}
	r.emit(event.StrData(string(r.strRun)))
	r.strRun = r.strRun[:0]
}
