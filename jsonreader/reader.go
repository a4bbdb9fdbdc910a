// Package jsonreader implements the resumable pull parser from
// spec.md §4.C: a state machine that consumes a source.CharSource and
// emits a flat sequence of event.Event, tolerating input arriving in
// arbitrary chunks.
package jsonreader

import (
	"errors"
	"io"

	"github.com/mcvoid/streamcodec/event"
	"github.com/mcvoid/streamcodec/internal/codectext"
	"github.com/mcvoid/streamcodec/source"
)

// leafKind is the sub-machine currently consuming characters within
// the current value, or leafNone between values.
type leafKind int

const (
	leafNone leafKind = iota
	leafString
	leafNumber
	leafToken
	leafHexBuffer
	leafB64Buffer
	leafExpectQuote
)

// Reader is a resumable pull parser over a source.CharSource.
type Reader struct {
	src  source.CharSource
	opts options

	frames []frame
	leaf   leafKind

	// pendingBufLeaf remembers which buffer leaf (hex or base64) to
	// enter once leafExpectQuote sees the opening quote.
	pendingBufLeaf leafKind

	events []event.Event
	err    error
	finished bool

	// string sub-machine scratch
	strRun       []byte // pending run of literal chars not yet flushed as StringData
	strEsc       bool   // saw a '\' and is waiting on the escape letter
	strUniRemain int    // hex digits still needed to complete a \uXXXX escape
	strUniVal    rune   // \uXXXX accumulator

	// number sub-machine scratch
	num numState

	// token sub-machine scratch
	tok []byte

	hexDec codectext.HexDecoder
	b64Dec codectext.Base64Decoder
}

// New constructs a Reader pulling characters from src.
func New(src source.CharSource, opts ...Option) *Reader {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Reader{
		src:    src,
		opts:   o,
		frames: []frame{{kind: frameRoot, state: stRootValue}},
	}
}

// HasNext drives the state machine until at least one event is queued,
// a confirmed EOF is reached (returns false, nil), a non-final source
// runs temporarily dry (returns false, nil — caller may supply more
// input and call again), or a terminal error occurs.
func (r *Reader) HasNext() (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for len(r.events) == 0 && !r.finished {
		progressed, err := r.advance()
		if err != nil {
			return false, err
		}
		if !progressed {
			return false, nil
		}
	}
	return len(r.events) > 0, nil
}

// ErrNoEvent is returned by Next when HasNext would return false with
// no error: either confirmed EOF, or a non-final source's temporary
// underrun.
var ErrNoEvent = errors.New("jsonreader: no event available")

// Next returns the next event, or ErrNoEvent if none is currently
// available (see HasNext), or a terminal error.
func (r *Reader) Next() (event.Event, error) {
	ok, err := r.HasNext()
	if err != nil {
		return event.Event{}, err
	}
	if !ok {
		return event.Event{}, ErrNoEvent
	}
	ev := r.events[0]
	r.events = r.events[1:]
	return ev, nil
}

// Position reports the underlying source's current position.
func (r *Reader) Position() source.Position { return r.src.Position() }

func (r *Reader) emit(ev event.Event) { r.events = append(r.events, ev) }

func (r *Reader) top() *frame { return &r.frames[len(r.frames)-1] }

// runeResult classifies what getRune observed.
type runeResult int

const (
	rrOK runeResult = iota
	rrSuspend
	rrEOF
)

// getRune reads one rune from the source, translating the source's
// blocking/partial-read contract into the reader's suspend/EOF
// vocabulary. A non-final source drained of buffered input reports
// rrSuspend unless the reader is configured WithFinal, in which case
// it is promoted to rrEOF so pending literal states get flushed.
func (r *Reader) getRune() (rune, runeResult, error) {
	ch, err := r.src.Get()
	switch {
	case err == nil:
		return ch, rrOK, nil
	case errors.Is(err, io.EOF):
		return 0, rrEOF, nil
	case errors.Is(err, io.ErrNoProgress):
		if r.opts.final {
			return 0, rrEOF, nil
		}
		return 0, rrSuspend, nil
	default:
		r.err = err
		return 0, rrSuspend, err
	}
}

// advance makes one unit of forward progress: consuming whitespace,
// dispatching a new value, feeding a leaf sub-machine one character,
// or closing out the parse. It returns progressed=false exactly when
// the caller should stop and, for a streaming source, supply more
// input before calling again.
func (r *Reader) advance() (bool, error) {
	switch r.leaf {
	case leafString:
		return r.stepString()
	case leafNumber:
		return r.stepNumber()
	case leafToken:
		return r.stepToken()
	case leafHexBuffer:
		return r.stepHex()
	case leafB64Buffer:
		return r.stepB64()
	case leafExpectQuote:
		return r.stepExpectQuote()
	default:
		return r.stepFrame()
	}
}

func isJSONSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// stepFrame handles the object-level sub-machine: skipping whitespace,
// dispatching the start of a new value, or consuming a structural
// delimiter (',', ':', ']', '}').
func (r *Reader) stepFrame() (bool, error) {
	f := r.top()

	if f.kind == frameRoot && f.state == stRootDone {
		return r.stepTrailing()
	}

	ch, rr, err := r.getRune()
	if err != nil {
		return false, err
	}
	switch rr {
	case rrSuspend:
		return false, nil
	case rrEOF:
		return false, r.handleEOFAtFrame(f)
	}

	if isJSONSpace(ch) {
		return true, nil
	}

	switch f.kind {
	case frameRoot:
		return true, r.dispatchValue(ch)
	case frameList:
		return r.stepListFrame(f, ch)
	case frameMap:
		return r.stepMapFrame(f, ch)
	case frameTag:
		return r.stepTagFrame(f, ch)
	}
	return true, nil
}

func (r *Reader) stepTagFrame(f *frame, ch rune) (bool, error) {
	switch f.state {
	case stTagValue:
		return true, r.dispatchValue(ch)
	case stTagAfterValue:
		if ch == ')' {
			r.frames = r.frames[:len(r.frames)-1]
			return true, r.valueCompleted()
		}
		return false, r.fail(r.src.Position(), "expected ')' to close tag, got %q", codectext.EscapeRune(ch))
	}
	return false, r.fail(r.src.Position(), unexpectedRune(ch))
}

func (r *Reader) handleEOFAtFrame(f *frame) error {
	if f.kind == frameRoot && f.state == stRootValue {
		return r.fail(r.src.Position(), unexpectedEOF()+", expected a value")
	}
	if f.kind == frameRoot && f.state == stRootDone {
		r.finished = true
		return nil
	}
	return r.fail(r.src.Position(), unexpectedEOF()+" inside composite")
}

func (r *Reader) stepTrailing() (bool, error) {
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
		r.finished = true
		return true, nil
	}
	if isJSONSpace(ch) {
		return true, nil
	}
	if r.opts.draining {
		return false, r.fail(r.src.Position(), "trailing content %q", codectext.EscapeRune(ch))
	}
	if err := r.src.Reset(); err != nil {
		return false, err
	}
	r.finished = true
	return true, nil
}

func (r *Reader) stepListFrame(f *frame, ch rune) (bool, error) {
	switch f.state {
	case stListOpened:
		if ch == ']' {
			return true, r.closeList()
		}
		return true, r.dispatchValue(ch)
	case stListAfterComma:
		if ch == ']' {
			if r.opts.trailingComma {
				return true, r.closeList()
			}
			return false, r.fail(r.src.Position(), "trailing comma not permitted before ']'")
		}
		return true, r.dispatchValue(ch)
	case stListAfterValue:
		if ch == ',' {
			f.state = stListAfterComma
			return true, nil
		}
		if ch == ']' {
			return true, r.closeList()
		}
		return false, r.fail(r.src.Position(), unexpectedRune(ch))
	}
	return false, r.fail(r.src.Position(), unexpectedRune(ch))
}

func (r *Reader) stepMapFrame(f *frame, ch rune) (bool, error) {
	switch f.state {
	case stMapOpened:
		if ch == '}' {
			return true, r.closeMap()
		}
		if ch == '"' || (r.opts.cborDiag && canStartValue(ch, r.opts)) {
			return true, r.dispatchValue(ch)
		}
		return false, r.fail(r.src.Position(), "expected a string key, got %q", codectext.EscapeRune(ch))
	case stMapAfterKey:
		if ch == ':' {
			f.state = stMapAfterColon
			return true, nil
		}
		return false, r.fail(r.src.Position(), "expected ':', got %q", codectext.EscapeRune(ch))
	case stMapAfterColon:
		return true, r.dispatchValue(ch)
	case stMapAfterValue:
		if ch == ',' {
			f.state = stMapOpened
			return true, nil
		}
		if ch == '}' {
			return true, r.closeMap()
		}
		return false, r.fail(r.src.Position(), unexpectedRune(ch))
	}
	return false, r.fail(r.src.Position(), unexpectedRune(ch))
}

func (r *Reader) closeList() error {
	r.emit(event.ListEnd())
	r.frames = r.frames[:len(r.frames)-1]
	return r.valueCompleted()
}

func (r *Reader) closeMap() error {
	r.emit(event.MapEnd())
	r.frames = r.frames[:len(r.frames)-1]
	return r.valueCompleted()
}

// valueCompleted transitions the (now-current, post-pop) top frame
// after one of its children has fully finished, distinguishing a map
// key from a map value by the frame's own pre-transition state.
func (r *Reader) valueCompleted() error {
	f := r.top()
	switch f.kind {
	case frameRoot:
		f.state = stRootDone
	case frameList:
		f.state = stListAfterValue
	case frameMap:
		if f.state == stMapOpened {
			f.state = stMapAfterKey
		} else {
			f.state = stMapAfterValue
		}
	case frameTag:
		f.state = stTagAfterValue
	}
	return nil
}

// canStartValue reports whether ch can begin some value, used to let
// cborDiag accept number/token-shaped map keys.
func canStartValue(ch rune, o options) bool {
	switch {
	case ch == '{' || ch == '[' || ch == '"':
		return true
	case ch == '-' || isDigit(ch):
		return true
	case ch == 't' || ch == 'f' || ch == 'n':
		return true
	case o.cborDiag && (ch == 'u' || ch == 'N' || ch == 'I' || ch == 'h' || ch == 'b'):
		return true
	}
	return false
}

// dispatchValue begins parsing a new value whose first character is
// ch (already consumed from the source).
func (r *Reader) dispatchValue(ch rune) error {
	switch {
	case ch == '{':
		r.frames = append(r.frames, frame{kind: frameMap, state: stMapOpened})
		r.emit(event.MapStart(event.Indeterminate))
		return nil
	case ch == '[':
		r.frames = append(r.frames, frame{kind: frameList, state: stListOpened})
		r.emit(event.ListStart(event.Indeterminate))
		return nil
	case ch == '"':
		r.leaf = leafString
		r.strRun = r.strRun[:0]
		r.emit(event.StrStart(event.Indeterminate))
		return nil
	case ch == '-' || isDigit(ch):
		r.leaf = leafNumber
		r.num = newNumState()
		return r.num.feed(r, ch)
	case ch == 't' || ch == 'f' || ch == 'n':
		r.leaf = leafToken
		r.tok = append(r.tok[:0], byte(ch))
		return nil
	case r.opts.cborDiag && (ch == 'u' || ch == 'N' || ch == 'I'):
		r.leaf = leafToken
		r.tok = append(r.tok[:0], byte(ch))
		return nil
	case r.opts.cborDiag && ch == 'h':
		r.leaf = leafExpectQuote
		r.pendingBufLeaf = leafHexBuffer
		return nil
	case r.opts.cborDiag && ch == 'b':
		r.leaf = leafExpectQuote
		r.pendingBufLeaf = leafB64Buffer
		return nil
	default:
		return r.fail(r.src.Position(), unexpectedRune(ch))
	}
}

// stepExpectQuote consumes the ' after an h/b prefix and begins the
// named binary-buffer leaf. It goes through the normal per-character
// advance() loop rather than a second blocking read so a non-final
// source that runs dry right after the prefix character suspends
// instead of failing.
func (r *Reader) stepExpectQuote() (bool, error) {
	ch, rr, err := r.getRune()
	if err != nil {
		return false, err
	}
	switch rr {
	case rrSuspend:
		return false, nil
	case rrEOF:
		return false, r.fail(r.src.Position(), unexpectedEOF()+" after h/b prefix")
	}
	if ch != '\'' {
		return false, r.fail(r.src.Position(), "expected ' after h/b prefix, got %q", codectext.EscapeRune(ch))
	}
	r.leaf = r.pendingBufLeaf
	r.hexDec = codectext.HexDecoder{}
	r.b64Dec = codectext.Base64Decoder{}
	r.emit(event.BufStart(event.Indeterminate))
	return true, nil
}
