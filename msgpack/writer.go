// Package msgpack implements the event-consuming MessagePack emitter
// from spec.md §4.D: a state machine mirroring jsonreader's, driven by
// event.Event instead of runes, with indeterminate-length string and
// buffer spooling and strict (non-negotiable) known-length composites.
package msgpack

import (
	"bytes"
	"io"
	"sort"
	"unicode/utf8"

	"github.com/mcvoid/streamcodec/event"
	"github.com/mcvoid/streamcodec/internal/codectext"
)

type frameKind int

const (
	frameRoot frameKind = iota
	frameMap
	frameList
	frameSpool
)

type sortedPair struct {
	key  []byte
	full []byte
}

// frame is the writer's (remaining, state) bookkeeping unit, plus the
// spooling/streaming state used while a string/buffer or a
// sorted-key map is in flight.
type frame struct {
	kind      frameKind
	remaining int64

	isStr bool // true for a string frame, false for a buffer frame

	spooling bool // StartString/StartBuffer with Indeterminate size
	spoolBuf bytes.Buffer
	spoolTag *uint64

	streaming       bool // StartString/StartBuffer with a known size
	streamValidator codectext.Utf8ChunkValidator

	sorting     bool // frameMap with WithSortedKeys active
	sortBuf     bytes.Buffer
	sortPairs   []sortedPair
	sortAtPair  bool // true: next completion ends a value, not a key
	sortMapSize int64
}

// Writer consumes a flat event.Event stream and emits MessagePack
// bytes to an underlying io.Writer. It assumes exclusive ownership of
// out for the duration of each Write call and never flushes on its
// own.
type Writer struct {
	out   io.Writer
	opts  options
	tag   *uint64
	stack []frame
}

// New constructs a Writer emitting to out.
func New(out io.Writer, opts ...Option) *Writer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Writer{
		out:   out,
		opts:  o,
		stack: []frame{{kind: frameRoot, remaining: 1}},
	}
}

func (w *Writer) top() *frame { return &w.stack[len(w.stack)-1] }

// sink returns the io.Writer bytes should currently flow to: the
// innermost in-flight sorted-key map's capture buffer, the innermost
// in-flight spool buffer, or the real output.
func (w *Writer) sink() io.Writer {
	for i := len(w.stack) - 1; i >= 0; i-- {
		f := &w.stack[i]
		if f.spooling {
			return &f.spoolBuf
		}
		if f.sorting {
			return &f.sortBuf
		}
	}
	return w.out
}

func (w *Writer) write(p []byte) error {
	_, err := w.sink().Write(p)
	return err
}

// Write consumes one event. done reports whether the outermost value
// has now been fully emitted.
func (w *Writer) Write(ev event.Event) (done bool, err error) {
	f := w.top()

	if f.spooling {
		return w.writeSpooling(f, ev)
	}
	if f.streaming {
		return w.writeStreaming(f, ev)
	}

	// A Tag binds only to the event immediately following it; consume
	// it here so anything but a StartBuffer drops it on the floor.
	pendingTag := w.tag
	w.tag = nil

	switch ev.Kind {
	case event.StartMap:
		return false, w.writeStartComposite(ev, frameMap)
	case event.StartList:
		return false, w.writeStartComposite(ev, frameList)
	case event.EndMap:
		return w.writeEndComposite(frameMap)
	case event.EndList:
		return w.writeEndComposite(frameList)
	case event.StartString:
		return false, w.startValue(ev, true, nil)
	case event.StartBuffer:
		return false, w.startValue(ev, false, pendingTag)
	case event.NumberValue:
		b, err := appendNumber(nil, ev.Num)
		if err != nil {
			return false, err
		}
		return w.completeValue(b)
	case event.Boolean:
		if ev.Bool {
			return w.completeValue([]byte{0xc3})
		}
		return w.completeValue([]byte{0xc2})
	case event.Null, event.Undefined:
		return w.completeValue([]byte{0xc0})
	case event.Tag:
		v := ev.TagValue
		w.tag = &v
		return false, nil
	case event.Simple:
		return false, protoErrorf("MessagePack has no Simple type (value %d)", ev.Simple)
	default:
		return false, protoErrorf("unexpected event %s outside any composite", ev.Kind)
	}
}

func (w *Writer) writeStartComposite(ev event.Event, kind frameKind) error {
	if ev.Size == event.Indeterminate {
		what := "map"
		if kind == frameList {
			what = "list"
		}
		return protoErrorf("invalid MessagePack %s size 'indeterminate'", what)
	}
	// The parent frame is decremented once, when this composite fully
	// closes (see completeValue), not here at its start.
	sortThis := kind == frameMap && w.opts.sortedKeys
	if !sortThis {
		var buf []byte
		if kind == frameMap {
			buf = appendMapHeader(buf, ev.Size)
		} else {
			buf = appendListHeader(buf, ev.Size)
		}
		if err := w.write(buf); err != nil {
			return err
		}
	}

	nf := frame{kind: kind}
	if kind == frameMap {
		nf.remaining = ev.Size * 2
	} else {
		nf.remaining = ev.Size
	}
	if sortThis {
		nf.sorting = true
		nf.sortMapSize = ev.Size
	}
	w.stack = append(w.stack, nf)
	return nil
}

func (w *Writer) writeEndComposite(kind frameKind) (bool, error) {
	f := w.top()
	if f.kind != kind {
		return false, protoErrorf("mismatched End event for %v frame", f.kind)
	}
	if f.remaining != 0 {
		return false, protoErrorf("composite closed with %d children still owed", f.remaining)
	}
	closing := *f
	w.stack = w.stack[:len(w.stack)-1]

	if closing.sorting {
		sort.SliceStable(closing.sortPairs, func(i, j int) bool {
			return bytes.Compare(closing.sortPairs[i].key, closing.sortPairs[j].key) < 0
		})
		var buf []byte
		buf = appendMapHeader(buf, closing.sortMapSize)
		for _, p := range closing.sortPairs {
			buf = append(buf, p.full...)
		}
		if err := w.write(buf); err != nil {
			return false, err
		}
	}
	return w.completeValue(nil)
}

// decrement accounts for one completed direct child, failing if the
// composite has already received as many children as it declared.
func (f *frame) decrement() error {
	f.remaining--
	if f.remaining < 0 {
		return protoErrorf("Overflow")
	}
	return nil
}

// completeValue writes a fully-encoded scalar (or the just-closed
// composite's own header+body, with raw==nil) to the correct sink,
// tracks sorted-map pair boundaries, and decrements the parent frame.
func (w *Writer) completeValue(raw []byte) (bool, error) {
	if raw != nil {
		if err := w.write(raw); err != nil {
			return false, err
		}
	}
	if len(w.stack) == 1 {
		// completing the root value itself
		if w.stack[0].remaining == 0 {
			return false, protoErrorf("Overflow")
		}
		w.stack[0].remaining = 0
		return true, nil
	}
	parent := w.top()
	if parent.sorting {
		parent.recordSortBoundary()
	}
	if err := parent.decrement(); err != nil {
		return false, err
	}
	return false, nil
}

// recordSortBoundary splits the parent sorting-map's capture buffer at
// alternating key/value boundaries: odd completions end a key, even
// completions end a value and close out one sortedPair.
func (f *frame) recordSortBoundary() {
	all := f.sortBuf.Bytes()
	if !f.sortAtPair {
		f.sortPairs = append(f.sortPairs, sortedPair{key: append([]byte(nil), all...)})
		f.sortAtPair = true
		return
	}
	p := &f.sortPairs[len(f.sortPairs)-1]
	p.full = append([]byte(nil), all...)
	f.sortBuf.Reset()
	f.sortAtPair = false
}

// startValue begins a StartString/StartBuffer value. spec.md §4.D
// distinguishes two paths: a known length writes its header immediately
// and streams the data straight through (startStream); an indeterminate
// length has to see every chunk before its length is known, so it
// buffers and measures first (startSpool).
func (w *Writer) startValue(ev event.Event, isStr bool, tag *uint64) error {
	if ev.Size == event.Indeterminate {
		return w.startSpool(ev, isStr, tag)
	}
	return w.startStream(ev, isStr, tag)
}

func (w *Writer) startSpool(ev event.Event, isStr bool, tag *uint64) error {
	// As with a composite, the parent is decremented once this spooled
	// value's End event completes it, not here at its start.
	nf := frame{kind: frameSpool, isStr: isStr}
	nf.spooling = true
	nf.spoolTag = tag

	w.stack = append(w.stack, nf)
	return nil
}

func (w *Writer) writeSpooling(f *frame, ev event.Event) (bool, error) {
	switch ev.Kind {
	case event.StringData, event.BufferData:
		f.spoolBuf.Write(ev.Bytes)
		return false, nil
	case event.EndString, event.EndBuffer:
		closing := *f
		w.stack = w.stack[:len(w.stack)-1]
		body := closing.spoolBuf.Bytes()

		var header []byte
		if closing.isStr {
			if !utf8.Valid(body) {
				return false, protoErrorf("string data is not valid UTF-8")
			}
			header = appendStrHeader(header, len(body))
		} else {
			header = appendBufHeader(header, len(body), closing.spoolTag)
		}
		return w.completeValue(append(header, body...))
	default:
		return false, protoErrorf("unexpected event %s while spooling %s", ev.Kind, spoolName(f))
	}
}

// startStream handles a known-length string/buffer: the header is
// written immediately from ev.Size, and every StringData/BufferData
// chunk streams straight to the sink with no per-event buffering
// beyond the small straddling-rune carry a string needs for UTF-8
// validation (spec.md §2's "no per-event allocation beyond small,
// reusable buffers" invariant).
func (w *Writer) startStream(ev event.Event, isStr bool, tag *uint64) error {
	var header []byte
	if isStr {
		header = appendStrHeader(header, int(ev.Size))
	} else {
		header = appendBufHeader(header, int(ev.Size), tag)
	}
	if err := w.write(header); err != nil {
		return err
	}
	w.stack = append(w.stack, frame{kind: frameSpool, isStr: isStr, streaming: true})
	return nil
}

func (w *Writer) writeStreaming(f *frame, ev event.Event) (bool, error) {
	switch ev.Kind {
	case event.StringData:
		valid, err := f.streamValidator.Push(ev.Bytes)
		if err != nil {
			return false, protoErrorf("%s", err.Error())
		}
		return false, w.write(valid)
	case event.BufferData:
		return false, w.write(ev.Bytes)
	case event.EndString, event.EndBuffer:
		if f.isStr {
			if err := f.streamValidator.Close(); err != nil {
				return false, protoErrorf("%s", err.Error())
			}
		}
		w.stack = w.stack[:len(w.stack)-1]
		return w.completeValue(nil)
	default:
		return false, protoErrorf("unexpected event %s while streaming %s", ev.Kind, spoolName(f))
	}
}

func spoolName(f *frame) string {
	if f.isStr {
		return "string"
	}
	return "buffer"
}
