package jsonreader

// frameKind is the composite type a stack frame represents.
type frameKind int

const (
	frameRoot frameKind = iota
	frameList
	frameMap
	frameTag
)

// frameState is the "legal next token" position within a frame,
// matching the per-frame mode table in spec.md §4.C.
type frameState int

const (
	stRootValue frameState = iota
	stRootDone

	stListOpened
	stListAfterValue
	stListAfterComma

	stMapOpened
	stMapAfterKey
	stMapAfterColon
	stMapAfterValue

	stTagValue
	stTagAfterValue
)

type frame struct {
	kind  frameKind
	state frameState
}

// expectingKey reports whether a map frame is currently reading a key
// (as opposed to a value); only meaningful for frameMap frames and
// only valid to call while a child value/leaf is in flight, since the
// frame's state doesn't change until the child completes.
func (f *frame) expectingKey() bool {
	return f.kind == frameMap && f.state == stMapOpened
}
