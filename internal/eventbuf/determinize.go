// Package eventbuf buffers one root value's worth of structural
// events and patches each composite's Size in place, turning the
// indeterminate StartMap(-1)/StartList(-1) a textual reader emits into
// the known-length form a MessagePack writer requires.
package eventbuf

import "github.com/mcvoid/streamcodec/event"

type openFrame struct {
	idx   int
	kind  event.Kind
	count int64
}

// Determinize returns a copy of events with every StartMap/StartList
// Size replaced by its actual child count (pair count for maps,
// element count for lists). events must hold exactly one complete
// value — a matching End* for every Start* it contains, with no
// partial composite left open.
func Determinize(events []event.Event) ([]event.Event, error) {
	out := make([]event.Event, len(events))
	copy(out, events)

	var stack []openFrame
	bump := func() {
		if len(stack) > 0 {
			stack[len(stack)-1].count++
		}
	}

	for i, ev := range events {
		switch ev.Kind {
		case event.StartMap, event.StartList, event.StartString, event.StartBuffer:
			stack = append(stack, openFrame{idx: i, kind: ev.Kind})
		case event.EndMap:
			f, err := pop(&stack, event.StartMap)
			if err != nil {
				return nil, err
			}
			out[f.idx].Size = f.count / 2
			bump()
		case event.EndList:
			f, err := pop(&stack, event.StartList)
			if err != nil {
				return nil, err
			}
			out[f.idx].Size = f.count
			bump()
		case event.EndString:
			if _, err := pop(&stack, event.StartString); err != nil {
				return nil, err
			}
			bump()
		case event.EndBuffer:
			if _, err := pop(&stack, event.StartBuffer); err != nil {
				return nil, err
			}
			bump()
		case event.StringData, event.BufferData, event.Tag:
			// internal to an in-flight String/Buffer frame, or applies
			// to the following event; neither is itself a child.
		default:
			bump()
		}
	}
	return out, nil
}

func pop(stack *[]openFrame, want event.Kind) (openFrame, error) {
	s := *stack
	if len(s) == 0 || s[len(s)-1].kind != want {
		return openFrame{}, errMismatched(want)
	}
	f := s[len(s)-1]
	*stack = s[:len(s)-1]
	return f, nil
}

func errMismatched(want event.Kind) error {
	return &mismatchError{want}
}

type mismatchError struct{ want event.Kind }

func (e *mismatchError) Error() string {
	return "eventbuf: unmatched End for " + e.want.String()
}
