package eventbuf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcvoid/streamcodec/event"
)

func TestDeterminizeEmptyList(t *testing.T) {
	out, err := Determinize([]event.Event{event.ListStart(event.Indeterminate), event.ListEnd()})
	require.NoError(t, err)
	require.Equal(t, []event.Event{event.ListStart(0), event.ListEnd()}, out)
}

func TestDeterminizeEmptyMap(t *testing.T) {
	out, err := Determinize([]event.Event{event.MapStart(event.Indeterminate), event.MapEnd()})
	require.NoError(t, err)
	require.Equal(t, []event.Event{event.MapStart(0), event.MapEnd()}, out)
}

func TestDeterminizeCountsMapPairsNotEntries(t *testing.T) {
	in := []event.Event{
		event.MapStart(event.Indeterminate),
		event.StrStart(event.Indeterminate), event.StrData("a"), event.StrEnd(),
		event.Num(event.Int32(1)),
		event.StrStart(event.Indeterminate), event.StrData("b"), event.StrEnd(),
		event.Num(event.Int32(2)),
		event.MapEnd(),
	}
	out, err := Determinize(in)
	require.NoError(t, err)
	require.Equal(t, int64(2), out[0].Size)
	// everything but the patched Size is untouched
	require.Equal(t, in[1:], out[1:])
}

func TestDeterminizePatchesNestedCompositesIndependently(t *testing.T) {
	in := []event.Event{
		event.MapStart(event.Indeterminate),
		event.StrStart(event.Indeterminate), event.StrData("b"), event.StrEnd(),
		event.ListStart(event.Indeterminate),
		event.Num(event.Int32(2)),
		event.Num(event.Int32(3)),
		event.ListEnd(),
		event.MapEnd(),
	}
	out, err := Determinize(in)
	require.NoError(t, err)
	require.Equal(t, int64(1), out[0].Size, "map has one key-value pair")
	require.Equal(t, int64(2), out[4].Size, "nested list has two elements")
}

func TestDeterminizeLeavesStringAndBufferSizesAlone(t *testing.T) {
	in := []event.Event{
		event.StrStart(event.Indeterminate), event.StrData("x"), event.StrEnd(),
	}
	out, err := Determinize(in)
	require.NoError(t, err)
	require.Equal(t, event.Indeterminate, out[0].Size)
}

func TestDeterminizeLeavesTagsAndScalarsAlone(t *testing.T) {
	in := []event.Event{
		event.ListStart(event.Indeterminate),
		event.TagOf(5),
		event.BufStart(event.Indeterminate), event.BufData([]byte{1}), event.BufEnd(),
		event.ListEnd(),
	}
	out, err := Determinize(in)
	require.NoError(t, err)
	require.Equal(t, int64(1), out[0].Size, "the tag doesn't count as its own list element")
	require.Equal(t, event.TagOf(5), out[1])
}

func TestDeterminizeErrorsOnMismatchedEnd(t *testing.T) {
	_, err := Determinize([]event.Event{event.ListStart(event.Indeterminate), event.MapEnd()})
	require.Error(t, err)
}

func TestDeterminizeErrorsOnUnopenedEnd(t *testing.T) {
	_, err := Determinize([]event.Event{event.MapEnd()})
	require.Error(t, err)
}
