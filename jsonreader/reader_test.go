package jsonreader

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcvoid/streamcodec/event"
	"github.com/mcvoid/streamcodec/source"
)

func parseAll(t *testing.T, input string, opts ...Option) []event.Event {
	t.Helper()
	r := New(source.NewStringSource(input), opts...)
	var got []event.Event
	for {
		ok, err := r.HasNext()
		require.NoError(t, err, "input %q", input)
		if !ok {
			return got
		}
		ev, err := r.Next()
		require.NoError(t, err)
		got = append(got, ev)
	}
}

func parseErr(t *testing.T, input string, opts ...Option) error {
	t.Helper()
	r := New(source.NewStringSource(input), opts...)
	for {
		ok, err := r.HasNext()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if _, err := r.Next(); err != nil {
			return err
		}
	}
}

// Scenario 1 from spec.md §8.
func TestEmptyList(t *testing.T) {
	got := parseAll(t, "[]")
	require.Equal(t, []event.Event{event.ListStart(event.Indeterminate), event.ListEnd()}, got)
}

// Scenario 2 from spec.md §8.
func TestObjectWithScalars(t *testing.T) {
	got := parseAll(t, `{"a":1,"b":-3}`)
	want := []event.Event{
		event.MapStart(event.Indeterminate),
		event.StrStart(event.Indeterminate),
		event.StrData("a"),
		event.StrEnd(),
		event.Num(event.Int32(1)),
		event.StrStart(event.Indeterminate),
		event.StrData("b"),
		event.StrEnd(),
		event.Num(event.Int32(-3)),
		event.MapEnd(),
	}
	require.Equal(t, want, got)
}

// Scenario 3 from spec.md §8.
func TestFloatBigDecimalOption(t *testing.T) {
	got := parseAll(t, "3.14")
	require.Len(t, got, 1)
	require.Equal(t, event.NumberFloat64, got[0].Num.Kind)
	require.Equal(t, 3.14, got[0].Num.F64)

	got = parseAll(t, "3.14", WithBigDecimal())
	require.Len(t, got, 1)
	require.Equal(t, event.NumberFloat64, got[0].Num.Kind, "3.14 round-trips exactly, so big-decimal promotion should not trigger")
}

func TestBigDecimalPromotesNonRoundTrippingFloat(t *testing.T) {
	literal := "0.100000000000000005551115123125782702118158340454101562500"
	got := parseAll(t, literal, WithBigDecimal())
	require.Len(t, got, 1)
	require.Equal(t, event.NumberBigDecimal, got[0].Num.Kind)
}

// Scenario 4 from spec.md §8.
func TestCBORDiagTag(t *testing.T) {
	got := parseAll(t, `32("http://x")`, WithCBORDiag())
	want := []event.Event{
		event.TagOf(32),
		event.StrStart(event.Indeterminate),
		event.StrData("http://x"),
		event.StrEnd(),
	}
	require.Equal(t, want, got)
}

// Scenario 5 from spec.md §8: streaming input arriving in two chunks.
func TestStreamingAcrossChunks(t *testing.T) {
	ch := make(chan string, 2)
	r := New(source.NewChannelCharSource(ch), WithPartial())
	ch <- `{"a":`

	var got []event.Event
	drain := func() {
		for {
			ok, err := r.HasNext()
			require.NoError(t, err)
			if !ok {
				return
			}
			ev, err := r.Next()
			require.NoError(t, err)
			got = append(got, ev)
		}
	}
	drain()
	require.Equal(t, []event.Event{
		event.MapStart(event.Indeterminate),
		event.StrStart(event.Indeterminate),
		event.StrData("a"),
		event.StrEnd(),
	}, got, "partial input should emit everything parseable so far, with no error")

	ch <- `1}`
	close(ch)
	drain()
	require.Equal(t, []event.Event{
		event.MapStart(event.Indeterminate),
		event.StrStart(event.Indeterminate),
		event.StrData("a"),
		event.StrEnd(),
		event.Num(event.Int32(1)),
		event.MapEnd(),
	}, got)

	ok, err := r.HasNext()
	require.NoError(t, err)
	require.False(t, ok, "reader should report clean EOF after the closing '}'")
}

func TestTrue_False_Null(t *testing.T) {
	require.Equal(t, []event.Event{event.Bool(true)}, parseAll(t, "true"))
	require.Equal(t, []event.Event{event.Bool(false)}, parseAll(t, "false"))
	require.Equal(t, []event.Event{event.Nil()}, parseAll(t, "null"))
}

func TestCBORDiagTokens(t *testing.T) {
	require.Equal(t, []event.Event{event.Undef()}, parseAll(t, "undefined", WithCBORDiag()))
	got := parseAll(t, "NaN", WithCBORDiag())
	require.True(t, got[0].Num.F64 != got[0].Num.F64, "NaN should not equal itself")
	got = parseAll(t, "Infinity", WithCBORDiag())
	require.Equal(t, event.NumberFloat64, got[0].Num.Kind)
	require.True(t, math.IsInf(got[0].Num.F64, 1))
	got = parseAll(t, "-Infinity", WithCBORDiag())
	require.True(t, math.IsInf(got[0].Num.F64, -1))
}

func TestHexAndBase64Buffers(t *testing.T) {
	got := parseAll(t, `h'48656c6c6f'`, WithCBORDiag())
	require.Equal(t, []event.Event{
		event.BufStart(event.Indeterminate),
		event.BufData([]byte{'H'}),
		event.BufData([]byte{'e'}),
		event.BufData([]byte{'l'}),
		event.BufData([]byte{'l'}),
		event.BufData([]byte{'o'}),
		event.BufEnd(),
	}, got)

	got = parseAll(t, `b'aGVsbG8='`, WithCBORDiag())
	require.Equal(t, event.BufStart(event.Indeterminate), got[0])
	require.Equal(t, event.BufEnd(), got[len(got)-1])
	var all []byte
	for _, ev := range got[1 : len(got)-1] {
		all = append(all, ev.Bytes...)
	}
	require.Equal(t, "hello", string(all))
}

// A non-final source that runs dry exactly after the h/b prefix must
// suspend and resume once more input arrives, not fail the parse.
func TestHexBufferPrefixSuspendsAcrossChunkBoundary(t *testing.T) {
	ch := make(chan string, 2)
	r := New(source.NewChannelCharSource(ch), WithPartial(), WithCBORDiag())
	ch <- `h`

	ok, err := r.HasNext()
	require.NoError(t, err)
	require.False(t, ok, "no event yet — still waiting on the quote after the prefix")

	ch <- `'48'`
	close(ch)

	var got []event.Event
	for {
		ok, err := r.HasNext()
		require.NoError(t, err)
		if !ok {
			break
		}
		ev, err := r.Next()
		require.NoError(t, err)
		got = append(got, ev)
	}
	require.Equal(t, []event.Event{
		event.BufStart(event.Indeterminate),
		event.BufData([]byte{'H'}),
		event.BufEnd(),
	}, got)
}

func TestTrailingComma(t *testing.T) {
	require.Error(t, parseErr(t, "[1,2,]"))
	got := parseAll(t, "[1,2,]", WithTrailingComma())
	require.Equal(t, []event.Event{
		event.ListStart(event.Indeterminate),
		event.Num(event.Int32(1)),
		event.Num(event.Int32(2)),
		event.ListEnd(),
	}, got)
}

func TestLoneSurrogateEscapeIsOneCodeUnit(t *testing.T) {
	got := parseAll(t, `"\uD800"`)
	require.Len(t, got, 3)
	require.Equal(t, event.StringData, got[1].Kind)
	// One code unit: the 3-byte WTF-8 form of U+D800. Go's UTF-8
	// decoder reads those bytes as three replacement runes, so the
	// bytes are compared directly.
	require.Equal(t, []byte{0xED, 0xA0, 0x80}, got[1].Bytes, "a lone high surrogate escape must decode to exactly one code unit")
}

func TestLiteralAstralCharacterPassesThrough(t *testing.T) {
	got := parseAll(t, `"😀"`) // 😀
	require.Len(t, got, 3)
	require.Equal(t, "\U0001F600", string(got[1].Bytes))
}

// Per spec.md §8, an escaped surrogate pair is never recombined: each
// \uXXXX half decodes and emits as its own WTF-8 code unit, even when
// a valid high surrogate is immediately followed by its low half.
func TestEscapedSurrogatePairDoesNotRecombine(t *testing.T) {
	got := parseAll(t, `"\uD83D\uDE00"`)
	require.Len(t, got, 3)
	require.Equal(t, event.StringData, got[1].Kind)
	require.NotEqual(t, "\U0001F600", string(got[1].Bytes), "the pair must not be recombined into one astral code point")
	// The CESU-8 form of U+D83D followed by U+DE00: two independent
	// 3-byte surrogate units, not the 4-byte UTF-8 form of U+1F600.
	require.Equal(t, []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}, got[1].Bytes)
}

func TestNumberBoundaries(t *testing.T) {
	got := parseAll(t, "2147483647")
	require.Equal(t, event.NumberInt32, got[0].Num.Kind)

	got = parseAll(t, "2147483648")
	require.Equal(t, event.NumberInt64, got[0].Num.Kind)

	got = parseAll(t, "9223372036854775808")
	require.Equal(t, event.NumberBigInt, got[0].Num.Kind)
}

func TestInvalidLeadingZero(t *testing.T) {
	require.Error(t, parseErr(t, "01"))
}

func TestUnterminatedStringIsError(t *testing.T) {
	require.Error(t, parseErr(t, `"abc`))
}

func TestDisallowsCBORExtensionsByDefault(t *testing.T) {
	require.Error(t, parseErr(t, "undefined"))
	require.Error(t, parseErr(t, "6(1)"))
}

func TestDrainingRejectsTrailingContent(t *testing.T) {
	require.Error(t, parseErr(t, "1 2"))
	got := parseAll(t, "1 2", WithNonDraining())
	require.Equal(t, []event.Event{event.Num(event.Int32(1))}, got)
}
