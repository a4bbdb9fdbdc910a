// Package event defines the structural event grammar shared by every
// reader and writer in streamcodec. A reader turns a source into a flat
// sequence of Events; a writer consumes that same sequence and turns it
// back into bytes. Neither side knows about the other's wire format.
package event

import (
	"fmt"
	"math/big"
)

// Kind discriminates the tagged union an Event carries.
type Kind int

// Event kinds. Start*/End* bracket a composite or a spooled string or
// buffer; the kinds in between carry the composite's children.
const (
	StartMap Kind = iota
	EndMap
	StartList
	EndList
	StartString
	StringData
	EndString
	StartBuffer
	BufferData
	EndBuffer
	NumberValue
	Boolean
	Null
	Undefined
	Tag
	Simple
)

var kindNames = [...]string{
	StartMap:    "StartMap",
	EndMap:      "EndMap",
	StartList:   "StartList",
	EndList:     "EndList",
	StartString: "StartString",
	StringData:  "StringData",
	EndString:   "EndString",
	StartBuffer: "StartBuffer",
	BufferData:  "BufferData",
	EndBuffer:   "EndBuffer",
	NumberValue: "Number",
	Boolean:     "Boolean",
	Null:        "Null",
	Undefined:   "Undefined",
	Tag:         "Tag",
	Simple:      "Simple",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) || kindNames[k] == "" {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Indeterminate marks a Start* Size as unknown in advance; matching
// End* terminates the composite instead of a decremented counter.
const Indeterminate int64 = -1

// NumberKind picks which field of Number holds the value.
type NumberKind int

const (
	NumberInt32 NumberKind = iota
	NumberInt64
	NumberBigInt
	NumberFloat32
	NumberFloat64
	NumberBigDecimal
)

// Number is the tagged union PrimitiveNumber carries: a small int, a
// 64-bit int, a big int, a 32- or 64-bit float, or an arbitrary
// precision decimal. Exactly one field is meaningful, selected by Kind.
type Number struct {
	Kind NumberKind
	I32  int32
	I64  int64
	Big  *big.Int
	F32  float32
	F64  float64
	Dec  *big.Float
}

func Int32(v int32) Number   { return Number{Kind: NumberInt32, I32: v} }
func Int64(v int64) Number   { return Number{Kind: NumberInt64, I64: v} }
func BigInt(v *big.Int) Number { return Number{Kind: NumberBigInt, Big: v} }
func Float32(v float32) Number { return Number{Kind: NumberFloat32, F32: v} }
func Float64(v float64) Number { return Number{Kind: NumberFloat64, F64: v} }
func BigDecimal(v *big.Float) Number { return Number{Kind: NumberBigDecimal, Dec: v} }

func (n Number) String() string {
	switch n.Kind {
	case NumberInt32:
		return fmt.Sprintf("%d:i32", n.I32)
	case NumberInt64:
		return fmt.Sprintf("%d:i64", n.I64)
	case NumberBigInt:
		return fmt.Sprintf("%s:bigint", n.Big.String())
	case NumberFloat32:
		return fmt.Sprintf("%v:f32", n.F32)
	case NumberFloat64:
		return fmt.Sprintf("%v:f64", n.F64)
	case NumberBigDecimal:
		return fmt.Sprintf("%s:bigdec", n.Dec.Text('g', -1))
	default:
		return "<invalid number>"
	}
}

// Event is the atomic item exchanged between a reader and a writer.
// Only the fields relevant to Kind are populated; the rest are zero.
type Event struct {
	Kind Kind

	// Size is the declared length of a Start* composite/string/buffer,
	// or event.Indeterminate if unknown in advance. Unused otherwise.
	Size int64

	// Bytes holds the payload of StringData (UTF-8 encoded) or
	// BufferData. StrData and the jsonreader package always allocate
	// a fresh slice; BufData keeps the slice it is given.
	Bytes []byte

	Num  Number
	Bool bool

	// TagValue is the payload of a Tag event; it binds to the event
	// that immediately follows it (see invariant 4 in spec.md).
	TagValue uint64

	// Simple is the payload of a CBOR simple value.
	Simple uint8
}

func (e Event) String() string {
	switch e.Kind {
	case StartMap, StartList, StartString, StartBuffer:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Size)
	case StringData:
		return fmt.Sprintf("StringData(%q)", e.Bytes)
	case BufferData:
		return fmt.Sprintf("BufferData(%x)", e.Bytes)
	case NumberValue:
		return fmt.Sprintf("PrimitiveNumber(%s)", e.Num)
	case Boolean:
		return fmt.Sprintf("PrimitiveBoolean(%v)", e.Bool)
	case Tag:
		return fmt.Sprintf("Tag(%d)", e.TagValue)
	case Simple:
		return fmt.Sprintf("Simple(%d)", e.Simple)
	default:
		return e.Kind.String()
	}
}

// Convenience constructors used by tests and by jsonreader; mirror the teacher's preference for small free functions
// over a builder object.

func MapStart(size int64) Event  { return Event{Kind: StartMap, Size: size} }
func MapEnd() Event              { return Event{Kind: EndMap} }
func ListStart(size int64) Event { return Event{Kind: StartList, Size: size} }
func ListEnd() Event             { return Event{Kind: EndList} }

func StrStart(size int64) Event { return Event{Kind: StartString, Size: size} }
func StrData(s string) Event    { return Event{Kind: StringData, Bytes: []byte(s)} }
func StrEnd() Event             { return Event{Kind: EndString} }

func BufStart(size int64) Event   { return Event{Kind: StartBuffer, Size: size} }
func BufData(b []byte) Event      { return Event{Kind: BufferData, Bytes: b} }
func BufEnd() Event               { return Event{Kind: EndBuffer} }

func Num(n Number) Event  { return Event{Kind: NumberValue, Num: n} }
func Bool(b bool) Event   { return Event{Kind: Boolean, Bool: b} }
func Nil() Event          { return Event{Kind: Null} }
func Undef() Event        { return Event{Kind: Undefined} }
func TagOf(v uint64) Event { return Event{Kind: Tag, TagValue: v} }
func SimpleOf(v uint8) Event { return Event{Kind: Simple, Simple: v} }

// Str is a convenience for a complete (Start, Data, End) string triple,
// used by tests that don't care about chunking.
func Str(s string) []Event {
	return []Event{StrStart(int64(len(s))), StrData(s), StrEnd()}
}

// Buf is the BufferData analogue of Str.
func Buf(b []byte) []Event {
	return []Event{BufStart(int64(len(b))), BufData(b), BufEnd()}
}
