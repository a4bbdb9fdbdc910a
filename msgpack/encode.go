package msgpack

import (
	"encoding/binary"
	"math"

	"github.com/mcvoid/streamcodec/event"
)

func appendMapHeader(buf []byte, n int64) []byte {
	switch {
	case n <= 15:
		return append(buf, 0x80|byte(n))
	case n <= math.MaxUint16:
		return append(append(buf, 0xde), u16(uint16(n))...)
	default:
		return append(append(buf, 0xdf), u32(uint32(n))...)
	}
}

func appendListHeader(buf []byte, n int64) []byte {
	switch {
	case n <= 15:
		return append(buf, 0x90|byte(n))
	case n <= math.MaxUint16:
		return append(append(buf, 0xdc), u16(uint16(n))...)
	default:
		return append(append(buf, 0xdd), u32(uint32(n))...)
	}
}

func appendStrHeader(buf []byte, n int) []byte {
	switch {
	case n <= 31:
		return append(buf, 0xa0|byte(n))
	case n <= math.MaxUint8:
		return append(append(buf, 0xd9), byte(n))
	case n <= math.MaxUint16:
		return append(append(buf, 0xda), u16(uint16(n))...)
	default:
		return append(append(buf, 0xdb), u32(uint32(n))...)
	}
}

func appendBufHeader(buf []byte, n int, tag *uint64) []byte {
	if tag != nil {
		return appendExtHeader(buf, n, *tag)
	}
	switch {
	case n <= math.MaxUint8:
		return append(append(buf, 0xc4), byte(n))
	case n <= math.MaxUint16:
		return append(append(buf, 0xc5), u16(uint16(n))...)
	default:
		return append(append(buf, 0xc6), u32(uint32(n))...)
	}
}

var fixextOpcodes = map[int]byte{1: 0xd4, 2: 0xd5, 4: 0xd6, 8: 0xd7, 16: 0xd8}

func appendExtHeader(buf []byte, n int, tag uint64) []byte {
	t := byte(tag)
	if op, ok := fixextOpcodes[n]; ok {
		return append(buf, op, t)
	}
	switch {
	case n <= math.MaxUint8:
		return append(append(append(buf, 0xc7), byte(n)), t)
	case n <= math.MaxUint16:
		return append(append(append(buf, 0xc8), u16(uint16(n))...), t)
	default:
		return append(append(append(buf, 0xc9), u32(uint32(n))...), t)
	}
}

// appendNumber chooses the narrowest exact MessagePack encoding for n,
// per spec.md §4.D's value-class table.
func appendNumber(buf []byte, n event.Number) ([]byte, error) {
	switch n.Kind {
	case event.NumberInt32:
		return appendInt(buf, int64(n.I32)), nil
	case event.NumberInt64:
		return appendInt(buf, n.I64), nil
	case event.NumberBigInt:
		if n.Big.Sign() < 0 {
			return nil, protoErrorf("negative big-int beyond int64 range")
		}
		if !n.Big.IsUint64() {
			return nil, protoErrorf("big-int %s exceeds uint64 range", n.Big.String())
		}
		return append(append(buf, 0xcf), u64(n.Big.Uint64())...), nil
	case event.NumberFloat32:
		return append(append(buf, 0xca), u32(math.Float32bits(n.F32))...), nil
	case event.NumberFloat64:
		return append(append(buf, 0xcb), u64(math.Float64bits(n.F64))...), nil
	case event.NumberBigDecimal:
		f64, _ := n.Dec.Float64()
		return append(append(buf, 0xcb), u64(math.Float64bits(f64))...), nil
	default:
		return nil, protoErrorf("unrecognized number kind %d", n.Kind)
	}
}

func appendInt(buf []byte, v int64) []byte {
	switch {
	case v >= -32 && v <= 127:
		return append(buf, byte(int8(v)))
	case v >= 0 && v <= math.MaxUint8:
		return append(append(buf, 0xcc), byte(v))
	case v >= 0 && v <= math.MaxUint16:
		return append(append(buf, 0xcd), u16(uint16(v))...)
	case v >= 0 && v <= math.MaxUint32:
		return append(append(buf, 0xce), u32(uint32(v))...)
	case v >= 0:
		return append(append(buf, 0xcf), u64(uint64(v))...)
	case v >= -0x80:
		return append(append(buf, 0xd0), byte(int8(v)))
	case v >= -0x8000:
		return append(append(buf, 0xd1), u16(uint16(int16(v)))...)
	case v >= -0x80000000:
		return append(append(buf, 0xd2), u32(uint32(int32(v)))...)
	default:
		return append(append(buf, 0xd3), u64(uint64(v))...)
	}
}

func u16(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func u32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func u64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

