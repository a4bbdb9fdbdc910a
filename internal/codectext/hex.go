package codectext

import "fmt"

// ErrOddHexDigits is returned when a h'...' literal closes with a
// dangling nibble.
var ErrOddHexDigits = fmt.Errorf("codectext: odd number of hex digits")

// HexDecoder accepts one hex character at a time and emits a decoded
// byte every two nibbles, per spec.md §4.C's hex buffer sub-machine.
type HexDecoder struct {
	hi   byte
	have bool
}

func hexVal(c byte) (byte, bool) {
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

// Push feeds one hex character, returning a decoded byte once two
// nibbles have accumulated.
func (d *HexDecoder) Push(c byte) (b byte, produced bool, err error) {
	v, ok := hexVal(c)
	if !ok {
		return 0, false, fmt.Errorf("codectext: invalid hex digit %q", c)
	}
	if !d.have {
		d.hi = v
		d.have = true
		return 0, false, nil
	}
	b = d.hi<<4 | v
	d.have = false
	return b, true, nil
}

// Close reports ErrOddHexDigits if a nibble is still pending at the
// closing quote.
func (d *HexDecoder) Close() error {
	if d.have {
		return ErrOddHexDigits
	}
	return nil
}
