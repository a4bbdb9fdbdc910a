package codectext

import "fmt"

// Base64Decoder accepts one character at a time and emits a decoded
// byte whenever 4 characters (or a padded final group) have
// accumulated. It accepts both the standard (+/) and URL (-_)
// alphabets interchangeably, and tolerates up to two '=' padding
// characters, matching spec.md §4.C's base64 buffer sub-machine.
type Base64Decoder struct {
	quantum [4]byte
	n       int
	pad     int
}

// ErrBadBase64 is returned for a character outside either alphabet, or
// padding that is not in a trailing position.
var ErrBadBase64 = fmt.Errorf("codectext: invalid base64 character")

var base64Values [256]int8

func init() {
	for i := range base64Values {
		base64Values[i] = -1
	}
	const std = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	for i, c := range []byte(std) {
		base64Values[c] = int8(i)
	}
	base64Values['-'] = base64Values['+']
	base64Values['_'] = base64Values['/']
}

// Push feeds one character. It returns the decoded bytes produced by
// completing a quantum (0-3 bytes), or an error.
func (d *Base64Decoder) Push(c byte) ([]byte, error) {
	if c == '=' {
		if d.n < 2 {
			return nil, ErrBadBase64
		}
		d.pad++
		d.quantum[d.n] = 0
		d.n++
		if d.n == 4 {
			return d.flush()
		}
		return nil, nil
	}
	if d.pad > 0 {
		return nil, ErrBadBase64
	}
	v := base64Values[c]
	if v < 0 {
		return nil, ErrBadBase64
	}
	d.quantum[d.n] = byte(v)
	d.n++
	if d.n == 4 {
		return d.flush()
	}
	return nil, nil
}

func (d *Base64Decoder) flush() ([]byte, error) {
	q := d.quantum
	out := []byte{
		q[0]<<2 | q[1]>>4,
		q[1]<<4 | q[2]>>2,
		q[2]<<6 | q[3],
	}
	out = out[:3-d.pad]
	d.n, d.pad = 0, 0
	return out, nil
}

// Close finalizes decoding at the closing quote of a b'...' literal.
// An unfinished quantum with 2 or 3 characters and no padding is
// accepted per standard base64 relaxed termination; 1 leftover
// character is always an error.
func (d *Base64Decoder) Close() ([]byte, error) {
	switch d.n {
	case 0:
		return nil, nil
	case 1:
		return nil, ErrBadBase64
	default:
		for d.n < 4 {
			d.quantum[d.n] = 0
			d.pad++
			d.n++
		}
		return d.flush()
	}
}
