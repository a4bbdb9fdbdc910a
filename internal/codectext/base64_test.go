package codectext

import (
	"bytes"
	"testing"
)

func decodeAll(t *testing.T, s string) []byte {
	t.Helper()
	var d Base64Decoder
	var out []byte
	for i := 0; i < len(s); i++ {
		b, err := d.Push(s[i])
		if err != nil {
			t.Fatalf("Push(%q) error: %v", s[i], err)
		}
		out = append(out, b...)
	}
	tail, err := d.Close()
	if err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	return append(out, tail...)
}

func TestBase64DecoderStandard(t *testing.T) {
	got := decodeAll(t, "aGVsbG8=")
	if !bytes.Equal(got, []byte("hello")) {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestBase64DecoderURLAlphabet(t *testing.T) {
	got := decodeAll(t, "aGVsbG8_Lw")
	if !bytes.Equal(got, []byte("hello?/")) {
		t.Fatalf("got %q", got)
	}
}

func TestBase64DecoderUnterminatedQuantum(t *testing.T) {
	var d Base64Decoder
	d.Push('a')
	if _, err := d.Close(); err != ErrBadBase64 {
		t.Fatalf("Close() with 1 leftover char = %v, want ErrBadBase64", err)
	}
}

func TestBase64DecoderInvalidChar(t *testing.T) {
	var d Base64Decoder
	if _, err := d.Push('!'); err != ErrBadBase64 {
		t.Fatalf("Push('!') = %v, want ErrBadBase64", err)
	}
}
