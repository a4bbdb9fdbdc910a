package source

import (
	"io"
	"strings"
	"testing"
)

func TestBytesSourceMarkReset(t *testing.T) {
	s := NewBytesSource([]byte("abcdef"))
	s.Get()
	if err := s.Mark(1); err != nil {
		t.Fatal(err)
	}
	s.Get()
	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}
	b, err := s.Get()
	if err != nil || b != 'b' {
		t.Fatalf("Get() after reset = %q, %v, want 'b'", b, err)
	}
}

func TestAppendableByteSourcePartialUnderrun(t *testing.T) {
	s, w := NewAppendableByteSource()
	if s.Final() {
		t.Fatal("must not be final before Close")
	}
	w.Write([]byte("ab"))

	b, err := s.Get()
	if err != nil || b != 'a' {
		t.Fatalf("Get() = %q, %v", b, err)
	}
	b, err = s.Get()
	if err != nil || b != 'b' {
		t.Fatalf("Get() = %q, %v", b, err)
	}
	if _, err := s.Get(); err != io.ErrNoProgress {
		t.Fatalf("Get() on drained non-final source = %v, want io.ErrNoProgress", err)
	}

	w.Write([]byte("c"))
	b, err = s.Get()
	if err != nil || b != 'c' {
		t.Fatalf("Get() after more input = %q, %v", b, err)
	}

	w.Close()
	if _, err := s.Get(); err != io.EOF {
		t.Fatalf("Get() after Close = %v, want io.EOF", err)
	}
	if !s.Final() {
		t.Fatal("must be final after Close")
	}
}

func TestReaderByteSource(t *testing.T) {
	s := NewReaderByteSource(strings.NewReader("xyz"))
	got, err := s.GetN(3)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "xyz" {
		t.Fatalf("GetN(3) = %q", got)
	}
	if _, err := s.Get(); err != io.EOF {
		t.Fatalf("Get() at EOF = %v, want io.EOF", err)
	}
}
