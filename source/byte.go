package source

import (
	"bufio"
	"io"
)

// bytesSource is a final, in-memory ByteSource over a fixed slice.
type bytesSource struct {
	data   []byte
	pos    int
	mark   int
	marked bool
	posBase Position
	markSnap Position
}

// NewBytesSource returns a final ByteSource over b.
func NewBytesSource(b []byte) ByteSource {
	return &bytesSource{data: b, mark: -1}
}

func (s *bytesSource) Available() int { return len(s.data) - s.pos }

func (s *bytesSource) Get() (byte, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}
	b := s.data[s.pos]
	s.pos++
	s.advance(1)
	return b, nil
}

func (s *bytesSource) GetN(n int) ([]byte, error) {
	if s.pos+n > len(s.data) {
		return nil, io.EOF
	}
	out := s.data[s.pos : s.pos+n]
	s.pos += n
	s.advance(n)
	return out, nil
}

func (s *bytesSource) advance(n int) {
	s.posBase.Byte += int64(n)
	s.posBase.Char += int64(n)
	s.posBase.Column += int64(n)
}

func (s *bytesSource) Mark(n int) error {
	s.mark = s.pos
	s.marked = true
	s.markSnap = s.posBase
	return nil
}

func (s *bytesSource) Reset() error {
	if !s.marked {
		return ErrNoMark
	}
	s.pos = s.mark
	s.posBase = s.markSnap
	return nil
}

func (s *bytesSource) Position() Position { return s.posBase }

func (s *bytesSource) InitializePosition(p Position) { s.posBase = p }

func (s *bytesSource) Final() bool { return true }

// streamByteSource is a ring-buffer backed ByteSource, analogous to
// streamCharSource, fed by an io.Reader or by appended chunks.
type streamByteSource struct {
	buf    []byte
	start  int
	end    int
	markAt int
	final  bool

	pos     Position
	markPos Position

	pull func(p []byte) (int, bool, error)
}

// NewReaderByteSource adapts an io.Reader into a final ByteSource.
func NewReaderByteSource(r io.Reader) ByteSource {
	br := bufio.NewReader(r)
	s := &streamByteSource{markAt: -1}
	s.pull = func(p []byte) (int, bool, error) {
		n, err := br.Read(p)
		if err == io.EOF {
			s.final = true
			return n, n > 0, nil
		}
		if err != nil {
			return n, n > 0, err
		}
		return n, true, nil
	}
	return s
}

// AppendableByteSource is a non-final ByteSource whose data is pushed
// by the caller via Write, e.g. from a net.Conn read loop. Write never
// blocks; it grows the internal buffer. Close marks the source Final.
type AppendableByteSource struct {
	streamByteSource
	pending []byte
}

// NewAppendableByteSource returns a non-final ByteSource together with
// the io.WriteCloser used to push bytes into it and later close it.
func NewAppendableByteSource() (*AppendableByteSource, io.WriteCloser) {
	s := &AppendableByteSource{}
	s.markAt = -1
	s.pull = func(p []byte) (int, bool, error) {
		if len(s.pending) == 0 {
			return 0, false, nil
		}
		n := copy(p, s.pending)
		s.pending = s.pending[n:]
		return n, true, nil
	}
	return s, appendableWriter{s}
}

type appendableWriter struct{ s *AppendableByteSource }

func (w appendableWriter) Write(p []byte) (int, error) {
	w.s.pending = append(w.s.pending, p...)
	return len(p), nil
}

func (w appendableWriter) Close() error {
	w.s.final = true
	return nil
}

func (s *streamByteSource) fill(want int) error {
	for s.end-s.start < want {
		if s.end == len(s.buf) {
			s.compact()
		}
		if s.end == len(s.buf) {
			s.buf = append(s.buf, make([]byte, 256)...)
		}
		n, ok, err := s.pull(s.buf[s.end:])
		if err != nil {
			return err
		}
		if !ok || n == 0 {
			return nil
		}
		s.end += n
	}
	return nil
}

func (s *streamByteSource) compact() {
	keepFrom := s.start
	if s.markAt >= 0 && s.markAt < keepFrom {
		keepFrom = s.markAt
	}
	if keepFrom == 0 {
		return
	}
	copy(s.buf, s.buf[keepFrom:s.end])
	s.end -= keepFrom
	s.start -= keepFrom
	if s.markAt >= 0 {
		s.markAt -= keepFrom
	}
}

func (s *streamByteSource) Available() int { return s.end - s.start }

func (s *streamByteSource) Get() (byte, error) {
	if s.start == s.end {
		if err := s.fill(1); err != nil {
			return 0, err
		}
	}
	if s.start == s.end {
		if s.final {
			return 0, io.EOF
		}
		return 0, io.ErrNoProgress
	}
	b := s.buf[s.start]
	s.start++
	s.advance(1)
	return b, nil
}

func (s *streamByteSource) GetN(n int) ([]byte, error) {
	if s.end-s.start < n {
		if err := s.fill(n); err != nil {
			return nil, err
		}
	}
	if s.end-s.start < n {
		if s.final {
			return nil, io.EOF
		}
		return nil, io.ErrNoProgress
	}
	out := make([]byte, n)
	copy(out, s.buf[s.start:s.start+n])
	s.start += n
	s.advance(n)
	return out, nil
}

func (s *streamByteSource) advance(n int) {
	s.pos.Byte += int64(n)
	s.pos.Char += int64(n)
	s.pos.Column += int64(n)
}

func (s *streamByteSource) Mark(n int) error {
	if err := s.fill(n); err != nil {
		return err
	}
	s.markAt = s.start
	s.markPos = s.pos
	return nil
}

func (s *streamByteSource) Reset() error {
	if s.markAt < 0 {
		return ErrNoMark
	}
	s.start = s.markAt
	s.pos = s.markPos
	return nil
}

func (s *streamByteSource) Position() Position { return s.pos }

func (s *streamByteSource) InitializePosition(p Position) { s.pos = p }

func (s *streamByteSource) Final() bool { return s.final }
