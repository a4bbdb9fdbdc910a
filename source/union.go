package source

import "io"

// unionCharSource reads from first until it reports Final() and is
// drained, then transparently switches to second, carrying forward the
// running position counters so the switch is invisible to the caller
// beyond the source's own Get/GetN boundary. Mirrors spec.md §9's
// "read A, then switch to B" source polymorphism.
type unionCharSource struct {
	first, second CharSource
	onSecond      bool
}

// Union chains two CharSources: first is read to exhaustion, then
// second takes over with first's final position as its starting point.
func Union(first, second CharSource) CharSource {
	return &unionCharSource{first: first, second: second}
}

func (u *unionCharSource) active() CharSource {
	if u.onSecond {
		return u.second
	}
	return u.first
}

func (u *unionCharSource) maybeSwitch() {
	if !u.onSecond && u.first.Final() && u.first.Available() == 0 {
		u.second.InitializePosition(u.first.Position())
		u.onSecond = true
	}
}

func (u *unionCharSource) Available() int {
	u.maybeSwitch()
	return u.active().Available()
}

func (u *unionCharSource) Get() (rune, error) {
	u.maybeSwitch()
	r, err := u.active().Get()
	if err == io.EOF && !u.onSecond {
		u.maybeSwitch()
		if u.onSecond {
			return u.active().Get()
		}
	}
	return r, err
}

func (u *unionCharSource) GetN(n int) (string, error) {
	u.maybeSwitch()
	return u.active().GetN(n)
}

func (u *unionCharSource) Mark(n int) error {
	u.maybeSwitch()
	return u.active().Mark(n)
}

func (u *unionCharSource) Reset() error {
	return u.active().Reset()
}

func (u *unionCharSource) Position() Position { return u.active().Position() }

func (u *unionCharSource) InitializePosition(p Position) { u.first.InitializePosition(p) }

func (u *unionCharSource) Final() bool {
	return u.onSecond && u.second.Final()
}

// unionByteSource is the ByteSource analogue of unionCharSource.
type unionByteSource struct {
	first, second ByteSource
	onSecond      bool
}

func UnionBytes(first, second ByteSource) ByteSource {
	return &unionByteSource{first: first, second: second}
}

func (u *unionByteSource) active() ByteSource {
	if u.onSecond {
		return u.second
	}
	return u.first
}

func (u *unionByteSource) maybeSwitch() {
	if !u.onSecond && u.first.Final() && u.first.Available() == 0 {
		u.second.InitializePosition(u.first.Position())
		u.onSecond = true
	}
}

func (u *unionByteSource) Available() int {
	u.maybeSwitch()
	return u.active().Available()
}

func (u *unionByteSource) Get() (byte, error) {
	u.maybeSwitch()
	b, err := u.active().Get()
	if err == io.EOF && !u.onSecond {
		u.maybeSwitch()
		if u.onSecond {
			return u.active().Get()
		}
	}
	return b, err
}

func (u *unionByteSource) GetN(n int) ([]byte, error) {
	u.maybeSwitch()
	return u.active().GetN(n)
}

func (u *unionByteSource) Mark(n int) error {
	u.maybeSwitch()
	return u.active().Mark(n)
}

func (u *unionByteSource) Reset() error { return u.active().Reset() }

func (u *unionByteSource) Position() Position { return u.active().Position() }

func (u *unionByteSource) InitializePosition(p Position) { u.first.InitializePosition(p) }

func (u *unionByteSource) Final() bool { return u.onSecond && u.second.Final() }
