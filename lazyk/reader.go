package lazyk

import "io"

// byteSource is the side-effecting source a LazyRead node forces
// against. It is read exactly once per distinct LazyRead node — the
// memoising rewrite in eval.go is what guarantees that — so forced
// equals the number of LazyRead nodes ever forced, and once EOF is
// hit every further force returns 256 without touching the underlying
// reader again.
type byteSource struct {
	r      io.Reader
	buf    [1]byte
	eof    bool
	forced int
	read   int
}

func newByteSource(r io.Reader) *byteSource {
	return &byteSource{r: r}
}

// next reads one byte, or returns 256 on EOF. It is the single point
// of external side effect in the whole engine.
func (b *byteSource) next() (int, error) {
	b.forced++
	if b.eof {
		return 256, nil
	}
	n, err := b.r.Read(b.buf[:])
	if n == 1 {
		b.read++
		return int(b.buf[0]), nil
	}
	if err == io.EOF || err == nil {
		b.eof = true
		return 256, nil
	}
	return 0, &IOError{Op: "read", Err: err}
}
