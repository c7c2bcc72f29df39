package lazyk

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// DumpGraph pretty-prints a compiled program's graph in the given
// style to w, gzip-compressing the stream when gz is true. This is a
// debug facility backing the CLI's -dump flag.
func DumpGraph(p *Program, w io.Writer, style Style, gz bool) error {
	src := p.ToSource(style)
	if !gz {
		if _, err := io.Copy(w, strings.NewReader(src)); err != nil {
			return &IOError{Op: "dump", Err: err}
		}
		return nil
	}
	zw := gzip.NewWriter(w)
	if _, err := zw.Write([]byte(src)); err != nil {
		zw.Close()
		return &IOError{Op: "dump", Err: err}
	}
	if err := zw.Close(); err != nil {
		return &IOError{Op: "dump", Err: fmt.Errorf("closing gzip stream: %w", err)}
	}
	return nil
}
