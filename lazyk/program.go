package lazyk

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"unicode/utf8"

	"github.com/dchest/siphash"
	"github.com/golang/glog"
	"github.com/google/uuid"
)

// ExitError reports a well-formed non-zero Church-numeral exit: the
// program terminated normally but asked for a process exit code other
// than 0.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("program exited with code %d", e.Code)
}

// Program is the opaque compiled-program handle: an owned arena, the
// root id of the compiled term, and an optional output-byte limit. It
// carries a uuid and a content hash purely for diagnostics; both appear
// in the glog line Compile writes, while the run and GC log lines do
// not include them.
type Program struct {
	a    *arena
	pre  *preamble
	gc   *collector
	root id

	limit    *int
	id       uuid.UUID
	hash     uint64
	source   string
	lastExit int
}

// Compile parses source in any mix of the four surface syntaxes and
// returns a ready-to-run handle, using the default configuration (see
// config.go).
func Compile(source string) (*Program, error) {
	return CompileWithConfig(source, DefaultConfig())
}

// CompileWithConfig is Compile with an explicit Config, letting a
// caller (notably the CLI) tune the GC watermark and default output
// limit ahead of time.
func CompileWithConfig(source string, cfg *Config) (*Program, error) {
	a := newArena()
	pre := buildPreamble(a)
	root, err := newParser(a, pre, source).parse()
	if err != nil {
		return nil, err
	}
	p := &Program{
		a:      a,
		pre:    pre,
		root:   root,
		source: source,
		gc:     newCollector(cfg.GCHighWatermark),
		id:     uuid.New(),
		hash:   siphash.Hash(0, 0, []byte(source)),
	}
	if cfg.DefaultOutputLimit != nil {
		limit := *cfg.DefaultOutputLimit
		p.limit = &limit
	}
	glog.Infof("lazyk: compiled program %s (%d source bytes, %d preamble nodes, hash=%016x)",
		p.id, len(source), a.preambleN, p.hash)
	return p, nil
}

// ID returns the handle's identity, stable for its lifetime.
func (p *Program) ID() uuid.UUID { return p.id }

// Hash returns the content hash of the compiled source text.
func (p *Program) Hash() string { return fmt.Sprintf("%016x", p.hash) }

// LastExitCode returns the Church-numeral exit code observed by the
// most recent Run* call, or 0 if none has run yet.
func (p *Program) LastExitCode() int { return p.lastExit }

// SetOutputLimit sets (or, passed nil, clears) the maximum number of
// bytes a subsequent Run* call will emit before returning a
// TruncatedError.
func (p *Program) SetOutputLimit(limit *int) {
	p.limit = limit
}

// RunBytes runs the program against an in-memory byte stream,
// buffering all output.
func (p *Program) RunBytes(in []byte) ([]byte, error) {
	var out bytes.Buffer
	exitCode, err := p.run(newByteSource(bytes.NewReader(in)), &out)
	p.lastExit = exitCode
	if err != nil {
		return out.Bytes(), err
	}
	if exitCode != 0 {
		return out.Bytes(), &ExitError{Code: exitCode}
	}
	return out.Bytes(), nil
}

// RunText is RunBytes over UTF-8 text, failing if the output is not
// itself valid UTF-8.
func (p *Program) RunText(in string) (string, error) {
	out, err := p.RunBytes([]byte(in))
	if err != nil {
		if _, ok := err.(*ExitError); !ok {
			return string(out), err
		}
	}
	if !utf8.Valid(out) {
		return "", &IOError{Op: "decode", Err: fmt.Errorf("output is not valid UTF-8")}
	}
	return string(out), err
}

// RunConsole wires stdin to stdout. It is interruptible: on SIGINT the
// call returns promptly with context.Canceled, abandoning the
// in-flight evaluation goroutine rather than waiting for it to
// cooperatively stop — the core loop itself never checks for
// cancellation, only this host-facing wrapper does.
func (p *Program) RunConsole() error {
	_, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)

	done := make(chan error, 1)
	go func() {
		exitCode, err := p.run(newByteSource(os.Stdin), os.Stdout)
		p.lastExit = exitCode
		if err != nil {
			done <- err
			return
		}
		if exitCode != 0 {
			done <- &ExitError{Code: exitCode}
			return
		}
		done <- nil
	}()

	select {
	case err := <-done:
		return err
	case <-sig:
		cancel()
		return context.Canceled
	}
}

// ToSource pretty-prints the compiled graph in the given style.
func (p *Program) ToSource(style Style) string {
	return toSource(p.a, p.root, style)
}

// MakePrinter builds a handle for the trivial program
// K (list bytes ++ [EOF]): it ignores whatever it's run against and
// always emits exactly bytes followed by EOF.
func MakePrinter(data []byte) *Program {
	a := newArena()
	pre := buildPreamble(a)
	// The terminal pair selects EOF as its head; its tail is never
	// read, since hitting EOF halts the output driver loop.
	tail := buildPair(a, pre, pre.churchChar(256), pre.i)
	for i := len(data) - 1; i >= 0; i-- {
		tail = buildPair(a, pre, pre.churchChar(int(data[i])), tail)
	}
	root := a.newApply(pre.k, tail)
	return &Program{a: a, pre: pre, root: root, gc: newCollector(0), id: uuid.New()}
}

// run is the output driver loop. It returns the Church-numeral exit
// code (0 on a normal, unadorned halt) and an error for anything that
// is not a well-formed termination.
func (p *Program) run(src *byteSource, out io.Writer) (int, error) {
	ev := newEvaluator(p.a, p.pre, src)
	bw := bufio.NewWriter(out)
	stream := p.a.newApply(p.root, p.a.newLazyRead())
	count := 0

	for {
		headApp := p.a.newApply(stream, p.pre.k)
		headVal, err := ev.eval(headApp)
		if err != nil {
			return 0, err
		}
		n, err := ev.church2int(headVal)
		if err != nil {
			return 0, err
		}
		if n >= 256 {
			if ferr := bw.Flush(); ferr != nil {
				return 0, &IOError{Op: "flush", Err: ferr}
			}
			return int(n) - 256, nil
		}
		if p.limit != nil && count >= *p.limit {
			bw.Flush()
			return 0, &TruncatedError{Limit: *p.limit}
		}
		if werr := bw.WriteByte(byte(n)); werr != nil {
			return 0, &IOError{Op: "write", Err: werr}
		}
		count++

		stream = p.a.newApply(stream, p.pre.ki)
		p.gc.maybeCollect(p.a, stream)
	}
}
