// FILE: lixenwraith/sawlog/sink.go
package sawlog

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// sink is the single destination of formatted lines
type sink struct {
	dest  io.Writer // destination as handed in
	w     io.Writer // write target, colorable-wrapped for terminals
	color bool
}

// newSink resolves the write target and colour capability for dest.
// A nil dest means stdout.
func newSink(dest io.Writer, colorMode string) *sink {
	if dest == nil {
		dest = os.Stdout
	}
	s := &sink{dest: dest, w: dest}

	terminal := false
	if f, ok := dest.(*os.File); ok && isTerminal(f) {
		terminal = true
		s.w = colorable.NewColorable(f)
	}

	switch colorMode {
	case ColorAlways:
		s.color = true
	case ColorNever:
		s.color = false
	default:
		s.color = terminal
	}
	return s
}

// isTerminal reports whether f is attached to a terminal
func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// write writes one full line; a panic raised by the destination is returned as an error
func (s *sink) write(p []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("destination panicked: %v", r)
		}
	}()

	n, err := s.w.Write(p)
	if err != nil {
		return err
	}
	if n < len(p) {
		return io.ErrShortWrite
	}
	return nil
}

// sync commits regular files to stable storage; other destinations are left alone
func (s *sink) sync() error {
	f, ok := s.dest.(*os.File)
	if !ok {
		return nil
	}
	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return nil
	}
	return f.Sync()
}
