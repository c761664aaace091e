package logging

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/buildpacks/dockerphile/internal/style"
)

// PrefixWriter prefixes each complete line written to it. A trailing partial
// line is held back until Close.
type PrefixWriter struct {
	mu     sync.Mutex
	out    io.Writer
	buf    bytes.Buffer
	prefix string
}

// NewPrefixWriter returns a writer whose lines are written to w as "[prefix] line".
func NewPrefixWriter(w io.Writer, prefix string) *PrefixWriter {
	return &PrefixWriter{
		out:    w,
		prefix: fmt.Sprintf("[%s] ", style.Prefix(prefix)),
	}
}

func (w *PrefixWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(data)
	for {
		i := bytes.IndexByte(w.buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		line := string(dropCR(w.buf.Next(i + 1)[:i]))
		if err := w.writeLine(line + "\n"); err != nil {
			return 0, err
		}
	}
	return len(data), nil
}

// Close writes any pending partial line.
func (w *PrefixWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() == 0 {
		return nil
	}
	defer w.buf.Reset()
	return w.writeLine(string(dropCR(w.buf.Bytes())))
}

func (w *PrefixWriter) writeLine(line string) error {
	_, err := fmt.Fprint(w.out, w.prefix+line)
	return err
}

func dropCR(data []byte) []byte {
	if len(data) > 0 && data[len(data)-1] == '\r' {
		return data[:len(data)-1]
	}
	return data
}
