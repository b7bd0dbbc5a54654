// Package testhelpers routes logs produced under test into the test log.
package testhelpers

import (
	"bytes"
	"io"
	"sync"
	"testing"
)

// Writer writes each line it receives to t.Log so that logs are only shown for failed or verbose tests.
type Writer struct {
	t    testing.TB
	mu   sync.Mutex
	done bool
}

// NewWriter creates a Writer for t. Writing after t has finished panics, which points to a server or goroutine
// outliving its test.
func NewWriter(t testing.TB) io.Writer {
	w := &Writer{t: t, mu: sync.Mutex{}, done: false}
	t.Cleanup(func() {
		w.mu.Lock()
		w.done = true
		w.mu.Unlock()
	})
	return w
}

func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done {
		panic("testwriter: write after test completion, is something still running after t.Cleanup?")
	}
	for line := range bytes.Lines(p) {
		if line = bytes.TrimRight(line, "\n"); len(line) > 0 {
			w.t.Log(string(line))
		}
	}
	return len(p), nil
}
