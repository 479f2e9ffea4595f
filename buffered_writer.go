package scriptutil

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
)

// BufferedWriter implements Writer and captures all output in buffers so
// tests can assert on what a script printed.
type BufferedWriter struct {
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	mu        sync.RWMutex
	quiet     bool
	useLevel  int
	verbosity Verbosity
}

var _ Writer = (*BufferedWriter)(nil)

// NewBufferedWriter creates a BufferedWriter at max verbosity
func NewBufferedWriter() *BufferedWriter {
	return &BufferedWriter{
		stdout:    &bytes.Buffer{},
		stderr:    &bytes.Buffer{},
		verbosity: HighVerbosity,
		useLevel:  1,
	}
}

func (w *BufferedWriter) Writer() io.Writer {
	return w.stdout
}

func (w *BufferedWriter) ErrWriter() io.Writer {
	return w.stderr
}

func (w *BufferedWriter) Printf(format string, args ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.quiet {
		return
	}
	if int(w.verbosity) < w.useLevel {
		return
	}
	w.stdout.WriteString(fmt.Sprintf(format, args...))
}

func (w *BufferedWriter) Errorf(format string, args ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stderr.WriteString(sprintfFlattened(format, args...))
}

// Loud returns a Writer sharing the same buffers that ignores quiet
func (w *BufferedWriter) Loud() Writer {
	return &BufferedWriter{
		stdout:    w.stdout,
		stderr:    w.stderr,
		verbosity: w.verbosity,
		useLevel:  w.useLevel,
	}
}

func (w *BufferedWriter) V2() Writer {
	return &BufferedWriter{
		stdout:    w.stdout,
		stderr:    w.stderr,
		quiet:     w.quiet,
		verbosity: w.verbosity,
		useLevel:  2,
	}
}

func (w *BufferedWriter) V3() Writer {
	return &BufferedWriter{
		stdout:    w.stdout,
		stderr:    w.stderr,
		quiet:     w.quiet,
		verbosity: w.verbosity,
		useLevel:  3,
	}
}

// SetQuiet suppresses Printf output
func (w *BufferedWriter) SetQuiet(quiet bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.quiet = quiet
}

// GetStdout returns the current stdout buffer contents
func (w *BufferedWriter) GetStdout() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stdout.String()
}

// GetStderr returns the current stderr buffer contents
func (w *BufferedWriter) GetStderr() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stderr.String()
}

// ContainsStdout returns true if stdout contains the substring
func (w *BufferedWriter) ContainsStdout(s string) bool {
	return strings.Contains(w.GetStdout(), s)
}

// ContainsStderr returns true if stderr contains the substring
func (w *BufferedWriter) ContainsStderr(s string) bool {
	return strings.Contains(w.GetStderr(), s)
}

// Reset clears both buffers
func (w *BufferedWriter) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stdout.Reset()
	w.stderr.Reset()
}
