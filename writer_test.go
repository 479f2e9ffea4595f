package scriptutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferedWriterQuiet(t *testing.T) {
	w := NewBufferedWriter()
	w.SetQuiet(true)

	w.Printf("silenced %d\n", 1)
	w.Loud().Printf("always visible\n")
	w.Errorf("errors ignore quiet\n")

	assert.False(t, w.ContainsStdout("silenced"), "quiet suppresses Printf")
	assert.True(t, w.ContainsStdout("always visible"), "Loud shares the stdout buffer and ignores quiet")
	assert.True(t, w.ContainsStderr("errors ignore quiet"))
}

func TestBufferedWriterVerbosityGating(t *testing.T) {
	w := &BufferedWriter{
		stdout:    &bytes.Buffer{},
		stderr:    &bytes.Buffer{},
		verbosity: LowVerbosity,
		useLevel:  1,
	}

	w.Printf("base\n")
	w.V2().Printf("detail\n")
	w.V3().Printf("trace\n")

	assert.True(t, w.ContainsStdout("base"))
	assert.False(t, w.ContainsStdout("detail"), "verbosity 1 gates V2")
	assert.False(t, w.ContainsStdout("trace"), "verbosity 1 gates V3")
}

func TestBufferedWriterHighVerbosity(t *testing.T) {
	w := NewBufferedWriter()

	w.Printf("base\n")
	w.V2().Printf("detail\n")
	w.V3().Printf("trace\n")

	assert.True(t, w.ContainsStdout("base"))
	assert.True(t, w.ContainsStdout("detail"))
	assert.True(t, w.ContainsStdout("trace"))
}

func TestBufferedWriterErrorfFlattensErrors(t *testing.T) {
	w := NewBufferedWriter()
	w.Errorf("failed: %v\n", errors.New("line one\nline two"))
	assert.Contains(t, w.GetStderr(), "line one; line two")
}

func TestBufferedWriterReset(t *testing.T) {
	w := NewBufferedWriter()
	w.Printf("out")
	w.Errorf("err")
	w.Reset()
	assert.Empty(t, w.GetStdout())
	assert.Empty(t, w.GetStderr())
}

func TestNewWriterDefaults(t *testing.T) {
	w := NewWriter(nil)
	assert.NotNil(t, w.Writer())
	assert.NotNil(t, w.ErrWriter())
}

func TestNewWriterPanicsOnBadVerbosity(t *testing.T) {
	assert.Panics(t, func() {
		NewWriter(&WriterArgs{Verbosity: NoVerbosity})
	})
	assert.Panics(t, func() {
		NewWriter(&WriterArgs{Verbosity: Verbosity(9)})
	})
}
