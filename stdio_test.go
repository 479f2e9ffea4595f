package scriptutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStdiof(t *testing.T) {
	buf := &bytes.Buffer{}
	Stdiof(buf, "value=%d\n", 42)
	assert.Equal(t, "value=42\n", buf.String())
}

func TestConsoleWriterPrintsThroughStdiof(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	w := &consoleWriter{
		writer:    out,
		errWriter: errOut,
		useLevel:  1,
		verbosity: LowVerbosity,
	}

	w.Printf("hello %d\n", 7)
	w.Errorf("failed: %v\n", errors.New("one\ntwo"))

	assert.Equal(t, "hello 7\n", out.String())
	assert.Equal(t, "failed: one; two\n", errOut.String())
}
