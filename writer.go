// Package scriptutil is a convenience suite for system scripting in Go.
//
// Import it to get argument parsing, subprocess execution, filesystem
// helpers, user prompts, leveled logging and a top-level error boundary,
// without re-implementing that plumbing in every ad-hoc script.
package scriptutil

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Writer is the user-facing output surface scripts print through. Loud
// ignores the quiet setting; V2/V3 gate output behind higher verbosity.
type Writer interface {
	Printf(string, ...any)
	Errorf(string, ...any)
	Loud() Writer
	V2() Writer
	V3() Writer
	Writer() io.Writer
	ErrWriter() io.Writer
}

var _ Writer = (*consoleWriter)(nil)

// consoleWriter writes to stdout/stderr for normal script usage
type consoleWriter struct {
	writer    io.Writer
	errWriter io.Writer
	quiet     bool
	useLevel  int
	verbosity Verbosity
	loud      Writer
	v2        Writer
	v3        Writer
}

type WriterArgs struct {
	Quiet     bool
	Verbosity Verbosity
}

// NewWriter creates a console writer; a nil args uses low verbosity
func NewWriter(args *WriterArgs) Writer {
	if args == nil {
		args = &WriterArgs{Verbosity: LowVerbosity}
	}
	if args.Verbosity < LowVerbosity || HighVerbosity < args.Verbosity {
		panic(fmt.Sprintf("Invalid verbosity for scriptutil.NewWriter(); must be between 1-3; got %d", args.Verbosity))
	}
	return &consoleWriter{
		writer:    os.Stdout,
		errWriter: os.Stderr,
		quiet:     args.Quiet,
		useLevel:  1,
		verbosity: args.Verbosity,
	}
}

func (w *consoleWriter) Writer() io.Writer {
	return w.writer
}

func (w *consoleWriter) ErrWriter() io.Writer {
	return w.errWriter
}

// Printf writes formatted output to stdout, subject to quiet and verbosity
func (w *consoleWriter) Printf(format string, args ...any) {
	if w.quiet {
		goto end
	}
	if int(w.verbosity) < w.useLevel {
		goto end
	}
	Stdiof(w.writer, format, args...)
end:
	return
}

// Errorf writes formatted error output to stderr
func (w *consoleWriter) Errorf(format string, args ...any) {
	for i, arg := range args {
		err, ok := arg.(error)
		if !ok {
			continue
		}
		// Replace newlines in errors with semicolons
		args[i] = strings.ReplaceAll(err.Error(), "\n", "; ")
	}
	Stdiof(w.errWriter, format, args...)
}

func (w *consoleWriter) Loud() Writer {
	if w.loud != nil {
		goto end
	}
	w.loud = &consoleWriter{
		writer:    w.writer,
		errWriter: w.errWriter,
		useLevel:  w.useLevel,
		verbosity: w.verbosity,
	}
end:
	return w.loud
}

func (w *consoleWriter) V2() Writer {
	if w.v2 != nil {
		goto end
	}
	w.v2 = &consoleWriter{
		writer:    w.writer,
		errWriter: w.errWriter,
		quiet:     w.quiet,
		useLevel:  2,
		verbosity: w.verbosity,
	}
end:
	return w.v2
}

func (w *consoleWriter) V3() Writer {
	if w.v3 != nil {
		goto end
	}
	w.v3 = &consoleWriter{
		writer:    w.writer,
		errWriter: w.errWriter,
		quiet:     w.quiet,
		useLevel:  3,
		verbosity: w.verbosity,
	}
end:
	return w.v3
}
