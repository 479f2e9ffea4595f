package scriptutil

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
	"github.com/mikeschinkel/go-dt"
)

// CaptureMode selects how a captured subprocess's output is returned.
// The mode applies uniformly to both stdout and stderr.
type CaptureMode int

const (
	TextCapture CaptureMode = iota // decode both streams as UTF-8 strings
	BytesCapture                   // return both streams as raw bytes
	NoCapture                      // inherit the caller's standard streams
)

// Invocation describes one subprocess call for Run. Exactly one of Tokens
// and Raw should be set; Raw is split with shell-quoting rules but is never
// interpreted by a shell.
type Invocation struct {
	Tokens []string
	Raw    string
	Mode   CaptureMode
}

// Result carries a finished subprocess's exit status and buffered output.
// Text fields are set under TextCapture, byte fields under BytesCapture.
// The runner retains nothing; ownership passes entirely to the caller.
type Result struct {
	ExitStatus  int
	Stdout      string
	Stderr      string
	StdoutBytes []byte
	StderrBytes []byte
}

// Run executes a single command with no shell interpretation and no
// pipeline, buffering all output in memory. A non-zero exit status is NOT
// an error; callers must inspect Result.ExitStatus and decide. Run blocks
// until the child exits.
func Run(ctx context.Context, inv Invocation) (result *Result, err error) {
	var tokens []string
	var stdout, stderr bytes.Buffer

	tokens = inv.Tokens
	if len(tokens) == 0 && inv.Raw != "" {
		tokens, err = SplitTokens(inv.Raw)
		if err != nil {
			goto end
		}
	}
	if len(tokens) == 0 {
		err = NewErr(dt.ErrEmpty, "empty_property", "command")
		goto end
	}

	{
		cmd := exec.CommandContext(ctx, tokens[0], tokens[1:]...)
		switch inv.Mode {
		case TextCapture, BytesCapture:
			cmd.Stdout = &stdout
			cmd.Stderr = &stderr
		case NoCapture:
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
		}

		status, runErr := exitStatus(cmd.Run())
		if runErr != nil {
			err = WithErr(runErr, "command", JoinTokens(tokens))
			goto end
		}

		result = &Result{ExitStatus: status}
		switch inv.Mode {
		case TextCapture:
			result.Stdout = stdout.String()
			result.Stderr = stderr.String()
		case BytesCapture:
			result.StdoutBytes = stdout.Bytes()
			result.StderrBytes = stderr.Bytes()
		case NoCapture:
			// Streams went to the terminal; nothing to return
		}
	}

end:
	return result, err
}

// Shell delegates the literal command string to the host shell, permitting
// pipes and redirection. Output is not captured; the child inherits the
// caller's standard streams. Returns only the exit status.
func Shell(ctx context.Context, command string) (status int, err error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	status, err = exitStatus(cmd.Run())
	if err != nil {
		err = WithErr(err, "command", command)
	}
	return status, err
}

// exitStatus separates "the child ran and exited non-zero" (a status, not
// an error) from "the child could not run at all" (an error).
func exitStatus(err error) (int, error) {
	var exitErr *exec.ExitError

	if err == nil {
		return 0, nil
	}
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

// SplitTokens splits a raw command string using shell-quoting-aware rules.
// The result is a token list; no shell expansion of any kind happens.
func SplitTokens(command string) (tokens []string, err error) {
	tokens, err = shellquote.Split(command)
	if err != nil {
		err = WithErr(err, "command", command)
	}
	return tokens, err
}

// JoinTokens joins tokens into a single string such that SplitTokens
// reproduces the original token list.
func JoinTokens(tokens []string) string {
	return shellquote.Join(tokens...)
}
