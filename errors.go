package scriptutil

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSpecLocked        = errors.New("positional arguments are locked")
	ErrSpecConsumed      = errors.New("argument spec already consumed by parse")
	ErrInvalidArity      = errors.New("invalid arity")
	ErrUnknownToken      = errors.New("unknown flag or option")
	ErrMissingPositional = errors.New("missing required positional argument")
	ErrInvalidValue      = errors.New("invalid value for option")
	ErrGuardReused       = errors.New("entry-point guard may only run once per process")
	ErrSudoWriteFailed   = errors.New("sudo write failed")
)

// Error taxonomy roots; errors.Is(err, ErrConfiguration) identifies
// build-time failures, errors.Is(err, ErrUsage) parse-time failures.
var (
	ErrConfiguration = errors.New("argument spec configuration error")
	ErrUsage         = errors.New("command line usage error")
)

// UsageError is a parse-time failure carrying a usage summary for display
type UsageError struct {
	err   error
	usage string
}

func NewUsageErr(err error, usage string) error {
	return &UsageError{err: err, usage: usage}
}

func (e *UsageError) Error() string {
	return e.err.Error()
}

func (e *UsageError) Unwrap() []error {
	return []error{e.err, ErrUsage}
}

// Usage returns the human-readable usage summary for the failed parse
func (e *UsageError) Usage() string {
	return e.usage
}

// attrErr is the structured error produced by NewErr and WithErr; it chains
// one or more errors and carries key-value attributes for diagnostics.
type attrErr struct {
	errs  []error
	attrs []any
}

// NewErr builds a structured error from leading error arguments followed by
// alternating key-value attribute pairs, e.g.
//
//	NewErr(ErrInvalidValue, "option", name, "value", token)
func NewErr(args ...any) error {
	var errs []error
	var attrs []any

	for i, arg := range args {
		err, ok := arg.(error)
		if !ok {
			attrs = args[i:]
			break
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		errs = []error{errors.New("unspecified error")}
	}
	return &attrErr{errs: errs, attrs: attrs}
}

// WithErr wraps an existing error with additional sentinel(s) and attributes
func WithErr(err error, args ...any) error {
	if err == nil {
		return nil
	}
	return NewErr(append([]any{err}, args...)...)
}

func (e *attrErr) Error() string {
	var sb strings.Builder

	msgs := make([]string, len(e.errs))
	for i, err := range e.errs {
		msgs[i] = err.Error()
	}
	sb.WriteString(strings.Join(msgs, ": "))
	last := len(e.attrs) - 1
	for i := 0; i < len(e.attrs); i += 2 {
		if i == last {
			// Dangling key; emit it bare rather than dropping it
			sb.WriteString(fmt.Sprintf(" [%v]", e.attrs[i]))
			break
		}
		sb.WriteString(fmt.Sprintf(" [%v=%v]", e.attrs[i], e.attrs[i+1]))
	}
	return sb.String()
}

func (e *attrErr) Unwrap() []error {
	return e.errs
}

// AppendErr appends err to errs only when err is non-nil
func AppendErr(errs []error, err error) []error {
	if err != nil {
		errs = append(errs, err)
	}
	return errs
}

// CombineErrs combines errs into a single error, or nil if all were nil
func CombineErrs(errs []error) error {
	return errors.Join(errs...)
}
