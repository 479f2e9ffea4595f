package scriptutil

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

// EnvShowErrors is the environment toggle controlling whether guarded
// failures propagate in full or are summarized. Callers read it and inject
// the resulting Policy; the guard itself never reads ambient state.
const EnvShowErrors = "SCRIPT_ERRORS"

var ErrInterrupted = errors.New("interrupted")

// Policy decides what happens to a Failed outcome
type Policy int

const (
	SummarizePolicy Policy = iota // one-line description, exit status 1
	PropagatePolicy               // rethrow the original failure unchanged
)

// PolicyFromEnv maps the toggle's value to a Policy; only the literal
// string "true", compared case-insensitively, enables propagation.
func PolicyFromEnv(value string) Policy {
	if strings.EqualFold(strings.TrimSpace(value), "true") {
		return PropagatePolicy
	}
	return SummarizePolicy
}

// MainFunc is a script's top-level function
type MainFunc func() error

// Outcome is the guard's per-run decision record: Completed carries an
// exit code, Failed additionally carries the original failure.
type Outcome struct {
	Code int
	Err  error
}

func (o Outcome) Completed() bool {
	return o.Err == nil
}

func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Guard is the single error boundary wrapping a script's top-level
// function. It is one-shot: a second Run on the same guard panics.
type Guard struct {
	policy Policy
	writer Writer
	used   bool
}

type GuardArgs struct {
	Policy Policy
	Writer Writer
}

func NewGuard(args GuardArgs) *Guard {
	if args.Writer == nil {
		args.Writer = NewWriter(nil)
	}
	return &Guard{
		policy: args.Policy,
		writer: args.Writer,
	}
}

// Run invokes fn inside the boundary and converts its result to an
// Outcome. Under SummarizePolicy a panic in fn is intercepted and recorded
// as a failure; under PropagatePolicy no recovery is installed so the
// panic surfaces unchanged. An interrupt delivered while fn runs is
// treated like any other failure, per the active policy.
func (g *Guard) Run(fn MainFunc) (outcome Outcome) {
	if g.used {
		panic(ErrGuardReused.Error())
	}
	g.used = true

	sigCh := make(chan os.Signal, 1)
	quit := make(chan struct{})
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go g.watchInterrupt(sigCh, quit)
	defer close(quit)
	defer signal.Stop(sigCh)

	if g.policy == SummarizePolicy {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			outcome = Outcome{
				Code: ExitGuardedFailure,
				Err:  fmt.Errorf("panic: %v", r),
			}
		}()
	}

	err := fn()
	if err != nil {
		return Outcome{Code: ExitGuardedFailure, Err: err}
	}
	return Outcome{Code: ExitSuccess}
}

// watchInterrupt runs beside fn and ends the process when an interrupt
// arrives, applying the same summarize/propagate decision as any other
// failure. Propagation re-delivers the signal with default handling so
// the process dies exactly as it would have without the guard.
func (g *Guard) watchInterrupt(sigCh chan os.Signal, quit chan struct{}) {
	select {
	case sig := <-sigCh:
		if g.policy == PropagatePolicy {
			signal.Stop(sigCh)
			p, err := os.FindProcess(os.Getpid())
			if err == nil {
				_ = p.Signal(sig)
			}
		} else {
			g.writer.Printf("%s\n", NewErr(ErrInterrupted, "signal", sig).Error())
		}
		os.Exit(ExitInterrupt)
	case <-quit:
	}
}

// Apply carries out the policy for an outcome and returns the process
// exit code. Summarize prints a short one-line description of the failure
// to standard output; Propagate rethrows the original failure unchanged.
func (g *Guard) Apply(outcome Outcome) int {
	if outcome.Completed() {
		return outcome.Code
	}
	if g.policy == PropagatePolicy {
		panic(outcome.Err)
	}
	g.writer.Printf("%s\n", oneLine(outcome.Err))
	return outcome.Code
}

// Main is the convenience entry point most scripts use: it builds a guard
// with the policy read from EnvShowErrors by this caller, runs fn, applies
// the outcome and exits the process.
func Main(fn MainFunc) {
	guard := NewGuard(GuardArgs{
		Policy: PolicyFromEnv(os.Getenv(EnvShowErrors)),
	})
	os.Exit(guard.Apply(guard.Run(fn)))
}

// oneLine flattens a failure to a single display line
func oneLine(err error) string {
	return strings.ReplaceAll(err.Error(), "\n", "; ")
}
