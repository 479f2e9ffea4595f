package scriptutil

// Exit codes produced by the entry-point guard.
//
// The surface is deliberately small: a guarded script either completes
// (0), fails (1), or is interrupted (130, the shell convention for
// SIGINT). Under PropagatePolicy the process exits however the rethrown
// failure makes it exit, which for a panic is the Go runtime's code.
//
// Note: exit codes 128 and above are reserved for signal-related exits.
// See: https://tldp.org/LDP/abs/html/exitcodes.html

//goland:noinspection GoUnusedConst
const (
	ExitSuccess        = 0   // Guarded function returned normally
	ExitGuardedFailure = 1   // Any failure summarized by the guard
	ExitInterrupt      = 130 // Interrupt signal while the guarded function ran
)
