package scriptutil

import (
	"errors"
	"log/slog"
)

type Verbosity int

const (
	NoVerbosity Verbosity = iota
	LowVerbosity
	MediumVerbosity
	HighVerbosity
)

var (
	ErrInvalidVerbosity = errors.New("invalid verbosity level")
	ErrVerbosityTooLow  = errors.New("verbosity too low; must be between 0..3 inclusive")
	ErrVerbosityTooHigh = errors.New("verbosity too high; must be between 0..3 inclusive")
)

func ParseVerbosity(verbosity int) (v Verbosity, err error) {
	v = Verbosity(verbosity)
	switch {
	case v < NoVerbosity:
		err = ErrVerbosityTooLow

	case v > HighVerbosity:
		err = ErrVerbosityTooHigh
	}
	if err != nil {
		v = -1
		err = NewErr(
			ErrInvalidVerbosity,
			err,
			"verbosity", verbosity,
		)
	}
	return v, err
}

// LogLevel maps script verbosity to the slog level NewScript configures
// its logger with when no explicit level is given
func (v Verbosity) LogLevel() (level slog.Level) {
	switch v {
	case NoVerbosity:
		level = slog.LevelError
	case LowVerbosity:
		level = slog.LevelWarn
	case MediumVerbosity:
		level = slog.LevelInfo
	case HighVerbosity:
		level = slog.LevelDebug
	default:
		level = slog.LevelWarn
	}
	return level
}
