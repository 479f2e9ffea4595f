package scriptutil

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

type LoggerArgs struct {
	Level     *slog.Level // console level; defaults to Warn
	FileLevel *slog.Level // log file level; defaults to Debug
	LogFile   string      // optional path; appended to, created if missing
	NoConsole bool
	Console   io.Writer // override for tests; defaults to os.Stdout
}

// NewLogger creates the leveled logging sink scripts use. Console output
// is colorized when attached to a terminal and plain text otherwise; an
// optional log file receives everything at FileLevel regardless of the
// console level.
func NewLogger(args LoggerArgs) (logger *slog.Logger, err error) {
	var handlers []slog.Handler

	level := valueOrDefault(args.Level, slog.LevelWarn)
	fileLevel := valueOrDefault(args.FileLevel, slog.LevelDebug)

	if !args.NoConsole {
		console := args.Console
		if console == nil {
			console = os.Stdout
		}
		handlers = append(handlers, consoleHandler(console, level))
	}

	if args.LogFile != "" {
		var f *os.File
		f, err = os.OpenFile(args.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			err = WithErr(err, "log_file", args.LogFile)
			goto end
		}
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{
			Level: fileLevel,
		}))
	}

	switch len(handlers) {
	case 0:
		logger = slog.New(slog.DiscardHandler)
	case 1:
		logger = slog.New(handlers[0])
	default:
		logger = slog.New(&fanoutHandler{handlers: handlers})
	}

end:
	return logger, err
}

func consoleHandler(w io.Writer, level slog.Level) slog.Handler {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
}

// fanoutHandler forwards each record to every underlying handler that
// accepts its level; slog ships no multi-handler of its own.
type fanoutHandler struct {
	handlers []slog.Handler
}

var _ slog.Handler = (*fanoutHandler)(nil)

func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *fanoutHandler) Handle(ctx context.Context, record slog.Record) (err error) {
	var errs []error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		errs = AppendErr(errs, handler.Handle(ctx, record.Clone()))
	}
	return CombineErrs(errs)
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return &fanoutHandler{handlers: handlers}
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return &fanoutHandler{handlers: handlers}
}
