package scriptutil

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mikeschinkel/go-dt"
	"github.com/mikeschinkel/go-dt/appinfo"
)

// Script bundles the toolkit's collaborators behind one object so a script
// makes a single call to get argument parsing, filesystem helpers, user
// prompts, logging and process execution.
type Script struct {
	Args *ArgSpec
	FS   *FileSys
	User *Prompter
	Util *Util
	Log  *slog.Logger
	Out  Writer
	info appinfo.AppInfo
}

type ScriptArgs struct {
	ScriptPath  string // path to the running script; os.Args[0] when empty
	Name        string
	Description string
	Version     string
	InfoURL     string
	LogFile     string // optional; creates a file log with default levels
	LogLevel    *slog.Level
	Verbosity   *Verbosity // console log level when LogLevel is not set
	Writer      Writer
}

// NewScript creates a new scripting assistant. For custom log behavior
// leave LogFile empty and call SetLog with your own logger.
func NewScript(args ScriptArgs) (script *Script, err error) {
	var logger *slog.Logger

	scriptPath := args.ScriptPath
	if scriptPath == "" {
		scriptPath = os.Args[0]
	}
	if args.Name == "" {
		args.Name = filepath.Base(scriptPath)
	}

	if args.LogLevel == nil && args.Verbosity != nil {
		args.LogLevel = ptr(args.Verbosity.LogLevel())
	}
	logger, err = NewLogger(LoggerArgs{
		Level:   args.LogLevel,
		LogFile: args.LogFile,
	})
	if err != nil {
		goto end
	}

	{
		info := appinfo.New(appinfo.Args{
			Name:        args.Name,
			Description: args.Description,
			Version:     dt.Version(args.Version),
			ExeName:     dt.Filename(filepath.Base(scriptPath)),
			InfoURL:     dt.URL(args.InfoURL),
		})
		writer := args.Writer
		if writer == nil {
			writer = NewWriter(nil)
		}
		spec := NewArgSpec()
		spec.SetScriptName(string(info.ExeName()))

		script = &Script{
			Args: spec,
			FS:   NewFileSys(scriptPath),
			User: NewPrompter(PrompterArgs{}),
			Util: NewUtil(),
			Log:  logger,
			Out:  writer,
			info: info,
		}
	}

end:
	return script, err
}

// Info returns the script's identity
func (s *Script) Info() appinfo.AppInfo {
	return s.info
}

// SetLog replaces the logging sink with a customized one
func (s *Script) SetLog(logger *slog.Logger) {
	s.Log = logger
}

// Env gets an environment variable, or defval when unset
func (s *Script) Env(name string, defval string) string {
	value, ok := os.LookupEnv(name)
	if !ok {
		value = defval
	}
	return value
}

// ParseArgs parses the process command line against the declared spec
func (s *Script) ParseArgs() (*ParsedArgs, error) {
	return s.Args.Parse(os.Args[1:])
}

// Cmd executes a single captured command; see Run
func (s *Script) Cmd(ctx context.Context, inv Invocation) (*Result, error) {
	return Run(ctx, inv)
}

// Shell runs a command line through the host shell; see Shell
func (s *Script) Shell(ctx context.Context, command string) (int, error) {
	return Shell(ctx, command)
}

// ShellJoin joins shell tokens; see JoinTokens
func (s *Script) ShellJoin(tokens []string) string {
	return JoinTokens(tokens)
}
