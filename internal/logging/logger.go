// Package logging provides structured JSON logging for railsql.
//
// Each process writes one log file under {state_dir}/logs, or to stderr when
// logging_output is "stderr". Credentials are redacted and account numbers
// are cut down to their last four characters before anything is written.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/cristianoliveira/railsql/internal/colors"
)

// Logger is the structured logging interface.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// With returns a logger that adds the given key-value pairs to every entry.
	With(args ...any) Logger
	// Shutdown closes the underlying file. Loggers derived with With share
	// it, so shutting down any of them closes it for all.
	Shutdown() error
}

// sink is the destination shared by a logger and everything derived from it.
type sink struct {
	closer io.Closer
	path   string
	once   sync.Once
	err    error
}

func (s *sink) close() error {
	s.once.Do(func() {
		if s.closer != nil {
			s.err = s.closer.Close()
		}
	})
	return s.err
}

type jsonLogger struct {
	base *clog.Logger
	out  *sink
}

// New returns a logger writing JSON lines to w. Entries carry the pid and
// the command name.
func New(w io.Writer, cfg Config) Logger {
	return newJSONLogger(w, cfg, &sink{})
}

func newJSONLogger(w io.Writer, cfg Config, out *sink) *jsonLogger {
	base := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Level:           parseLevel(cfg.Level),
		Formatter:       clog.JSONFormatter,
	})
	return &jsonLogger{
		base: base.With("pid", os.Getpid(), "command", cfg.Command),
		out:  out,
	}
}

// Init builds the logger described by cfg. A disabled config yields a
// logger that discards everything.
func Init(cfg Config) (Logger, error) {
	if !cfg.Enabled {
		return Nop(), nil
	}
	if cfg.Output == OutputStderr {
		return New(os.Stderr, cfg), nil
	}
	f, err := openLogFile(cfg)
	if err != nil {
		return nil, err
	}
	return newJSONLogger(f, cfg, &sink{closer: f, path: f.Name()}), nil
}

// openLogFile prunes old logs and creates
// railsql_{command}_{timestamp}_{pid}.log with owner-only permissions.
func openLogFile(cfg Config) (*os.File, error) {
	dir, err := LogDir()
	if err != nil {
		return nil, fmt.Errorf("log directory: %w", err)
	}
	if cfg.MaxFiles > 0 {
		if err := prune(dir, cfg.MaxFiles-1); err != nil {
			fmt.Fprintf(os.Stderr, "railsql: pruning logs in %s: %v\n", dir, err)
		}
	}
	command := strings.Join(strings.Fields(cfg.Command), "-")
	if command == "" {
		command = "railsql"
	}
	name := fmt.Sprintf("%s%s_%s_%d.log", logFilePrefix, command, time.Now().Format("20060102T150405"), os.Getpid())
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func parseLevel(level string) clog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return clog.DebugLevel
	case "warn", "warning":
		return clog.WarnLevel
	case "error":
		return clog.ErrorLevel
	default:
		return clog.InfoLevel
	}
}

func (l *jsonLogger) Debug(msg string, args ...any) { l.base.Debug(msg, redactPairs(args)...) }
func (l *jsonLogger) Info(msg string, args ...any)  { l.base.Info(msg, redactPairs(args)...) }
func (l *jsonLogger) Warn(msg string, args ...any)  { l.base.Warn(msg, redactPairs(args)...) }
func (l *jsonLogger) Error(msg string, args ...any) { l.base.Error(msg, redactPairs(args)...) }

func (l *jsonLogger) With(args ...any) Logger {
	return &jsonLogger{base: l.base.With(redactPairs(args)...), out: l.out}
}

func (l *jsonLogger) Shutdown() error { return l.out.close() }

// Path returns the file l writes to, or "" for stderr and no-op loggers.
func Path(l Logger) string {
	if jl, ok := l.(*jsonLogger); ok {
		return jl.out.path
	}
	return ""
}

type nopLogger struct{}

// Nop returns a logger that discards everything.
func Nop() Logger { return nopLogger{} }

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
func (n nopLogger) With(...any) Logger { return n }
func (nopLogger) Shutdown() error      { return nil }

var (
	globalMu sync.RWMutex
	global   Logger
)

// InitGlobal builds the process logger from the global config and mirrors
// console messages into it. Calls after the first are no-ops until
// ShutdownGlobal.
func InitGlobal() error {
	globalMu.Lock()
	defer globalMu.Unlock()
	if global != nil {
		return nil
	}
	l, err := Init(FromGlobalConfig())
	if err != nil {
		return err
	}
	global = l
	colors.SetLogger(l)
	if path := Path(l); path != "" {
		colors.LogInfo("Logging to file:", path)
	}
	return nil
}

// GetGlobal returns the process logger, or a no-op logger before InitGlobal.
func GetGlobal() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if global == nil {
		return Nop()
	}
	return global
}

// Debug logs through the process logger.
func Debug(msg string, args ...any) { GetGlobal().Debug(msg, args...) }

// ShutdownGlobal closes the process logger and detaches it from console output.
func ShutdownGlobal() error {
	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		return nil
	}
	err := global.Shutdown()
	global = nil
	colors.SetLogger(nil)
	return err
}
