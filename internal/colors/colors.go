// Package colors provides colored console output for railsql commands.
//
// Every message is mirrored to the structured logger when one is set via
// SetLogger, so console output and the log file stay in step.
package colors

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Color constants
const (
	Red    = "\033[0;31m"
	Green  = "\033[0;32m"
	Yellow = "\033[1;33m"
	Blue   = "\033[0;34m"
	Cyan   = "\033[0;36m"
	Reset  = "\033[0m"
)

const checkmark = "✓"

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	debugEnabled bool
	quietEnabled bool
	logger       Logger
	loggerMu     sync.RWMutex

	// reporting is set while a write failure is being reported, so a
	// broken stream cannot recurse through Warning/Error forever.
	reporting   bool
	reportingMu sync.Mutex
)

func init() {
	if val := os.Getenv("RAILSQL_DEBUG"); val == "true" || val == "1" {
		debugEnabled = true
	}
}

// SetDebug enables or disables debug output.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}

// SetQuiet suppresses Info and Success output. Errors and warnings are still written.
func SetQuiet(enabled bool) {
	quietEnabled = enabled
}

// SetLogger sets the structured logger to mirror console output.
func SetLogger(l Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

func currentLogger() Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// write prints a line and reports a failed write once.
func write(w io.Writer, kind, line string) {
	if _, err := fmt.Fprintln(w, line); err != nil {
		reportingMu.Lock()
		nested := reporting
		reporting = true
		reportingMu.Unlock()
		if nested {
			fmt.Fprintf(os.Stderr, "failed to print %s message: %v\n", kind, err)
			return
		}
		defer func() {
			reportingMu.Lock()
			reporting = false
			reportingMu.Unlock()
		}()
		Warning(fmt.Sprintf("failed to print %s message: %v", kind, err))
	}
}

// Error outputs an error message to stderr.
func Error(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Error(msg)
	}
	write(os.Stderr, "error", Red+"Error:"+Reset+" "+msg+Reset)
}

// Success outputs a success message to stdout.
func Success(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Info(msg, "type", "success")
	}
	if quietEnabled {
		return
	}
	write(os.Stdout, "success", Green+checkmark+Reset+" "+msg+Reset)
}

// Warning outputs a warning message to stderr.
func Warning(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Warn(msg)
	}
	write(os.Stderr, "warning", Yellow+"Warning:"+Reset+" "+msg+Reset)
}

// Info outputs an informational message to stdout.
func Info(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Info(msg)
	}
	if quietEnabled {
		return
	}
	write(os.Stdout, "info", Blue+msg+Reset)
}

// LogInfo outputs an informational message to stderr, keeping stdout clean
// for command output such as result tables.
func LogInfo(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Info(msg)
	}
	if quietEnabled {
		return
	}
	write(os.Stderr, "log info", Blue+msg+Reset)
}

// Debug outputs a debug message to stderr if debug is enabled.
func Debug(msgs ...string) {
	if !debugEnabled {
		return
	}
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Debug(msg)
	}
	write(os.Stderr, "debug", Cyan+"Debug:"+Reset+" "+msg+Reset)
}
