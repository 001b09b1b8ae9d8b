package colors

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

var (
	structuredMu             sync.Mutex
	structuredLoggingEnabled atomic.Bool
)

func init() {
	structuredLoggingEnabled.Store(true)
}

// StructuredLogLevel represents log level for structured logs.
type StructuredLogLevel string

const (
	LevelDebug StructuredLogLevel = "debug"
	LevelInfo  StructuredLogLevel = "info"
	LevelWarn  StructuredLogLevel = "warn"
	LevelError StructuredLogLevel = "error"
)

// Event describes one step of a search or ingest run.
type Event struct {
	Component string
	Action    string
	Status    string
	// RequestID correlates the console, the dispatcher and the server.
	RequestID string
	Err       error
	Fields    map[string]any
}

// StructuredLogEntry is the JSON line written to stderr.
type StructuredLogEntry struct {
	Timestamp string             `json:"timestamp"`
	Level     StructuredLogLevel `json:"level"`
	Component string             `json:"component"`
	Action    string             `json:"action"`
	Status    string             `json:"status"`
	Error     string             `json:"error,omitempty"`
	RequestID string             `json:"request_id,omitempty"`
	Fields    map[string]any     `json:"fields,omitempty"`
}

// DisableStructuredLogging disables structured logging output.
// The console command calls this because JSON lines would corrupt the screen.
func DisableStructuredLogging() {
	structuredLoggingEnabled.Store(false)
}

// EnableStructuredLogging enables structured logging output.
func EnableStructuredLogging() {
	structuredLoggingEnabled.Store(true)
}

// StructuredLog writes ev as a JSON line to stderr when debug mode is on.
func StructuredLog(level StructuredLogLevel, ev Event) {
	if !debugEnabled || !structuredLoggingEnabled.Load() {
		return
	}

	entry := StructuredLogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Component: ev.Component,
		Action:    ev.Action,
		Status:    ev.Status,
		RequestID: ev.RequestID,
		Fields:    ev.Fields,
	}
	if ev.Err != nil {
		entry.Error = ev.Err.Error()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal structured log: %v\n", err)
		return
	}

	structuredMu.Lock()
	defer structuredMu.Unlock()
	fmt.Fprintf(os.Stderr, "%s\n", data)
}

// StructuredDebug logs a structured debug entry.
func StructuredDebug(ev Event) { StructuredLog(LevelDebug, ev) }

// StructuredInfo logs a structured info entry.
func StructuredInfo(ev Event) { StructuredLog(LevelInfo, ev) }

// StructuredWarn logs a structured warning entry.
func StructuredWarn(ev Event) { StructuredLog(LevelWarn, ev) }

// StructuredError logs a structured error entry.
func StructuredError(ev Event) { StructuredLog(LevelError, ev) }
