package colors

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStructuredDebugIsGatedByDebugMode(t *testing.T) {
	EnableStructuredLogging()
	SetDebug(false)
	defer SetDebug(false)

	output := capture(t, &os.Stderr, func() {
		StructuredDebug(Event{Component: "dispatch", Action: "post", Status: "skipped"})
	})
	require.Empty(t, output)

	SetDebug(true)
	output = capture(t, &os.Stderr, func() {
		StructuredDebug(Event{
			Component: "dispatch",
			Action:    "post",
			Status:    "failed",
			RequestID: "req-1",
			Err:       errors.New("syntax error"),
			Fields:    map[string]any{"status": 400},
		})
	})

	var entry StructuredLogEntry
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(output)), &entry))
	require.Equal(t, LevelDebug, entry.Level)
	require.Equal(t, "dispatch", entry.Component)
	require.Equal(t, "req-1", entry.RequestID)
	require.Equal(t, "syntax error", entry.Error)
	require.EqualValues(t, 400, entry.Fields["status"])
}

func TestStructuredLoggingCanBeDisabled(t *testing.T) {
	SetDebug(true)
	defer SetDebug(false)
	DisableStructuredLogging()
	defer EnableStructuredLogging()

	output := capture(t, &os.Stderr, func() {
		StructuredInfo(Event{Component: "console", Action: "render", Status: "ok"})
	})
	require.Empty(t, output)
}
