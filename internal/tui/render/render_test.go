package render

import (
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/cristianoliveira/railsql/internal/colors"
	"github.com/stretchr/testify/assert"
)

func TestAnsiColorNumber(t *testing.T) {
	assert.Equal(t, "34", ansiColorNumber(colors.Blue))
	assert.Equal(t, "31", ansiColorNumber(colors.Red))
	assert.Equal(t, "", ansiColorNumber(""))
	assert.Equal(t, "", ansiColorNumber("plain"))
}

func TestHeader(t *testing.T) {
	out := ansi.Strip(Header(HeaderState{RangeText: "Searching Files from 2025-01-01 to 2025-01-09", Pattern: "payroll"}))
	assert.Contains(t, out, "railsql")
	assert.Contains(t, out, "Searching Files from 2025-01-01 to 2025-01-09")
	assert.Contains(t, out, "pattern: payroll")

	out = ansi.Strip(Header(HeaderState{RangeText: "range"}))
	assert.NotContains(t, out, "pattern:")
}

func TestLinks(t *testing.T) {
	out := ansi.Strip(Links(LinksState{Older: "./?a", Newer: "./?b"}))
	assert.Contains(t, out, "older ./?a")
	assert.Contains(t, out, "newer ./?b")
	assert.NotContains(t, out, "history")

	out = ansi.Strip(Links(LinksState{Older: "./?a", Newer: "./?b", CanBack: true}))
	assert.Contains(t, out, "history: back")
}

func TestStatus(t *testing.T) {
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, "1,234 rows · 1 search", Status(FooterState{Rows: 1234, Searches: 1}))
	assert.Equal(t, "1 row · 2 searches · 1 running", Status(FooterState{Rows: 1, Searches: 2, InFlight: 1}))
	assert.Equal(t, "0 rows · 0 searches · last result 3 minutes ago",
		Status(FooterState{LastCompleted: now.Add(-3 * time.Minute), Now: now}))
}

func TestFooter(t *testing.T) {
	out := ansi.Strip(Footer(FooterState{Error: "syntax error"}))
	assert.Contains(t, out, "Error: syntax error")
	assert.Contains(t, out, "[/]: older/newer")

	out = ansi.Strip(Footer(FooterState{Editing: true}))
	assert.NotContains(t, out, "Error:")
	assert.Contains(t, out, "esc: leave editor")

	out = ansi.Strip(Footer(FooterState{PickerOpen: true}))
	assert.Contains(t, out, "enter: use query")
}
