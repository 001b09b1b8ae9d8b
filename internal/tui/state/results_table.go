package state

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/railsql/internal/errors"
	"github.com/cristianoliveira/railsql/internal/render"
)

const (
	minColumnWidth = 3
	maxColumnWidth = 40
)

// resultsTable buffers rendered results until the model copies them into
// the bubbles table.
type resultsTable struct {
	header []string
	rows   [][]string
	dirty  bool
}

var _ render.Table = (*resultsTable)(nil)

func (r *resultsTable) ClearRows() {
	r.rows = nil
	r.dirty = true
}

func (r *resultsTable) SetHeader(columns []string) {
	r.header = make([]string, len(columns))
	for i, c := range columns {
		r.header[i] = render.Sanitize(c)
	}
	r.dirty = true
}

func (r *resultsTable) AppendRow(cells []string) {
	row := make([]string, len(r.header))
	for i := range row {
		if i < len(cells) {
			row[i] = render.Sanitize(cells[i])
		}
	}
	r.rows = append(r.rows, row)
	r.dirty = true
}

// apply copies pending changes into t.
func (r *resultsTable) apply(t *table.Model) {
	if !r.dirty {
		return
	}
	r.dirty = false

	cols := make([]table.Column, len(r.header))
	for i, h := range r.header {
		width := lipgloss.Width(h)
		for _, row := range r.rows {
			width = max(width, lipgloss.Width(row[i]))
		}
		cols[i] = table.Column{Title: h, Width: min(max(width, minColumnWidth), maxColumnWidth)}
	}
	rows := make([]table.Row, len(r.rows))
	for i, row := range r.rows {
		rows[i] = table.Row(row)
	}

	// Rows must go first: the table renders existing rows against the new columns.
	t.SetRows(nil)
	t.SetColumns(cols)
	t.SetRows(rows)
	t.SetCursor(0)
}

// errorRegion forwards failures to the TUI error handler.
type errorRegion struct {
	handler *errors.TUIHandler
	message string
}

var _ render.ErrorRegion = (*errorRegion)(nil)

func (e *errorRegion) ShowError(message string) {
	e.message = message
	e.handler.Error(message)
}

func (e *errorRegion) ClearError() {
	e.message = ""
	e.handler.Clear()
}
