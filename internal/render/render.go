// Package render writes search results into display regions: a results
// table and an error region. The terminal and HTML hosts each provide
// their own regions.
package render

import (
	"github.com/cristianoliveira/railsql/internal/domain"
	"github.com/cristianoliveira/railsql/internal/logging"
)

// Table is the region results are written into.
type Table interface {
	ClearRows()
	SetHeader(columns []string)
	AppendRow(cells []string)
}

// ErrorRegion shows the message of a failed search.
type ErrorRegion interface {
	ShowError(message string)
	ClearError()
}

// Display groups the regions of one host. Either may be nil when the host
// does not have it.
type Display struct {
	Table  Table
	Errors ErrorRegion
}

// Renderer writes results into a Display.
type Renderer struct {
	logger logging.Logger
}

// NewRenderer creates a Renderer. A nil logger uses the global one.
func NewRenderer(logger logging.Logger) *Renderer {
	if logger == nil {
		logger = logging.GetGlobal()
	}
	return &Renderer{logger: logger.With("component", "render")}
}

// Render replaces the table contents with a successful result, or shows
// the failure message and leaves the table as it was.
func (r *Renderer) Render(d Display, result domain.SearchResult) {
	if result.Failed() {
		if d.Errors == nil {
			r.logger.Warn("error region missing, dropping message", "message", result.Message)
			return
		}
		d.Errors.ShowError(result.Message)
		return
	}

	if d.Table == nil {
		r.logger.Warn("results region missing, dropping rows", "rows", len(result.Rows))
		return
	}
	d.Table.ClearRows()
	d.Table.SetHeader(result.Columns)
	for _, row := range result.Rows {
		d.Table.AppendRow(row)
	}
}

// ClearError empties the error region ahead of a new search.
func (r *Renderer) ClearError(d Display) {
	if d.Errors == nil {
		r.logger.Warn("error region missing, nothing to clear")
		return
	}
	d.Errors.ClearError()
}

// ErrorText is an ErrorRegion holding the message as plain text.
type ErrorText struct {
	Message string
}

func (e *ErrorText) ShowError(message string) { e.Message = message }

func (e *ErrorText) ClearError() { e.Message = "" }
