package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Row is one row of cells in the wire format.
type Row struct {
	Columns []any `json:"Columns"`
}

// Results is the JSON body exchanged between the dispatcher and the backend.
// A failed search carries only Error.
type Results struct {
	Headers *Row   `json:"Headers,omitempty"`
	Rows    []Row  `json:"Rows,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewResults builds a successful wire body from query output.
func NewResults(columns []string, rows [][]any) Results {
	headers := Row{Columns: make([]any, len(columns))}
	for i, c := range columns {
		headers.Columns[i] = c
	}
	out := Results{Headers: &headers, Rows: make([]Row, 0, len(rows))}
	for _, r := range rows {
		out.Rows = append(out.Rows, Row{Columns: r})
	}
	return out
}

// ErrorResults builds a failed wire body.
func ErrorResults(message string) Results {
	return Results{Error: message}
}

// SearchResult converts the wire body. An error field wins over any rows.
func (r Results) SearchResult() SearchResult {
	if r.Error != "" {
		return Failure(r.Error)
	}
	var columns []string
	if r.Headers != nil {
		columns = formatCells(r.Headers.Columns)
	}
	rows := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, formatCells(row.Columns))
	}
	return Success(columns, rows)
}

func formatCells(values []any) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = FormatCell(v)
	}
	return out
}

// FormatCell renders a single value as display text. NULL becomes the
// empty string and whole floats lose their fraction, since JSON numbers
// decode as float64.
func FormatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
