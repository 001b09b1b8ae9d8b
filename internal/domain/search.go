// Package domain holds the types shared by the console, the dispatcher and
// the backend: what a search asks for, what it returns, and the
// repositories the search service is built on.
package domain

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/railsql/internal/errors"
	"github.com/cristianoliveira/railsql/internal/search"
	"github.com/cristianoliveira/railsql/internal/window"
)

// SearchRequest is one query the user submitted.
type SearchRequest struct {
	Window    window.Window
	QueryText string
	Pattern   string
}

// Validate rejects requests the backend would refuse anyway.
func (r SearchRequest) Validate() error {
	if strings.TrimSpace(r.QueryText) == "" {
		return errors.ErrEmptyQuery
	}
	return ValidatePattern(r.Pattern)
}

// ValidatePattern rejects a file pattern that is neither a substring nor a
// parseable glob or "re:" expression.
func ValidatePattern(pattern string) error {
	if err := search.ValidatePattern(pattern); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidPattern, err)
	}
	return nil
}

// Address is the navigation address this request corresponds to.
func (r SearchRequest) Address() window.Address {
	return r.Window.Address(r.Pattern)
}

// SearchResult is the outcome of a search: either a table or a failure message.
type SearchResult struct {
	Columns []string
	Rows    [][]string
	// Message is set when the search failed.
	Message string
	failed  bool
}

// Success builds a successful result.
func Success(columns []string, rows [][]string) SearchResult {
	return SearchResult{Columns: columns, Rows: rows}
}

// Failure builds a failed result carrying message.
func Failure(message string) SearchResult {
	return SearchResult{Message: message, failed: true}
}

// Failed reports whether the search failed.
func (r SearchResult) Failed() bool { return r.failed }
