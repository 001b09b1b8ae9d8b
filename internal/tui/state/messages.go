// Package state holds the bubbletea model of the search console.
package state

import (
	"github.com/cristianoliveira/railsql/internal/domain"
	"github.com/cristianoliveira/railsql/internal/window"
)

// PopStateMsg reports a history move. The model sends one on start, marked
// Initial.
type PopStateMsg struct {
	Address window.Address
	Initial bool
}

// SearchCompletedMsg carries the result of a dispatched search.
type SearchCompletedMsg struct {
	Result domain.SearchResult
}
