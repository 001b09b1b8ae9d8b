package sqlite

import "errors"

var (
	// ErrEmptyPath indicates a missing database path.
	ErrEmptyPath = errors.New("sqlite index: db path cannot be empty")
	// ErrEmptyQuery indicates a blank query.
	ErrEmptyQuery = errors.New("sqlite index: query cannot be empty")
)

// QueryError wraps a failure of the user's SQL. Its message is the
// database's own so it can be shown as is.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string { return e.Err.Error() }

func (e *QueryError) Unwrap() error { return e.Err }
