package errors

import (
	"errors"
	"fmt"
)

// Re-exported so callers need a single errors import.
var (
	Is  = errors.Is
	As  = errors.As
	New = errors.New
)

// ErrEmptyQuery is returned when a search carries no SQL text.
var ErrEmptyQuery = errors.New("query is empty")

// ErrInvalidPattern wraps a file pattern that cannot be parsed.
var ErrInvalidPattern = errors.New("pattern is invalid")

// SearchError is a search that the backend rejected or that never
// completed. Message is what the user sees in the error region.
type SearchError struct {
	// Status is the HTTP status, or 0 when no response arrived.
	Status  int
	Message string
	Err     error
}

func (e *SearchError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("search failed (%d): %s", e.Status, e.Message)
	}
	return "search failed: " + e.Message
}

func (e *SearchError) Unwrap() error { return e.Err }

// UserMessage extracts the text to show for err. SearchError messages are
// shown verbatim; anything else uses its Error string.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var se *SearchError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return err.Error()
}
