// Package console keeps the search window in step with navigation. A
// Synchronizer maps events (load, older/newer clicks, history moves,
// submissions, completed searches) to a new State plus the effects the
// host must carry out. The Controller owns that state and runs the effects.
package console

import (
	"github.com/cristianoliveira/railsql/internal/domain"
	"github.com/cristianoliveira/railsql/internal/window"
)

// EventKind identifies an event.
type EventKind int

const (
	EventLoad EventKind = iota
	EventClickOlder
	EventClickNewer
	EventPopState
	EventSubmit
	EventSearchCompleted
)

func (k EventKind) String() string {
	switch k {
	case EventLoad:
		return "load"
	case EventClickOlder:
		return "click-older"
	case EventClickNewer:
		return "click-newer"
	case EventPopState:
		return "popstate"
	case EventSubmit:
		return "submit"
	case EventSearchCompleted:
		return "search-completed"
	default:
		return "unknown"
	}
}

// Event is something that happened to the console.
type Event struct {
	Kind EventKind
	// Address is set for load and popstate.
	Address window.Address
	// Query and Pattern are set for submit.
	Query   string
	Pattern string
	// Result is set for search-completed.
	Result domain.SearchResult
}

// Load is the first event of a session, carrying the start address.
func Load(addr window.Address) Event { return Event{Kind: EventLoad, Address: addr} }

// ClickOlder follows the older link.
func ClickOlder() Event { return Event{Kind: EventClickOlder} }

// ClickNewer follows the newer link.
func ClickNewer() Event { return Event{Kind: EventClickNewer} }

// PopState reports a move through history to addr.
func PopState(addr window.Address) Event { return Event{Kind: EventPopState, Address: addr} }

// Submit asks for query to run over the current window. A pattern that
// differs from the current address's becomes a new history entry first.
func Submit(query, pattern string) Event {
	return Event{Kind: EventSubmit, Query: query, Pattern: pattern}
}

// SearchCompleted carries a finished search.
func SearchCompleted(result domain.SearchResult) Event {
	return Event{Kind: EventSearchCompleted, Result: result}
}

// EffectKind identifies an effect.
type EffectKind int

const (
	EffectUpdateDisplay EffectKind = iota
	EffectPushHistory
	EffectClearError
	EffectDispatch
	EffectRender
)

func (k EffectKind) String() string {
	switch k {
	case EffectUpdateDisplay:
		return "update-display"
	case EffectPushHistory:
		return "push-history"
	case EffectClearError:
		return "clear-error"
	case EffectDispatch:
		return "dispatch"
	case EffectRender:
		return "render"
	default:
		return "unknown"
	}
}

// Effect is work the host performs after an event.
type Effect struct {
	Kind    EffectKind
	Address window.Address
	Request domain.SearchRequest
	Result  domain.SearchResult
}
