package console

import "github.com/cristianoliveira/railsql/internal/window"

// History is a stack of visited addresses with a cursor, like a browser's.
type History struct {
	entries []window.Address
	index   int
}

// NewHistory starts a history at initial.
func NewHistory(initial window.Address) *History {
	return &History{entries: []window.Address{initial}}
}

// Push adds addr after the current entry, dropping any forward entries.
func (h *History) Push(addr window.Address) {
	h.entries = append(h.entries[:h.index+1], addr)
	h.index++
}

// Back moves to the previous entry.
func (h *History) Back() (window.Address, bool) {
	if h.index == 0 {
		return window.Address{}, false
	}
	h.index--
	return h.entries[h.index], true
}

// Forward moves to the next entry.
func (h *History) Forward() (window.Address, bool) {
	if h.index >= len(h.entries)-1 {
		return window.Address{}, false
	}
	h.index++
	return h.entries[h.index], true
}

// Current returns the active entry.
func (h *History) Current() window.Address { return h.entries[h.index] }

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// CanGoBack reports whether Back would move.
func (h *History) CanGoBack() bool { return h.index > 0 }

// CanGoForward reports whether Forward would move.
func (h *History) CanGoForward() bool { return h.index < len(h.entries)-1 }
