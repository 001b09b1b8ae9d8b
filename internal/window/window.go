package window

import (
	"fmt"
	"time"
)

// DefaultDays is the span of the trailing window used when an address carries
// no usable dates.
const DefaultDays = 7

// Window is an inclusive date range. Start is midnight of its day and End is
// 23:59:59.999 of its day; Start never comes after End.
type Window struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of calendar days pagination shifts this window by.
// A single-day window still moves by one day.
func (w Window) Days() int {
	n := daysBetween(w.Start, w.End)
	if n < 1 {
		return 1
	}
	return n
}

// Shift returns the window moved by days calendar days (negative moves back).
func (w Window) Shift(days int) Window {
	return Window{
		Start: StartOfDay(w.Start.AddDate(0, 0, days)),
		End:   EndOfDay(w.End.AddDate(0, 0, days)),
	}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Address returns the navigation address selecting this window.
func (w Window) Address(pattern string) Address {
	return Address{
		StartDate: FormatDate(w.Start),
		EndDate:   FormatDate(w.End),
		Pattern:   pattern,
	}
}

// String renders the window for logs.
func (w Window) String() string {
	return fmt.Sprintf("%s..%s", FormatDate(w.Start), FormatDate(w.End))
}

// DisplayRange is the operator-facing description of the window.
func DisplayRange(w Window) string {
	return fmt.Sprintf("Searching Files from %s to %s", FormatDate(w.Start), DisplayDate(w.End))
}

// DefaultWindow returns the trailing window of days ending today.
func DefaultWindow(now time.Time, days int) Window {
	if days <= 0 {
		days = DefaultDays
	}
	end := EndOfDay(now)
	return Window{
		Start: StartOfDay(end.AddDate(0, 0, -days)),
		End:   end,
	}
}

// Resolver derives windows from navigation addresses.
type Resolver struct {
	// Days is the span of the default trailing window.
	Days int
	// OnInverted, when set, is called with the supplied dates of an address
	// whose end precedes its start before the default window is used.
	OnInverted func(start, end time.Time)
}

// NewResolver returns a Resolver with the given default span.
func NewResolver(days int) Resolver {
	if days <= 0 {
		days = DefaultDays
	}
	return Resolver{Days: days}
}

// Resolve returns the window selected by addr, falling back to the default
// trailing window when either date is absent or invalid or the range is inverted.
// Resolve has no side effects beyond OnInverted.
func (r Resolver) Resolve(addr Address, now time.Time) Window {
	start, okStart := ValidateDate(addr.StartDate, now)
	end, okEnd := ValidateDate(addr.EndDate, now)
	if !okStart || !okEnd {
		return DefaultWindow(now, r.Days)
	}
	if end.Before(start) {
		if r.OnInverted != nil {
			r.OnInverted(start, end)
		}
		return DefaultWindow(now, r.Days)
	}
	return Window{
		Start: StartOfDay(start),
		End:   EndOfDay(end),
	}
}

// Resolve resolves addr with the default seven day fallback.
func Resolve(addr Address, now time.Time) Window {
	return NewResolver(DefaultDays).Resolve(addr, now)
}
