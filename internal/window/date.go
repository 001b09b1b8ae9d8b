// Package window resolves the date window a search is scoped to and builds
// the addresses of the adjacent windows used for pagination.
package window

import (
	"regexp"
	"time"
)

const (
	// DateLayout is the calendar date format used in addresses and requests.
	DateLayout = "2006-01-02"
	// Unknown is rendered in place of a date that cannot be formatted.
	Unknown = "Unknown"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// earliestDate is the lower bound accepted by ValidateDate.
var earliestDate = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// ValidateDate parses raw as a YYYY-MM-DD calendar date in now's location.
// It reports false when raw has another shape, names a day that does not exist,
// or falls outside [1970-01-01, now + 1 year].
func ValidateDate(raw string, now time.Time) (time.Time, bool) {
	if !datePattern.MatchString(raw) {
		return time.Time{}, false
	}
	loc := now.Location()
	parsed, err := time.ParseInLocation(DateLayout, raw, loc)
	if err != nil {
		return time.Time{}, false
	}
	// time.Parse already rejects 2025-02-30, the round trip keeps us honest
	// about anything it would normalize.
	if parsed.Format(DateLayout) != raw {
		return time.Time{}, false
	}

	lower := time.Date(earliestDate.Year(), earliestDate.Month(), earliestDate.Day(), 0, 0, 0, 0, loc)
	upper := now.AddDate(1, 0, 0)
	if parsed.Before(lower) || parsed.After(upper) {
		return time.Time{}, false
	}
	return parsed, true
}

// FormatDate formats t as YYYY-MM-DD. Zero or out-of-range times format as Unknown.
func FormatDate(t time.Time) string {
	if t.IsZero() || t.Year() < 1 || t.Year() > 9999 {
		return Unknown
	}
	return t.Format(DateLayout)
}

// DisplayDate formats the inclusive end of a window for operators.
// The stored end is the last instant of its day, so the displayed date is the
// following day: the window reads as [start, end) in the range text.
func DisplayDate(t time.Time) string {
	if t.IsZero() {
		return Unknown
	}
	return FormatDate(t.AddDate(0, 0, 1))
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// daysBetween counts calendar days from a to b, ignoring time of day and DST.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
