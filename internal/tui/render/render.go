// Package render draws the console's header, link bar and footer.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/railsql/internal/colors"
	"github.com/dustin/go-humanize"
)

// HeaderState defines the inputs needed to render the header.
type HeaderState struct {
	RangeText string
	Pattern   string
	Width     int
}

// LinksState defines the inputs needed to render the pagination bar.
type LinksState struct {
	Older      string
	Newer      string
	CanBack    bool
	CanForward bool
}

// FooterState defines the inputs needed to render the footer.
type FooterState struct {
	Error         string
	Rows          int
	Searches      int
	InFlight      int
	LastCompleted time.Time
	Now           time.Time
	Editing       bool
	PickerOpen    bool
}

// Header renders the title line with the active window.
func Header(state HeaderState) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))
	rangeStyle := lipgloss.NewStyle().Bold(true)

	parts := []string{titleStyle.Render("railsql"), rangeStyle.Render(state.RangeText)}
	if state.Pattern != "" {
		parts = append(parts, fmt.Sprintf("pattern: %s", state.Pattern))
	}
	line := strings.Join(parts, "  ")
	if state.Width > 0 {
		line = lipgloss.NewStyle().MaxWidth(state.Width).Render(line)
	}
	return line
}

// Links renders the older/newer addresses and history hints.
func Links(state LinksState) string {
	linkStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Cyan)))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	line := fmt.Sprintf("[ older %s   ] newer %s", linkStyle.Render(state.Older), linkStyle.Render(state.Newer))
	var nav []string
	if state.CanBack {
		nav = append(nav, "back")
	}
	if state.CanForward {
		nav = append(nav, "forward")
	}
	if len(nav) > 0 {
		line += dimStyle.Render("   history: " + strings.Join(nav, "/"))
	}
	return line
}

// Footer renders the error region, the status line and key help.
func Footer(state FooterState) string {
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Red)))

	var lines []string
	if state.Error != "" {
		lines = append(lines, errorStyle.Render("Error: "+state.Error))
	}
	lines = append(lines, Status(state))
	lines = append(lines, helpStyle.Render(strings.Join(helpItems(state), "  |  ")))
	return strings.Join(lines, "\n")
}

// Status summarises the latest results.
func Status(state FooterState) string {
	parts := []string{
		fmt.Sprintf("%s %s", humanize.Comma(int64(state.Rows)), plural(state.Rows, "row", "rows")),
		fmt.Sprintf("%s %s", humanize.Comma(int64(state.Searches)), plural(state.Searches, "search", "searches")),
	}
	if state.InFlight > 0 {
		parts = append(parts, fmt.Sprintf("%d running", state.InFlight))
	}
	if !state.LastCompleted.IsZero() {
		now := state.Now
		if now.IsZero() {
			now = time.Now()
		}
		parts = append(parts, "last result "+humanize.RelTime(state.LastCompleted, now, "ago", "from now"))
	}
	return strings.Join(parts, " · ")
}

func helpItems(state FooterState) []string {
	if state.PickerOpen {
		return []string{"enter: use query", "/: filter", "esc: close"}
	}
	help := []string{"ctrl+s: search", "ctrl+p: queries", "tab: focus"}
	if state.Editing {
		help = append(help, "alt+←/→: back/forward", "esc: leave editor")
	} else {
		help = append(help, "[/]: older/newer", "b/f: back/forward", "q: quit")
	}
	return help
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// ansiColorNumber extracts the color number from an ANSI escape such as
// "\033[0;34m", for use with lipgloss.Color.
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}
