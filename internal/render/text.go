package render

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
)

// Sanitize removes terminal escape sequences and control characters from a
// cell so it cannot move the cursor or restyle the terminal. Tabs and line
// breaks become spaces.
func Sanitize(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n':
			return ' '
		case '\r':
			return -1
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

func sanitizeAll(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = Sanitize(c)
	}
	return out
}

var (
	headerStyle = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Center)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// TextTable is a Table printed to a terminal.
type TextTable struct {
	header []string
	rows   [][]string
}

func (t *TextTable) ClearRows() { t.rows = nil }

func (t *TextTable) SetHeader(columns []string) { t.header = sanitizeAll(columns) }

func (t *TextTable) AppendRow(cells []string) { t.rows = append(t.rows, sanitizeAll(cells)) }

// Len returns the number of rows.
func (t *TextTable) Len() int { return len(t.rows) }

// String draws the table with box borders. An empty result draws nothing.
func (t *TextTable) String() string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(t.header...).
		Rows(t.rows...).
		String()
}
