package render

import (
	"html/template"
	"strings"
)

var htmlTableTmpl = template.Must(template.New("results").Parse(
	`<table class="results">` +
		`<thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead>` +
		`<tbody>{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}</tbody>` +
		`</table>`))

// HTMLTable is a Table rendered into an HTML page. Header names are always
// escaped. Cells are inserted as markup unless EscapeCells is set, so
// queries may build links or formatting with SQL string functions.
type HTMLTable struct {
	EscapeCells bool

	header []string
	rows   [][]string
}

func (t *HTMLTable) ClearRows() { t.rows = nil }

func (t *HTMLTable) SetHeader(columns []string) { t.header = columns }

func (t *HTMLTable) AppendRow(cells []string) { t.rows = append(t.rows, cells) }

// Len returns the number of rows.
func (t *HTMLTable) Len() int { return len(t.rows) }

// Empty reports whether neither header nor rows were set.
func (t *HTMLTable) Empty() bool { return len(t.header) == 0 && len(t.rows) == 0 }

// HTML renders the table element.
func (t *HTMLTable) HTML() template.HTML {
	rows := make([][]any, len(t.rows))
	for i, row := range t.rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			if t.EscapeCells {
				cells[j] = cell
			} else {
				cells[j] = template.HTML(cell)
			}
		}
		rows[i] = cells
	}

	var b strings.Builder
	err := htmlTableTmpl.Execute(&b, struct {
		Header []string
		Rows   [][]any
	}{t.header, rows})
	if err != nil {
		return template.HTML("<p class=\"error\">" + template.HTMLEscapeString(err.Error()) + "</p>")
	}
	return template.HTML(b.String())
}
