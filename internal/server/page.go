package server

import (
	"bytes"
	"context"
	"html/template"
	"net/http"
	"strings"

	"github.com/cristianoliveira/railsql/internal/catalog"
	"github.com/cristianoliveira/railsql/internal/console"
	"github.com/cristianoliveira/railsql/internal/domain"
	rserrors "github.com/cristianoliveira/railsql/internal/errors"
	"github.com/cristianoliveira/railsql/internal/render"
	"github.com/cristianoliveira/railsql/internal/server/bind"
	"github.com/cristianoliveira/railsql/internal/window"
	"github.com/dustin/go-humanize"
)

const pageTemplate = "index.html"

type pageData struct {
	RangeText  string
	Action     string
	Older      string
	Newer      string
	Pattern    string
	Query      string
	Preset     string
	Error      string
	Searched   bool
	RowCount   string
	Table      template.HTML
	Categories []catalog.Category
}

// pageHandler renders the search page. GET shows the window selected by
// the address; POST also runs the submitted query over it.
func (s *Server) pageHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	table := &render.HTMLTable{EscapeCells: s.escape}
	errs := &render.ErrorText{}
	ctrl := console.NewController(
		console.NewSynchronizer(s.resolver, s.now),
		render.NewRenderer(s.logger),
		render.Display{Table: table, Errors: errs},
		s.logger,
	)
	ctrl.Start(window.AddressFromValues(r.URL.Query()))

	data := pageData{Categories: s.catalog.Categories}
	if r.Method == http.MethodPost {
		data.Query = strings.TrimSpace(r.PostForm.Get("query"))
		data.Preset = r.PostForm.Get("preset")
		if data.Query == "" && data.Preset != "" {
			if q, ok := s.catalog.Find(data.Preset); ok {
				data.Query = q.Query
			}
		}
		pattern := r.PostForm.Get(window.ParamPattern)
		if err := bind.Struct(searchParams{Pattern: pattern}); err != nil {
			errs.ShowError(rserrors.UserMessage(err))
		} else {
			for _, req := range ctrl.Handle(console.Submit(data.Query, pattern)) {
				ctrl.Handle(console.SearchCompleted(s.runSearch(r.Context(), req)))
			}
		}
		data.Searched = true
		data.Error = errs.Message
		data.RowCount = humanize.Comma(int64(table.Len()))
		if !table.Empty() {
			data.Table = table.HTML()
		}
	}

	ui := ctrl.UI()
	data.RangeText = ui.RangeText
	data.Pattern = ui.Pattern
	data.Action = s.href(ctrl.State().Address)
	data.Older = s.href(window.ParseAddress(ui.Older))
	data.Newer = s.href(window.ParseAddress(ui.Newer))

	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, pageTemplate, data); err != nil {
		s.logger.Error("rendering page", "error", err.Error())
		http.Error(w, "rendering page failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// runSearch executes req in process and converts the outcome for the renderer.
func (s *Server) runSearch(ctx context.Context, req domain.SearchRequest) domain.SearchResult {
	if err := req.Validate(); err != nil {
		return domain.Failure(rserrors.UserMessage(err))
	}
	results, err := s.search(ctx, req.QueryText, req.Window, req.Pattern)
	if err != nil {
		return domain.Failure(rserrors.UserMessage(err))
	}
	return results.SearchResult()
}

// href is the page URL for addr under the base path.
func (s *Server) href(addr window.Address) string {
	path := s.basePath
	if path != "/" {
		path += "/"
	}
	if q := addr.Query(); q != "" {
		return path + "?" + q
	}
	return path
}
