package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cristianoliveira/railsql/internal/dispatch"
	"github.com/cristianoliveira/railsql/internal/domain"
	rserrors "github.com/cristianoliveira/railsql/internal/errors"
	"github.com/cristianoliveira/railsql/internal/server/bind"
	"github.com/cristianoliveira/railsql/internal/window"
	"github.com/go-chi/chi/v5/middleware"
)

type searchBody struct {
	Query string `json:"query" validate:"required,base64"`
}

type searchParams struct {
	Pattern string `query:"pattern" validate:"max=256,pattern"`
}

// searchHandler answers POST /search. Dates that do not validate fall back
// to the default window; only the body and pattern are rejected.
func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	addr := window.AddressFromValues(r.URL.Query())
	if err := bind.Struct(searchParams{Pattern: addr.Pattern}); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	body, err := bind.ParseJSON[searchBody](r, bind.DefaultMaxBytes)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	query, err := dispatch.DecodeQuery(body.Query)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	win := s.resolver.Resolve(addr, s.now())
	s.logger.Info("search",
		"request_id", middleware.GetReqID(r.Context()),
		"window", win.String(),
		"pattern", addr.Pattern)

	results, err := s.search(r.Context(), query, win, addr.Pattern)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// search runs query over the files of win matching pattern.
func (s *Server) search(ctx context.Context, query string, win window.Window, pattern string) (domain.Results, error) {
	return s.searcher.Search(ctx, query, domain.ParamsFor(win, pattern))
}

// writeError replies with the {"error": ...} body the dispatcher understands.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	msg := rserrors.UserMessage(err)
	var verr *bind.ValidationError
	if !errors.As(err, &verr) {
		s.logger.Warn("search failed",
			"request_id", middleware.GetReqID(r.Context()),
			"status", status,
			"error", err.Error())
	}
	writeJSON(w, status, domain.ErrorResults(msg))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
