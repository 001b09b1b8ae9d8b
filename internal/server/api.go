package server

import (
	"net/http"

	"github.com/cristianoliveira/railsql/internal/catalog"
)

func (s *Server) queriesHandler(w http.ResponseWriter, _ *http.Request) {
	categories := s.catalog.Categories
	if categories == nil {
		categories = []catalog.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

type health struct {
	Status string           `json:"status"`
	Counts map[string]int64 `json:"counts,omitempty"`
	Error  string           `json:"error,omitempty"`
}

func (s *Server) healthzHandler(w http.ResponseWriter, r *http.Request) {
	if s.counter == nil {
		writeJSON(w, http.StatusOK, health{Status: "ok"})
		return
	}
	counts, err := s.counter.Counts(r.Context())
	if err != nil {
		s.logger.Error("health check failed", "error", err.Error())
		writeJSON(w, http.StatusServiceUnavailable, health{Status: "unavailable", Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, health{Status: "ok", Counts: counts})
}
