package server

import (
	"net/http"
	"time"

	"github.com/cristianoliveira/railsql/internal/dispatch"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	if len(s.origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", dispatch.RequestIDHeader},
			ExposedHeaders: []string{dispatch.RequestIDHeader},
			MaxAge:         300,
		}))
	}

	r.Get("/", s.pageHandler)
	r.Post("/", s.pageHandler)
	r.Post(dispatch.SearchPath, s.searchHandler)
	r.Get("/api/v1/queries", s.queriesHandler)
	r.Get("/healthz", s.healthzHandler)

	if s.basePath == "/" {
		return r
	}
	root := chi.NewRouter()
	root.Mount(s.basePath, r)
	return root
}

// requestLogger echoes the request id and logs one debug line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := middleware.GetReqID(r.Context())
		w.Header().Set(dispatch.RequestIDHeader, id)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(start).String())
	})
}
