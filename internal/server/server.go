// Package server serves the search backend and the server-rendered
// search page.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strings"
	"time"

	assets "github.com/cristianoliveira/railsql"
	"github.com/cristianoliveira/railsql/internal/catalog"
	"github.com/cristianoliveira/railsql/internal/config"
	"github.com/cristianoliveira/railsql/internal/domain"
	"github.com/cristianoliveira/railsql/internal/logging"
	"github.com/cristianoliveira/railsql/internal/window"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Searcher ingests and queries transaction files.
type Searcher interface {
	Ingest(ctx context.Context, params domain.FilterParams) (domain.IngestStats, error)
	Search(ctx context.Context, query string, params domain.FilterParams) (domain.Results, error)
}

// Counter reports the number of rows per indexed table.
type Counter interface {
	Counts(ctx context.Context) (map[string]int64, error)
}

// Options configures a Server.
type Options struct {
	Searcher Searcher
	// Counter backs /healthz. Optional.
	Counter  Counter
	Catalog  *catalog.Catalog
	Resolver window.Resolver
	// BasePath is where the routes are mounted, "/" by default.
	BasePath string
	// EscapeCells renders result cells on the page as text instead of markup.
	EscapeCells bool
	// BackgroundIngest indexes the default window when Run starts.
	BackgroundIngest bool
	AllowedOrigins   []string
	Now              func() time.Time
	Logger           logging.Logger
}

// OptionsFromConfig reads the server settings from the loaded configuration.
func OptionsFromConfig() Options {
	return Options{
		Resolver:         window.NewResolver(config.GetInt("default_window_days", window.DefaultDays)),
		BasePath:         config.Get("base_path", "/"),
		EscapeCells:      config.GetBool("escape_cells", false),
		BackgroundIngest: config.GetBool("background_ingest", true),
		AllowedOrigins:   config.GetList("cors_allowed_origins"),
	}
}

// Server is the HTTP frontend of a Searcher.
type Server struct {
	searcher Searcher
	counter  Counter
	catalog  *catalog.Catalog
	resolver window.Resolver
	basePath string
	escape   bool
	ingest   bool
	origins  []string
	now      func() time.Time
	logger   logging.Logger
	pages    *template.Template
	handler  http.Handler
}

// New creates a Server.
func New(opts Options) (*Server, error) {
	if opts.Searcher == nil {
		return nil, errors.New("server: searcher is required")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetGlobal()
	}
	if opts.Catalog == nil {
		opts.Catalog = &catalog.Catalog{}
	}
	if opts.Resolver.Days <= 0 {
		opts.Resolver = window.NewResolver(window.DefaultDays)
	}

	pages, err := template.ParseFS(assets.Templates, "web/templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		searcher: opts.Searcher,
		counter:  opts.Counter,
		catalog:  opts.Catalog,
		resolver: opts.Resolver,
		basePath: normalizeBasePath(opts.BasePath),
		escape:   opts.EscapeCells,
		ingest:   opts.BackgroundIngest,
		origins:  opts.AllowedOrigins,
		now:      opts.Now,
		logger:   opts.Logger.With("component", "server"),
		pages:    pages,
	}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	if s.ingest {
		go s.ingestDefaultWindow(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String(), "base_path", s.basePath)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

// ingestDefaultWindow indexes the files of the default window so the first
// searches find them already stored.
func (s *Server) ingestDefaultWindow(ctx context.Context) {
	w := window.DefaultWindow(s.now(), s.resolver.Days)
	start := time.Now()
	stats, err := s.searcher.Ingest(ctx, domain.ParamsFor(w, ""))
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Error("background ingest failed", "window", w.String(), "error", err.Error())
		}
		return
	}
	s.logger.Info("background ingest done",
		"window", w.String(),
		"files", stats.Files,
		"entries", stats.Entries,
		"failed", stats.Failed,
		"elapsed", time.Since(start).String())
}

func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "/" {
		return "/"
	}
	return "/" + strings.Trim(p, "/")
}
