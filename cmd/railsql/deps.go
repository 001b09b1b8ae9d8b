/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/railsql/internal/catalog"
	"github.com/cristianoliveira/railsql/internal/colors"
	"github.com/cristianoliveira/railsql/internal/config"
	"github.com/cristianoliveira/railsql/internal/dispatch"
	"github.com/cristianoliveira/railsql/internal/domain"
	"github.com/cristianoliveira/railsql/internal/logging"
	"github.com/cristianoliveira/railsql/internal/server"
	"github.com/cristianoliveira/railsql/internal/storage"
	"github.com/cristianoliveira/railsql/internal/tui/state"
	"github.com/cristianoliveira/railsql/internal/version"
	"github.com/cristianoliveira/railsql/internal/window"
)

// app wires the configured store, dispatcher and hosts for the commands.
// The store is opened on first use so commands that do not need it never
// touch the index.
type app struct {
	once  sync.Once
	store *storage.Store
	err   error
	now   func() time.Time
}

var client = &app{now: time.Now}

func (a *app) open() (*storage.Store, error) {
	a.once.Do(func() {
		a.store, a.err = storage.Open(storage.SettingsFromConfig())
	})
	return a.store, a.err
}

// Close releases the store if it was opened.
func (a *app) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

// resolver builds the configured window resolver. Inverted ranges are
// reported through warn.
func (a *app) resolver(warn func(msg string)) window.Resolver {
	r := window.NewResolver(config.GetInt("default_window_days", window.DefaultDays))
	r.OnInverted = func(start, end time.Time) {
		warn(fmt.Sprintf("end date %s is before start date %s, using the default window",
			window.FormatDate(end), window.FormatDate(start)))
	}
	return r
}

func printWarning(msg string) { colors.Warning(msg) }

// logWarning keeps warnings off the terminal while the console owns it.
func logWarning(l logging.Logger) func(string) {
	return func(msg string) { l.Warn(msg) }
}

func (a *app) Resolve(addr window.Address) window.Window {
	return a.resolver(printWarning).Resolve(addr, a.now())
}

func (a *app) Ingest(ctx context.Context, params domain.FilterParams) (domain.IngestStats, error) {
	store, err := a.open()
	if err != nil {
		return domain.IngestStats{}, err
	}
	return store.Ingest(ctx, params)
}

func (a *app) Search(ctx context.Context, query string, params domain.FilterParams) (domain.Results, error) {
	store, err := a.open()
	if err != nil {
		return domain.Results{}, err
	}
	return store.Search(ctx, query, params)
}

func (a *app) Dispatch(ctx context.Context, req domain.SearchRequest) domain.SearchResult {
	return dispatch.NewFromConfig(dispatch.WithLogger(logging.GetGlobal())).Dispatch(ctx, req)
}

func (a *app) Catalog() (*catalog.Catalog, error) {
	return catalog.Default()
}

func (a *app) Serve(ctx context.Context, addr string) error {
	store, err := a.open()
	if err != nil {
		return err
	}
	c, err := catalog.Default()
	if err != nil {
		return err
	}

	opts := server.OptionsFromConfig()
	opts.Searcher = store
	opts.Counter = store.Index
	opts.Catalog = c
	opts.Logger = logging.GetGlobal()
	srv, err := server.New(opts)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = config.Get("listen_addr", ":8200")
	}
	colors.Info("Serving railsql on", addr)
	return srv.Run(ctx, addr)
}

func (a *app) RunConsole(start window.Address) error {
	colors.DisableStructuredLogging()
	defer colors.EnableStructuredLogging()

	c, err := catalog.Default()
	if err != nil {
		return err
	}
	model := state.NewModel(state.Options{
		Dispatcher: dispatch.NewFromConfig(dispatch.WithLogger(logging.GetGlobal())),
		Catalog:    c,
		Resolver:   a.resolver(logWarning(logging.GetGlobal())),
		Start:      start,
		Logger:     logging.GetGlobal(),
	})
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func (a *app) Version() string {
	return version.String()
}
