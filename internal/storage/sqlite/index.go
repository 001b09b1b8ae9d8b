// Package sqlite indexes parsed ACH files in SQLite so they can be searched
// with plain SQL.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cristianoliveira/railsql/internal/ach"
	"github.com/cristianoliveira/railsql/internal/domain"
	"github.com/cristianoliveira/railsql/internal/logging"
	_ "modernc.org/sqlite"
)

// Tables are the searchable tables, in insertion order.
var Tables = []string{"ach_files", "ach_batches", "ach_entries", "ach_addendas"}

// Options configures an Index.
type Options struct {
	// Mask hides sensitive values before they are stored.
	Mask   ach.MaskOptions
	Logger logging.Logger
}

// Index implements domain.Index on a SQLite database.
type Index struct {
	db     *sql.DB
	mask   ach.MaskOptions
	logger logging.Logger
}

var _ domain.Index = (*Index)(nil)

// NewIndex opens (creating if needed) the index database at dbPath and
// brings its schema up to date.
func NewIndex(dbPath string, opts Options) (*Index, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, ErrEmptyPath
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite index: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("sqlite index: open db: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.GetGlobal()
	}
	idx := &Index{db: db, mask: opts.Mask, logger: logger.With("component", "index")}
	if err := idx.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return idx, nil
}

// dsn sets the pragmas on every pooled connection, not just the first.
func dsn(dbPath string) string {
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "journal_mode(WAL)")
	return "file:" + dbPath + "?" + q.Encode()
}

func (x *Index) init() error {
	if err := x.db.Ping(); err != nil {
		return fmt.Errorf("sqlite index: connect: %w", err)
	}
	if err := migrate(context.Background(), x.db); err != nil {
		return fmt.Errorf("sqlite index: %w", err)
	}
	return nil
}

// Close closes the underlying SQLite connection.
func (x *Index) Close() error {
	if x == nil || x.db == nil {
		return nil
	}
	return x.db.Close()
}

// Counts returns the number of rows in every searchable table.
func (x *Index) Counts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(Tables))
	for _, table := range Tables {
		var n int64
		if err := x.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM main."+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("sqlite index: count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}
