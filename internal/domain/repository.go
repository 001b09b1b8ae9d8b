package domain

import (
	"context"
	"time"

	"github.com/cristianoliveira/railsql/internal/window"
)

// FilterParams selects files by modification time and name pattern.
type FilterParams struct {
	StartDate time.Time
	EndDate   time.Time
	Pattern   string
}

// ParamsFor converts a resolved window and pattern into filter parameters.
func ParamsFor(w window.Window, pattern string) FilterParams {
	return FilterParams{StartDate: w.Start, EndDate: w.End, Pattern: pattern}
}

// File is one transaction file read from storage.
type File struct {
	Name     string
	Path     string
	ModTime  time.Time
	Contents []byte
}

// FileRepository lists stored transaction files.
type FileRepository interface {
	// ListFiles returns files modified inside the window whose names match the pattern.
	ListFiles(ctx context.Context, params FilterParams) ([]File, error)
}

// IngestStats counts what an ingest run stored.
type IngestStats struct {
	Files    int
	Batches  int
	Entries  int
	Addendas int
	// Failed counts files that could not be parsed.
	Failed int
	// FileIDs are the ids of every file in the run, including ones already indexed.
	FileIDs []string
}

// Add merges other into s.
func (s *IngestStats) Add(other IngestStats) {
	s.Files += other.Files
	s.Batches += other.Batches
	s.Entries += other.Entries
	s.Addendas += other.Addendas
	s.Failed += other.Failed
	s.FileIDs = append(s.FileIDs, other.FileIDs...)
}

// Index stores parsed files and answers SQL queries over them.
type Index interface {
	// Ingest parses and stores files. Files already stored are left untouched.
	Ingest(ctx context.Context, files []File) (IngestStats, error)
	// Query runs query. When scope is non-nil only rows belonging to those
	// file ids are visible to it.
	Query(ctx context.Context, query string, scope []string) (columns []string, rows [][]any, err error)
	Close() error
}
