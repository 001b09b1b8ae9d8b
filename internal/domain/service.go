package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/cristianoliveira/railsql/internal/errors"
)

// SearchService ingests the files of a window and queries them.
type SearchService struct {
	files FileRepository
	index Index
}

// NewSearchService creates a search service.
func NewSearchService(files FileRepository, index Index) *SearchService {
	return &SearchService{files: files, index: index}
}

// Ingest lists the files matching params and stores them in the index.
func (s *SearchService) Ingest(ctx context.Context, params FilterParams) (IngestStats, error) {
	files, err := s.files.ListFiles(ctx, params)
	if err != nil {
		return IngestStats{}, fmt.Errorf("listing files: %w", err)
	}
	stats, err := s.index.Ingest(ctx, files)
	if err != nil {
		return stats, fmt.Errorf("ingesting files: %w", err)
	}
	return stats, nil
}

// Search ingests the window's files and runs query against them only.
func (s *SearchService) Search(ctx context.Context, query string, params FilterParams) (Results, error) {
	if strings.TrimSpace(query) == "" {
		return Results{}, errors.ErrEmptyQuery
	}
	stats, err := s.Ingest(ctx, params)
	if err != nil {
		return Results{}, err
	}
	scope := stats.FileIDs
	if scope == nil {
		scope = []string{}
	}
	columns, rows, err := s.index.Query(ctx, query, scope)
	if err != nil {
		return Results{}, err
	}
	return NewResults(columns, rows), nil
}

// Close releases the index.
func (s *SearchService) Close() error {
	return s.index.Close()
}
