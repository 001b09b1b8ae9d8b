// Package storage lists ACH files from the configured directories and
// wires them to the SQLite index.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cristianoliveira/railsql/internal/domain"
	"github.com/cristianoliveira/railsql/internal/search"
)

// DefaultExtensions are the file extensions treated as ACH files.
var DefaultExtensions = []string{".ach", ".txt"}

// FileSystem reads ACH files from local directories.
type FileSystem struct {
	dirs       []string
	extensions map[string]bool
	matchOpts  []search.Option
	matcher    search.Provider
}

var _ domain.FileRepository = (*FileSystem)(nil)

// Option configures a FileSystem.
type Option func(*FileSystem)

// WithExtensions replaces the accepted file extensions.
func WithExtensions(exts ...string) Option {
	return func(f *FileSystem) {
		f.extensions = make(map[string]bool, len(exts))
		for _, ext := range exts {
			ext = strings.ToLower(ext)
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			f.extensions[ext] = true
		}
	}
}

// WithPatternOptions passes matching options to the pattern providers.
func WithPatternOptions(opts ...search.Option) Option {
	return func(f *FileSystem) {
		f.matchOpts = append(f.matchOpts, opts...)
	}
}

// WithMatcher matches patterns with p instead of picking a provider from
// the pattern's shape.
func WithMatcher(p search.Provider) Option {
	return func(f *FileSystem) {
		f.matcher = p
	}
}

// NewFileSystem creates a repository over dirs.
func NewFileSystem(dirs []string, opts ...Option) *FileSystem {
	f := &FileSystem{dirs: dirs}
	WithExtensions(DefaultExtensions...)(f)
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type located struct {
	search.Candidate
	abs string
}

// ListFiles returns files modified inside the window whose names match the
// pattern, oldest first. Directories that do not exist are skipped.
func (f *FileSystem) ListFiles(ctx context.Context, params domain.FilterParams) ([]domain.File, error) {
	var found []located
	for _, dir := range f.dirs {
		entries, err := f.walk(ctx, dir, params)
		if err != nil {
			return nil, err
		}
		found = append(found, entries...)
	}

	byCandidate := make(map[search.Candidate]string, len(found))
	candidates := make([]search.Candidate, 0, len(found))
	for _, l := range found {
		byCandidate[l.Candidate] = l.abs
		candidates = append(candidates, l.Candidate)
	}
	matched := f.match(candidates, params.Pattern)
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].ModTime.Equal(matched[j].ModTime) {
			return byCandidate[matched[i]] < byCandidate[matched[j]]
		}
		return matched[i].ModTime.Before(matched[j].ModTime)
	})

	out := make([]domain.File, 0, len(matched))
	for _, c := range matched {
		abs := byCandidate[c]
		contents, err := os.ReadFile(abs)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", abs, err)
		}
		out = append(out, domain.File{Name: c.Name, Path: abs, ModTime: c.ModTime, Contents: contents})
	}
	return out, nil
}

func (f *FileSystem) match(candidates []search.Candidate, pattern string) []search.Candidate {
	if f.matcher == nil || pattern == "" {
		return search.Filter(candidates, pattern, f.matchOpts...)
	}
	out := make([]search.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if f.matcher.Match(c, pattern) {
			out = append(out, c)
		}
	}
	return out
}

func (f *FileSystem) walk(ctx context.Context, dir string, params domain.FilterParams) ([]located, error) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	var out []located
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !f.extensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if !inWindow(info.ModTime(), params) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = d.Name()
		}
		out = append(out, located{
			Candidate: search.Candidate{
				Name:    d.Name(),
				Path:    filepath.ToSlash(rel),
				ModTime: info.ModTime(),
				Size:    info.Size(),
			},
			abs: path,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	return out, nil
}

// inWindow reports whether t falls inside the params' dates. Zero bounds are open.
func inWindow(t time.Time, params domain.FilterParams) bool {
	if !params.StartDate.IsZero() && t.Before(params.StartDate) {
		return false
	}
	if !params.EndDate.IsZero() && t.After(params.EndDate) {
		return false
	}
	return true
}
