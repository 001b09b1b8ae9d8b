// Package search decides which ACH files take part in a search by matching
// their names against the user's pattern.
//
// Three strategies share the Provider interface: plain substring (the
// default), doublestar globs when the pattern carries glob metacharacters,
// and regular expressions when the pattern starts with "re:".
package search

import (
	"strings"
	"time"
)

// RegexPrefix marks a pattern as a regular expression.
const RegexPrefix = "re:"

// Candidate is a file considered for a search.
type Candidate struct {
	// Name is the base file name.
	Name string
	// Path is the path relative to the configured ACH directory.
	Path    string
	ModTime time.Time
	Size    int64
}

// Provider defines the interface for pattern matching strategies.
type Provider interface {
	// Match returns true if the candidate matches pattern.
	Match(c Candidate, pattern string) bool

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Options holds configuration options for creating search providers.
type Options struct {
	CaseInsensitive bool     // If true, matching ignores case
	Fields          []string // Candidate fields to test: "name", "path"
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{
		CaseInsensitive: false,
		Fields:          []string{"name", "path"},
	}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive matching.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

// WithFields sets the candidate fields to match against.
func WithFields(fields []string) Option {
	return func(o *Options) {
		o.Fields = fields
	}
}

// applyOptions applies the given options to the options struct.
func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// fieldValues returns the candidate values named by fields, skipping empties.
func fieldValues(c Candidate, fields []string) []string {
	values := make([]string, 0, len(fields))
	for _, field := range fields {
		var v string
		switch field {
		case "name":
			v = c.Name
		case "path":
			v = c.Path
		}
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}

// isGlob reports whether pattern uses glob metacharacters.
func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// ForPattern picks the provider for pattern and returns it with the
// pattern text it should be matched with (the "re:" prefix removed).
func ForPattern(pattern string, opts ...Option) (Provider, string) {
	switch {
	case strings.HasPrefix(pattern, RegexPrefix):
		return NewRegexProvider(opts...), strings.TrimPrefix(pattern, RegexPrefix)
	case isGlob(pattern):
		return NewGlobProvider(opts...), pattern
	default:
		return NewSubstringProvider(opts...), pattern
	}
}

// Filter returns the candidates matching pattern. An empty pattern keeps everything.
func Filter(candidates []Candidate, pattern string, opts ...Option) []Candidate {
	if pattern == "" {
		return candidates
	}
	provider, query := ForPattern(pattern, opts...)
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if provider.Match(c, query) {
			out = append(out, c)
		}
	}
	return out
}
