package search

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// GlobProvider matches fields against a doublestar pattern such as
// "returns/**/*.ach". Patterns without a "/" are tested against the
// base name only.
type GlobProvider struct {
	opts Options
}

// NewGlobProvider creates a new glob search provider.
func NewGlobProvider(opts ...Option) Provider {
	return &GlobProvider{
		opts: applyOptions(opts),
	}
}

// Match returns true if a configured field matches the glob. An invalid
// glob matches nothing.
func (p *GlobProvider) Match(c Candidate, query string) bool {
	if query == "" {
		return true
	}
	if !doublestar.ValidatePattern(query) {
		return false
	}
	if p.opts.CaseInsensitive {
		query = strings.ToLower(query)
	}
	fields := p.opts.Fields
	if !strings.Contains(query, "/") {
		fields = []string{"name"}
	}
	for _, value := range fieldValues(c, fields) {
		if p.opts.CaseInsensitive {
			value = strings.ToLower(value)
		}
		if ok, _ := doublestar.Match(query, value); ok {
			return true
		}
	}
	return false
}

// Name returns the provider name.
func (p *GlobProvider) Name() string {
	return "glob"
}
