package search

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// RegexProvider matches if any configured field matches the expression.
type RegexProvider struct {
	opts    Options
	cache   map[string]*regexp.Regexp
	cacheMu sync.RWMutex
}

// NewRegexProvider creates a new regex search provider.
func NewRegexProvider(opts ...Option) Provider {
	return &RegexProvider{
		opts:  applyOptions(opts),
		cache: make(map[string]*regexp.Regexp),
	}
}

// Match returns true if any configured field matches the regex pattern.
// An invalid expression matches nothing.
func (p *RegexProvider) Match(c Candidate, query string) bool {
	if query == "" {
		return true
	}
	re, err := p.getRegex(query)
	if err != nil {
		return false
	}
	for _, value := range fieldValues(c, p.opts.Fields) {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}

// getRegex returns a compiled regex for the given pattern, using cache.
func (p *RegexProvider) getRegex(pattern string) (*regexp.Regexp, error) {
	p.cacheMu.RLock()
	re, ok := p.cache[pattern]
	p.cacheMu.RUnlock()
	if ok {
		return re, nil
	}

	expr := pattern
	if p.opts.CaseInsensitive {
		expr = "(?i)" + pattern
	}
	compiled, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}

	p.cacheMu.Lock()
	p.cache[pattern] = compiled
	p.cacheMu.Unlock()
	return compiled, nil
}

// Name returns the provider name.
func (p *RegexProvider) Name() string {
	return "regex"
}

// ValidatePattern reports whether pattern can be used for matching.
// Substrings always can; regular expressions and globs must parse.
func ValidatePattern(pattern string) error {
	switch {
	case strings.HasPrefix(pattern, RegexPrefix):
		_, err := regexp.Compile(strings.TrimPrefix(pattern, RegexPrefix))
		return err
	case isGlob(pattern) && !doublestar.ValidatePattern(pattern):
		return fmt.Errorf("glob %q: %w", pattern, doublestar.ErrBadPattern)
	}
	return nil
}
