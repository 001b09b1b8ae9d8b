// Package catalog loads the predefined queries offered to users.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	assets "github.com/cristianoliveira/railsql"
	"gopkg.in/yaml.v3"
)

// ErrInvalidCatalog is returned when a catalog document cannot be used.
var ErrInvalidCatalog = errors.New("invalid query catalog")

// Query is one predefined query.
type Query struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description,omitempty"`
	Query       string `yaml:"query" json:"query"`
	Category    string `yaml:"-" json:"category"`
}

// Category groups related queries.
type Category struct {
	Name    string  `yaml:"category" json:"category"`
	Queries []Query `yaml:"queries" json:"queries"`
}

// Catalog is an ordered list of categories.
type Catalog struct {
	Categories []Category
}

// Parse decodes a YAML catalog. Query text is trimmed, names must be
// present and unique across categories.
func Parse(data []byte) (*Catalog, error) {
	var categories []Category
	if err := yaml.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	seen := make(map[string]bool)
	for ci := range categories {
		cat := &categories[ci]
		if strings.TrimSpace(cat.Name) == "" {
			return nil, fmt.Errorf("%w: category %d has no name", ErrInvalidCatalog, ci+1)
		}
		for qi := range cat.Queries {
			q := &cat.Queries[qi]
			q.Name = strings.TrimSpace(q.Name)
			q.Query = strings.TrimSpace(q.Query)
			q.Category = cat.Name
			if q.Name == "" || q.Query == "" {
				return nil, fmt.Errorf("%w: query %d in %q needs a name and query text", ErrInvalidCatalog, qi+1, cat.Name)
			}
			key := strings.ToLower(q.Name)
			if seen[key] {
				return nil, fmt.Errorf("%w: duplicate query name %q", ErrInvalidCatalog, q.Name)
			}
			seen[key] = true
		}
	}
	return &Catalog{Categories: categories}, nil
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(assets.Catalog)
}

// All returns every query in catalog order.
func (c *Catalog) All() []Query {
	var out []Query
	for _, cat := range c.Categories {
		out = append(out, cat.Queries...)
	}
	return out
}

// Find looks a query up by name, ignoring case.
func (c *Catalog) Find(name string) (Query, bool) {
	for _, q := range c.All() {
		if strings.EqualFold(q.Name, strings.TrimSpace(name)) {
			return q, true
		}
	}
	return Query{}, false
}

// Title implements list.Item for the console picker.
func (q Query) Title() string { return q.Name }

// FilterValue implements list.Item.
func (q Query) FilterValue() string { return q.Category + " " + q.Name }
