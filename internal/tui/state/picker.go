package state

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/cristianoliveira/railsql/internal/catalog"
)

// queryItem shows a catalog query in the picker.
type queryItem struct {
	catalog.Query
}

func (q queryItem) Description() string {
	if q.Query.Description != "" {
		return q.Category + " · " + q.Query.Description
	}
	return q.Category
}

func newPicker(c *catalog.Catalog, width, height int) list.Model {
	var items []list.Item
	if c != nil {
		for _, q := range c.All() {
			items = append(items, queryItem{Query: q})
		}
	}
	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Predefined queries"
	l.SetShowStatusBar(false)
	l.DisableQuitKeybindings()
	return l
}
