package state

import (
	tuirender "github.com/cristianoliveira/railsql/internal/tui/render"
)

func (m *Model) viewHeader() string {
	ui := m.controller.UI()
	history := m.controller.History()
	return tuirender.Header(tuirender.HeaderState{
		RangeText: ui.RangeText,
		Pattern:   ui.Pattern,
		Width:     m.width,
	}) + "\n" + tuirender.Links(tuirender.LinksState{
		Older:      ui.Older,
		Newer:      ui.Newer,
		CanBack:    history.CanGoBack(),
		CanForward: history.CanGoForward(),
	})
}

func (m *Model) viewFooter() string {
	ui := m.controller.UI()
	return tuirender.Footer(tuirender.FooterState{
		Error:         m.errorMessage,
		Rows:          len(m.results.rows),
		Searches:      ui.Searches,
		InFlight:      ui.InFlight,
		LastCompleted: m.lastCompleted,
		Now:           m.now(),
		Editing:       m.editing(),
		PickerOpen:    m.pickerOpen,
	})
}
