package state

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/railsql/internal/console"
)

type keyMap struct {
	Quit     key.Binding
	QuitIdle key.Binding
	Submit   key.Binding
	Picker   key.Binding
	Focus    key.Binding
	Leave    key.Binding
	Edit     key.Binding
	Older    key.Binding
	Newer    key.Binding
	Back     key.Binding
	Forward  key.Binding
	BackIdle key.Binding
	FwdIdle  key.Binding
	Select   key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	QuitIdle: key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	Submit:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "search")),
	Picker:   key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "queries")),
	Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
	Leave:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave editor")),
	Edit:     key.NewBinding(key.WithKeys("e", "i"), key.WithHelp("e", "edit query")),
	Older:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "older")),
	Newer:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "newer")),
	Back:     key.NewBinding(key.WithKeys("alt+left"), key.WithHelp("alt+←", "back")),
	Forward:  key.NewBinding(key.WithKeys("alt+right"), key.WithHelp("alt+→", "forward")),
	BackIdle: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back")),
	FwdIdle:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "forward")),
	Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "use query")),
}

// handleKeyMsg processes keyboard input for the TUI.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}
	if m.pickerOpen {
		return m.handlePickerKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Submit):
		return m, m.submit()
	case key.Matches(msg, keys.Picker):
		m.pickerOpen = true
		return m, nil
	case key.Matches(msg, keys.Focus):
		m.setFocus((m.focus + 1) % 3)
		return m, nil
	case key.Matches(msg, keys.Back):
		m.back()
		return m, nil
	case key.Matches(msg, keys.Forward):
		m.forward()
		return m, nil
	case key.Matches(msg, keys.Leave) && m.editing():
		m.setFocus(focusResults)
		return m, nil
	}

	if !m.editing() {
		switch {
		case key.Matches(msg, keys.QuitIdle):
			return m, tea.Quit
		case key.Matches(msg, keys.Older):
			m.controller.Handle(console.ClickOlder())
			m.syncPattern()
			return m, nil
		case key.Matches(msg, keys.Newer):
			m.controller.Handle(console.ClickNewer())
			m.syncPattern()
			return m, nil
		case key.Matches(msg, keys.BackIdle):
			m.back()
			return m, nil
		case key.Matches(msg, keys.FwdIdle):
			m.forward()
			return m, nil
		case key.Matches(msg, keys.Edit):
			m.setFocus(focusQuery)
			return m, nil
		}
	}

	return m.updateFocused(msg)
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.picker.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, keys.Leave):
			m.pickerOpen = false
			return m, nil
		case key.Matches(msg, keys.Select):
			if item, ok := m.picker.SelectedItem().(queryItem); ok {
				m.query.SetValue(item.Query.Query)
			}
			m.pickerOpen = false
			m.setFocus(focusQuery)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m *Model) back() {
	if m.controller.Back() {
		m.syncPattern()
	}
}

func (m *Model) forward() {
	if m.controller.Forward() {
		m.syncPattern()
	}
}
