package state

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/railsql/internal/catalog"
	"github.com/cristianoliveira/railsql/internal/console"
	"github.com/cristianoliveira/railsql/internal/domain"
	"github.com/cristianoliveira/railsql/internal/errors"
	"github.com/cristianoliveira/railsql/internal/logging"
	"github.com/cristianoliveira/railsql/internal/render"
	"github.com/cristianoliveira/railsql/internal/window"
)

const (
	defaultViewportWidth  = 80
	defaultViewportHeight = 24
	queryEditorHeight     = 5
	// header, links, pattern, blank line and three footer lines
	chromeLines = 8
)

type focus int

const (
	focusQuery focus = iota
	focusPattern
	focusResults
)

// Dispatcher runs searches for the console.
type Dispatcher interface {
	Dispatch(ctx context.Context, req domain.SearchRequest) domain.SearchResult
}

// Options configures a Model.
type Options struct {
	Dispatcher Dispatcher
	Catalog    *catalog.Catalog
	Resolver   window.Resolver
	// Start is the address the session opens at.
	Start  window.Address
	Now    func() time.Time
	Logger logging.Logger
}

// Model is the console's bubbletea model.
type Model struct {
	controller   *console.Controller
	dispatcher   Dispatcher
	catalog      *catalog.Catalog
	start        window.Address
	now          func() time.Time
	errorHandler *errors.TUIHandler

	results *resultsTable
	errs    *errorRegion

	query   textarea.Model
	pattern textinput.Model
	table   table.Model
	picker  list.Model

	focus         focus
	pickerOpen    bool
	width         int
	height        int
	errorMessage  string
	lastCompleted time.Time
}

// NewModel creates the console model.
func NewModel(opts Options) *Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetGlobal()
	}

	m := &Model{
		dispatcher: opts.Dispatcher,
		catalog:    opts.Catalog,
		start:      opts.Start,
		now:        opts.Now,
		results:    &resultsTable{},
		width:      defaultViewportWidth,
		height:     defaultViewportHeight,
	}
	m.errorHandler = errors.NewTUIHandler(func(msg errors.Message) {
		if msg.Type == errors.MessageTypeError {
			m.errorMessage = msg.Text
		}
	})
	m.errs = &errorRegion{handler: m.errorHandler}

	m.query = textarea.New()
	m.query.Placeholder = "SELECT * FROM ach_files ORDER BY created_at DESC"
	m.query.ShowLineNumbers = false
	m.query.SetHeight(queryEditorHeight)
	m.query.Focus()

	m.pattern = textinput.New()
	m.pattern.Prompt = "pattern: "
	m.pattern.Placeholder = "substring, glob or re:regex"
	m.pattern.SetValue(opts.Start.Pattern)

	m.table = table.New(table.WithFocused(false))
	m.picker = newPicker(opts.Catalog, m.width, m.height)

	sync := console.NewSynchronizer(opts.Resolver, opts.Now)
	m.controller = console.NewController(sync, render.NewRenderer(opts.Logger),
		render.Display{Table: m.results, Errors: m.errs}, opts.Logger)
	m.controller.Start(opts.Start)
	m.resize()

	return m
}

// Init fires the history event browsers deliver once on load.
func (m *Model) Init() tea.Cmd {
	start := m.start
	return tea.Batch(textarea.Blink, func() tea.Msg {
		return PopStateMsg{Address: start, Initial: true}
	})
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case PopStateMsg:
		// A start event arriving after the user already navigated is stale.
		if msg.Initial && !m.controller.State().SkipsNextPopState() {
			return m, nil
		}
		m.controller.Handle(console.PopState(msg.Address))
		m.syncPattern()
		return m, nil
	case SearchCompletedMsg:
		m.controller.Handle(console.SearchCompleted(msg.Result))
		m.lastCompleted = m.now()
		if !msg.Result.Failed() {
			m.errorMessage = ""
		}
		m.results.apply(&m.table)
		return m, nil
	}

	if m.pickerOpen {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m.updateFocused(msg)
}

// submit dispatches the editor's query over the current window.
func (m *Model) submit() tea.Cmd {
	if err := domain.ValidatePattern(m.pattern.Value()); err != nil {
		m.errs.ShowError(err.Error())
		m.errorMessage = m.errs.message
		return nil
	}
	reqs := m.controller.Handle(console.Submit(m.query.Value(), m.pattern.Value()))
	m.errorMessage = m.errs.message
	cmds := make([]tea.Cmd, 0, len(reqs))
	for _, req := range reqs {
		cmds = append(cmds, m.dispatchCmd(req))
	}
	return tea.Batch(cmds...)
}

func (m *Model) dispatchCmd(req domain.SearchRequest) tea.Cmd {
	d := m.dispatcher
	return func() tea.Msg {
		if d == nil {
			return SearchCompletedMsg{Result: domain.Failure("no backend configured")}
		}
		return SearchCompletedMsg{Result: d.Dispatch(context.Background(), req)}
	}
}

// syncPattern shows the active address's pattern in the input.
func (m *Model) syncPattern() {
	if p := m.controller.UI().Pattern; p != m.pattern.Value() {
		m.pattern.SetValue(p)
	}
}

func (m *Model) resize() {
	m.query.SetWidth(max(m.width-2, 10))
	m.pattern.Width = max(m.width-len(m.pattern.Prompt)-2, 10)
	m.table.SetWidth(m.width)
	m.table.SetHeight(max(m.height-queryEditorHeight-chromeLines, 3))
	m.picker.SetSize(m.width, max(m.height-2, 5))
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	m.query.Blur()
	m.pattern.Blur()
	m.table.Blur()
	switch f {
	case focusQuery:
		m.query.Focus()
	case focusPattern:
		m.pattern.Focus()
	case focusResults:
		m.table.Focus()
	}
}

func (m *Model) editing() bool {
	return m.focus == focusQuery || m.focus == focusPattern
}

func (m *Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusQuery:
		m.query, cmd = m.query.Update(msg)
	case focusPattern:
		m.pattern, cmd = m.pattern.Update(msg)
	case focusResults:
		m.table, cmd = m.table.Update(msg)
	}
	return m, cmd
}

// View renders the TUI.
func (m *Model) View() string {
	if m.pickerOpen {
		return m.picker.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		m.query.View(),
		m.pattern.View(),
		m.table.View(),
		m.viewFooter(),
	)
}

// Controller exposes the navigation controller.
func (m *Model) Controller() *console.Controller { return m.controller }
