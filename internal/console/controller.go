package console

import (
	"github.com/cristianoliveira/railsql/internal/domain"
	"github.com/cristianoliveira/railsql/internal/logging"
	"github.com/cristianoliveira/railsql/internal/render"
	"github.com/cristianoliveira/railsql/internal/window"
)

// UIState is what the host shows outside the result regions.
type UIState struct {
	RangeText string
	Older     string
	Newer     string
	Pattern   string
	// InFlight counts dispatched searches without a result yet.
	InFlight int
	// Searches counts every dispatched search.
	Searches int
}

// Controller owns a session's State and UIState and runs effects against
// a history and a display.
type Controller struct {
	sync     *Synchronizer
	state    State
	ui       UIState
	history  *History
	renderer *render.Renderer
	display  render.Display
	logger   logging.Logger
}

// NewController creates a Controller. Call Start before anything else.
func NewController(sync *Synchronizer, renderer *render.Renderer, display render.Display, logger logging.Logger) *Controller {
	if logger == nil {
		logger = logging.GetGlobal()
	}
	return &Controller{
		sync:     sync,
		renderer: renderer,
		display:  display,
		logger:   logger.With("component", "console"),
	}
}

// Start loads addr as the first history entry.
func (c *Controller) Start(addr window.Address) {
	c.history = NewHistory(addr)
	c.Handle(Load(addr))
}

// Handle applies ev and runs its effects. Dispatch effects are returned
// for the host to run; their results come back as SearchCompleted events.
func (c *Controller) Handle(ev Event) []domain.SearchRequest {
	next, effects := c.sync.Handle(c.state, ev)
	c.logger.Debug("console event", "event", ev.Kind.String(), "effects", len(effects), "window", next.Window.String())
	c.state = next

	var dispatches []domain.SearchRequest
	for _, eff := range effects {
		switch eff.Kind {
		case EffectUpdateDisplay:
			c.ui.RangeText = window.DisplayRange(c.state.Window)
			c.ui.Older = c.state.Links.Older
			c.ui.Newer = c.state.Links.Newer
			c.ui.Pattern = c.state.Address.Pattern
		case EffectPushHistory:
			if c.history == nil {
				c.history = NewHistory(eff.Address)
			} else {
				c.history.Push(eff.Address)
			}
		case EffectClearError:
			c.renderer.ClearError(c.display)
		case EffectDispatch:
			c.ui.InFlight++
			c.ui.Searches++
			dispatches = append(dispatches, eff.Request)
		case EffectRender:
			if c.ui.InFlight > 0 {
				c.ui.InFlight--
			}
			c.renderer.Render(c.display, eff.Result)
		}
	}
	return dispatches
}

// Back moves one entry back in history, if possible.
func (c *Controller) Back() bool {
	if c.history == nil {
		return false
	}
	addr, ok := c.history.Back()
	if ok {
		c.state.skipPopState = false
		c.Handle(PopState(addr))
	}
	return ok
}

// Forward moves one entry forward in history, if possible.
func (c *Controller) Forward() bool {
	if c.history == nil {
		return false
	}
	addr, ok := c.history.Forward()
	if ok {
		c.state.skipPopState = false
		c.Handle(PopState(addr))
	}
	return ok
}

// State returns the navigation state.
func (c *Controller) State() State { return c.state }

// UI returns the display state.
func (c *Controller) UI() UIState { return c.ui }

// History returns the session history.
func (c *Controller) History() *History { return c.history }
