package console

import (
	"time"

	"github.com/cristianoliveira/railsql/internal/domain"
	"github.com/cristianoliveira/railsql/internal/window"
)

// Phase is where the synchronizer is in a navigation.
type Phase int

const (
	Settled Phase = iota
	Transitioning
)

func (p Phase) String() string {
	if p == Transitioning {
		return "transitioning"
	}
	return "settled"
}

// State is the navigation state of one console session.
type State struct {
	Phase   Phase
	Address window.Address
	Window  window.Window
	Links   window.Links

	// skipPopState is armed by Load and cleared by the first PopState,
	// which hosts fire once on start. Any user navigation clears it too.
	skipPopState bool
}

// SkipsNextPopState reports whether the next PopState will be ignored.
func (s State) SkipsNextPopState() bool { return s.skipPopState }

// Handler computes the next state and effects for one event.
type Handler func(State, Event) (State, []Effect)

// Synchronizer dispatches events to their handlers.
type Synchronizer struct {
	resolver window.Resolver
	now      func() time.Time
	handlers map[EventKind]Handler
}

// NewSynchronizer creates a Synchronizer. A nil now uses time.Now.
func NewSynchronizer(resolver window.Resolver, now func() time.Time) *Synchronizer {
	if now == nil {
		now = time.Now
	}
	s := &Synchronizer{resolver: resolver, now: now}
	s.handlers = map[EventKind]Handler{
		EventLoad:            s.onLoad,
		EventClickOlder:      s.onClickOlder,
		EventClickNewer:      s.onClickNewer,
		EventPopState:        s.onPopState,
		EventSubmit:          s.onSubmit,
		EventSearchCompleted: s.onSearchCompleted,
	}
	return s
}

// Handle applies ev to st. Unknown events leave the state untouched.
func (s *Synchronizer) Handle(st State, ev Event) (State, []Effect) {
	h, ok := s.handlers[ev.Kind]
	if !ok {
		return st, nil
	}
	return h(st, ev)
}

func (s *Synchronizer) resolve(st State, addr window.Address) State {
	st.Address = addr
	st.Window = s.resolver.Resolve(addr, s.now())
	st.Links = window.BuildLinks(st.Window, addr.Pattern)
	return st
}

func (s *Synchronizer) onLoad(st State, ev Event) (State, []Effect) {
	st = s.resolve(st, ev.Address)
	st.Phase = Settled
	st.skipPopState = true
	return st, []Effect{{Kind: EffectUpdateDisplay}}
}

func (s *Synchronizer) onClickOlder(st State, _ Event) (State, []Effect) {
	return s.navigate(st, st.Links.Older)
}

func (s *Synchronizer) onClickNewer(st State, _ Event) (State, []Effect) {
	return s.navigate(st, st.Links.Newer)
}

// navigate pushes link as a new history entry and moves to it.
func (s *Synchronizer) navigate(st State, link string) (State, []Effect) {
	target := window.ParseAddress(link)
	st.skipPopState = false
	st.Phase = Transitioning
	effects := []Effect{{Kind: EffectPushHistory, Address: target}}
	st = s.resolve(st, target)
	st.Phase = Settled
	return st, append(effects, Effect{Kind: EffectUpdateDisplay})
}

func (s *Synchronizer) onPopState(st State, ev Event) (State, []Effect) {
	if st.skipPopState {
		st.skipPopState = false
		return st, nil
	}
	st = s.resolve(st, ev.Address)
	st.Phase = Settled
	return st, []Effect{{Kind: EffectUpdateDisplay}}
}

func (s *Synchronizer) onSubmit(st State, ev Event) (State, []Effect) {
	st.skipPopState = false
	var effects []Effect
	if ev.Pattern != st.Address.Pattern {
		target := st.Window.Address(ev.Pattern)
		effects = append(effects, Effect{Kind: EffectPushHistory, Address: target})
		st = s.resolve(st, target)
		effects = append(effects, Effect{Kind: EffectUpdateDisplay})
	}
	req := domain.SearchRequest{Window: st.Window, QueryText: ev.Query, Pattern: st.Address.Pattern}
	return st, append(effects,
		Effect{Kind: EffectClearError},
		Effect{Kind: EffectDispatch, Request: req},
	)
}

func (s *Synchronizer) onSearchCompleted(st State, ev Event) (State, []Effect) {
	return st, []Effect{{Kind: EffectRender, Result: ev.Result}}
}
