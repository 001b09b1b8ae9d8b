package console

import (
	"testing"
	"time"

	"github.com/cristianoliveira/railsql/internal/domain"
	"github.com/cristianoliveira/railsql/internal/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

func newTestSynchronizer() *Synchronizer {
	return NewSynchronizer(window.NewResolver(7), func() time.Time { return now })
}

func kinds(effects []Effect) []EffectKind {
	out := make([]EffectKind, 0, len(effects))
	for _, e := range effects {
		out = append(out, e.Kind)
	}
	return out
}

var janAddr = window.Address{StartDate: "2025-01-01", EndDate: "2025-01-08"}

func TestLoadResolvesAndArmsPopStateSkip(t *testing.T) {
	s := newTestSynchronizer()

	st, effects := s.Handle(State{}, Load(janAddr))

	assert.Equal(t, []EffectKind{EffectUpdateDisplay}, kinds(effects))
	assert.Equal(t, Settled, st.Phase)
	assert.True(t, st.SkipsNextPopState())
	assert.Equal(t, "2025-01-01", window.FormatDate(st.Window.Start))
	assert.Equal(t, "./?startDate=2024-12-25&endDate=2025-01-01", st.Links.Older)
	assert.Equal(t, "./?startDate=2025-01-08&endDate=2025-01-15", st.Links.Newer)
}

func TestLoadWithoutDatesUsesDefaultWindow(t *testing.T) {
	s := newTestSynchronizer()

	st, _ := s.Handle(State{}, Load(window.Address{}))

	assert.Equal(t, window.DefaultWindow(now, 7), st.Window)
}

func TestFirstPopStateIsIgnored(t *testing.T) {
	s := newTestSynchronizer()
	st, _ := s.Handle(State{}, Load(janAddr))

	other := window.Address{StartDate: "2024-06-01", EndDate: "2024-06-02"}
	next, effects := s.Handle(st, PopState(other))

	assert.Empty(t, effects)
	assert.False(t, next.SkipsNextPopState())
	assert.Equal(t, st.Window, next.Window)

	next, effects = s.Handle(next, PopState(other))
	assert.Equal(t, []EffectKind{EffectUpdateDisplay}, kinds(effects))
	assert.Equal(t, "2024-06-01", window.FormatDate(next.Window.Start))
	assert.Equal(t, other, next.Address)
}

func TestClickOlderPushesHistory(t *testing.T) {
	s := newTestSynchronizer()
	st, _ := s.Handle(State{}, Load(janAddr))

	next, effects := s.Handle(st, ClickOlder())

	require.Equal(t, []EffectKind{EffectPushHistory, EffectUpdateDisplay}, kinds(effects))
	assert.Equal(t, window.Address{StartDate: "2024-12-25", EndDate: "2025-01-01"}, effects[0].Address)
	assert.Equal(t, Settled, next.Phase)
	assert.Equal(t, "2024-12-25", window.FormatDate(next.Window.Start))
	assert.Equal(t, "2025-01-01", window.FormatDate(next.Window.End))
	assert.False(t, next.SkipsNextPopState())
}

func TestClickNewerCarriesPattern(t *testing.T) {
	s := newTestSynchronizer()
	addr := janAddr
	addr.Pattern = "payroll"
	st, _ := s.Handle(State{}, Load(addr))

	next, effects := s.Handle(st, ClickNewer())

	require.Len(t, effects, 2)
	assert.Equal(t, window.Address{StartDate: "2025-01-08", EndDate: "2025-01-15", Pattern: "payroll"}, effects[0].Address)
	assert.Equal(t, "payroll", next.Address.Pattern)
}

func TestSubmitClearsErrorThenDispatches(t *testing.T) {
	s := newTestSynchronizer()
	st, _ := s.Handle(State{}, Load(janAddr))

	next, effects := s.Handle(st, Submit("SELECT 1", ""))

	require.Equal(t, []EffectKind{EffectClearError, EffectDispatch}, kinds(effects))
	req := effects[1].Request
	assert.Equal(t, "SELECT 1", req.QueryText)
	assert.Equal(t, st.Window, req.Window)
	assert.Empty(t, req.Pattern)
	assert.Equal(t, st, next)
}

func TestSubmitWithNewPatternNavigatesFirst(t *testing.T) {
	s := newTestSynchronizer()
	st, _ := s.Handle(State{}, Load(janAddr))

	next, effects := s.Handle(st, Submit("SELECT 1", "returns"))

	require.Equal(t, []EffectKind{EffectPushHistory, EffectUpdateDisplay, EffectClearError, EffectDispatch}, kinds(effects))
	assert.Equal(t, window.Address{StartDate: "2025-01-01", EndDate: "2025-01-08", Pattern: "returns"}, effects[0].Address)
	assert.Equal(t, "returns", effects[3].Request.Pattern)
	assert.Equal(t, st.Window, next.Window)
	assert.Contains(t, next.Links.Older, "pattern=returns")
}

func TestSearchCompletedRenders(t *testing.T) {
	s := newTestSynchronizer()
	result := domain.Failure("syntax error")

	_, effects := s.Handle(State{}, SearchCompleted(result))

	require.Equal(t, []EffectKind{EffectRender}, kinds(effects))
	assert.Equal(t, result, effects[0].Result)
}

func TestUnknownEventIsNoop(t *testing.T) {
	s := newTestSynchronizer()
	st, _ := s.Handle(State{}, Load(janAddr))

	next, effects := s.Handle(st, Event{Kind: EventKind(99)})
	assert.Nil(t, effects)
	assert.Equal(t, st, next)
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "popstate", EventPopState.String())
	assert.Equal(t, "dispatch", EffectDispatch.String())
	assert.Equal(t, "transitioning", Transitioning.String())
	assert.Equal(t, "unknown", EventKind(42).String())
}
