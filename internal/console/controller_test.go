package console

import (
	"testing"

	"github.com/cristianoliveira/railsql/internal/domain"
	"github.com/cristianoliveira/railsql/internal/logging"
	"github.com/cristianoliveira/railsql/internal/render"
	"github.com/cristianoliveira/railsql/internal/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	c      *Controller
	table  *render.TextTable
	errors *render.ErrorText
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	tbl := &render.TextTable{}
	errs := &render.ErrorText{}
	logger := logging.GetGlobal()
	c := NewController(newTestSynchronizer(), render.NewRenderer(logger),
		render.Display{Table: tbl, Errors: errs}, logger)
	c.Start(janAddr)
	return fixture{c: c, table: tbl, errors: errs}
}

func TestControllerStartUpdatesDisplay(t *testing.T) {
	f := newFixture(t)

	ui := f.c.UI()
	assert.Equal(t, "Searching Files from 2025-01-01 to 2025-01-09", ui.RangeText)
	assert.Equal(t, "./?startDate=2024-12-25&endDate=2025-01-01", ui.Older)
	assert.Equal(t, 1, f.c.History().Len())
}

func TestControllerIgnoresInitialPopStateOnly(t *testing.T) {
	f := newFixture(t)

	f.c.Handle(PopState(janAddr))
	assert.False(t, f.c.State().SkipsNextPopState())

	f.c.Handle(ClickOlder())
	assert.Equal(t, 2, f.c.History().Len())
	older := f.c.UI().RangeText

	require.True(t, f.c.Back())
	assert.Equal(t, "Searching Files from 2025-01-01 to 2025-01-09", f.c.UI().RangeText)

	require.True(t, f.c.Forward())
	assert.Equal(t, older, f.c.UI().RangeText)
	assert.False(t, f.c.Forward())
}

func TestControllerBackBeforeSyntheticPopStateKeepsHistoryInSync(t *testing.T) {
	f := newFixture(t)
	f.c.Handle(ClickNewer())

	require.True(t, f.c.Back())
	shown := newTestSynchronizer().resolver.Resolve(f.c.History().Current(), now)
	assert.Equal(t, shown, f.c.State().Window)
	assert.Equal(t, janAddr, f.c.State().Address)
	assert.Equal(t, "Searching Files from 2025-01-01 to 2025-01-09", f.c.UI().RangeText)

	// The host's late start event must not move the display either.
	f.c.Handle(PopState(janAddr))
	assert.Equal(t, "Searching Files from 2025-01-01 to 2025-01-09", f.c.UI().RangeText)
}

func TestControllerSubmitClearsInitialPopStateSkip(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.c.State().SkipsNextPopState())

	f.c.Handle(Submit("SELECT 1", ""))
	assert.False(t, f.c.State().SkipsNextPopState())
}

func TestControllerSubmitAndRender(t *testing.T) {
	f := newFixture(t)
	f.errors.ShowError("previous failure")

	reqs := f.c.Handle(Submit("SELECT name FROM ach_entries", ""))
	require.Len(t, reqs, 1)
	assert.Empty(t, f.errors.Message)
	assert.Equal(t, 1, f.c.UI().InFlight)

	f.c.Handle(SearchCompleted(domain.Success([]string{"name"}, [][]string{{"Jane"}})))
	assert.Equal(t, 0, f.c.UI().InFlight)
	assert.Equal(t, 1, f.table.Len())

	f.c.Handle(SearchCompleted(domain.Failure("no such table: x")))
	assert.Equal(t, "no such table: x", f.errors.Message)
	assert.Equal(t, 1, f.table.Len())
	assert.Equal(t, 0, f.c.UI().InFlight)
}

func TestControllerOverlappingSearchesLastResponseWins(t *testing.T) {
	f := newFixture(t)

	f.c.Handle(Submit("SELECT 1", ""))
	f.c.Handle(Submit("SELECT 2", ""))
	assert.Equal(t, 2, f.c.UI().InFlight)
	assert.Equal(t, 2, f.c.UI().Searches)

	f.c.Handle(SearchCompleted(domain.Success([]string{"b"}, [][]string{{"2"}, {"2"}})))
	f.c.Handle(SearchCompleted(domain.Success([]string{"a"}, [][]string{{"1"}})))

	assert.Equal(t, 1, f.table.Len())
	assert.Equal(t, 0, f.c.UI().InFlight)
}

func TestControllerSubmitWithPatternPushesHistory(t *testing.T) {
	f := newFixture(t)

	reqs := f.c.Handle(Submit("SELECT 1", "payroll"))
	require.Len(t, reqs, 1)
	assert.Equal(t, "payroll", reqs[0].Pattern)
	assert.Equal(t, 2, f.c.History().Len())
	assert.Equal(t, window.Address{StartDate: "2025-01-01", EndDate: "2025-01-08", Pattern: "payroll"}, f.c.History().Current())
	assert.Equal(t, "payroll", f.c.UI().Pattern)
}
