package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cristianoliveira/railsql/internal/catalog"
	"github.com/cristianoliveira/railsql/internal/dispatch"
	"github.com/cristianoliveira/railsql/internal/domain"
	"github.com/cristianoliveira/railsql/internal/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

type searchCall struct {
	query  string
	params domain.FilterParams
}

type fakeSearcher struct {
	mu       sync.Mutex
	searches []searchCall
	ingests  []domain.FilterParams
	results  domain.Results
	err      error
}

func (f *fakeSearcher) Ingest(_ context.Context, params domain.FilterParams) (domain.IngestStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ingests = append(f.ingests, params)
	return domain.IngestStats{Files: 1}, nil
}

func (f *fakeSearcher) Search(_ context.Context, query string, params domain.FilterParams) (domain.Results, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, searchCall{query: query, params: params})
	return f.results, f.err
}

func (f *fakeSearcher) ingestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ingests)
}

type fakeCounter struct {
	counts map[string]int64
	err    error
}

func (f fakeCounter) Counts(context.Context) (map[string]int64, error) { return f.counts, f.err }

const testCatalog = `
- category: Files
  queries:
    - name: Recent Files
      query: SELECT * FROM ach_files ORDER BY created_at DESC
`

func newTestServer(t *testing.T, searcher *fakeSearcher, mutate ...func(*Options)) *Server {
	t.Helper()
	c, err := catalog.Parse([]byte(testCatalog))
	require.NoError(t, err)
	opts := Options{
		Searcher: searcher,
		Catalog:  c,
		Resolver: window.NewResolver(7),
		Now:      func() time.Time { return now },
	}
	for _, m := range mutate {
		m(&opts)
	}
	s, err := New(opts)
	require.NoError(t, err)
	return s
}

func searchRequest(t *testing.T, params url.Values, body string) *http.Request {
	t.Helper()
	target := dispatch.SearchPath
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func queryBody(t *testing.T, query string) string {
	t.Helper()
	raw, err := json.Marshal(dispatch.Body{Query: dispatch.EncodeQuery(query)})
	require.NoError(t, err)
	return string(raw)
}

func decodeResults(t *testing.T, rec *httptest.ResponseRecorder) domain.Results {
	t.Helper()
	var out domain.Results
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestNewRequiresSearcher(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
}

func TestSearchReturnsResults(t *testing.T) {
	searcher := &fakeSearcher{results: domain.NewResults([]string{"n"}, [][]any{{int64(1)}})}
	s := newTestServer(t, searcher)

	params := url.Values{"startDate": {"2025-01-01"}, "endDate": {"2025-01-08"}, "pattern": {"payroll"}}
	req := searchRequest(t, params, queryBody(t, "SELECT 1 AS n"))
	req.Header.Set(dispatch.RequestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "req-1", rec.Header().Get(dispatch.RequestIDHeader))

	out := decodeResults(t, rec)
	require.NotNil(t, out.Headers)
	assert.Equal(t, []any{"n"}, out.Headers.Columns)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, []any{float64(1)}, out.Rows[0].Columns)

	require.Len(t, searcher.searches, 1)
	call := searcher.searches[0]
	assert.Equal(t, "SELECT 1 AS n", call.query)
	assert.Equal(t, "payroll", call.params.Pattern)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), call.params.StartDate)
	assert.Equal(t, "2025-01-08", window.FormatDate(call.params.EndDate))
}

func TestSearchInvalidDatesUseDefaultWindow(t *testing.T) {
	tests := []struct {
		name   string
		params url.Values
	}{
		{name: "missing", params: nil},
		{name: "malformed", params: url.Values{"startDate": {"01/01/2025"}, "endDate": {"2025-01-08"}}},
		{name: "inverted", params: url.Values{"startDate": {"2025-01-08"}, "endDate": {"2025-01-01"}}},
		{name: "impossible day", params: url.Values{"startDate": {"2025-02-30"}, "endDate": {"2025-03-01"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := &fakeSearcher{results: domain.NewResults(nil, nil)}
			s := newTestServer(t, searcher)

			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, searchRequest(t, tt.params, queryBody(t, "SELECT 1")))

			require.Equal(t, http.StatusOK, rec.Code)
			require.Len(t, searcher.searches, 1)
			params := searcher.searches[0].params
			assert.Equal(t, "2025-01-03", window.FormatDate(params.StartDate))
			assert.Equal(t, "2025-01-10", window.FormatDate(params.EndDate))
		})
	}
}

func TestSearchErrors(t *testing.T) {
	long := strings.Repeat("x", 257)
	tests := []struct {
		name      string
		params    url.Values
		body      string
		searchErr error
		message   string
		searched  bool
	}{
		{name: "backend error", body: `{"query":"U0VMRUNUICogRlJPTSB4"}`, searchErr: errors.New("no such table: x"), message: "no such table: x", searched: true},
		{name: "empty body", body: ``, message: "invalid JSON: empty body"},
		{name: "missing query", body: `{}`, message: "query is a required field"},
		{name: "plain text query", body: `{"query":"SELECT 1"}`, message: "query must be base64 encoded"},
		{name: "pattern too long", params: url.Values{"pattern": {long}}, body: `{"query":"U0VMRUNUIDE="}`, message: "pattern must be at most 256 characters"},
		{name: "malformed regex pattern", params: url.Values{"pattern": {"re:("}}, body: `{"query":"U0VMRUNUIDE="}`, message: "pattern is invalid: error parsing regexp: missing closing ): `(`"},
		{name: "malformed glob pattern", params: url.Values{"pattern": {"[ach"}}, body: `{"query":"U0VMRUNUIDE="}`, message: `pattern is invalid: glob "[ach": syntax error in pattern`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := &fakeSearcher{err: tt.searchErr}
			s := newTestServer(t, searcher)

			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, searchRequest(t, tt.params, tt.body))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			out := decodeResults(t, rec)
			assert.Equal(t, tt.message, out.Error)
			assert.Nil(t, out.Headers)
			assert.Equal(t, tt.searched, len(searcher.searches) == 1)
		})
	}
}

func TestDispatcherRoundTrip(t *testing.T) {
	searcher := &fakeSearcher{results: domain.NewResults(
		[]string{"individual_name", "amount"},
		[][]any{{"Alice Return", int64(1250)}, {"Bob Change", nil}},
	)}
	ts := httptest.NewServer(newTestServer(t, searcher).Handler())
	t.Cleanup(ts.Close)

	d := dispatch.New(ts.URL, dispatch.WithTimeout(5*time.Second))
	w := window.Resolve(window.Address{StartDate: "2025-01-01", EndDate: "2025-01-08"}, now)
	result := d.Dispatch(context.Background(), domain.SearchRequest{Window: w, QueryText: "SELECT individual_name, amount FROM ach_entries"})

	require.False(t, result.Failed(), result.Message)
	assert.Equal(t, []string{"individual_name", "amount"}, result.Columns)
	assert.Equal(t, [][]string{{"Alice Return", "1250"}, {"Bob Change", ""}}, result.Rows)

	searcher.mu.Lock()
	searcher.err = errors.New("near \"SELEC\": syntax error")
	searcher.mu.Unlock()
	result = d.Dispatch(context.Background(), domain.SearchRequest{Window: w, QueryText: "SELEC 1"})
	require.True(t, result.Failed())
	assert.Equal(t, "near \"SELEC\": syntax error", result.Message)
}

func TestQueriesEndpoint(t *testing.T) {
	s := newTestServer(t, &fakeSearcher{})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/queries", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []catalog.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Files", got[0].Name)
	assert.Equal(t, "Recent Files", got[0].Queries[0].Name)
	assert.Equal(t, "Files", got[0].Queries[0].Category)
}

func TestQueriesEndpointEmptyCatalog(t *testing.T) {
	s, err := New(Options{Searcher: &fakeSearcher{}})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/queries", nil))
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHealthz(t *testing.T) {
	tests := []struct {
		name    string
		counter Counter
		status  int
		body    string
	}{
		{name: "no counter", status: http.StatusOK, body: `{"status":"ok"}`},
		{
			name:    "counts",
			counter: fakeCounter{counts: map[string]int64{"ach_files": 2, "ach_entries": 5}},
			status:  http.StatusOK,
			body:    `{"status":"ok","counts":{"ach_files":2,"ach_entries":5}}`,
		},
		{
			name:    "failing index",
			counter: fakeCounter{err: errors.New("database is locked")},
			status:  http.StatusServiceUnavailable,
			body:    `{"status":"unavailable","error":"database is locked"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, &fakeSearcher{}, func(o *Options) { o.Counter = tt.counter })

			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestBasePathMountsRoutes(t *testing.T) {
	s := newTestServer(t, &fakeSearcher{}, func(o *Options) { o.BasePath = "/ach/" })

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ach/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ach/?startDate=2025-01-01&endDate=2025-01-08", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/ach/?startDate=2024-12-25&amp;endDate=2025-01-01"`)
}

func TestNormalizeBasePath(t *testing.T) {
	for in, want := range map[string]string{
		"":       "/",
		"/":      "/",
		"ach":    "/ach",
		"/ach/":  "/ach",
		" /a/b ": "/a/b",
	} {
		assert.Equal(t, want, normalizeBasePath(in), in)
	}
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, &fakeSearcher{}, func(o *Options) { o.AllowedOrigins = []string{"http://console.example"} })

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://console.example")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "http://console.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://elsewhere.example")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServeIngestsDefaultWindowAndStops(t *testing.T) {
	searcher := &fakeSearcher{}
	s := newTestServer(t, searcher, func(o *Options) { o.BackgroundIngest = true })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool { return searcher.ingestCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	searcher.mu.Lock()
	params := searcher.ingests[0]
	searcher.mu.Unlock()
	assert.Equal(t, "2025-01-03", window.FormatDate(params.StartDate))
	assert.Equal(t, "2025-01-10", window.FormatDate(params.EndDate))

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRunReportsListenErrors(t *testing.T) {
	s := newTestServer(t, &fakeSearcher{})
	err := s.Run(context.Background(), "bad-address")
	require.Error(t, err)
}

