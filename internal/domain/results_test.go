package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/cristianoliveira/railsql/internal/errors"
	"github.com/cristianoliveira/railsql/internal/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultsFromJSON(t *testing.T) {
	body := `{"Headers":{"Columns":["filename","amount","memo"]},"Rows":[{"Columns":["a.ach",1250,null]},{"Columns":["b.ach",99.5,"x"]}]}`

	var res Results
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	result := res.SearchResult()

	require.False(t, result.Failed())
	assert.Equal(t, []string{"filename", "amount", "memo"}, result.Columns)
	assert.Equal(t, [][]string{{"a.ach", "1250", ""}, {"b.ach", "99.5", "x"}}, result.Rows)
}

func TestResultsErrorWins(t *testing.T) {
	res := Results{Headers: &Row{Columns: []any{"a"}}, Error: "syntax error"}
	result := res.SearchResult()

	require.True(t, result.Failed())
	assert.Equal(t, "syntax error", result.Message)
	assert.Empty(t, result.Rows)
}

func TestResultsWithoutRows(t *testing.T) {
	result := NewResults([]string{"file_id"}, nil).SearchResult()
	require.False(t, result.Failed())
	assert.Equal(t, []string{"file_id"}, result.Columns)
	assert.Empty(t, result.Rows)
}

func TestErrorResultsJSON(t *testing.T) {
	data, err := json.Marshal(ErrorResults("syntax error"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"syntax error"}`, string(data))
}

func TestNewResultsJSON(t *testing.T) {
	data, err := json.Marshal(NewResults([]string{"n"}, [][]any{{int64(3)}}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Headers":{"Columns":["n"]},"Rows":[{"Columns":[3]}]}`, string(data))
}

func TestFormatCell(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"text", "text"},
		{[]byte("raw"), "raw"},
		{float64(100), "100"},
		{0.25, "0.25"},
		{int64(-7), "-7"},
		{42, "42"},
		{true, "true"},
		{json.Number("12.50"), "12.50"},
		{time.Duration(0), "0s"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatCell(tc.in))
	}
}

func TestSearchRequestValidate(t *testing.T) {
	assert.ErrorIs(t, SearchRequest{QueryText: "  \n"}.Validate(), errors.ErrEmptyQuery)
	assert.NoError(t, SearchRequest{QueryText: "SELECT 1"}.Validate())
	assert.NoError(t, SearchRequest{QueryText: "SELECT 1", Pattern: "re:^ppd"}.Validate())

	err := SearchRequest{QueryText: "SELECT 1", Pattern: "re:("}.Validate()
	assert.ErrorIs(t, err, errors.ErrInvalidPattern)
	assert.Equal(t, "pattern is invalid: error parsing regexp: missing closing ): `(`", err.Error())
}

func TestSearchRequestAddress(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	req := SearchRequest{
		Window:  window.Window{Start: start, End: window.EndOfDay(start.AddDate(0, 0, 7))},
		Pattern: "ppd",
	}
	assert.Equal(t, "./?startDate=2025-01-01&endDate=2025-01-08&pattern=ppd", req.Address().String())
}

func TestSuccessAndFailure(t *testing.T) {
	ok := Success([]string{"a"}, [][]string{{"1"}})
	assert.False(t, ok.Failed())
	assert.Empty(t, ok.Message)

	bad := Failure("boom")
	assert.True(t, bad.Failed())
	assert.Equal(t, "boom", bad.Message)
}
