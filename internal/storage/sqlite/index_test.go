package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cristianoliveira/railsql/internal/ach"
	"github.com/cristianoliveira/railsql/internal/domain"
	"github.com/stretchr/testify/require"
)

var modTime = time.Date(2025, 1, 3, 10, 30, 0, 0, time.UTC)

func newTestIndex(t *testing.T, opts Options) *Index {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "index", "railsql.db")
	x, err := NewIndex(dbPath, opts)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, x.Close())
	})

	return x
}

func loadFile(t *testing.T, name string) domain.File {
	t.Helper()

	path := filepath.Join("..", "..", "ach", "testdata", name)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return domain.File{Name: name, Path: path, ModTime: modTime, Contents: data}
}

func names(t *testing.T, rows [][]any) []string {
	t.Helper()

	out := make([]string, 0, len(rows))
	for _, row := range rows {
		require.Len(t, row, 1)
		s, ok := row[0].(string)
		require.True(t, ok, "expected string, got %T", row[0])
		out = append(out, s)
	}
	return out
}

func TestNewIndexRequiresPath(t *testing.T) {
	_, err := NewIndex("  ", Options{})
	require.ErrorIs(t, err, ErrEmptyPath)
}

func TestNewIndexAppliesMigrations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "railsql.db")

	x, err := NewIndex(dbPath, Options{})
	require.NoError(t, err)
	v, err := x.SchemaVersion(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, v)
	require.NoError(t, x.Close())

	// Reopening must not re-run applied migrations.
	x, err = NewIndex(dbPath, Options{})
	require.NoError(t, err)
	defer x.Close()
	counts, err := x.Counts(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, len(Tables))
}

func TestIngestStoresRows(t *testing.T) {
	x := newTestIndex(t, Options{})
	ctx := context.Background()

	stats, err := x.Ingest(ctx, []domain.File{loadFile(t, "ppd-credit.ach")})
	require.NoError(t, err)
	require.Equal(t, 1, stats.Files)
	require.Equal(t, 1, stats.Batches)
	require.Equal(t, 2, stats.Entries)
	require.Equal(t, 1, stats.Addendas)
	require.Equal(t, 0, stats.Failed)
	require.Len(t, stats.FileIDs, 1)

	counts, err := x.Counts(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]int64{
		"ach_files":    1,
		"ach_batches":  1,
		"ach_entries":  2,
		"ach_addendas": 1,
	}, counts)

	cols, rows, err := x.Query(ctx, "SELECT filename, created_at FROM ach_files", nil)
	require.NoError(t, err)
	require.Equal(t, []string{"filename", "created_at"}, cols)
	require.Equal(t, [][]any{{"ppd-credit.ach", "2025-01-03 10:30:00"}}, rows)
}

func TestIngestIsIdempotent(t *testing.T) {
	x := newTestIndex(t, Options{})
	ctx := context.Background()
	file := loadFile(t, "ppd-credit.ach")

	first, err := x.Ingest(ctx, []domain.File{file})
	require.NoError(t, err)

	second, err := x.Ingest(ctx, []domain.File{file})
	require.NoError(t, err)
	require.Equal(t, 0, second.Files)
	require.Equal(t, 0, second.Entries)
	require.Equal(t, first.FileIDs, second.FileIDs)

	counts, err := x.Counts(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), counts["ach_entries"])
}

func TestIngestSkipsUnreadableFiles(t *testing.T) {
	x := newTestIndex(t, Options{})

	stats, err := x.Ingest(context.Background(), []domain.File{
		loadFile(t, "invalid-record.ach"),
		loadFile(t, "returns.ach"),
	})
	require.NoError(t, err)
	require.Equal(t, 1, stats.Failed)
	require.Equal(t, 1, stats.Files)
	require.Len(t, stats.FileIDs, 1)
}

func TestIngestHonorsCancellation(t *testing.T) {
	x := newTestIndex(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := x.Ingest(ctx, []domain.File{loadFile(t, "returns.ach")})
	require.ErrorIs(t, err, context.Canceled)
}

func TestQueryScopesToFileIDs(t *testing.T) {
	x := newTestIndex(t, Options{})
	ctx := context.Background()

	ppd, err := x.Ingest(ctx, []domain.File{loadFile(t, "ppd-credit.ach")})
	require.NoError(t, err)
	_, err = x.Ingest(ctx, []domain.File{loadFile(t, "returns.ach")})
	require.NoError(t, err)

	const q = "SELECT individual_name FROM ach_entries ORDER BY individual_name"

	_, rows, err := x.Query(ctx, q, ppd.FileIDs)
	require.NoError(t, err)
	require.Equal(t, []string{"Jane Doe", "John Smith"}, names(t, rows))

	_, rows, err = x.Query(ctx, q, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"Alice Return", "Bob Change", "Jane Doe", "John Smith"}, names(t, rows))

	cols, rows, err := x.Query(ctx, q, []string{})
	require.NoError(t, err)
	require.Equal(t, []string{"individual_name"}, cols)
	require.Empty(t, rows)
}

func TestQueryScopeAppliesToJoins(t *testing.T) {
	x := newTestIndex(t, Options{})
	ctx := context.Background()

	returns, err := x.Ingest(ctx, []domain.File{loadFile(t, "returns.ach")})
	require.NoError(t, err)
	_, err = x.Ingest(ctx, []domain.File{loadFile(t, "ppd-credit.ach")})
	require.NoError(t, err)

	_, rows, err := x.Query(ctx, `
		SELECT e.individual_name
		FROM ach_entries e
		JOIN ach_addendas a ON a.entry_id = e.entry_id AND a.file_id = e.file_id
		WHERE a.return_code IS NOT NULL`, returns.FileIDs)
	require.NoError(t, err)
	require.Equal(t, []string{"Alice Return"}, names(t, rows))
}

func TestQueryStoresBlankFieldsAsNull(t *testing.T) {
	x := newTestIndex(t, Options{})
	ctx := context.Background()

	_, err := x.Ingest(ctx, []domain.File{loadFile(t, "returns.ach"), loadFile(t, "ppd-credit.ach")})
	require.NoError(t, err)

	_, rows, err := x.Query(ctx, "SELECT COUNT(*) FROM ach_addendas WHERE change_code IS NOT NULL", nil)
	require.NoError(t, err)
	require.Equal(t, [][]any{{int64(1)}}, rows)

	_, rows, err = x.Query(ctx, "SELECT corrected_data FROM ach_addendas WHERE change_code = 'C01'", nil)
	require.NoError(t, err)
	require.Equal(t, [][]any{{"1918171614"}}, rows)
}

func TestQueryIsReadOnly(t *testing.T) {
	x := newTestIndex(t, Options{})
	ctx := context.Background()

	stats, err := x.Ingest(ctx, []domain.File{loadFile(t, "ppd-credit.ach")})
	require.NoError(t, err)

	_, _, err = x.Query(ctx, "DELETE FROM ach_entries", nil)
	require.Error(t, err)
	_, _, err = x.Query(ctx, "DELETE FROM ach_entries", stats.FileIDs)
	require.Error(t, err)

	counts, err := x.Counts(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), counts["ach_entries"])

	// The connection is writable again for ingest.
	stats, err = x.Ingest(ctx, []domain.File{loadFile(t, "returns.ach")})
	require.NoError(t, err)
	require.Equal(t, 1, stats.Files)
}

func TestQueryErrors(t *testing.T) {
	x := newTestIndex(t, Options{})
	ctx := context.Background()

	_, _, err := x.Query(ctx, "   ", nil)
	require.ErrorIs(t, err, ErrEmptyQuery)

	_, _, err = x.Query(ctx, "SELEC * FROM ach_files", []string{})
	var qerr *QueryError
	require.True(t, errors.As(err, &qerr))
	require.Contains(t, qerr.Error(), "syntax error")
}

func TestIngestMasksAccountNumbers(t *testing.T) {
	x := newTestIndex(t, Options{Mask: ach.MaskOptions{AccountNumbers: true}})
	ctx := context.Background()

	plain := newTestIndex(t, Options{})
	masked, err := x.Ingest(ctx, []domain.File{loadFile(t, "ppd-credit.ach")})
	require.NoError(t, err)
	unmasked, err := plain.Ingest(ctx, []domain.File{loadFile(t, "ppd-credit.ach")})
	require.NoError(t, err)
	require.Equal(t, unmasked.FileIDs, masked.FileIDs)

	_, rows, err := x.Query(ctx, "SELECT dfi_account_number FROM ach_entries ORDER BY amount DESC", nil)
	require.NoError(t, err)
	require.Equal(t, []string{"*******8518", "****5678"}, names(t, rows))
}
