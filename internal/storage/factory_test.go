package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cristianoliveira/railsql/internal/domain"
	"github.com/stretchr/testify/require"
)

func copyTestdata(t *testing.T, dst, name string, mod time.Time) {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("..", "ach", "testdata", name))
	require.NoError(t, err)
	path := filepath.Join(dst, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func TestOpenRequiresDirectories(t *testing.T) {
	_, err := Open(Settings{DBPath: filepath.Join(t.TempDir(), "railsql.db")})
	require.Error(t, err)
}

func TestStoreSearchesOnlyTheWindow(t *testing.T) {
	root := t.TempDir()
	achDir := filepath.Join(root, "files")
	require.NoError(t, os.MkdirAll(achDir, 0o755))
	copyTestdata(t, achDir, "ppd-credit.ach", day.AddDate(0, 0, -30))
	copyTestdata(t, achDir, "returns.ach", day)

	store, err := Open(Settings{DBPath: filepath.Join(root, "railsql.db"), ACHDirs: []string{achDir}})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })

	ctx := context.Background()
	all, err := store.Ingest(ctx, domain.FilterParams{})
	require.NoError(t, err)
	require.Equal(t, 2, all.Files)

	results, err := store.Search(ctx, "SELECT individual_name FROM ach_entries ORDER BY individual_name",
		window(day.AddDate(0, 0, -1), day.AddDate(0, 0, 1)))
	require.NoError(t, err)
	require.Equal(t, []any{"individual_name"}, results.Headers.Columns)
	require.Len(t, results.Rows, 2)
	require.Equal(t, []any{"Alice Return"}, results.Rows[0].Columns)
	require.Equal(t, []any{"Bob Change"}, results.Rows[1].Columns)
}
