package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Query runs query on a read-only connection. When scope is non-nil the
// searchable tables are shadowed by temporary views holding only the rows
// of those files, so the query needs no rewriting.
func (x *Index) Query(ctx context.Context, query string, scope []string) ([]string, [][]any, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil, ErrEmptyQuery
	}

	conn, err := x.db.Conn(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlite index: acquire connection: %w", err)
	}
	defer conn.Close()

	if scope != nil {
		if err := applyScope(ctx, conn, scope); err != nil {
			return nil, nil, fmt.Errorf("sqlite index: scope query: %w", err)
		}
		defer dropScope(conn)
	}

	if _, err := conn.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
		return nil, nil, fmt.Errorf("sqlite index: enter read-only mode: %w", err)
	}
	defer func() { _, _ = conn.ExecContext(context.Background(), "PRAGMA query_only = OFF") }()

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, &QueryError{Query: query, Err: err}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, &QueryError{Query: query, Err: err}
	}

	var out [][]any
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, &QueryError{Query: query, Err: err}
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, &QueryError{Query: query, Err: err}
	}
	return columns, out, nil
}

func applyScope(ctx context.Context, conn *sql.Conn, scope []string) error {
	stmts := []string{
		"CREATE TEMP TABLE IF NOT EXISTS search_scope (file_id TEXT PRIMARY KEY)",
		"DELETE FROM temp.search_scope",
	}
	for _, stmt := range stmts {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	for _, id := range scope {
		if _, err := conn.ExecContext(ctx, "INSERT OR IGNORE INTO temp.search_scope (file_id) VALUES (?)", id); err != nil {
			return err
		}
	}
	for _, table := range Tables {
		view := fmt.Sprintf(
			"CREATE TEMP VIEW IF NOT EXISTS %[1]s AS SELECT * FROM main.%[1]s WHERE file_id IN (SELECT file_id FROM temp.search_scope)",
			table)
		if _, err := conn.ExecContext(ctx, view); err != nil {
			return err
		}
	}
	return nil
}

func dropScope(conn *sql.Conn) {
	ctx := context.Background()
	for _, table := range Tables {
		_, _ = conn.ExecContext(ctx, "DROP VIEW IF EXISTS temp."+table)
	}
	_, _ = conn.ExecContext(ctx, "DELETE FROM temp.search_scope")
}
