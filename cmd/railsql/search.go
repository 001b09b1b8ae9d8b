/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/railsql/cmd"
	"github.com/cristianoliveira/railsql/internal/catalog"
	"github.com/cristianoliveira/railsql/internal/domain"
	rserrors "github.com/cristianoliveira/railsql/internal/errors"
	"github.com/cristianoliveira/railsql/internal/logging"
	"github.com/cristianoliveira/railsql/internal/render"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type searchClient interface {
	windowResolver
	Search(ctx context.Context, query string, params domain.FilterParams) (domain.Results, error)
	Dispatch(ctx context.Context, req domain.SearchRequest) domain.SearchResult
	Catalog() (*catalog.Catalog, error)
}

const searchCommandLong = `Run a SQL query over the ACH files of a window.

USAGE:
    railsql search [OPTIONS] [QUERY...]

The query is read from the arguments, or from stdin when QUERY is "-".
Only rows of files modified inside the window, and matching --pattern,
are visible to the query.

OPTIONS:
    --start <date>     First day of the window (YYYY-MM-DD)
    --end <date>       Last day of the window (YYYY-MM-DD)
    --pattern <p>      File name filter: substring, glob or re:regex
    --preset <name>    Run a predefined query (see 'railsql queries')
    --remote           Send the query to server_url instead of the local index
    --json             Print the result as JSON`

type jsonResult struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// NewSearchCmd creates the search command with explicit dependencies.
func NewSearchCmd(client searchClient) *cobra.Command {
	if client == nil {
		panic("NewSearchCmd: client dependency cannot be nil")
	}

	var flags windowFlags
	var preset string
	var remote bool
	var asJSON bool

	searchCmd := &cobra.Command{
		Use:   "search [QUERY...]",
		Short: "Run a SQL query over a window",
		Long:  searchCommandLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readQuery(cmd.InOrStdin(), args, preset, client)
			if err != nil {
				return err
			}

			req := domain.SearchRequest{
				Window:    client.Resolve(flags.address()),
				QueryText: query,
				Pattern:   flags.pattern,
			}
			var result domain.SearchResult
			if remote {
				result = client.Dispatch(cmd.Context(), req)
			} else {
				results, err := client.Search(cmd.Context(), req.QueryText, domain.ParamsFor(req.Window, req.Pattern))
				if err != nil {
					result = domain.Failure(rserrors.UserMessage(err))
				} else {
					result = results.SearchResult()
				}
			}
			return printResult(cmd.OutOrStdout(), result, asJSON)
		},
	}
	flags.register(searchCmd)
	searchCmd.Flags().StringVar(&preset, "preset", "", "name of a predefined query")
	searchCmd.Flags().BoolVar(&remote, "remote", false, "send the query to server_url")
	searchCmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return searchCmd
}

// readQuery picks the query text from args, stdin or the catalog.
func readQuery(stdin io.Reader, args []string, preset string, client searchClient) (string, error) {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading query from stdin: %w", err)
		}
		query = strings.TrimSpace(string(raw))
	}
	if query != "" && preset != "" {
		return "", errors.New("pass either a query or --preset, not both")
	}
	if preset != "" {
		c, err := client.Catalog()
		if err != nil {
			return "", err
		}
		q, ok := c.Find(preset)
		if !ok {
			return "", fmt.Errorf("unknown query %q, see 'railsql queries'", preset)
		}
		query = q.Query
	}
	if query == "" {
		return "", rserrors.ErrEmptyQuery
	}
	return query, nil
}

func printResult(w io.Writer, result domain.SearchResult, asJSON bool) error {
	table := &render.TextTable{}
	errs := &render.ErrorText{}
	render.NewRenderer(logging.GetGlobal()).Render(render.Display{Table: table, Errors: errs}, result)
	if errs.Message != "" {
		return errors.New(errs.Message)
	}

	if asJSON {
		out := jsonResult{Columns: result.Columns, Rows: result.Rows}
		if out.Columns == nil {
			out.Columns = []string{}
		}
		if out.Rows == nil {
			out.Rows = [][]string{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(result.Columns) > 0 {
		fmt.Fprintln(w, table.String())
	}
	fmt.Fprintf(w, "%s %s\n", humanize.Comma(int64(table.Len())), plural(table.Len(), "row", "rows"))
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func init() {
	cmd.RootCmd.AddCommand(NewSearchCmd(client))
}
