/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/railsql/cmd"
	"github.com/cristianoliveira/railsql/internal/domain"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type ingestClient interface {
	windowResolver
	Ingest(ctx context.Context, params domain.FilterParams) (domain.IngestStats, error)
}

// NewIngestCmd creates the ingest command with explicit dependencies.
func NewIngestCmd(client ingestClient) *cobra.Command {
	if client == nil {
		panic("NewIngestCmd: client dependency cannot be nil")
	}

	var flags windowFlags
	var all bool

	ingestCmd := &cobra.Command{
		Use:   "ingest",
		Short: "Index the ACH files of a window",
		Long: `Index the ACH files of a window.

Files already in the index are skipped. Without --start and --end the
default trailing window is used; --all indexes every file regardless of
its modification time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := domain.FilterParams{Pattern: flags.pattern}
			scope := "all files"
			if !all {
				w := client.Resolve(flags.address())
				params = domain.ParamsFor(w, flags.pattern)
				scope = w.String()
			}

			stats, err := client.Ingest(cmd.Context(), params)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatIngestStats(scope, stats))
			return nil
		},
	}
	flags.register(ingestCmd)
	ingestCmd.Flags().BoolVar(&all, "all", false, "index every file, ignoring the window")

	return ingestCmd
}

func formatIngestStats(scope string, stats domain.IngestStats) string {
	line := fmt.Sprintf("Indexed %s: %s new files, %s batches, %s entries, %s addendas",
		scope,
		humanize.Comma(int64(stats.Files)),
		humanize.Comma(int64(stats.Batches)),
		humanize.Comma(int64(stats.Entries)),
		humanize.Comma(int64(stats.Addendas)))
	if stats.Failed > 0 {
		line += fmt.Sprintf(" (%d unreadable)", stats.Failed)
	}
	return line
}

func init() {
	cmd.RootCmd.AddCommand(NewIngestCmd(client))
}
