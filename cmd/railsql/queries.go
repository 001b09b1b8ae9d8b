/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/railsql/cmd"
	"github.com/cristianoliveira/railsql/internal/catalog"
	"github.com/spf13/cobra"
)

type queriesClient interface {
	Catalog() (*catalog.Catalog, error)
}

var categoryStyle = lipgloss.NewStyle().Bold(true)

// NewQueriesCmd creates the queries command with explicit dependencies.
func NewQueriesCmd(client queriesClient) *cobra.Command {
	if client == nil {
		panic("NewQueriesCmd: client dependency cannot be nil")
	}

	var asJSON bool
	var verbose bool

	queriesCmd := &cobra.Command{
		Use:   "queries",
		Short: "List the predefined queries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Catalog()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(c.Categories)
			}
			for _, cat := range c.Categories {
				fmt.Fprintln(out, categoryStyle.Render(cat.Name))
				for _, q := range cat.Queries {
					if q.Description != "" {
						fmt.Fprintf(out, "  %-28s %s\n", q.Name, q.Description)
					} else {
						fmt.Fprintf(out, "  %s\n", q.Name)
					}
					if verbose {
						fmt.Fprintf(out, "      %s\n", q.Query)
					}
				}
			}
			return nil
		},
	}
	queriesCmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")
	queriesCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "also print the query text")

	return queriesCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewQueriesCmd(client))
}
