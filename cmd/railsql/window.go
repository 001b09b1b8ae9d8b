/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"fmt"

	"github.com/cristianoliveira/railsql/cmd"
	"github.com/cristianoliveira/railsql/internal/window"
	"github.com/spf13/cobra"
)

// NewWindowCmd creates the window command with explicit dependencies.
func NewWindowCmd(client windowResolver) *cobra.Command {
	if client == nil {
		panic("NewWindowCmd: client dependency cannot be nil")
	}

	var flags windowFlags

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "Show the window an address resolves to",
		Long: `Show the window an address resolves to and its older and newer neighbours.

Dates that are missing, malformed, out of range or inverted fall back to
the default trailing window.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := client.Resolve(flags.address())
			links := window.BuildLinks(w, flags.pattern)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, window.DisplayRange(w))
			fmt.Fprintf(out, "window: %s (%d days)\n", w.String(), w.Days())
			fmt.Fprintf(out, "older:  %s\n", links.Older)
			fmt.Fprintf(out, "newer:  %s\n", links.Newer)
			return nil
		},
	}
	flags.register(windowCmd)

	return windowCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewWindowCmd(client))
}
