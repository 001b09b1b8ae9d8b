/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/cristianoliveira/railsql/cmd"
	"github.com/cristianoliveira/railsql/internal/window"
	"github.com/spf13/cobra"
)

type consoleClient interface {
	RunConsole(start window.Address) error
}

const consoleCommandLong = `Open the interactive search console.

Queries are sent to server_url, so 'railsql serve' must be running.

KEYS:
    ctrl+s          Run the query over the current window
    ctrl+p          Pick a predefined query
    tab             Cycle focus: query, pattern, results
    esc             Leave the editor
    [ / ]           Older / newer window (outside the editor)
    alt+←/alt+→     Back / forward through visited windows
    b / f           Back / forward (outside the editor)
    q, ctrl+c       Quit`

// NewConsoleCmd creates the console command with explicit dependencies.
func NewConsoleCmd(client consoleClient) *cobra.Command {
	if client == nil {
		panic("NewConsoleCmd: client dependency cannot be nil")
	}

	var flags windowFlags

	consoleCmd := &cobra.Command{
		Use:   "console",
		Short: "Open the interactive search console",
		Long:  consoleCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return client.RunConsole(flags.address())
		},
	}
	flags.register(consoleCmd)

	return consoleCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewConsoleCmd(client))
}
