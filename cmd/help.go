/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// outputWriter is where help is printed. Tests replace it.
var outputWriter io.Writer

// commandOrder is the order commands are listed in help.
var commandOrder = []string{
	"serve",
	"console",
	"search",
	"ingest",
	"window",
	"queries",
	"help",
	"version",
}

// helpCmd represents the help command
var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show this help message",
	Long:  `Show this help message.`,
	Run: func(cmd *cobra.Command, args []string) {
		PrintHelp(cmd.Root())
	},
}

// PrintHelp writes the command overview of root.
func PrintHelp(root *cobra.Command) {
	w := outputWriter
	if w == nil {
		w = os.Stdout
	}

	var cmdLines []string
	for _, name := range commandOrder {
		for _, c := range root.Commands() {
			if c.Name() == name {
				cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", c.Name(), c.Short))
				break
			}
		}
	}

	fmt.Fprintf(w, `railsql v%s

%s

USAGE:
    railsql [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    -h, --help      Show help message

Run 'railsql [COMMAND] --help' for the options of a command.
`, root.Version, description, strings.Join(cmdLines, "\n"))
}

func init() {
	RootCmd.SetHelpCommand(helpCmd)
}
