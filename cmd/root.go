/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/cristianoliveira/railsql/internal/colors"
	"github.com/cristianoliveira/railsql/internal/config"
	"github.com/cristianoliveira/railsql/internal/logging"
	"github.com/cristianoliveira/railsql/internal/version"
	"github.com/spf13/cobra"
)

const description = "Search ACH transaction files with SQL, one date window at a time."

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:           "railsql",
	Short:         description,
	Long:          description,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return bootstrap()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.ShutdownGlobal()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

// bootstrap loads configuration and starts file logging.
func bootstrap() error {
	config.Load()
	colors.SetDebug(config.GetBool("debug", false))
	colors.SetQuiet(config.GetBool("quiet", false))
	if err := logging.InitGlobal(); err != nil {
		colors.Warning("file logging disabled:", err.Error())
	}
	return nil
}

func init() {
	RootCmd.Version = version.String()

	// Hide the completion command
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		PrintHelp(cmd.Root())
	})
}
