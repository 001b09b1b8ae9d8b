/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"os"

	"github.com/cristianoliveira/railsql/cmd"
	"github.com/cristianoliveira/railsql/internal/colors"
	"github.com/cristianoliveira/railsql/internal/errors"
)

// failures reports the error that ends the process.
var failures errors.ErrorHandler = errors.NewDefaultCLIHandler()

func main() {
	code := run(os.Args[1:], cmd.Execute)
	if err := client.Close(); err != nil {
		colors.Warning("closing index:", err.Error())
	}
	os.Exit(code)
}

// run executes the CLI and returns the process exit code.
func run(args []string, execute func() error) int {
	if len(args) > 0 && args[0] == "console" {
		colors.DisableStructuredLogging()
	}

	colors.StructuredInfo(colors.Event{Component: "startup", Action: "main", Status: "started"})
	if err := execute(); err != nil {
		colors.StructuredError(colors.Event{Component: "startup", Action: "main", Status: "failed", Err: err})
		failures.Error(errors.UserMessage(err))
		return 1
	}
	colors.StructuredInfo(colors.Event{Component: "startup", Action: "main", Status: "completed"})
	return 0
}
