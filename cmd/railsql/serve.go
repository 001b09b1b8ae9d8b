/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cristianoliveira/railsql/cmd"
	"github.com/spf13/cobra"
)

type serveClient interface {
	Serve(ctx context.Context, addr string) error
}

// NewServeCmd creates the serve command with explicit dependencies.
func NewServeCmd(client serveClient) *cobra.Command {
	if client == nil {
		panic("NewServeCmd: client dependency cannot be nil")
	}

	var addr string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search backend and page",
		Long: `Serve the search backend and the search page.

Routes, relative to base_path:
    GET  /                 search page for the addressed window
    POST /                 run the submitted query and render the results
    POST /search           search API used by the console
    GET  /api/v1/queries   predefined queries
    GET  /healthz          index row counts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return client.Serve(ctx, addr)
		},
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (default listen_addr)")

	return serveCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewServeCmd(client))
}
