/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/cristianoliveira/railsql/internal/window"
	"github.com/spf13/cobra"
)

// windowFlags are the address flags shared by the commands that work on a window.
type windowFlags struct {
	start   string
	end     string
	pattern string
}

func (f *windowFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.start, "start", "", "first day of the window (YYYY-MM-DD)")
	c.Flags().StringVar(&f.end, "end", "", "last day of the window (YYYY-MM-DD)")
	c.Flags().StringVar(&f.pattern, "pattern", "", "file name filter: substring, glob or re:regex")
}

func (f *windowFlags) address() window.Address {
	return window.Address{StartDate: f.start, EndDate: f.end, Pattern: f.pattern}
}

type windowResolver interface {
	Resolve(addr window.Address) window.Window
}
