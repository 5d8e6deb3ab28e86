package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/pysai/python/codebase"
	"github.com/dhamidi/pysai/ui"
)

func newUICmd() *cobra.Command {
	var addr string
	var lang languageFlags

	cmd := &cobra.Command{
		Use:   "ui [directory]",
		Short: "Browse a project's files, symbols and syntax trees in a web UI",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			p, err := lang.project(dir)
			if err != nil {
				return err
			}
			cb := codebase.New(p)
			if err := cb.ScanAll(cmd.Context()); err != nil {
				return err
			}
			w := codebase.NewFileWatcher(cb)
			w.Start()
			defer w.Stop()

			server, err := ui.NewServer(cb)
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}
			displayAddr := addr
			if strings.HasPrefix(addr, ":") {
				displayAddr = "localhost" + addr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Starting server at http://%s\n", displayAddr)
			return http.ListenAndServe(addr, server)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "address to listen on")
	lang.register(cmd)

	return cmd
}
