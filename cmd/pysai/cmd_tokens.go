package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/pysai/format"
	"github.com/dhamidi/pysai/python/parser"
)

func newTokensCmd() *cobra.Command {
	var lang languageFlags

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream of a Python file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			data, name, err := readSource(path)
			if err != nil {
				return err
			}
			p, err := lang.project(".")
			if err != nil {
				return err
			}

			collector := &parser.Collector{File: name}
			text, _ := parser.ResolveEncoding(data, collector)
			tz := parser.NewTokenizer(text,
				parser.WithTokenizerVersion(p.Version()),
				parser.WithTokenizerSink(collector),
				parser.WithTabCheck(p.Indentation()),
			)

			enc := format.NewTokenLineEncoder(cmd.OutOrStdout(), tz.Lines())
			for _, tok := range tz.All() {
				if err := enc.Encode(tok); err != nil {
					return err
				}
			}
			if err := printDiagnostics(cmd.ErrOrStderr(), text, tz.Lines(), collector.Diagnostics); err != nil {
				return err
			}
			if n := countErrors(collector.Diagnostics); n > 0 {
				return fmt.Errorf("%s: %d errors", name, n)
			}
			return nil
		},
	}

	lang.register(cmd)

	return cmd
}
