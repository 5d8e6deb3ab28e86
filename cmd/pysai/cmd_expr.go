package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/pysai/format"
	"github.com/dhamidi/pysai/python/parser"
)

func newExprCmd() *cobra.Command {
	var outputFormat string
	var lang languageFlags

	cmd := &cobra.Command{
		Use:   "expr <expression>...",
		Short: "Parse an expression given on the command line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := lang.project(".")
			if err != nil {
				return err
			}
			encoder, err := format.NewEncoder(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			collector := &parser.Collector{File: "<expr>"}
			opts := append(p.ParserOptions(), parser.WithErrorSink(collector))
			ps := parser.NewString(strings.Join(args, " "), opts...)
			defer ps.Close()

			ast, err := ps.ParseTopExpression()
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}
			if err := encoder.Encode(ast); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if err := printDiagnostics(cmd.ErrOrStderr(), ast.Text, ast.Lines, collector.Diagnostics); err != nil {
				return err
			}
			if n := countErrors(collector.Diagnostics); n > 0 {
				return fmt.Errorf("%d errors", n)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (json, yaml, line, tree)")
	lang.register(cmd)

	return cmd
}
