package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/pysai/format"
	"github.com/dhamidi/pysai/project"
	"github.com/dhamidi/pysai/python/parser"
)

// languageFlags are shared by every command that parses source.
type languageFlags struct {
	version     string
	indentation string
}

func (f *languageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.version, "version", "", "language version, e.g. 2.7 or 3.3 (default from pysai.toml)")
	cmd.Flags().StringVar(&f.indentation, "indentation", "", "severity of inconsistent tabs: ignore, warning, error")
}

// project loads pysai.toml from dir and applies the flag overrides.
func (f *languageFlags) project(dir string) (*project.Project, error) {
	p, err := project.LoadFrom(dir)
	if err != nil {
		return nil, err
	}
	if f.version != "" {
		if err := p.SetVersion(f.version); err != nil {
			return nil, err
		}
	}
	if f.indentation != "" {
		if err := p.SetIndentation(f.indentation); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// readSource reads a file, or standard input when path is "-" or empty.
func readSource(path string) ([]byte, string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "<stdin>", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	return data, path, nil
}

func printDiagnostics(w io.Writer, text string, lines parser.LineTable, diags []parser.Diagnostic) error {
	enc := format.NewDiagnosticEncoder(w, text, lines)
	for _, d := range diags {
		if d.Severity == parser.SeverityIgnore {
			continue
		}
		if err := enc.Encode(d); err != nil {
			return err
		}
	}
	return nil
}

func countErrors(diags []parser.Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Severity >= parser.SeverityError {
			n++
		}
	}
	return n
}

func newParseCmd() *cobra.Command {
	var outputFormat string
	var mode string
	var lang languageFlags

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a Python file and dump its syntax tree",
		Long: `Parse a Python file and dump its syntax tree.

Reads standard input when no file or "-" is given. Diagnostics are written
to standard error; the tree is written even when the source has errors.

Modes:
  file        a whole module
  single      exactly one statement, as typed at an interactive prompt
  expression  a single expression`,
		Args: cobra.MaximumNArgs(1),
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
			encoder, err := format.NewEncoder(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			collector := &parser.Collector{File: name}
			opts := append(p.ParserOptions(), parser.WithFile(name), parser.WithErrorSink(collector))
			ps := parser.New(bytes.NewReader(data), opts...)
			defer ps.Close()

			var ast *parser.AST
			switch mode {
			case "file":
				ast, err = ps.ParseFile()
			case "single":
				ast, err = ps.ParseSingleStatement()
			case "expression", "expr":
				ast, err = ps.ParseTopExpression()
			default:
				return fmt.Errorf("unknown mode: %s", mode)
			}
			if err != nil {
				return fmt.Errorf("parse %s: %w", name, err)
			}

			if err := encoder.Encode(ast); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if err := printDiagnostics(cmd.ErrOrStderr(), ast.Text, ast.Lines, collector.Diagnostics); err != nil {
				return err
			}
			if n := countErrors(collector.Diagnostics); n > 0 {
				return fmt.Errorf("%s: %d errors", name, n)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, yaml, line, tree)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "file", "parse mode (file, single, expression)")
	lang.register(cmd)

	return cmd
}
