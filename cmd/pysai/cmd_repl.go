package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/dhamidi/pysai/format"
	"github.com/dhamidi/pysai/project"
	"github.com/dhamidi/pysai/python/parser"
)

const (
	historyFile = ".pysai_history"
	promptMain  = ">>> "
	promptCont  = "... "
)

func newReplCmd() *cobra.Command {
	var outputFormat string
	var lang languageFlags

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Read statements interactively and print their syntax trees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := lang.project(".")
			if err != nil {
				return err
			}
			if _, err := format.NewEncoder(outputFormat, io.Discard); err != nil {
				return err
			}
			return runRepl(cmd.OutOrStdout(), cmd.ErrOrStderr(), p, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (json, yaml, line, tree)")
	lang.register(cmd)

	return cmd
}

func runRepl(out, errOut io.Writer, p *project.Project, outputFormat string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintf(out, "pysai %s, Python %s syntax. Ctrl-D to exit.\n", version, p.Version())

	// __future__ imports stay in effect for the rest of the session.
	var future parser.FutureOptions
	for {
		ps, src, ok := readStatement(ln, p, future)
		if !ok {
			fmt.Fprintln(out)
			return nil
		}
		if strings.TrimSpace(src) == "" {
			ps.Close()
			continue
		}
		ln.AppendHistory(strings.TrimRight(src, "\n"))

		// The parser that judged the input complete parses it again, this
		// time as a single statement.
		collector := &parser.Collector{File: "<stdin>"}
		ps.Reset(parser.WithErrorSink(collector))
		ast, err := ps.ParseSingleStatement()
		ps.Close()
		if err != nil {
			return err
		}
		if len(collector.Diagnostics) > 0 {
			if err := printDiagnostics(errOut, ast.Text, ast.Lines, collector.Diagnostics); err != nil {
				return err
			}
		}
		if collector.HasErrors() {
			continue
		}
		future |= ast.Future

		encoder, err := format.NewEncoder(outputFormat, out)
		if err != nil {
			return err
		}
		if err := encoder.Encode(ast); err != nil {
			return err
		}
	}
}

// readStatement reads lines until they form a statement that is complete,
// empty or beyond repair. It returns the parser built over those lines.
func readStatement(ln *liner.State, p *project.Project, future parser.FutureOptions) (*parser.Parser, string, bool) {
	opts := append(p.ParserOptions(), parser.WithFutureOptions(future))
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			if b.Len() > 0 && errors.Is(err, io.EOF) {
				return parser.NewString(b.String(), opts...), b.String(), true
			}
			return nil, "", false
		}
		b.WriteString(line)
		b.WriteByte('\n')

		ps := parser.NewString(b.String(), opts...)
		_, state, err := ps.ParseInteractiveCode()
		if err != nil || !state.NeedsMore() {
			return ps, b.String(), true
		}
		ps.Close()
	}
}
