package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/pysai/python/codebase"
)

func newCheckCmd() *cobra.Command {
	var watch bool
	var interval time.Duration
	var lang languageFlags

	cmd := &cobra.Command{
		Use:   "check [path]...",
		Short: "Report syntax errors in Python files",
		Long: `Report syntax errors in Python files.

Each path is a file or a project directory; directories are scanned with
the include and exclude patterns of their pysai.toml. Without paths the
current directory is checked.

With --watch, a single project directory is polled and files are
rechecked whenever they change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			if watch {
				if len(args) != 1 {
					return fmt.Errorf("--watch takes a single directory")
				}
				return runWatch(cmd, args[0], &lang, interval)
			}

			var files []*codebase.FileInfo
			for _, path := range args {
				found, err := checkPath(cmd.Context(), path, &lang)
				if err != nil {
					return err
				}
				files = append(files, found...)
			}

			errors := 0
			for _, f := range files {
				if err := reportFile(cmd.ErrOrStderr(), f); err != nil {
					return err
				}
				errors += countErrors(f.Diagnostics)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "checked %d files, %d errors\n", len(files), errors)
			if errors > 0 {
				return fmt.Errorf("%d errors", errors)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "recheck files when they change")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "polling interval for --watch")
	lang.register(cmd)

	return cmd
}

func checkPath(ctx context.Context, path string, lang *languageFlags) ([]*codebase.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		p, err := lang.project(".")
		if err != nil {
			return nil, err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		f, err := codebase.Parse(path, content, p.ParserOptions()...)
		if err != nil {
			return nil, err
		}
		return []*codebase.FileInfo{f}, nil
	}

	p, err := lang.project(path)
	if err != nil {
		return nil, err
	}
	cb := codebase.New(p)
	if err := cb.ScanAll(ctx); err != nil {
		return nil, err
	}
	return cb.Files(), nil
}

func reportFile(w io.Writer, f *codebase.FileInfo) error {
	return printDiagnostics(w, f.AST.Text, f.AST.Lines, f.Diagnostics)
}

func runWatch(cmd *cobra.Command, dir string, lang *languageFlags, interval time.Duration) error {
	p, err := lang.project(dir)
	if err != nil {
		return err
	}
	cb := codebase.New(p)

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	w := codebase.NewFileWatcher(cb,
		codebase.WithPollInterval(interval),
		codebase.WithOnChange(func(path string, f *codebase.FileInfo) {
			if f == nil {
				fmt.Fprintf(out, "%s: removed\n", path)
				return
			}
			if err := reportFile(errOut, f); err != nil {
				return
			}
			fmt.Fprintf(out, "%s: %d errors\n", path, countErrors(f.Diagnostics))
		}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	w.Start()
	defer w.Stop()
	<-ctx.Done()
	return nil
}
