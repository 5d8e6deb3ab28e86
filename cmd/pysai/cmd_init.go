package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/pysai/project"
)

func newInitCmd() *cobra.Command {
	cfg := project.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a pysai.toml for a Python project",
		Long: `Write a pysai.toml for a Python project.

If a directory is provided, creates it and writes the configuration there.
Otherwise, writes it into the current directory. An existing pysai.toml is
never overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("create directory: %w", err)
				}
			}
			if _, err := project.New(dir, cfg); err != nil {
				return err
			}
			path, err := project.WriteConfig(dir, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.Version, "version", cfg.Version, "language version")
	cmd.Flags().StringVar(&cfg.Indentation, "indentation", cfg.Indentation, "severity of inconsistent tabs")
	cmd.Flags().StringSliceVar(&cfg.Include, "include", cfg.Include, "glob patterns of files to check")
	cmd.Flags().StringSliceVar(&cfg.Exclude, "exclude", nil, "glob patterns of files to skip")

	return cmd
}
