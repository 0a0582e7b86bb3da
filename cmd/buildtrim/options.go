package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"buildtrim/internal/config"
	"buildtrim/internal/driver"
)

var (
	changedColor  = color.New(color.FgGreen)
	restoredColor = color.New(color.FgCyan)
	errorColor    = color.New(color.FgRed, color.Bold)
)

// buildOptions resolves the persistent flags and the discovered manifest
// into driver options shared by every subcommand.
func buildOptions(cmd *cobra.Command) (driver.Options, error) {
	root, err := cmd.Root().PersistentFlags().GetString("root")
	if err != nil {
		return driver.Options{}, err
	}
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return driver.Options{}, err
	}

	cfg, path, err := config.Discover(root)
	if err != nil {
		return driver.Options{}, err
	}
	verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
	if err != nil {
		return driver.Options{}, err
	}
	if verbose && path != "" {
		fmt.Fprintf(os.Stderr, "using configuration from %s\n", path)
	}

	return driver.Options{Root: root, Config: cfg, Jobs: jobs}, nil
}

// renderResults prints per-file outcomes and reports whether any file
// failed. In non-verbose mode only changed, restored, and failed files are
// shown.
func renderResults(cmd *cobra.Command, results []driver.Result) (failed bool, err error) {
	verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
	if err != nil {
		return false, err
	}

	for _, res := range results {
		switch {
		case res.Err != nil:
			failed = true
			fmt.Fprintf(os.Stderr, "%s %s: %v\n", errorColor.Sprint("error"), res.Path, res.Err)
		case res.Changed:
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", changedColor.Sprint("rewrote"), res.Path)
		case res.Restored:
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", restoredColor.Sprint("restored"), res.Path)
		case verbose:
			fmt.Fprintf(cmd.OutOrStdout(), "unchanged %s\n", res.Path)
		}
	}
	return failed, nil
}
