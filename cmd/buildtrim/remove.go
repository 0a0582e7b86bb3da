package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"buildtrim/internal/driver"
)

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Rewrite build files with test and benchmark sections removed",
	Args:  cobra.NoArgs,
	RunE:  runRemove,
}

func init() {
	removeCmd.Flags().Bool("blueprint-only", false, "process only Android.bp files")
	removeCmd.Flags().Bool("makefile-only", false, "process only Android.mk files")
	removeCmd.Flags().Bool("no-backup", false, "rewrite in place without taking backups")
	removeCmd.MarkFlagsMutuallyExclusive("blueprint-only", "makefile-only")
}

func runRemove(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}
	if opts.BlueprintOnly, err = cmd.Flags().GetBool("blueprint-only"); err != nil {
		return err
	}
	if opts.MakefileOnly, err = cmd.Flags().GetBool("makefile-only"); err != nil {
		return err
	}
	if opts.DisableBackup, err = cmd.Flags().GetBool("no-backup"); err != nil {
		return err
	}

	results, err := driver.RemoveDev(cmd.Context(), opts)
	if err != nil {
		return err
	}

	failed, err := renderResults(cmd, results)
	if err != nil {
		return err
	}
	if failed {
		return fmt.Errorf("remove: failed to rewrite some files")
	}
	return nil
}
