package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"buildtrim/internal/driver"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy every discovered build file aside without rewriting",
	Args:  cobra.NoArgs,
	RunE:  runBackup,
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Put every backed-up build file back in place",
	Args:  cobra.NoArgs,
	RunE:  runRestore,
}

func runBackup(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}
	results, err := driver.BackupAll(cmd.Context(), opts)
	if err != nil {
		return err
	}

	failed, err := renderResults(cmd, results)
	if err != nil {
		return err
	}
	if failed {
		return fmt.Errorf("backup: failed to back up some files")
	}
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}
	results, err := driver.RestoreAll(cmd.Context(), opts)
	if err != nil {
		return err
	}

	failed, err := renderResults(cmd, results)
	if err != nil {
		return err
	}
	if failed {
		return fmt.Errorf("restore: failed to restore some files")
	}
	return nil
}
