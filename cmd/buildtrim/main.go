package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"buildtrim/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "buildtrim",
	Short: "Prune test and benchmark sections from Android build files",
	Long:  `buildtrim rewrites Android.bp and Android.mk trees, removing the test and benchmark sections that bloat cross-compilation sysroots`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("root", ".", "directory tree to process")
	rootCmd.PersistentFlags().Int("jobs", 0, "maximum files processed in parallel (0 means one per CPU)")
	rootCmd.PersistentFlags().Bool("verbose", false, "report every processed file, not just changed ones")

	if !isTerminal(os.Stdout) {
		color.NoColor = true
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
