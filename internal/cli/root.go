// Package cli provides the Cobra command structure for gofold.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gofold/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// versionAnnotation carries the build version to subcommands.
const versionAnnotation = "version"

// NewRootCommand creates the root gofold command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gofold",
		Short: "Inspect and edit marker-based folds in source files",
		Long: `gofold reads the fold markers embedded in source comments and builds a
fold tree for each file.

A fold opens on a line containing the language's comment prefix followed by
{{{ (for example #{{{ in Python or //{{{ in Rust) and closes on the matching
}}} line. gofold reports fold ranges, finds the fold enclosing a line, checks
that markers are balanced, and adds, removes, copies or cuts folds.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		Annotations:   map[string]string{versionAnnotation: info.Version},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newRangesCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newAtCommand())
	rootCmd.AddCommand(newTreeCommand())
	rootCmd.AddCommand(newAddCommand())
	rootCmd.AddCommand(newRemoveCommand())
	rootCmd.AddCommand(newCopyCommand())
	rootCmd.AddCommand(newCutCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newLanguagesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
