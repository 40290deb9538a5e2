// Package main is the entry point for the gofold CLI.
package main

import (
	"os"

	"github.com/yaklabco/gofold/internal/cli"
	"github.com/yaklabco/gofold/internal/logging"
)

// Build-time variables set through -ldflags by the stave Build target.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Warnings found and missing folds only set the exit code.
		if !cli.IsSilent(err) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCode(err)
	}

	return cli.ExitSuccess
}
