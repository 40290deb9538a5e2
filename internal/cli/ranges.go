package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gofold/internal/logging"
	"github.com/yaklabco/gofold/pkg/config"
	"github.com/yaklabco/gofold/pkg/reporter"
	"github.com/yaklabco/gofold/pkg/runner"
)

type scanFlags struct {
	format          string
	ignore          []string
	jobs            int
	includeVendored bool
	followSymlinks  bool
	compact         bool
}

func addScanFlags(cmd *cobra.Command, flags *scanFlags) {
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text",
		"output format: text, table, json, summary, sarif")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil,
		"glob patterns of files or directories to skip")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "parallel workers (0 means NumCPU)")
	cmd.Flags().BoolVar(&flags.includeVendored, "include-vendored", false,
		"scan vendored and third-party directories")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false,
		"follow symlinked directories while scanning")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "compact output (minified JSON, one-line summary)")
}

func newRangesCommand() *cobra.Command {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "ranges [paths...]",
		Short: "List fold ranges",
		Long: `List the folds of every supported file, outermost first.

By default scans the current directory for files whose language has fold
markers. Hidden and vendored directories are skipped. Line numbers are
one-based in text and table output and zero-based in JSON.`,
		Example: `  gofold ranges
  gofold ranges src/ --format table
  gofold ranges main.py --format json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runScan(cmd, args, flags, false)
			if err != nil {
				return err
			}
			if result.HasErrors() {
				return fmt.Errorf("%w: %d files", ErrFilesUnreadable, result.Stats.FilesErrored)
			}
			return nil
		},
	}

	addScanFlags(cmd, flags)
	return cmd
}

func newCheckCommand() *cobra.Command {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report unbalanced fold markers",
		Long: `Report close markers without an open marker and folds that are never closed.

Exits with status 1 when any marker warning is found.`,
		Example: `  gofold check
  gofold check src/ --format summary
  gofold check --format sarif > gofold.sarif`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runScan(cmd, args, flags, true)
			if err != nil {
				return err
			}
			switch ExitCodeFromResult(result) {
			case ExitIOError:
				return fmt.Errorf("%w: %d files", ErrFilesUnreadable, result.Stats.FilesErrored)
			case ExitFindings:
				return ErrWarningsFound
			default:
				return nil
			}
		},
	}

	addScanFlags(cmd, flags)
	return cmd
}

// runScan parses every file under args and reports the folds, or only the
// marker warnings when warningsOnly is set.
func runScan(cmd *cobra.Command, args []string, flags *scanFlags, warningsOnly bool) (*runner.Result, error) {
	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	cfg, workDir, err := loadConfig(cmd, &config.Config{
		Format: config.OutputFormat(format),
		Ignore: flags.ignore,
		Jobs:   flags.jobs,
	})
	if err != nil {
		return nil, err
	}

	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	opts := runner.OptionsFromConfig(cfg, args)
	opts.WorkingDir = workDir
	opts.IncludeVendored = flags.includeVendored
	opts.FollowSymlinks = flags.followSymlinks

	logger.Debug("starting scan",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := runner.New(nil, cfg).Run(ctx, opts)
	if err != nil {
		return nil, errors.Join(errors.New("scan failed"), err)
	}

	repOpts := reporterOptions(cmd, cfg, workDir)
	repOpts.Format = reporter.Format(cfg.Format)
	repOpts.WarningsOnly = warningsOnly
	repOpts.Compact = flags.compact
	repOpts.ToolVersion = cmd.Root().Annotations[versionAnnotation]

	rep, err := reporter.New(repOpts)
	if err != nil {
		return nil, fmt.Errorf("create reporter: %w", err)
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}

	logger.Debug("scan complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
	)

	return result, nil
}
