package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gofold/internal/configloader"
	"github.com/yaklabco/gofold/internal/logging"
	"github.com/yaklabco/gofold/pkg/config"
	"github.com/yaklabco/gofold/pkg/edit"
	"github.com/yaklabco/gofold/pkg/foldedit"
	"github.com/yaklabco/gofold/pkg/fsutil"
	"github.com/yaklabco/gofold/pkg/reporter"
	"github.com/yaklabco/gofold/pkg/runner"
)

// commandContext returns the command's context with the default logger attached.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

// loadConfig resolves the layered configuration with overrides (flag values)
// on top. It returns the configuration and the working directory.
func loadConfig(cmd *cobra.Command, overrides *config.Config) (*config.Config, string, error) {
	logger := logging.Default()

	if overrides == nil {
		overrides = &config.Config{}
	}
	if colorMode, err := cmd.Flags().GetString("color"); err == nil && cmd.Flags().Changed("color") {
		overrides.Color = colorMode
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    overrides,
	})
	if err != nil {
		return nil, "", errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldConfig, loadResult.LoadedFrom)
	}
	logger.Debug("configuration loaded",
		logging.FieldDryRun, loadResult.Config.DryRun,
		logging.FieldJobs, loadResult.Config.Jobs,
	)

	return loadResult.Config, workDir, nil
}

// openFile reads and parses a single file. Files without fold markers are an error.
func openFile(ctx context.Context, cfg *config.Config, path string) (runner.FileOutcome, error) {
	outcome := runner.New(nil, cfg).ProcessFile(ctx, path)
	if outcome.Error != nil {
		return outcome, outcome.Error
	}
	if outcome.Skipped {
		return outcome, fmt.Errorf("%s: %w: %q", path, foldedit.ErrUnsupportedLanguage, outcome.Language)
	}
	return outcome, nil
}

// parseLine converts a one-based line argument to a zero-based index.
func parseLine(arg string) (int, error) {
	line, err := strconv.Atoi(arg)
	if err != nil || line < 1 {
		return 0, fmt.Errorf("%w: line %q must be a positive integer", ErrUsage, arg)
	}
	return line - 1, nil
}

// reporterOptions builds reporter options for cmd's output streams.
func reporterOptions(cmd *cobra.Command, cfg *config.Config, workDir string) reporter.Options {
	opts := reporter.DefaultOptions()
	opts.Writer = cmd.OutOrStdout()
	opts.ErrorWriter = cmd.ErrOrStderr()
	opts.Color = cfg.Color
	opts.WorkingDir = workDir
	return opts
}

// commitEdits applies edits to the opened file. With dryRun set it prints a
// diff instead of writing.
func commitEdits(
	cmd *cobra.Command,
	cfg *config.Config,
	workDir string,
	outcome runner.FileOutcome,
	edits []edit.TextEdit,
) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	original := outcome.Snapshot.Content
	modified, err := edit.ApplyAll(original, edits)
	if err != nil {
		return fmt.Errorf("apply edits: %w", err)
	}

	if cfg.DryRun {
		diff, err := edit.GenerateDiff(outcome.Path, original, modified)
		if err != nil {
			return fmt.Errorf("generate diff: %w", err)
		}
		opts := reporterOptions(cmd, cfg, workDir)
		opts.ShowSummary = true
		return reporter.NewDiffWriter(opts).Write(diff)
	}

	backups := fsutil.BackupConfig{
		Enabled: cfg.BackupsActive(),
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
	result, err := fsutil.Commit(ctx, outcome.Info, original, modified, backups)
	if err != nil {
		return fmt.Errorf("write %s: %w", outcome.Path, err)
	}

	logger.Info("file updated",
		logging.FieldPath, result.Path,
		logging.FieldBackup, result.BackupPath,
	)
	return nil
}
