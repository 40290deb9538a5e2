package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gofold/internal/logging"
	"github.com/yaklabco/gofold/pkg/config"
	"github.com/yaklabco/gofold/pkg/foldtree"
	"github.com/yaklabco/gofold/pkg/fsutil"
	"github.com/yaklabco/gofold/pkg/langdetect"
	"github.com/yaklabco/gofold/pkg/source"
)

// Runner discovers files and builds a fold tree for each of them.
type Runner struct {
	// Detector resolves each file to a marker-table language.
	Detector *langdetect.Detector
}

// New creates a Runner using detector. A nil detector is built from cfg
// (or the defaults when cfg is nil).
func New(detector *langdetect.Detector, cfg *config.Config) *Runner {
	if detector == nil {
		if cfg == nil {
			cfg = config.NewConfig()
		}
		detector = langdetect.New(cfg.MarkerTable(), cfg.Extensions)
	}
	return &Runner{Detector: detector}
}

// Run discovers files under opts.Paths and parses them concurrently.
// Outcomes are ordered by path regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Extensions == nil {
		opts.Extensions = r.Detector.Extensions()
	}

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for idx, path := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcomes[idx] = r.ProcessFile(groupCtx, path)
			done[idx] = true
			return nil
		})
	}
	waitErr := group.Wait()

	for idx, outcome := range outcomes {
		if done[idx] {
			result.accumulate(outcome)
		}
	}

	logger.Debug("run complete",
		logging.FieldJobs, jobs,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
	)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	if waitErr != nil {
		return result, fmt.Errorf("run: %w", waitErr)
	}

	return result, nil
}

// ProcessFile reads, detects and parses a single file.
func (r *Runner) ProcessFile(ctx context.Context, path string) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Info = info
	outcome.Snapshot = source.New(path, content)
	outcome.Language = r.Detector.Detect(path, content)

	if !r.Detector.Supports(outcome.Language) {
		outcome.Skipped = true
		return outcome
	}

	outcome.Markers = r.Detector.Markers(outcome.Language)
	outcome.Tree = foldtree.ParseWith(outcome.Snapshot.Texts(), outcome.Markers)

	logging.FromContext(ctx).Debug("parsed",
		logging.FieldPath, path,
		logging.FieldLanguage, outcome.Language,
		logging.FieldFolds, outcome.Tree.Len(),
		logging.FieldWarnings, len(outcome.Tree.Warnings()),
	)

	return outcome
}
