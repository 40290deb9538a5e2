// Package reporter renders fold trees and marker warnings for a run.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gofold/pkg/foldedit"
	"github.com/yaklabco/gofold/pkg/foldtree"
	"github.com/yaklabco/gofold/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of items reported (folds, or warnings when
	// WarningsOnly is set) and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	default:
		return NewTextReporter(opts), nil
	}
}

// foldLabel returns the label written after the open marker of node.
func foldLabel(outcome runner.FileOutcome, node *foldtree.Node) string {
	if outcome.Snapshot == nil {
		return ""
	}
	return foldedit.Label(outcome.Snapshot.Text(node.Start), outcome.Markers)
}

// reportable reports whether the outcome has a tree to render.
func reportable(outcome runner.FileOutcome) bool {
	return outcome.Error == nil && !outcome.Skipped && outcome.Tree != nil
}

// count returns the number of items an outcome contributes.
func count(outcome runner.FileOutcome, warningsOnly bool) int {
	if !reportable(outcome) {
		return 0
	}
	if warningsOnly {
		return len(outcome.Tree.Warnings())
	}
	return outcome.Tree.Len()
}
