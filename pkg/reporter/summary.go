package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gofold/internal/ui/pretty"
	"github.com/yaklabco/gofold/pkg/runner"
)

// SummaryReporter writes only aggregate statistics.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	var stats runner.Stats
	var total int
	if result != nil {
		stats = result.Stats
		for _, file := range result.Files {
			total += count(file, r.opts.WarningsOnly)
		}
	}

	if r.opts.Compact {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(stats))
	} else {
		fmt.Fprint(r.bw, r.styles.FormatSummary(stats))
	}

	return total, nil
}
