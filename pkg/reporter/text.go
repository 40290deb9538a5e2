package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gofold/internal/ui/pretty"
	"github.com/yaklabco/gofold/pkg/foldtree"
	"github.com/yaklabco/gofold/pkg/runner"
)

// TextReporter formats results as a styled fold outline.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No files found."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		path := r.opts.displayPath(file.Path)

		if file.Error != nil {
			fmt.Fprint(r.bw, r.styles.FormatError(path, file.Error))
			continue
		}
		if !reportable(file) {
			continue
		}

		warnings := file.Tree.Warnings()
		if r.opts.WarningsOnly && len(warnings) == 0 {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, file.Language, file.Tree.Len()))
		if !r.opts.WarningsOnly {
			fmt.Fprint(r.bw, r.styles.FormatOutline(file.Tree, func(node *foldtree.Node) string {
				return foldLabel(file, node)
			}))
		}
		for _, warning := range warnings {
			fmt.Fprint(r.bw, r.styles.FormatWarning(path, warning))
		}
		fmt.Fprintln(r.bw)

		total += count(file, r.opts.WarningsOnly)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}
