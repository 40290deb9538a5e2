package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gofold/internal/ui/pretty"
	"github.com/yaklabco/gofold/pkg/foldtree"
	"github.com/yaklabco/gofold/pkg/runner"
)

// TableReporter formats folds as a single table, followed by warnings.
type TableReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TableReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var rows []pretty.FoldRow
	var warningLines []string
	var total int

	for _, file := range result.Files {
		path := r.opts.displayPath(file.Path)
		if file.Error != nil {
			warningLines = append(warningLines, r.styles.FormatError(path, file.Error))
			continue
		}
		if !reportable(file) {
			continue
		}

		if !r.opts.WarningsOnly {
			file.Tree.Walk(foldtree.VisitorFunc(func(node *foldtree.Node) bool {
				rows = append(rows, pretty.FoldRow{
					File:  path,
					Start: node.Start + 1,
					End:   node.End + 1,
					Level: node.Level,
					Label: foldLabel(file, node),
				})
				return true
			}))
		}
		for _, warning := range file.Tree.Warnings() {
			warningLines = append(warningLines, r.styles.FormatWarning(path, warning))
		}
		total += count(file, r.opts.WarningsOnly)
	}

	fmt.Fprint(r.bw, r.styles.FormatFoldTable(rows))
	for _, line := range warningLines {
		fmt.Fprint(r.bw, line)
	}
	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}
