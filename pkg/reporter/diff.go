package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/gofold/internal/ui/pretty"
	"github.com/yaklabco/gofold/pkg/edit"
)

// DiffWriter prints unified diffs for dry-run edits.
type DiffWriter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewDiffWriter creates a new diff writer.
func NewDiffWriter(opts Options) *DiffWriter {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffWriter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Write outputs diff followed by a change summary when ShowSummary is set.
// A nil or empty diff writes nothing.
func (w *DiffWriter) Write(diff *edit.Diff) error {
	if !diff.HasChanges() {
		return nil
	}

	if _, err := fmt.Fprint(w.out, w.styles.FormatDiff(diff)); err != nil {
		return fmt.Errorf("write diff: %w", err)
	}
	if w.opts.ShowSummary {
		if _, err := fmt.Fprintln(w.out, w.summary(diff)); err != nil {
			return fmt.Errorf("write diff summary: %w", err)
		}
	}
	return nil
}

func (w *DiffWriter) summary(diff *edit.Diff) string {
	parts := []string{"1 file changed"}

	if diff.Additions > 0 {
		word := "insertions"
		if diff.Additions == 1 {
			word = "insertion"
		}
		parts = append(parts, w.styles.DiffAdd.Render(fmt.Sprintf("%d %s(+)", diff.Additions, word)))
	}
	if diff.Deletions > 0 {
		word := "deletions"
		if diff.Deletions == 1 {
			word = "deletion"
		}
		parts = append(parts, w.styles.DiffRemove.Render(fmt.Sprintf("%d %s(-)", diff.Deletions, word)))
	}

	return strings.Join(parts, ", ")
}
