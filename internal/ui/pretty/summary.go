package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gofold/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 folds in 3 files, 2 warnings in 1 file, 1 skipped".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	parts := []string{
		fmt.Sprintf("%d %s in %d %s",
			stats.Folds, plural(stats.Folds, "fold", "folds"),
			stats.FilesProcessed, plural(stats.FilesProcessed, "file", "files")),
	}

	if stats.Warnings > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s in %d %s",
			stats.Warnings, plural(stats.Warnings, "warning", "warnings"),
			stats.FilesWithWarnings, plural(stats.FilesWithWarnings, "file", "files"))))
	} else {
		parts = append(parts, s.Success.Render("no marker warnings"))
	}

	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d errored", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files parsed:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesSkipped > 0 {
		builder.WriteString("  Files skipped:      " +
			s.Dim.Render(strconv.Itoa(stats.FilesSkipped)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files errored:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString("  Folds:              " +
		s.SummaryValue.Render(strconv.Itoa(stats.Folds)) + "\n")

	if stats.Warnings > 0 {
		builder.WriteString("  Marker warnings:    " +
			s.Warning.Render(strconv.Itoa(stats.Warnings)) + "\n")
		builder.WriteString("  Files with warnings: " +
			s.Warning.Render(strconv.Itoa(stats.FilesWithWarnings)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Some files could not be read"))
	case stats.Warnings > 0:
		builder.WriteString(s.Warning.Render("Fold markers are unbalanced"))
	default:
		builder.WriteString(s.Success.Render("Fold markers are balanced"))
	}
	builder.WriteString("\n")

	return builder.String()
}
