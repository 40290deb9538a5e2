package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gofold/internal/ui/pretty"
	"github.com/yaklabco/gofold/pkg/runner"
)

func TestFormatSummary_Balanced(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{FilesProcessed: 5, Folds: 12})

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files parsed:")
	assert.Contains(t, result, "12")
	assert.Contains(t, result, "Fold markers are balanced")
	assert.NotContains(t, result, "Marker warnings:")
	assert.NotContains(t, result, "Files skipped:")
}

func TestFormatSummary_Warnings(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{
		FilesProcessed:    4,
		FilesSkipped:      1,
		Folds:             7,
		Warnings:          3,
		FilesWithWarnings: 2,
	})

	assert.Contains(t, result, "Marker warnings:    3")
	assert.Contains(t, result, "Files with warnings: 2")
	assert.Contains(t, result, "Files skipped:      1")
	assert.Contains(t, result, "Fold markers are unbalanced")
}

func TestFormatSummary_Errored(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{FilesErrored: 1, Warnings: 1})

	assert.Contains(t, result, "Files errored:      1")
	assert.Contains(t, result, "Some files could not be read")
}

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "clean",
			stats: runner.Stats{FilesProcessed: 3, Folds: 12},
			want:  "12 folds in 3 files, no marker warnings\n",
		},
		{
			name:  "singular",
			stats: runner.Stats{FilesProcessed: 1, Folds: 1, Warnings: 1, FilesWithWarnings: 1},
			want:  "1 fold in 1 file, 1 warning in 1 file\n",
		},
		{
			name:  "skipped and errored",
			stats: runner.Stats{FilesProcessed: 2, Folds: 0, FilesSkipped: 1, FilesErrored: 2},
			want:  "0 folds in 2 files, no marker warnings, 1 skipped, 2 errored\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}
