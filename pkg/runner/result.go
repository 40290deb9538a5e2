package runner

import (
	"github.com/yaklabco/gofold/pkg/foldtree"
	"github.com/yaklabco/gofold/pkg/fsutil"
	"github.com/yaklabco/gofold/pkg/source"
)

// FileOutcome is the parse result for one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Language is the detected language ID. Empty for binary files.
	Language string

	// Snapshot holds the file content split into lines.
	// Nil when the file could not be read.
	Snapshot *source.Snapshot

	// Markers are the fold markers used to parse Tree.
	Markers foldtree.Markers

	// Tree is the fold tree. Nil when the file was skipped or errored.
	Tree *foldtree.Tree

	// Info is the read-time metadata used to detect concurrent modification.
	Info *fsutil.FileInfo

	// Skipped is set when the language has no fold markers.
	Skipped bool

	// Error is set if the file could not be processed.
	Error error
}

// HasWarnings reports whether the tree recorded marker warnings.
func (o FileOutcome) HasWarnings() bool {
	return o.Tree != nil && len(o.Tree.Warnings()) > 0
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files parsed into a tree.
	FilesProcessed int

	// FilesSkipped is the number of files whose language has no markers.
	FilesSkipped int

	// FilesErrored is the number of files that could not be read.
	FilesErrored int

	// Folds is the total number of folds across all trees.
	Folds int

	// Warnings is the total number of marker warnings.
	Warnings int

	// FilesWithWarnings is the number of files with at least one warning.
	FilesWithWarnings int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each discovered file,
	// ordered deterministically by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasWarnings reports whether any file recorded marker warnings.
func (r *Result) HasWarnings() bool {
	if r == nil {
		return false
	}
	return r.Stats.Warnings > 0
}

// HasErrors reports whether any file failed to process.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
		return
	case outcome.Skipped:
		r.Stats.FilesSkipped++
		return
	case outcome.Tree == nil:
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.Folds += outcome.Tree.Len()

	if warnings := len(outcome.Tree.Warnings()); warnings > 0 {
		r.Stats.Warnings += warnings
		r.Stats.FilesWithWarnings++
	}
}
