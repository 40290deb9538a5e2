package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gofold/pkg/foldtree"
	"github.com/yaklabco/gofold/pkg/runner"
)

// jsonVersion is the version of the JSON output schema.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
// All line numbers are zero-based, matching node records.
type JSONOutput struct {
	Version string      `json:"version"`
	Files   []JSONFile  `json:"files"`
	Summary JSONSummary `json:"summary"`
}

// JSONFile represents a single file's fold tree.
type JSONFile struct {
	Path     string           `json:"path"`
	Language string           `json:"language,omitempty"`
	Skipped  bool             `json:"skipped,omitempty"`
	Error    string           `json:"error,omitempty"`
	Ranges   []foldtree.Range `json:"ranges"`
	Folds    []JSONFold       `json:"folds"`
	Warnings []JSONWarning    `json:"warnings"`
}

// JSONFold is a node record plus its label.
type JSONFold struct {
	foldtree.Record
	Label string `json:"label,omitempty"`
}

// JSONWarning represents a single marker warning.
type JSONWarning struct {
	Kind    string `json:"kind"`
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered   int `json:"filesDiscovered"`
	FilesProcessed    int `json:"filesProcessed"`
	FilesSkipped      int `json:"filesSkipped"`
	FilesErrored      int `json:"filesErrored"`
	Folds             int `json:"folds"`
	Warnings          int `json:"warnings"`
	FilesWithWarnings int `json:"filesWithWarnings"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output, total := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return total, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) (*JSONOutput, int) {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFile, 0),
	}
	if result == nil {
		return output, 0
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered:   stats.FilesDiscovered,
		FilesProcessed:    stats.FilesProcessed,
		FilesSkipped:      stats.FilesSkipped,
		FilesErrored:      stats.FilesErrored,
		Folds:             stats.Folds,
		Warnings:          stats.Warnings,
		FilesWithWarnings: stats.FilesWithWarnings,
	}

	var total int
	output.Files = make([]JSONFile, 0, len(result.Files))
	for _, file := range result.Files {
		output.Files = append(output.Files, buildFile(file, r.opts.displayPath(file.Path)))
		total += count(file, r.opts.WarningsOnly)
	}

	return output, total
}

func buildFile(file runner.FileOutcome, path string) JSONFile {
	entry := JSONFile{
		Path:     path,
		Language: file.Language,
		Skipped:  file.Skipped,
		Ranges:   make([]foldtree.Range, 0),
		Folds:    make([]JSONFold, 0),
		Warnings: make([]JSONWarning, 0),
	}

	if file.Error != nil {
		entry.Error = file.Error.Error()
		return entry
	}
	if !reportable(file) {
		return entry
	}

	entry.Ranges = append(entry.Ranges, file.Tree.Ranges()...)
	file.Tree.Walk(foldtree.VisitorFunc(func(node *foldtree.Node) bool {
		entry.Folds = append(entry.Folds, JSONFold{
			Record: node.Record(),
			Label:  foldLabel(file, node),
		})
		return true
	}))
	for _, warning := range file.Tree.Warnings() {
		entry.Warnings = append(entry.Warnings, JSONWarning{
			Kind:    warning.Kind.String(),
			Line:    warning.Line,
			Message: warning.Message(),
		})
	}

	return entry
}
