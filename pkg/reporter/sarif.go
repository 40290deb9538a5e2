package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/gofold/pkg/foldtree"
	"github.com/yaklabco/gofold/pkg/runner"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

const (
	sarifToolName = "gofold"
	sarifToolURI  = "https://github.com/yaklabco/gofold"

	// ruleFileError is reported for files that could not be read.
	ruleFileError = "file-error"
)

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes one kind of marker problem.
type SARIFRule struct {
	ID               string          `json:"id"`
	ShortDescription SARIFMessage    `json:"shortDescription"`
	DefaultConfig    SARIFRuleConfig `json:"defaultConfiguration"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult represents a single diagnostic.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

// SARIFMessage holds plain text.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains the file and, for marker warnings, the line.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           *SARIFRegion          `json:"region,omitempty"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion is a one-based line region.
type SARIFRegion struct {
	StartLine int `json:"startLine"`
}

// SARIFReporter formats marker warnings as SARIF.
type SARIFReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. It returns the number of SARIF results,
// which includes unreadable files.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return len(output.Runs[0].Results), nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	run := SARIFRun{
		Tool: SARIFTool{
			Driver: SARIFDriver{
				Name:           sarifToolName,
				Version:        r.opts.ToolVersion,
				InformationURI: sarifToolURI,
				Rules:          sarifRules(),
			},
		},
		Results: make([]SARIFResult, 0),
	}

	if result != nil {
		for _, file := range result.Files {
			run.Results = append(run.Results, r.fileResults(file)...)
		}
	}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

func (r *SARIFReporter) fileResults(file runner.FileOutcome) []SARIFResult {
	artifact := SARIFArtifactLocation{URI: filepath.ToSlash(r.opts.displayPath(file.Path))}

	if file.Error != nil {
		return []SARIFResult{{
			RuleID:  ruleFileError,
			Level:   "error",
			Message: SARIFMessage{Text: file.Error.Error()},
			Locations: []SARIFLocation{{
				PhysicalLocation: SARIFPhysicalLocation{ArtifactLocation: artifact},
			}},
		}}
	}
	if !reportable(file) {
		return nil
	}

	warnings := file.Tree.Warnings()
	results := make([]SARIFResult, 0, len(warnings))
	for _, warning := range warnings {
		results = append(results, SARIFResult{
			RuleID:  warning.Kind.String(),
			Level:   "warning",
			Message: SARIFMessage{Text: warning.Message()},
			Locations: []SARIFLocation{{
				PhysicalLocation: SARIFPhysicalLocation{
					ArtifactLocation: artifact,
					Region:           &SARIFRegion{StartLine: warning.Line + 1},
				},
			}},
		})
	}
	return results
}

// sarifRules lists every rule a result can reference, in a fixed order.
func sarifRules() []SARIFRule {
	rules := make([]SARIFRule, 0, 3)
	for _, kind := range []foldtree.WarningKind{foldtree.WarningUnmatchedEnd, foldtree.WarningUnterminated} {
		rules = append(rules, SARIFRule{
			ID:               kind.String(),
			ShortDescription: SARIFMessage{Text: foldtree.Warning{Kind: kind}.Message()},
			DefaultConfig:    SARIFRuleConfig{Level: "warning"},
		})
	}
	return append(rules, SARIFRule{
		ID:               ruleFileError,
		ShortDescription: SARIFMessage{Text: "file could not be read"},
		DefaultConfig:    SARIFRuleConfig{Level: "error"},
	})
}
