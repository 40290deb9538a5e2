package edit

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of context lines shown around changes.
const contextLines = 3

// Diff is a unified diff between original and modified content.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Unified is the rendered "---/+++/@@" body.
	Unified string

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// GenerateDiff creates a unified diff between original and modified content.
// Returns nil if there are no changes.
func GenerateDiff(path string, original, modified []byte) (*Diff, error) {
	if string(original) == string(modified) {
		return nil, nil
	}

	origLines := difflib.SplitLines(string(original))
	modLines := difflib.SplitLines(string(modified))

	displayPath := strings.TrimPrefix(path, "/")
	unified, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        origLines,
		B:        modLines,
		FromFile: "a/" + displayPath,
		ToFile:   "b/" + displayPath,
		Context:  contextLines,
	})
	if err != nil {
		return nil, fmt.Errorf("render diff for %s: %w", path, err)
	}

	diff := &Diff{Path: path, Unified: unified}

	matcher := difflib.NewMatcher(origLines, modLines)
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'r':
			diff.Deletions += op.I2 - op.I1
			diff.Additions += op.J2 - op.J1
		case 'd':
			diff.Deletions += op.I2 - op.I1
		case 'i':
			diff.Additions += op.J2 - op.J1
		}
	}

	return diff, nil
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the diff in unified format without the git header.
func (d *Diff) String() string {
	if d == nil {
		return ""
	}
	return d.Unified
}

// FullString returns the complete diff including the git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.Unified
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && d.Unified != ""
}
