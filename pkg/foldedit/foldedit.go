// Package foldedit computes the text edits behind fold commands: wrapping
// lines in a new fold, removing a fold's markers, and copying or cutting a
// whole fold. Functions never touch the filesystem; they return edits to be
// applied with package edit.
package foldedit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/gofold/pkg/edit"
	"github.com/yaklabco/gofold/pkg/foldtree"
	"github.com/yaklabco/gofold/pkg/source"
)

// Sentinel errors for fold commands.
var (
	// ErrNoFoldAtLine indicates the line is not inside any fold.
	ErrNoFoldAtLine = errors.New("no fold at line")

	// ErrNotOnMarker indicates the line is inside a fold but not on the required marker line.
	ErrNotOnMarker = errors.New("line is not on a fold marker")

	// ErrLineOutOfRange indicates a line index outside the document.
	ErrLineOutOfRange = errors.New("line out of range")

	// ErrUnsupportedLanguage indicates the markers have no comment prefix.
	ErrUnsupportedLanguage = errors.New("language has no fold markers")

	// ErrCrossesFold indicates a new fold would interleave with an existing one.
	ErrCrossesFold = errors.New("range crosses an existing fold")
)

// Add returns the edits that wrap lines [startLine, endLine] in a new fold.
// The open marker is indented like startLine and the close marker like endLine.
// A non-empty label is written after the open token.
func Add(
	snap *source.Snapshot,
	tree *foldtree.Tree,
	markers foldtree.Markers,
	startLine, endLine int,
	label string,
) ([]edit.TextEdit, error) {
	if markers.Start == "" {
		return nil, ErrUnsupportedLanguage
	}
	if startLine > endLine {
		startLine, endLine = endLine, startLine
	}
	if !snap.Valid(startLine) || !snap.Valid(endLine) {
		return nil, fmt.Errorf("%w: [%d,%d] in %d lines", ErrLineOutOfRange, startLine, endLine, snap.LineCount())
	}
	if node := crossingNode(tree, startLine, endLine); node != nil {
		return nil, fmt.Errorf("%w: [%d,%d]", ErrCrossesFold, node.Start, node.End)
	}

	newline := snap.Newline()
	openLine := snap.Indentation(startLine) + openText(markers, label)
	closeLine := snap.Indentation(endLine) + closeText(markers)

	builder := edit.NewBuilder()
	builder.Insert(snap.LineStart(startLine), openLine+newline)
	if snap.HasNewline(endLine) {
		builder.Insert(snap.LineEnd(endLine), closeLine+newline)
	} else {
		builder.Insert(snap.LineEnd(endLine), newline+closeLine)
	}

	return builder.Edits(), nil
}

// Remove returns the edits that delete both marker lines of the fold whose
// open or close marker sits on line. The fold's contents are kept.
func Remove(snap *source.Snapshot, tree *foldtree.Tree, line int) ([]edit.TextEdit, error) {
	node, err := nodeAt(snap, tree, line)
	if err != nil {
		return nil, err
	}
	if line != node.Start && line != node.End {
		return nil, fmt.Errorf("%w: line %d is inside [%d,%d]", ErrNotOnMarker, line, node.Start, node.End)
	}

	builder := edit.NewBuilder()
	if node.End-node.Start <= 1 {
		deleteLines(builder, snap, node.Start, node.End)
	} else {
		deleteLines(builder, snap, node.Start, node.Start)
		deleteLines(builder, snap, node.End, node.End)
	}

	return builder.Edits(), nil
}

// Copy returns the text of the fold that opens on line, markers included,
// without the final line terminator.
func Copy(snap *source.Snapshot, tree *foldtree.Tree, line int) (string, error) {
	node, err := openingNode(snap, tree, line)
	if err != nil {
		return "", err
	}
	return foldText(snap, node), nil
}

// Cut returns the text of the fold that opens on line together with the edit
// that deletes its lines.
func Cut(snap *source.Snapshot, tree *foldtree.Tree, line int) (string, []edit.TextEdit, error) {
	node, err := openingNode(snap, tree, line)
	if err != nil {
		return "", nil, err
	}

	builder := edit.NewBuilder()
	deleteLines(builder, snap, node.Start, node.End)

	return foldText(snap, node), builder.Edits(), nil
}

// Label returns the text following the open token on a marker line, trimmed
// of whitespace and of the markers' comment terminator. Lines without an open
// marker have no label.
func Label(text string, markers foldtree.Markers) string {
	if markers.Start == "" {
		return ""
	}

	_, after, found := strings.Cut(text, markers.OpenMarker())
	if !found {
		return ""
	}

	label := strings.TrimSpace(after)
	if markers.End != "" {
		label = strings.TrimSpace(strings.TrimSuffix(label, markers.End))
	}
	return label
}

func openText(markers foldtree.Markers, label string) string {
	text := markers.OpenMarker()
	if label = strings.TrimSpace(label); label != "" {
		text += " " + label
	}
	if markers.End != "" {
		text += " " + markers.End
	}
	return text
}

func closeText(markers foldtree.Markers) string {
	text := markers.CloseMarker()
	if markers.End != "" {
		text += " " + markers.End
	}
	return text
}

func nodeAt(snap *source.Snapshot, tree *foldtree.Tree, line int) (*foldtree.Node, error) {
	if !snap.Valid(line) {
		return nil, fmt.Errorf("%w: %d in %d lines", ErrLineOutOfRange, line, snap.LineCount())
	}
	node := tree.NodeAt(line)
	if node == nil {
		return nil, fmt.Errorf("%w: %d", ErrNoFoldAtLine, line)
	}
	return node, nil
}

func openingNode(snap *source.Snapshot, tree *foldtree.Tree, line int) (*foldtree.Node, error) {
	node, err := nodeAt(snap, tree, line)
	if err != nil {
		return nil, err
	}
	if line != node.Start {
		return nil, fmt.Errorf("%w: fold [%d,%d] opens on line %d", ErrNotOnMarker, node.Start, node.End, node.Start)
	}
	return node, nil
}

func foldText(snap *source.Snapshot, node *foldtree.Node) string {
	start := snap.LineStart(node.Start)
	end := snap.Lines[node.End].NewlineStart
	return string(snap.Content[start:end])
}

// deleteLines removes lines [first, last] including their terminators. When
// last has no terminator the newline before first goes instead, so no empty
// line is left behind.
func deleteLines(builder *edit.Builder, snap *source.Snapshot, first, last int) {
	start := snap.LineStart(first)
	end := snap.LineEnd(last)
	if !snap.HasNewline(last) && first > 0 {
		start = snap.Lines[first-1].NewlineStart
	}
	builder.Delete(start, end)
}

// crossingNode returns an existing fold that partially overlaps [start, end].
// A fold strictly inside the range or strictly enclosing it is fine.
func crossingNode(tree *foldtree.Tree, start, end int) *foldtree.Node {
	var crossing *foldtree.Node
	tree.Walk(foldtree.VisitorFunc(func(node *foldtree.Node) bool {
		if crossing != nil {
			return false
		}
		if node.End < start || node.Start > end {
			return false
		}
		encloses := node.Start < start && end < node.End
		enclosed := start <= node.Start && node.End <= end
		if !encloses && !enclosed {
			crossing = node
			return false
		}
		return encloses
	}))
	return crossing
}
