package foldtree

import (
	"fmt"
	"sort"
)

// WarningKind classifies a malformed marker.
type WarningKind int

const (
	// WarningUnmatchedEnd is a close marker with no open region.
	WarningUnmatchedEnd WarningKind = iota + 1

	// WarningUnterminated is an open marker never closed before end of input.
	WarningUnterminated
)

// String returns a short, stable name for the kind.
func (k WarningKind) String() string {
	switch k {
	case WarningUnmatchedEnd:
		return "unmatched-end"
	case WarningUnterminated:
		return "unterminated"
	default:
		return "unknown"
	}
}

// Warning describes a marker that was dropped while parsing.
type Warning struct {
	Kind WarningKind

	// Line is the zero-based line holding the offending marker.
	Line int
}

// Message returns a human-readable description.
func (w Warning) Message() string {
	switch w.Kind {
	case WarningUnmatchedEnd:
		return "fold end marker has no matching start"
	case WarningUnterminated:
		return "fold start marker is never closed"
	default:
		return "malformed fold marker"
	}
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line+1, w.Message())
}

func sortWarnings(warnings []Warning) {
	sort.SliceStable(warnings, func(i, j int) bool {
		return warnings[i].Line < warnings[j].Line
	})
}
