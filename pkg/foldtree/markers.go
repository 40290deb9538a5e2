package foldtree

import (
	"maps"
	"slices"
)

// Fold tokens that follow a language's comment prefix.
const (
	OpenToken  = "{{{"
	CloseToken = "}}}"
)

// Markers holds the comment strings used to recognize fold markers for a language.
type Markers struct {
	// Start is the line-comment prefix that precedes both OpenToken and CloseToken.
	Start string `yaml:"start" json:"start"`

	// End is an optional comment terminator written after a marker token.
	// It is empty for line-comment languages and never consulted when parsing.
	End string `yaml:"end" json:"end"`
}

// IsZero reports whether no markers are defined.
func (m Markers) IsZero() bool {
	return m.Start == "" && m.End == ""
}

// OpenMarker returns the text that opens a fold, e.g. "//{{{".
func (m Markers) OpenMarker() string {
	return m.Start + OpenToken
}

// CloseMarker returns the text that closes a fold, e.g. "//}}}".
func (m Markers) CloseMarker() string {
	return m.Start + CloseToken
}

// MarkerTable maps language identifiers to their fold markers.
// Membership in the table is also the set of languages gofold operates on.
type MarkerTable map[string]Markers

// builtinMarkers is shared by the package-level lookups and never mutated.
var builtinMarkers = MarkerTable{
	"python":    {Start: "#"},
	"rust":      {Start: "//"},
	"shell":     {Start: "#"},
	"plaintext": {Start: "//"},
}

// DefaultMarkers returns a fresh copy of the built-in marker table.
func DefaultMarkers() MarkerTable {
	return maps.Clone(builtinMarkers)
}

// Lookup returns the markers for languageID.
// A miss yields the zero Markers, which match no line.
func (t MarkerTable) Lookup(languageID string) Markers {
	return t[languageID]
}

// Supports reports whether languageID has an entry in the table.
func (t MarkerTable) Supports(languageID string) bool {
	_, ok := t[languageID]
	return ok
}

// Languages returns the language identifiers in sorted order.
func (t MarkerTable) Languages() []string {
	return slices.Sorted(maps.Keys(t))
}

// With returns a copy of t extended (and overridden) by extra.
func (t MarkerTable) With(extra map[string]Markers) MarkerTable {
	out := make(MarkerTable, len(t)+len(extra))
	maps.Copy(out, t)
	maps.Copy(out, extra)
	return out
}

// Lookup resolves languageID against the built-in marker table.
func Lookup(languageID string) Markers {
	return builtinMarkers.Lookup(languageID)
}

// Supports reports whether languageID is in the built-in marker table.
func Supports(languageID string) bool {
	return builtinMarkers.Supports(languageID)
}
