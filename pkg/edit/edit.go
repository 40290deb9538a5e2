// Package edit provides byte-range text edits and their application.
package edit

// TextEdit represents a single text replacement in a file.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// IsInsert reports whether the edit removes nothing.
func (e TextEdit) IsInsert() bool {
	return e.StartOffset == e.EndOffset
}

// Builder accumulates text edits for a file.
type Builder struct {
	edits []TextEdit
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		edits: make([]TextEdit, 0),
	}
}

// Replace adds an edit that replaces bytes [start, end) with newText.
func (b *Builder) Replace(start, end int, newText string) *Builder {
	b.edits = append(b.edits, TextEdit{
		StartOffset: start,
		EndOffset:   end,
		NewText:     newText,
	})
	return b
}

// Insert adds an edit that inserts text at the given offset.
func (b *Builder) Insert(offset int, text string) *Builder {
	return b.Replace(offset, offset, text)
}

// Delete adds an edit that deletes bytes [start, end).
func (b *Builder) Delete(start, end int) *Builder {
	return b.Replace(start, end, "")
}

// Edits returns a copy of the accumulated edits in insertion order.
func (b *Builder) Edits() []TextEdit {
	out := make([]TextEdit, len(b.edits))
	copy(out, b.edits)
	return out
}

// Len returns the number of accumulated edits.
func (b *Builder) Len() int {
	return len(b.edits)
}
