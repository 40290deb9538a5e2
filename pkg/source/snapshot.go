// Package source provides a line-indexed, immutable view of a text file.
// Fold trees are built from its lines and fold edits are computed against
// its byte offsets.
package source

import "strings"

// Snapshot is an immutable view of a file's content at a specific time.
type Snapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo
}

// LineInfo holds byte offsets for a single line.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For a line without a trailing newline this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// New creates a Snapshot and builds its line index.
func New(path string, content []byte) *Snapshot {
	return &Snapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// FromLines joins lines with LF into a Snapshot.
func FromLines(path string, lines []string) *Snapshot {
	return New(path, []byte(strings.Join(lines, "\n")))
}

// LineCount returns the number of lines in the file.
func (s *Snapshot) LineCount() int {
	return len(s.Lines)
}

// Valid reports whether line is a zero-based index into the file.
func (s *Snapshot) Valid(line int) bool {
	return line >= 0 && line < len(s.Lines)
}

// Text returns the zero-based line without its newline.
// Out-of-range lines return an empty string.
func (s *Snapshot) Text(line int) string {
	if !s.Valid(line) {
		return ""
	}
	info := s.Lines[line]
	return string(s.Content[info.StartOffset:info.NewlineStart])
}

// Texts returns every line without newlines, in order.
func (s *Snapshot) Texts() []string {
	texts := make([]string, len(s.Lines))
	for i := range s.Lines {
		texts[i] = s.Text(i)
	}
	return texts
}

// LineStart returns the byte offset of the first byte of line.
func (s *Snapshot) LineStart(line int) int {
	if !s.Valid(line) {
		return len(s.Content)
	}
	return s.Lines[line].StartOffset
}

// LineEnd returns the byte offset just past line's newline, or end of file.
func (s *Snapshot) LineEnd(line int) int {
	if !s.Valid(line) {
		return len(s.Content)
	}
	return s.Lines[line].EndOffset
}

// HasNewline reports whether line is terminated by a newline.
func (s *Snapshot) HasNewline(line int) bool {
	if !s.Valid(line) {
		return false
	}
	info := s.Lines[line]
	return info.NewlineStart < info.EndOffset
}

// Newline returns the line terminator used by the file: "\r\n" if the first
// terminated line uses CRLF, otherwise "\n".
func (s *Snapshot) Newline() string {
	for _, info := range s.Lines {
		if info.NewlineStart < info.EndOffset {
			return string(s.Content[info.NewlineStart:info.EndOffset])
		}
	}
	return "\n"
}

// Indentation returns the leading spaces and tabs of line.
func (s *Snapshot) Indentation(line int) string {
	text := s.Text(line)
	trimmed := strings.TrimLeft(text, " \t")
	return text[:len(text)-len(trimmed)]
}
