package edit

import (
	"bytes"
	"fmt"
)

// Apply applies edits already returned by Prepare to content.
// The input content is not modified.
func Apply(content []byte, prepared []TextEdit) []byte {
	if len(prepared) == 0 {
		return content
	}

	delta := 0
	for _, e := range prepared {
		delta += len(e.NewText) - (e.EndOffset - e.StartOffset)
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range prepared {
		out.Write(content[cursor:e.StartOffset])
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	out.Write(content[cursor:])

	return out.Bytes()
}

// ApplyAll prepares and applies edits in one step.
func ApplyAll(content []byte, edits []TextEdit) ([]byte, error) {
	prepared, err := Prepare(edits, len(content))
	if err != nil {
		return nil, fmt.Errorf("prepare edits: %w", err)
	}
	return Apply(content, prepared), nil
}
