package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gofold/pkg/edit"
	"github.com/yaklabco/gofold/pkg/foldtree"
)

const outlineIndent = "  "

// FormatFileHeader formats a file header with its language and fold count.
func (s *Styles) FormatFileHeader(path, language string, folds int) string {
	header := s.FilePath.Render(path)
	meta := language
	if folds > 0 {
		meta += fmt.Sprintf(", %d %s", folds, plural(folds, "fold", "folds"))
	}
	if meta != "" {
		header += " " + s.Dim.Render("(") + s.Language.Render(meta) + s.Dim.Render(")")
	}
	return header
}

// FormatFold formats one fold as an outline entry indented by its level.
// Lines are shown one-based.
func (s *Styles) FormatFold(node *foldtree.Node, label string) string {
	indent := strings.Repeat(outlineIndent, node.Level)
	rng := s.Range.Render(fmt.Sprintf("%d-%d", node.Start+1, node.End+1))

	line := indent + s.Guide.Render("▸") + " " + rng
	if label != "" {
		line += "  " + s.Label.Render(label)
	}
	return line + "  " + s.Tag.Render(fmt.Sprintf("#%d", node.Tag)) + "\n"
}

// FormatOutline formats every fold of tree in pre-order. labelFn may be nil.
func (s *Styles) FormatOutline(tree *foldtree.Tree, labelFn func(*foldtree.Node) string) string {
	var builder strings.Builder
	tree.Walk(foldtree.VisitorFunc(func(node *foldtree.Node) bool {
		var label string
		if labelFn != nil {
			label = labelFn(node)
		}
		builder.WriteString(s.FormatFold(node, label))
		return true
	}))
	return builder.String()
}

// FormatWarning formats a marker warning as path:line.
func (s *Styles) FormatWarning(path string, warning foldtree.Warning) string {
	location := fmt.Sprintf("%s:%d", s.FilePath.Render(path), warning.Line+1)
	return fmt.Sprintf("%s%s  %s  %s  %s\n",
		outlineIndent,
		location,
		s.Warning.Render("warning"),
		warning.Message(),
		s.Dim.Render("("+warning.Kind.String()+")"),
	)
}

// FormatError formats a per-file error.
func (s *Styles) FormatError(path string, err error) string {
	return fmt.Sprintf("%s: %s\n", s.FilePath.Render(path), s.Error.Render(fmt.Sprintf("error: %v", err)))
}

// FormatDiff colors a unified diff line by line.
func (s *Styles) FormatDiff(diff *edit.Diff) string {
	if !diff.HasChanges() {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(s.DiffHeader.Render(diff.GitHeader()) + "\n")

	for _, line := range strings.Split(strings.TrimSuffix(diff.String(), "\n"), "\n") {
		var styled string
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			styled = s.DiffHeader.Render(line)
		case strings.HasPrefix(line, "@@"):
			styled = s.DiffHunk.Render(line)
		case strings.HasPrefix(line, "+"):
			styled = s.DiffAdd.Render(line)
		case strings.HasPrefix(line, "-"):
			styled = s.DiffRemove.Render(line)
		default:
			styled = s.DiffContext.Render(line)
		}
		builder.WriteString(styled + "\n")
	}

	return builder.String()
}

func plural(n int, singular, many string) string {
	if n == 1 {
		return singular
	}
	return many
}
