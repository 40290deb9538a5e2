package foldtree

import "strings"

// Tree is a forest of fold regions built from one version of a document.
// A Tree is immutable once Parse returns and is safe for concurrent reads.
type Tree struct {
	roots    []*Node
	warnings []Warning
	nextTag  int
	count    int
}

// Parse builds a Tree from lines using the built-in marker table entry for languageID.
// An unknown language yields an empty tree.
func Parse(lines []string, languageID string) *Tree {
	return ParseWith(lines, Lookup(languageID))
}

// ParseWith builds a Tree from lines using explicit markers.
//
// Each line is tested for the open marker and then for the close marker, so a
// line holding both produces a single-line region. Close markers with nothing
// open and regions still open at end of input produce no nodes; both are
// recorded as warnings.
func ParseWith(lines []string, markers Markers) *Tree {
	tree := &Tree{}

	// An empty prefix would turn every bare "{{{" into a marker.
	if markers.Start == "" {
		return tree
	}

	openMarker := markers.OpenMarker()
	closeMarker := markers.CloseMarker()

	level := 0
	var stack []*Node

	for lineIndex, text := range lines {
		if strings.Contains(text, openMarker) {
			level++
			stack = append(stack, &Node{
				Start: lineIndex,
				End:   lineIndex,
				Level: level,
			})
		}

		if !strings.Contains(text, closeMarker) {
			continue
		}

		if len(stack) == 0 {
			// Level stays put: it never drops below zero.
			tree.warnings = append(tree.warnings, Warning{Kind: WarningUnmatchedEnd, Line: lineIndex})
			continue
		}

		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node.End = lineIndex
		node.Tag = tree.nextTag
		tree.nextTag++

		if level == 1 {
			tree.roots = append(tree.roots, node)
		} else {
			parent := stack[len(stack)-1]
			node.Parent = parent
			parent.Children = append(parent.Children, node)
		}
		level--
	}

	// Unterminated regions never reach the forest.
	for _, node := range stack {
		tree.warnings = append(tree.warnings, Warning{Kind: WarningUnterminated, Line: node.Start})
	}
	sortWarnings(tree.warnings)

	// Regions closed inside an unterminated one are unreachable and not counted.
	tree.Walk(VisitorFunc(func(*Node) bool {
		tree.count++
		return true
	}))

	return tree
}

// Roots returns the top-level regions in source order.
// The returned slice must not be modified.
func (t *Tree) Roots() []*Node {
	if t == nil {
		return nil
	}
	return t.roots
}

// Len returns the number of regions in the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return t.count
}

// IsEmpty returns true if the tree holds no regions.
func (t *Tree) IsEmpty() bool {
	return t.Len() == 0
}

// Warnings returns the malformed markers found while parsing, ordered by line.
func (t *Tree) Warnings() []Warning {
	if t == nil {
		return nil
	}
	return t.warnings
}

// NodeAt returns the innermost region containing line, or nil if no region does.
// Out-of-range lines simply return nil.
func (t *Tree) NodeAt(line int) *Node {
	if t == nil {
		return nil
	}

	var current *Node
	for _, root := range t.roots {
		if root.Contains(line) {
			current = root
			break
		}
	}
	if current == nil {
		return nil
	}

	for {
		child := current.childAt(line)
		if child == nil {
			return current
		}
		current = child
	}
}

// Ranges returns the line range of every region in pre-order.
// Repeated calls return identical slices in the same order.
func (t *Tree) Ranges() []Range {
	ranges := make([]Range, 0, t.Len())
	t.Walk(VisitorFunc(func(n *Node) bool {
		ranges = append(ranges, n.Range())
		return true
	}))
	return ranges
}

// Find returns the node with the given tag, or nil.
func (t *Tree) Find(tag int) *Node {
	var found *Node
	t.Walk(VisitorFunc(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.Tag == tag {
			found = n
			return false
		}
		return true
	}))
	return found
}
