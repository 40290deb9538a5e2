// Package foldtree builds a tree of foldable regions from marker comments.
//
// A region opens on a line containing a language's comment prefix followed by
// "{{{" and closes on a line containing the same prefix followed by "}}}".
// Regions nest. The tree is built in one pass over the lines, is immutable
// afterwards, and answers "innermost region at line N" and "all region
// ranges" queries. Callers rebuild the tree whenever the lines change.
package foldtree

// Node is a single foldable region.
type Node struct {
	// Start and End are zero-based, inclusive line indices.
	Start int
	End   int

	// Level is the nesting depth when the region opened. Roots have level 1.
	Level int

	// Tag identifies the node within its tree. Tags increase in the order
	// regions are closed.
	Tag int

	// Parent is the enclosing region, or nil for a root. It does not own the node.
	Parent *Node

	// Children are the directly nested regions, ordered by Start.
	Children []*Node
}

// IsLeaf returns true if the node has no nested regions.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// IsRoot returns true if the node has no enclosing region.
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// Contains reports whether line falls within [Start, End].
func (n *Node) Contains(line int) bool {
	return line >= n.Start && line <= n.End
}

// Range returns the node's line range.
func (n *Node) Range() Range {
	return Range{Start: n.Start, End: n.End}
}

// Lines returns the number of lines the region spans, markers included.
func (n *Node) Lines() int {
	return n.End - n.Start + 1
}

// childAt returns the first child containing line, or nil.
func (n *Node) childAt(line int) *Node {
	for _, child := range n.Children {
		if child.Contains(line) {
			return child
		}
	}
	return nil
}

// Range is a zero-based, inclusive pair of line indices.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}
