package foldtree_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/gofold/pkg/foldtree"
)

func FuzzParse(f *testing.F) {
	f.Add("")
	f.Add("#{{{\n#}}}")
	f.Add("#}}}\n#{{{")
	f.Add("#{{{ a\nx\n#{{{ b\ny\n#}}}\n#}}}\n")
	f.Add("#{{{#}}}\n#{{{\n")
	f.Add("  #{{{ indented\n\t#}}}\n#}}}\n")

	f.Fuzz(func(t *testing.T, content string) {
		lines := strings.Split(content, "\n")
		tree := foldtree.Parse(lines, "python")

		count := 0
		tree.Walk(foldtree.VisitorFunc(func(n *foldtree.Node) bool {
			count++
			if n.Start > n.End {
				t.Errorf("node #%d: start %d after end %d", n.Tag, n.Start, n.End)
			}
			if n.End >= len(lines) {
				t.Errorf("node #%d: end %d past last line %d", n.Tag, n.End, len(lines)-1)
			}
			for _, child := range n.Children {
				if child.Parent != n {
					t.Errorf("node #%d: child #%d has wrong parent", n.Tag, child.Tag)
				}
				if child.Start <= n.Start || child.End > n.End {
					t.Errorf("node #%d [%d,%d]: child #%d [%d,%d] not nested",
						n.Tag, n.Start, n.End, child.Tag, child.Start, child.End)
				}
			}
			return true
		}))

		if count != tree.Len() {
			t.Errorf("walk visited %d nodes, Len() = %d", count, tree.Len())
		}
		if len(tree.Records()) != tree.Len() {
			t.Errorf("Records() has %d entries, Len() = %d", len(tree.Records()), tree.Len())
		}

		for line := range lines {
			node := tree.NodeAt(line)
			if node != nil && !node.Contains(line) {
				t.Errorf("NodeAt(%d) returned #%d [%d,%d]", line, node.Tag, node.Start, node.End)
			}
		}
	})
}
