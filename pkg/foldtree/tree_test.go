package foldtree_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/yaklabco/gofold/pkg/foldtree"
)

// assertNode checks a node's position, level, parent tag and child tags.
// A parent of -1 means the node must be a root.
func assertNode(t *testing.T, node *foldtree.Node, start, end, level, parent int, children []int) {
	t.Helper()

	if node == nil {
		t.Fatalf("expected node [%d,%d], got nil", start, end)
	}
	if node.Start != start || node.End != end {
		t.Errorf("range: expected [%d,%d], got [%d,%d]", start, end, node.Start, node.End)
	}
	if node.Level != level {
		t.Errorf("level: expected %d, got %d", level, node.Level)
	}

	switch {
	case parent < 0 && node.Parent != nil:
		t.Errorf("parent: expected root, got tag %d", node.Parent.Tag)
	case parent >= 0 && node.Parent == nil:
		t.Errorf("parent: expected tag %d, got root", parent)
	case parent >= 0 && node.Parent.Tag != parent:
		t.Errorf("parent: expected tag %d, got %d", parent, node.Parent.Tag)
	}

	if len(node.Children) != len(children) {
		t.Fatalf("children: expected %d, got %d", len(children), len(node.Children))
	}
	for i, tag := range children {
		if node.Children[i].Tag != tag {
			t.Errorf("child %d: expected tag %d, got %d", i, tag, node.Children[i].Tag)
		}
	}
}

func splitFixture(content string) []string {
	return strings.Split(content, "\n")
}

func TestParse_SingleFold(t *testing.T) {
	t.Parallel()

	lines := splitFixture(`//{{{
            this is a fold
            //}}}`)

	tree := foldtree.Parse(lines, "plaintext")

	for line := range lines {
		assertNode(t, tree.NodeAt(line), 0, 2, 1, -1, nil)
	}

	root := tree.NodeAt(1)
	if !root.IsRoot() || !root.IsLeaf() {
		t.Error("single fold should be a root leaf")
	}
}

func TestParse_BalancedSingleton(t *testing.T) {
	t.Parallel()

	for k := range 6 {
		t.Run(fmt.Sprintf("%d inner lines", k), func(t *testing.T) {
			t.Parallel()

			lines := []string{"//{{{"}
			for i := range k {
				lines = append(lines, fmt.Sprintf("line %d", i))
			}
			lines = append(lines, "//}}}")

			tree := foldtree.Parse(lines, "plaintext")
			if tree.Len() != 1 {
				t.Fatalf("expected 1 node, got %d", tree.Len())
			}

			for line := 0; line <= k+1; line++ {
				assertNode(t, tree.NodeAt(line), 0, k+1, 1, -1, nil)
			}
		})
	}
}

func TestParse_NestedFolds(t *testing.T) {
	t.Parallel()

	lines := splitFixture(`//{{{
        this is a fold
            //{{{
            this is a fold2
            this is text
            //}}}
        //}}}`)

	tree := foldtree.Parse(lines, "plaintext")

	// The inner region closes first, so it receives tag 0.
	for _, line := range []int{0, 1, 6} {
		assertNode(t, tree.NodeAt(line), 0, 6, 1, -1, []int{0})
	}
	for _, line := range []int{2, 3, 4, 5} {
		assertNode(t, tree.NodeAt(line), 2, 5, 2, 1, nil)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	lines := []string{"//{{{", "a", "//{{{", "b", "//}}}", "c", "//}}}"}
	tree := foldtree.Parse(lines, "plaintext")

	roots := tree.Roots()
	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}
	root := roots[0]
	if root.Range() != (foldtree.Range{Start: 0, End: 6}) {
		t.Errorf("root range: got %+v", root.Range())
	}
	if len(root.Children) != 1 || root.Children[0].Range() != (foldtree.Range{Start: 2, End: 4}) {
		t.Fatalf("expected one child [2,4], got %v", root.Children)
	}

	if tree.NodeAt(1) != root {
		t.Error("NodeAt(1) should be the root")
	}
	if tree.NodeAt(3) != root.Children[0] {
		t.Error("NodeAt(3) should be the child")
	}
	if tree.NodeAt(5) != root {
		t.Error("NodeAt(5) should resolve to the root, not the child")
	}

	want := []foldtree.Range{{Start: 0, End: 6}, {Start: 2, End: 4}}
	assertRanges(t, tree.Ranges(), want)
}

// fourSiblingFixture nests four siblings at depth 3 plus a second depth-2 region.
const fourSiblingFixture = `//{{{
            //{{{
                //{{{
                //}}}
                //{{{
                //}}}
                //{{{
                //}}}
                //{{{
                //}}}
            //}}}
            //{{{
            //}}}
        //}}}
        a
        b
        //{{{
        //}}}`

func TestParse_MoreNestedFolds(t *testing.T) {
	t.Parallel()

	tree := foldtree.Parse(splitFixture(fourSiblingFixture), "plaintext")

	assertNode(t, tree.NodeAt(3), 2, 3, 3, 4, nil)
	assertNode(t, tree.NodeAt(10), 1, 10, 2, 6, []int{0, 1, 2, 3})
	assertNode(t, tree.NodeAt(12), 11, 12, 2, 6, nil)
	assertNode(t, tree.NodeAt(13), 0, 13, 1, -1, []int{4, 5})
	assertNode(t, tree.NodeAt(17), 16, 17, 1, -1, nil)

	for _, line := range []int{14, 15} {
		if node := tree.NodeAt(line); node != nil {
			t.Errorf("line %d: expected no fold, got %v", line, node)
		}
	}

	want := []foldtree.Range{
		{Start: 0, End: 13},
		{Start: 1, End: 10},
		{Start: 2, End: 3},
		{Start: 4, End: 5},
		{Start: 6, End: 7},
		{Start: 8, End: 9},
		{Start: 11, End: 12},
		{Start: 16, End: 17},
	}
	assertRanges(t, tree.Ranges(), want)
}

func TestParse_FiveSiblingsAtDepthThree(t *testing.T) {
	t.Parallel()

	lines := []string{"//{{{", "//{{{"}
	for range 5 {
		lines = append(lines, "//{{{", "body", "//}}}")
	}
	lines = append(lines, "//}}}", "//}}}")

	tree := foldtree.Parse(lines, "plaintext")
	parent := tree.NodeAt(1)
	if parent == nil || parent.Level != 2 {
		t.Fatalf("expected depth-2 parent, got %v", parent)
	}
	if len(parent.Children) != 5 {
		t.Fatalf("expected 5 children, got %d", len(parent.Children))
	}

	seen := make(map[int]bool)
	for i, child := range parent.Children {
		wantStart := 2 + 3*i
		if child.Start != wantStart || child.End != wantStart+2 {
			t.Errorf("child %d: expected [%d,%d], got [%d,%d]", i, wantStart, wantStart+2, child.Start, child.End)
		}
		if child.Level != 3 {
			t.Errorf("child %d: expected level 3, got %d", i, child.Level)
		}
		if seen[child.Tag] {
			t.Errorf("child %d: duplicate tag %d", i, child.Tag)
		}
		seen[child.Tag] = true
		if child.Parent != parent {
			t.Errorf("child %d: wrong parent", i)
		}
	}
}

func TestParse_UnbalancedFolds(t *testing.T) {
	t.Parallel()

	lines := splitFixture(`//}}}
             //}}}
             //{{{
                //{{{
                //}}}
             //}}}
             //{{{`)

	tree := foldtree.Parse(lines, "plaintext")

	for _, line := range []int{0, 1, 6} {
		if node := tree.NodeAt(line); node != nil {
			t.Errorf("line %d: expected no fold, got %v", line, node)
		}
	}

	// Stray end markers do not push the depth below zero.
	assertNode(t, tree.NodeAt(2), 2, 5, 1, -1, []int{0})
	assertNode(t, tree.NodeAt(4), 3, 4, 2, 1, nil)

	want := []foldtree.Warning{
		{Kind: foldtree.WarningUnmatchedEnd, Line: 0},
		{Kind: foldtree.WarningUnmatchedEnd, Line: 1},
		{Kind: foldtree.WarningUnterminated, Line: 6},
	}
	got := tree.Warnings()
	if len(got) != len(want) {
		t.Fatalf("expected %d warnings, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("warning %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestParse_TrailingUnterminatedDropsNestedRegions(t *testing.T) {
	t.Parallel()

	lines := []string{"//{{{", "//{{{", "x", "//}}}", "y"}
	tree := foldtree.Parse(lines, "plaintext")

	if !tree.IsEmpty() {
		t.Fatalf("expected empty tree, got %d nodes", tree.Len())
	}
	for line := range lines {
		if node := tree.NodeAt(line); node != nil {
			t.Errorf("line %d: expected no fold, got %v", line, node)
		}
	}
	if len(tree.Warnings()) != 1 || tree.Warnings()[0].Line != 0 {
		t.Errorf("expected one unterminated warning at line 0, got %v", tree.Warnings())
	}
}

func TestParse_TagsFollowCloseOrder(t *testing.T) {
	t.Parallel()

	lines := []string{"//{{{", "//{{{", "//{{{", "//}}}", "//}}}", "//{{{", "//}}}", "//}}}"}
	tree := foldtree.Parse(lines, "plaintext")

	// Close order: [2,3], [1,4], [5,6], [0,7].
	wantTags := map[foldtree.Range]int{
		{Start: 2, End: 3}: 0,
		{Start: 1, End: 4}: 1,
		{Start: 5, End: 6}: 2,
		{Start: 0, End: 7}: 3,
	}

	seen := make(map[int]bool)
	tree.Walk(foldtree.VisitorFunc(func(n *foldtree.Node) bool {
		if seen[n.Tag] {
			t.Errorf("duplicate tag %d", n.Tag)
		}
		seen[n.Tag] = true
		if want, ok := wantTags[n.Range()]; !ok || want != n.Tag {
			t.Errorf("range %+v: expected tag %d, got %d", n.Range(), want, n.Tag)
		}
		return true
	}))

	if len(seen) != len(wantTags) {
		t.Errorf("expected %d nodes, visited %d", len(wantTags), len(seen))
	}
}

func TestParse_OpenAndCloseOnSameLine(t *testing.T) {
	t.Parallel()

	lines := []string{"before", "//{{{ inline //}}}", "after"}
	tree := foldtree.Parse(lines, "plaintext")

	assertNode(t, tree.NodeAt(1), 1, 1, 1, -1, nil)
	if tree.NodeAt(0) != nil || tree.NodeAt(2) != nil {
		t.Error("lines around a single-line fold should not resolve")
	}
}

func TestParse_LanguageMarkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		language string
		lines    []string
		want     []foldtree.Range
	}{
		{
			name:     "python hash markers",
			language: "python",
			lines:    []string{"#{{{ setup", "x = 1", "#}}}"},
			want:     []foldtree.Range{{Start: 0, End: 2}},
		},
		{
			name:     "shell hash markers with indentation",
			language: "shell",
			lines:    []string{"main() {", "  #{{{", "  echo hi", "  #}}}", "}"},
			want:     []foldtree.Range{{Start: 1, End: 3}},
		},
		{
			name:     "rust ignores hash markers",
			language: "rust",
			lines:    []string{"#{{{", "fn main() {}", "#}}}"},
			want:     []foldtree.Range{},
		},
		{
			name:     "space between prefix and token does not match",
			language: "python",
			lines:    []string{"# {{{", "pass", "# }}}"},
			want:     []foldtree.Range{},
		},
		{
			name:     "unknown language matches nothing",
			language: "cobol",
			lines:    []string{"{{{", "}}}", "//{{{", "//}}}"},
			want:     []foldtree.Range{},
		},
		{
			name:     "empty input",
			language: "plaintext",
			lines:    nil,
			want:     []foldtree.Range{},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tree := foldtree.Parse(testCase.lines, testCase.language)
			assertRanges(t, tree.Ranges(), testCase.want)
		})
	}
}

func TestParse_UnknownLanguageHasNoWarnings(t *testing.T) {
	t.Parallel()

	tree := foldtree.Parse([]string{"}}}", "{{{"}, "cobol")
	if len(tree.Warnings()) != 0 {
		t.Errorf("expected no warnings, got %v", tree.Warnings())
	}
}

func TestParseWith_CustomMarkers(t *testing.T) {
	t.Parallel()

	markers := foldtree.Markers{Start: "--"}
	lines := []string{"--{{{", "local x = 1", "--}}}", "//{{{", "//}}}"}

	tree := foldtree.ParseWith(lines, markers)
	assertRanges(t, tree.Ranges(), []foldtree.Range{{Start: 0, End: 2}})
}

func TestNodeAt_OutOfRange(t *testing.T) {
	t.Parallel()

	tree := foldtree.Parse([]string{"//{{{", "//}}}"}, "plaintext")

	for _, line := range []int{-1, 2, 1000} {
		if node := tree.NodeAt(line); node != nil {
			t.Errorf("line %d: expected nil, got %v", line, node)
		}
	}
}

func TestNodeAt_NilTree(t *testing.T) {
	t.Parallel()

	var tree *foldtree.Tree
	if tree.NodeAt(0) != nil {
		t.Error("nil tree should not resolve lines")
	}
	if len(tree.Ranges()) != 0 {
		t.Error("nil tree should have no ranges")
	}
}

func TestRanges_Idempotent(t *testing.T) {
	t.Parallel()

	tree := foldtree.Parse(splitFixture(fourSiblingFixture), "plaintext")

	first := tree.Ranges()
	second := tree.Ranges()
	assertRanges(t, second, first)

	// Walking must not reorder the forest.
	if tree.Roots()[0].Start != 0 || tree.Roots()[1].Start != 16 {
		t.Errorf("roots reordered: %v", tree.Roots())
	}
}

func TestParse_DeepNesting(t *testing.T) {
	t.Parallel()

	const depth = 20000

	lines := make([]string, 0, 2*depth+1)
	for range depth {
		lines = append(lines, "//{{{")
	}
	lines = append(lines, "core")
	for range depth {
		lines = append(lines, "//}}}")
	}

	tree := foldtree.Parse(lines, "plaintext")
	if tree.Len() != depth {
		t.Fatalf("expected %d nodes, got %d", depth, tree.Len())
	}

	innermost := tree.NodeAt(depth)
	if innermost == nil || innermost.Level != depth {
		t.Fatalf("expected innermost level %d, got %v", depth, innermost)
	}

	ranges := tree.Ranges()
	if len(ranges) != depth {
		t.Fatalf("expected %d ranges, got %d", depth, len(ranges))
	}
	if ranges[0] != (foldtree.Range{Start: 0, End: 2 * depth}) {
		t.Errorf("outermost range: got %+v", ranges[0])
	}
}

func TestTree_Find(t *testing.T) {
	t.Parallel()

	tree := foldtree.Parse(splitFixture(fourSiblingFixture), "plaintext")

	node := tree.Find(4)
	if node == nil || node.Range() != (foldtree.Range{Start: 1, End: 10}) {
		t.Errorf("Find(4): got %v", node)
	}
	if tree.Find(99) != nil {
		t.Error("Find should return nil for unknown tags")
	}
}

func assertRanges(t *testing.T, got, want []foldtree.Range) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("expected %d ranges %v, got %d %v", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("range %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}
