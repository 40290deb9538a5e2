package foldtree_test

import (
	"fmt"
	"testing"

	"github.com/yaklabco/gofold/pkg/foldtree"
)

// nestedLines builds depth-level nested folds repeated blocks times.
func nestedLines(blocks, depth int) []string {
	var lines []string
	for b := range blocks {
		for d := range depth {
			lines = append(lines, fmt.Sprintf("#{{{ block %d level %d", b, d))
			lines = append(lines, "x = 1")
		}
		for range depth {
			lines = append(lines, "#}}}")
		}
	}
	return lines
}

// Benchmark parsing a large file of nested folds.
func BenchmarkParse(b *testing.B) {
	lines := nestedLines(500, 6)

	b.ResetTimer()
	for range b.N {
		tree := foldtree.Parse(lines, "python")
		if tree.Len() != 3000 {
			b.Fail()
		}
	}
}

// Benchmark innermost-fold lookup.
func BenchmarkNodeAt(b *testing.B) {
	lines := nestedLines(500, 6)
	tree := foldtree.Parse(lines, "python")

	b.ResetTimer()
	for i := range b.N {
		tree.NodeAt(i % len(lines))
	}
}
