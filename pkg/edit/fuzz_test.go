package edit_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/gofold/pkg/edit"
)

func FuzzGenerateDiff(f *testing.F) {
	f.Add([]byte(""), []byte(""))
	f.Add([]byte("hello"), []byte("world"))
	f.Add([]byte("a\nb\nc\n"), []byte("a\n#{{{\nb\n#}}}\nc\n"))
	f.Add([]byte("line1\nline2\nline3\n"), []byte("line1\nline3\n"))

	f.Fuzz(func(t *testing.T, original, modified []byte) {
		diff, err := edit.GenerateDiff("test.py", original, modified)
		if err != nil {
			t.Fatalf("GenerateDiff: %v", err)
		}

		if string(original) == string(modified) {
			if diff != nil {
				t.Error("expected nil diff for identical content")
			}
			return
		}
		if diff == nil {
			t.Fatal("expected diff for different content")
		}
		if diff.Additions < 0 || diff.Deletions < 0 {
			t.Errorf("negative counts: +%d -%d", diff.Additions, diff.Deletions)
		}
		if diff.HasChanges() && !strings.HasPrefix(diff.FullString(), diff.GitHeader()) {
			t.Error("FullString should start with the git header")
		}
	})
}

func FuzzApplyAll(f *testing.F) {
	f.Add("a\nb\nc\n", 2, "#{{{\n")
	f.Add("", 0, "x")
	f.Add("abc", 3, "\n#}}}")

	f.Fuzz(func(t *testing.T, content string, offset int, text string) {
		if offset < 0 || offset > len(content) {
			return
		}

		out, err := edit.ApplyAll([]byte(content), []edit.TextEdit{{StartOffset: offset, EndOffset: offset, NewText: text}})
		if err != nil {
			t.Fatalf("ApplyAll: %v", err)
		}
		if want := content[:offset] + text + content[offset:]; string(out) != want {
			t.Errorf("got %q, want %q", out, want)
		}
	})
}
