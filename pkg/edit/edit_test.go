package edit_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/yaklabco/gofold/pkg/edit"
)

func TestBuilder(t *testing.T) {
	t.Parallel()

	builder := edit.NewBuilder().
		Insert(0, "#{{{\n").
		Delete(4, 8).
		Replace(10, 12, "x")

	edits := builder.Edits()
	want := []edit.TextEdit{
		{StartOffset: 0, EndOffset: 0, NewText: "#{{{\n"},
		{StartOffset: 4, EndOffset: 8, NewText: ""},
		{StartOffset: 10, EndOffset: 12, NewText: "x"},
	}

	if builder.Len() != len(want) {
		t.Fatalf("expected %d edits, got %d", len(want), builder.Len())
	}
	for i := range want {
		if edits[i] != want[i] {
			t.Errorf("edit %d: expected %+v, got %+v", i, want[i], edits[i])
		}
	}
	if !edits[0].IsInsert() || edits[1].IsInsert() {
		t.Error("IsInsert misclassified edits")
	}

	edits[0].NewText = "changed"
	if builder.Edits()[0].NewText != "#{{{\n" {
		t.Error("Edits must return a copy")
	}
}

func TestApplyAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		edits    []edit.TextEdit
		expected string
	}{
		{
			name:     "no edits",
			content:  "hello",
			edits:    nil,
			expected: "hello",
		},
		{
			name:    "wrap lines in markers",
			content: "a\nb\n",
			edits: []edit.TextEdit{
				{StartOffset: 4, EndOffset: 4, NewText: "#}}}\n"},
				{StartOffset: 0, EndOffset: 0, NewText: "#{{{\n"},
			},
			expected: "#{{{\na\nb\n#}}}\n",
		},
		{
			name:    "delete marker lines",
			content: "#{{{\na\n#}}}\n",
			edits: []edit.TextEdit{
				{StartOffset: 0, EndOffset: 5},
				{StartOffset: 7, EndOffset: 12},
			},
			expected: "a\n",
		},
		{
			name:    "inserts at same offset keep order",
			content: "x",
			edits: []edit.TextEdit{
				{StartOffset: 1, EndOffset: 1, NewText: "1"},
				{StartOffset: 1, EndOffset: 1, NewText: "2"},
			},
			expected: "x12",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := edit.ApplyAll([]byte(testCase.content), testCase.edits)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != testCase.expected {
				t.Errorf("expected %q, got %q", testCase.expected, string(got))
			}
		})
	}
}

func TestPrepare_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		edits    []edit.TextEdit
		conflict bool
	}{
		{
			name:  "negative start",
			edits: []edit.TextEdit{{StartOffset: -1, EndOffset: 0}},
		},
		{
			name:  "end before start",
			edits: []edit.TextEdit{{StartOffset: 3, EndOffset: 2}},
		},
		{
			name:  "past end of content",
			edits: []edit.TextEdit{{StartOffset: 0, EndOffset: 11}},
		},
		{
			name: "overlap",
			edits: []edit.TextEdit{
				{StartOffset: 0, EndOffset: 5},
				{StartOffset: 3, EndOffset: 6},
			},
			conflict: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := edit.Prepare(testCase.edits, 10)
			if err == nil {
				t.Fatal("expected error")
			}

			var validationErr *edit.ValidationError
			var conflictErr *edit.ConflictError
			switch {
			case testCase.conflict && !errors.As(err, &conflictErr):
				t.Errorf("expected ConflictError, got %T", err)
			case !testCase.conflict && !errors.As(err, &validationErr):
				t.Errorf("expected ValidationError, got %T", err)
			}
		})
	}
}

func TestPrepare_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	edits := []edit.TextEdit{
		{StartOffset: 5, EndOffset: 5, NewText: "b"},
		{StartOffset: 0, EndOffset: 0, NewText: "a"},
	}

	prepared, err := edit.Prepare(edits, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prepared[0].StartOffset != 0 {
		t.Error("prepared edits should be sorted")
	}
	if edits[0].StartOffset != 5 {
		t.Error("input slice must not be reordered")
	}
}

func TestGenerateDiff(t *testing.T) {
	t.Parallel()

	original := []byte("a\nb\nc\n")
	modified := []byte("#{{{\na\nb\n#}}}\nc\n")

	diff, err := edit.GenerateDiff("/src/main.py", original, modified)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !diff.HasChanges() {
		t.Fatal("expected changes")
	}
	if diff.Additions != 2 || diff.Deletions != 0 {
		t.Errorf("expected +2/-0, got +%d/-%d", diff.Additions, diff.Deletions)
	}

	full := diff.FullString()
	for _, want := range []string{
		"diff --git a/src/main.py b/src/main.py",
		"--- a/src/main.py",
		"+++ b/src/main.py",
		"+#{{{",
		"+#}}}",
	} {
		if !strings.Contains(full, want) {
			t.Errorf("diff missing %q:\n%s", want, full)
		}
	}
}

func TestGenerateDiff_NoChanges(t *testing.T) {
	t.Parallel()

	diff, err := edit.GenerateDiff("x", []byte("same\n"), []byte("same\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff != nil || diff.HasChanges() || diff.FullString() != "" {
		t.Error("identical content should produce no diff")
	}
}
