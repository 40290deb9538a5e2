package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/yaklabco/gofold/pkg/runner"
)

// writeTree creates each relative path under dir with content.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

func relAll(t *testing.T, dir string, paths []string) []string {
	t.Helper()
	rels := make([]string, 0, len(paths))
	for _, path := range paths {
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			t.Fatalf("filepath.Rel: %v", err)
		}
		rels = append(rels, filepath.ToSlash(rel))
	}
	return rels
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"main.go": "package main\n"})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"main.go"},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	// Explicit files bypass the extension filter.
	want := []string{filepath.Join(dir, "main.go")}
	if !slices.Equal(files, want) {
		t.Errorf("Discover() = %v, want %v", files, want)
	}
}

func TestDiscover_DefaultExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"app.py":          "# x\n",
		"src/lib.rs":      "// x\n",
		"src/build.sh":    "# x\n",
		"notes.txt":       "x\n",
		"src/main.go":     "package main\n",
		"assets/logo.png": "\x89PNG",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := []string{"app.py", "notes.txt", "src/build.sh", "src/lib.rs"}
	if got := relAll(t, dir, files); !slices.Equal(got, want) {
		t.Errorf("Discover() = %v, want %v", got, want)
	}
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.py":  "",
		"b.lua": "",
		"c.LUA": "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{".lua"},
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := []string{"b.lua", "c.LUA"}
	if got := relAll(t, dir, files); !slices.Equal(got, want) {
		t.Errorf("Discover() = %v, want %v", got, want)
	}
}

func TestDiscover_ExcludeGlobs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{
			name:     "directory prefix",
			patterns: []string{"gen/**"},
			want:     []string{"app.py", "src/cases/case.py", "src/util.py"},
		},
		{
			name:     "directory anywhere",
			patterns: []string{"**/cases/**"},
			want:     []string{"app.py", "gen/out.py", "src/util.py"},
		},
		{
			name:     "base name",
			patterns: []string{"util.py"},
			want:     []string{"app.py", "gen/out.py", "src/cases/case.py"},
		},
		{
			name:     "no patterns",
			patterns: nil,
			want:     []string{"app.py", "gen/out.py", "src/cases/case.py", "src/util.py"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeTree(t, dir, map[string]string{
				"app.py":            "",
				"gen/out.py":        "",
				"src/util.py":       "",
				"src/cases/case.py": "",
			})

			files, err := runner.Discover(context.Background(), runner.Options{
				WorkingDir:   dir,
				ExcludeGlobs: testCase.patterns,
			})
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}
			if got := relAll(t, dir, files); !slices.Equal(got, testCase.want) {
				t.Errorf("Discover() = %v, want %v", got, testCase.want)
			}
		})
	}
}

func TestDiscover_VendoredDirectories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		includeVendored bool
		want            []string
	}{
		{
			name: "skipped by default",
			want: []string{"app.py"},
		},
		{
			name:            "included on request",
			includeVendored: true,
			want:            []string{"app.py", "src/testdata/case.py", "vendor/lib.py"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeTree(t, dir, map[string]string{
				"app.py":               "",
				"src/testdata/case.py": "",
				"vendor/lib.py":        "",
			})

			files, err := runner.Discover(context.Background(), runner.Options{
				WorkingDir:      dir,
				IncludeVendored: testCase.includeVendored,
			})
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}
			if got := relAll(t, dir, files); !slices.Equal(got, testCase.want) {
				t.Errorf("Discover() = %v, want %v", got, testCase.want)
			}
		})
	}
}

func TestDiscover_InvalidGlob(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   t.TempDir(),
		ExcludeGlobs: []string{"["},
	})
	if err == nil {
		t.Fatal("expected error for invalid glob")
	}
}

func TestDiscover_HiddenAndVendored(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"app.py":                   "",
		".hidden.py":               "",
		".git/hook.py":             "",
		"vendor/dep/dep.py":        "",
		"node_modules/pkg/tool.sh": "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if got := relAll(t, dir, files); !slices.Equal(got, []string{"app.py"}) {
		t.Errorf("Discover() = %v, want [app.py]", got)
	}

	files, err = runner.Discover(context.Background(), runner.Options{
		WorkingDir:      dir,
		IncludeVendored: true,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	want := []string{"app.py", "node_modules/pkg/tool.sh", "vendor/dep/dep.py"}
	if got := relAll(t, dir, files); !slices.Equal(got, want) {
		t.Errorf("Discover(IncludeVendored) = %v, want %v", got, want)
	}
}

func TestDiscover_DeduplicatesAndSorts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"z.py":     "",
		"a.py":     "",
		"sub/m.py": "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"sub", ".", "z.py", "sub/m.py"},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := []string{"a.py", "sub/m.py", "z.py"}
	if got := relAll(t, dir, files); !slices.Equal(got, want) {
		t.Errorf("Discover() = %v, want %v", got, want)
	}
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: t.TempDir(),
	})
	if err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.py": ""})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Discover() error = %v, want context.Canceled", err)
	}
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := t.TempDir()
	writeTree(t, dir, map[string]string{"app.py": ""})
	writeTree(t, target, map[string]string{"linked.py": ""})

	if err := os.Symlink(target, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 1 {
		t.Errorf("without FollowSymlinks expected 1 file, got %v", files)
	}

	files, err = runner.Discover(context.Background(), runner.Options{
		WorkingDir:     dir,
		FollowSymlinks: true,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 2 {
		t.Errorf("with FollowSymlinks expected 2 files, got %v", files)
	}
}

func TestMatcher(t *testing.T) {
	t.Parallel()

	matcher, err := runner.CompileGlobs([]string{"build/**", "**/fixtures/**", "*.gen.py"})
	if err != nil {
		t.Fatalf("CompileGlobs() error = %v", err)
	}

	tests := []struct {
		path  string
		isDir bool
		want  bool
	}{
		{"build", true, true},
		{"build/out.py", false, true},
		{"fixtures", true, true},
		{"a/b/fixtures", true, true},
		{"a/fixtures/x.py", false, true},
		{"pkg/models.gen.py", false, true},
		{"pkg/models.py", false, false},
		{"rebuild/x.py", false, false},
	}

	for _, testCase := range tests {
		if got := matcher.Match(testCase.path, testCase.isDir); got != testCase.want {
			t.Errorf("Match(%q, %v) = %v, want %v", testCase.path, testCase.isDir, got, testCase.want)
		}
	}

	var nilMatcher *runner.Matcher
	if nilMatcher.Match("anything", false) {
		t.Error("nil matcher should match nothing")
	}
}
