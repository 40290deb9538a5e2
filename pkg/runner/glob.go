package runner

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/gobwas/glob"
)

// Matcher matches slash-separated relative paths against ignore globs.
// "*" stays within one path segment and "**" spans segments.
type Matcher struct {
	globs []glob.Glob
}

// CompileGlobs compiles patterns into a Matcher.
func CompileGlobs(patterns []string) (*Matcher, error) {
	matcher := &Matcher{globs: make([]glob.Glob, 0, len(patterns))}
	for _, pattern := range patterns {
		compiled, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("compile glob %q: %w", pattern, err)
		}
		matcher.globs = append(matcher.globs, compiled)
	}
	return matcher, nil
}

// Match reports whether relPath matches any pattern. Patterns are tried
// against the path, the path with a leading slash (so "**/x/**" matches
// top-level directories), and the base name.
func (m *Matcher) Match(relPath string, isDir bool) bool {
	if m == nil || len(m.globs) == 0 {
		return false
	}

	relPath = filepath.ToSlash(relPath)
	candidates := []string{relPath, "/" + relPath, path.Base(relPath)}
	if isDir {
		candidates = append(candidates, relPath+"/", "/"+relPath+"/")
	}

	for _, g := range m.globs {
		for _, candidate := range candidates {
			if g.Match(candidate) {
				return true
			}
		}
	}
	return false
}
