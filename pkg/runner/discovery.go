package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/gofold/pkg/config"
	"github.com/yaklabco/gofold/pkg/langdetect"
)

// Discover finds files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
// Explicitly named files are always kept; extensions, ignore globs and
// vendored-path rules apply to files found by walking directories.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	matcher, err := CompileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	walker := &walker{
		workDir:    workDir,
		extensions: effectiveExtensions(opts),
		exclude:    matcher,
		opts:       opts,
	}

	var files []string
	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			files = append(files, absPath)
			continue
		}

		discovered, err := walker.walk(ctx, absPath)
		if err != nil {
			return nil, err
		}
		files = append(files, discovered...)
	}

	files = lo.Uniq(files)
	slices.Sort(files)

	return files, nil
}

// effectiveExtensions returns opts.Extensions, or every extension that
// resolves to a supported language under opts.Config.
func effectiveExtensions(opts Options) map[string]bool {
	exts := opts.Extensions
	if len(exts) == 0 {
		cfg := opts.Config
		if cfg == nil {
			cfg = config.NewConfig()
		}
		exts = langdetect.New(cfg.MarkerTable(), cfg.Extensions).Extensions()
	}

	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		set[strings.ToLower(ext)] = true
	}
	return set
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

type walker struct {
	workDir    string
	extensions map[string]bool
	exclude    *Matcher
	opts       Options
}

// walk recursively walks root and returns matching files.
func (w *walker) walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		relPath := w.rel(path)

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(entry.Name(), ".") || w.skipDir(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Inaccessible symlink targets are skipped.
			}
			if info.IsDir() {
				if !w.opts.FollowSymlinks || w.skipDir(relPath) {
					return nil
				}
				// Walk the target; WalkDir uses Lstat on its root.
				subFiles, err := w.walk(ctx, realPath)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if w.matchesFile(path, relPath) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

func (w *walker) rel(path string) string {
	relPath, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

func (w *walker) skipDir(relPath string) bool {
	if w.exclude.Match(relPath, true) {
		return true
	}
	return !w.opts.IncludeVendored && langdetect.IsVendored(filepath.ToSlash(relPath)+"/")
}

func (w *walker) matchesFile(path, relPath string) bool {
	if !w.extensions[strings.ToLower(filepath.Ext(path))] {
		return false
	}
	return !w.exclude.Match(relPath, false)
}
