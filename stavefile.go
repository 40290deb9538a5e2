//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binary  = "bin/gofold"
	mainPkg = "./cmd/gofold"
)

// fuzzTargets pairs each fuzz function with its package.
var fuzzTargets = []struct{ name, pkg string }{
	{"FuzzParse", "./pkg/foldtree/"},
	{"FuzzApplyAll", "./pkg/edit/"},
	{"FuzzGenerateDiff", "./pkg/edit/"},
}

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"l":   Lint.Default,
	"c":   Check,
	"fz":  Test.Fuzz,
	"bp":  Bench.Parse,
	"fmt": Lint.Fmt,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Build compiles bin/gofold when sources changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building gofold...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, mainPkg)
}

// Install installs gofold to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing gofold...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Clean removes build and coverage artifacts.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "gofold.sarif"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Markers builds gofold and checks the fold markers of this repository,
// writing SARIF to gofold.sarif.
func Markers() error {
	st.Deps(Build)
	out, err := sh.Output(binary, "check", "--format", "sarif", "--compact", ".")
	if werr := os.WriteFile("gofold.sarif", []byte(out+"\n"), 0o644); werr != nil {
		return fmt.Errorf("write gofold.sarif: %w", werr)
	}
	if err != nil {
		return fmt.Errorf("unbalanced fold markers (see gofold.sarif): %w", err)
	}
	fmt.Println("✓ Fold markers balanced")
	return nil
}

// Default runs all tests with race detection and coverage.
func (Test) Default() error {
	fmt.Println("Running tests...")
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--",
		"-race",
		"-p", nCores,
		"./...",
		"-coverprofile=coverage.out",
		"-covermode=atomic",
	)
}

// CLI runs the command-line integration tests.
func (Test) CLI() error {
	fmt.Println("Running CLI integration tests...")
	return sh.RunV("go", "test", "-run", "^TestIntegration_", "./internal/cli/")
}

// Fuzz runs each fuzz target for FUZZTIME (default 10s).
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZTIME"), "10s")
	for _, fuzz := range fuzzTargets {
		fmt.Printf("Fuzzing %s for %s...\n", fuzz.name, fuzzTime)
		if err := sh.RunV("go", "test", "-run=^$", "-fuzz=^"+fuzz.name+"$", "-fuzztime="+fuzzTime, fuzz.pkg); err != nil {
			return fmt.Errorf("%s: %w", fuzz.name, err)
		}
	}
	return nil
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	fmt.Println("Running linters...")
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when any file needs gofmt.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s", out)
	}
	return nil
}

// Gate runs the checks a pull request must pass.
func (CI) Gate() error {
	st.SerialDeps(
		Lint.FmtCheck,
		CI.Vet,
		CI.Lint,
		Test.Default,
		CI.ModTidy,
		Markers,
		CI.Cross,
	)
	fmt.Println("✓ CI gate passed")
	return nil
}

// Vet runs go vet.
func (CI) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Lint runs golangci-lint without auto-fix.
func (CI) Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// ModTidy fails when go mod tidy would change go.mod.
func (CI) ModTidy() error {
	before, err := os.ReadFile("go.mod")
	if err != nil {
		return fmt.Errorf("read go.mod: %w", err)
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := os.ReadFile("go.mod")
	if err != nil {
		return fmt.Errorf("read go.mod: %w", err)
	}
	if string(before) != string(after) {
		return errors.New("go.mod changed after 'go mod tidy'")
	}
	return nil
}

// Cross builds gofold for the release platforms. fsnotify has a backend per OS.
func (CI) Cross() error {
	for _, goos := range []string{"linux", "darwin", "windows", "freebsd"} {
		for _, goarch := range []string{"amd64", "arm64"} {
			fmt.Printf("  %s/%s\n", goos, goarch)
			env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
			if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
				return fmt.Errorf("build %s/%s: %w", goos, goarch, err)
			}
		}
	}
	return nil
}

// Parse runs the parser and runner benchmarks.
func (Bench) Parse() error {
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "./pkg/foldtree/", "./pkg/runner/")
}

// ldflags injects version, commit and build date into cmd/gofold.
func ldflags() string {
	version := cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(git("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}

func git(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}
