package cli

import (
	"errors"

	"github.com/yaklabco/gofold/internal/configloader"
	"github.com/yaklabco/gofold/pkg/foldedit"
	"github.com/yaklabco/gofold/pkg/fsutil"
	"github.com/yaklabco/gofold/pkg/runner"
)

// Exit codes for gofold.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFindings indicates the command ran but found unbalanced markers or
	// no fold at the requested line.
	ExitFindings = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel errors that only signal an exit code.
var (
	// ErrWarningsFound is returned by check when markers are unbalanced.
	ErrWarningsFound = errors.New("fold marker warnings found")

	// ErrNoFold is returned by at when no fold encloses the line.
	ErrNoFold = errors.New("no fold at line")

	// ErrUsage wraps invalid arguments.
	ErrUsage = errors.New("invalid usage")

	// ErrFilesUnreadable is returned when some files in a run could not be read.
	ErrFilesUnreadable = errors.New("some files could not be read")
)

// IsSilent reports whether err only signals an exit code and should not be logged.
func IsSilent(err error) bool {
	return errors.Is(err, ErrWarningsFound) || errors.Is(err, ErrNoFold)
}

// ExitCodeFromResult determines the exit code of a ranges or check run.
func ExitCodeFromResult(result *runner.Result) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasErrors():
		return ExitIOError
	case result.HasWarnings():
		return ExitFindings
	default:
		return ExitSuccess
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validation *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case IsSilent(err):
		return ExitFindings
	case errors.Is(err, ErrUsage),
		errors.Is(err, foldedit.ErrLineOutOfRange),
		errors.Is(err, foldedit.ErrNotOnMarker),
		errors.Is(err, foldedit.ErrNoFoldAtLine),
		errors.Is(err, foldedit.ErrCrossesFold),
		errors.Is(err, foldedit.ErrUnsupportedLanguage):
		return ExitInvalidUsage
	case errors.As(err, &validation):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrModified),
		errors.Is(err, ErrFilesUnreadable):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
