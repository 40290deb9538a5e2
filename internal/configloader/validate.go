package configloader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/gofold/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "languages.lua.start").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the problem.
	Message string

	// FilePath is the config file containing the error, if known.
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors prevent loading.
	Errors []ValidationError

	// Warnings are reported but do not prevent loading.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	config.BackupModeSidecar: true,
	config.BackupModeNone:    true,
}

// knownColors lists valid color settings.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownColors = map[string]bool{
	"auto":   true,
	"always": true,
	"never":  true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.addError("format", cfg.Format,
			fmt.Sprintf("invalid format %q; must be one of: text, json, summary, table, sarif", cfg.Format))
	}
	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.Color != "" && !knownColors[cfg.Color] {
		result.addError("color", cfg.Color,
			fmt.Sprintf("invalid color %q; must be one of: auto, always, never", cfg.Color))
	}
	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.addError("backups.mode", cfg.Backups.Mode,
			fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode))
	}

	validateLanguages(cfg, result)
	validateExtensions(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

func validateLanguages(cfg *config.Config, result *ValidationResult) {
	for _, lang := range sortedKeys(cfg.Languages) {
		markers := cfg.Languages[lang]
		if strings.TrimSpace(markers.Start) == "" {
			result.addError("languages."+lang+".start", markers.Start,
				"start marker must not be empty")
		}
	}
}

func validateExtensions(cfg *config.Config, result *ValidationResult) {
	table := cfg.MarkerTable()
	for _, ext := range sortedKeys(cfg.Extensions) {
		lang := cfg.Extensions[ext]
		if !strings.HasPrefix(ext, ".") {
			result.addError("extensions."+ext, ext,
				fmt.Sprintf("extension %q must start with a dot", ext))
			continue
		}
		if !table.Supports(lang) {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "extensions." + ext,
				Value:   lang,
				Message: fmt.Sprintf("unknown language %q; files with this extension will be skipped", lang),
			})
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern,
				fmt.Sprintf("invalid glob pattern: %v", err))
		}
	}
}

// ValidateWithFile validates cfg and attributes findings to filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

func (r *ValidationResult) addError(field string, value any, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: message})
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
