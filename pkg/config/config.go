// Package config defines the configuration types for gofold.
// These are plain data structures; loading and merging live in internal/configloader.
package config

import "github.com/yaklabco/gofold/pkg/foldtree"

// BackupsConfig controls backups written before fold edits.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar" or "none"
}

// Backup modes.
const (
	BackupModeSidecar = "sidecar"
	BackupModeNone    = "none"
)

// OutputFormat specifies how fold reports are rendered.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
	FormatTable   OutputFormat = "table"
	FormatSARIF   OutputFormat = "sarif"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSummary, FormatTable, FormatSARIF:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure.
type Config struct {
	// Languages adds or overrides marker-table entries keyed by language ID.
	Languages map[string]foldtree.Markers `mapstructure:"languages" yaml:"languages,omitempty"`

	// Extensions maps file extensions (".lua") to language IDs.
	Extensions map[string]string `mapstructure:"extensions" yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// Backups configures backups written before fold edits.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs is the number of parallel workers; 0 means NumCPU.
	Jobs int `mapstructure:"-" yaml:"-"`

	// DryRun prints a diff instead of writing fold edits.
	DryRun bool `mapstructure:"-" yaml:"-"`

	// NoBackups disables backups regardless of Backups.
	NoBackups bool `mapstructure:"-" yaml:"-"`

	// Color is "auto", "always" or "never".
	Color string `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Languages:  make(map[string]foldtree.Markers),
		Extensions: make(map[string]string),
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    BackupModeSidecar,
		},
		Format: FormatText,
		Color:  "auto",
	}
}

// MarkerTable returns the built-in marker table extended by Languages.
func (c *Config) MarkerTable() foldtree.MarkerTable {
	table := foldtree.DefaultMarkers()
	if c == nil {
		return table
	}
	return table.With(c.Languages)
}

// BackupsActive reports whether fold edits should write backups.
func (c *Config) BackupsActive() bool {
	return c.Backups.Enabled && c.Backups.Mode != BackupModeNone && !c.NoBackups
}
