package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/gofold/pkg/config"
)

// envVarPrefix is the prefix for all gofold environment variables.
const envVarPrefix = "GOFOLD_"

// envMapping applies one environment variable to a config.
type envMapping struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

// envMappings maps environment variable names (without prefix) to setters.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FORMAT": {
		description: "Output format: text, json, summary, table, or sarif",
		apply: func(cfg *config.Config, value string) error {
			cfg.Format = config.OutputFormat(value)
			return nil
		},
	},
	"JOBS": {
		description: "Number of parallel workers (0 = auto)",
		apply: func(cfg *config.Config, value string) error {
			jobs, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid integer %q", value)
			}
			cfg.Jobs = jobs
			return nil
		},
	},
	"DRY_RUN": {
		description: "Print diffs instead of writing fold edits: true or false",
		apply:       boolSetter(func(cfg *config.Config, v bool) { cfg.DryRun = v }),
	},
	"NO_BACKUPS": {
		description: "Disable backups: true or false",
		apply:       boolSetter(func(cfg *config.Config, v bool) { cfg.NoBackups = v }),
	},
	"BACKUPS_ENABLED": {
		description: "Write backups before fold edits: true or false",
		apply:       boolSetter(func(cfg *config.Config, v bool) { cfg.Backups.Enabled = v }),
	},
	"BACKUPS_MODE": {
		description: "Backup mode: sidecar or none",
		apply: func(cfg *config.Config, value string) error {
			cfg.Backups.Mode = value
			return nil
		},
	},
	"IGNORE": {
		description: "Comma-separated list of ignore patterns",
		apply: func(cfg *config.Config, value string) error {
			cfg.Ignore = parseSliceValue(value)
			return nil
		},
	},
	"EXTENSIONS": {
		description: "Comma-separated ext=language pairs, e.g. .lua=lua",
		apply: func(cfg *config.Config, value string) error {
			if cfg.Extensions == nil {
				cfg.Extensions = make(map[string]string)
			}
			for _, pair := range parseSliceValue(value) {
				ext, lang, ok := strings.Cut(pair, "=")
				if !ok || ext == "" || lang == "" {
					return fmt.Errorf("invalid extension mapping %q (expected .ext=language)", pair)
				}
				cfg.Extensions[strings.TrimSpace(ext)] = strings.TrimSpace(lang)
			}
			return nil
		},
	},
}

func boolSetter(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		set(cfg, b)
		return nil
	}
}

// LoadFromEnv applies GOFOLD_* environment variables to cfg.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for suffix, mapping := range envMappings {
		envVar := envVarPrefix + suffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		if err := mapping.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", envVar, err)
		}
	}

	return nil
}

// parseSliceValue splits a comma-separated string, trimming each element.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// EnvVar is a supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns the supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Description: mapping.description})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
