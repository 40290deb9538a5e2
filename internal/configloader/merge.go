package configloader

import (
	"maps"

	"github.com/yaklabco/gofold/pkg/config"
	"github.com/yaklabco/gofold/pkg/foldtree"
)

// merge overlays override onto base and returns a new config.
//   - Scalars: override wins when non-zero
//   - Booleans: override can only turn a flag on
//   - Maps: union, override entries win
//   - Slices: override replaces base when non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	if override.DryRun {
		result.DryRun = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	if len(override.Languages) > 0 {
		if result.Languages == nil {
			result.Languages = make(map[string]foldtree.Markers, len(override.Languages))
		}
		maps.Copy(result.Languages, override.Languages)
	}
	if len(override.Extensions) > 0 {
		if result.Extensions == nil {
			result.Extensions = make(map[string]string, len(override.Extensions))
		}
		maps.Copy(result.Extensions, override.Extensions)
	}

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return result
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
