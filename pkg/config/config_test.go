package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gofold/pkg/config"
	"github.com/yaklabco/gofold/pkg/foldtree"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	assert.Equal(t, config.FormatText, cfg.Format)
	assert.True(t, cfg.Backups.Enabled)
	assert.Equal(t, config.BackupModeSidecar, cfg.Backups.Mode)
	assert.True(t, cfg.BackupsActive())
	assert.Equal(t, foldtree.DefaultMarkers(), cfg.MarkerTable())
}

func TestConfig_BackupsActive(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.NoBackups = true
	assert.False(t, cfg.BackupsActive())

	cfg = config.NewConfig()
	cfg.Backups.Mode = config.BackupModeNone
	assert.False(t, cfg.BackupsActive())
}

func TestConfig_MarkerTable(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Languages["lua"] = foldtree.Markers{Start: "--"}
	cfg.Languages["python"] = foldtree.Markers{Start: "##"}

	table := cfg.MarkerTable()
	assert.Equal(t, "--", table.Lookup("lua").Start)
	assert.Equal(t, "##", table.Lookup("python").Start)
	assert.Equal(t, "//", table.Lookup("rust").Start)
}

func TestOutputFormat_IsValid(t *testing.T) {
	t.Parallel()

	for _, format := range []config.OutputFormat{
		config.FormatText, config.FormatJSON, config.FormatSummary, config.FormatTable, config.FormatSARIF,
	} {
		assert.True(t, format.IsValid(), format)
	}
	assert.False(t, config.OutputFormat("xml").IsValid())
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Languages["css"] = foldtree.Markers{Start: "/*", End: "*/"}
	cfg.Extensions[".lua"] = "lua"
	cfg.Ignore = []string{"vendor/**"}
	cfg.Format = config.FormatJSON

	data, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "format", "CLI-only fields must not be persisted")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, cfg.Languages, parsed.Languages)
	assert.Equal(t, cfg.Extensions, parsed.Extensions)
	assert.Equal(t, cfg.Ignore, parsed.Ignore)
	assert.Equal(t, cfg.Backups, parsed.Backups)
}

func TestFromYAML_Invalid(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("languages: [unclosed"))
	require.Error(t, err)
}

func TestClone_IsDeep(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Ignore = []string{"a"}
	cfg.Extensions[".x"] = "plaintext"
	cfg.Jobs = 3

	clone := cfg.Clone()
	clone.Ignore[0] = "b"
	clone.Extensions[".x"] = "python"

	assert.Equal(t, "a", cfg.Ignore[0])
	assert.Equal(t, "plaintext", cfg.Extensions[".x"])
	assert.Equal(t, 3, clone.Jobs)
	assert.Nil(t, (*config.Config)(nil).Clone())
}

func TestGenerateTemplate_Parses(t *testing.T) {
	t.Parallel()

	data := config.GenerateTemplate()
	assert.Contains(t, string(data), "python")
	assert.Contains(t, string(data), "#{{{")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.True(t, parsed.Backups.Enabled)
	assert.Equal(t, []string{"**/testdata/**"}, parsed.Ignore)
}
