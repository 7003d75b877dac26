package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intergrado-cg/doctora/pkg/config"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := config.NewConfig()

	assert.Equal(t, 10, cfg.MaxIncludeDepth)
	assert.Equal(t, 6, cfg.MaxSectionDepth)
	assert.Equal(t, 64, cfg.MaxBlockDepth)
	assert.Empty(t, cfg.BaseDir)
	assert.True(t, cfg.SafeMode)
	assert.True(t, cfg.DetectLanguages)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, config.FormatText, cfg.Format)
}

func TestConfig_Clone(t *testing.T) {
	var nilCfg *config.Config
	assert.Nil(t, nilCfg.Clone())

	cfg := config.NewConfig()
	clone := cfg.Clone()
	require.NotSame(t, cfg, clone)
	assert.Equal(t, cfg, clone)

	clone.MaxIncludeDepth = 3
	assert.Equal(t, 10, cfg.MaxIncludeDepth, "clone must not share state")
}

func TestConfig_ToYAML(t *testing.T) {
	var nilCfg *config.Config
	data, err := nilCfg.ToYAML()
	require.NoError(t, err)
	assert.Nil(t, data)

	cfg := config.NewConfig()
	cfg.BaseDir = "/srv/docs"
	data, err = cfg.ToYAML()
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "max_include_depth: 10")
	assert.Contains(t, out, "max_section_depth: 6")
	assert.Contains(t, out, "max_block_depth: 64")
	assert.Contains(t, out, "base_dir: /srv/docs")
	assert.Contains(t, out, "safe_mode: true")
	assert.Contains(t, out, "log_level: warn")
	assert.NotContains(t, out, "format", "CLI-only fields stay out of files")
}

func TestFromYAML_RoundTrip(t *testing.T) {
	cfg := config.NewConfig()
	cfg.MaxIncludeDepth = 4
	cfg.SafeMode = false
	cfg.LogLevel = "debug"

	data, err := cfg.ToYAML()
	require.NoError(t, err)

	got, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestFromYAML_PartialKeepsDefaults(t *testing.T) {
	got, err := config.FromYAML([]byte("max_section_depth: 3\n"))
	require.NoError(t, err)

	assert.Equal(t, 3, got.MaxSectionDepth)
	assert.Equal(t, 10, got.MaxIncludeDepth)
	assert.True(t, got.SafeMode)
	assert.Equal(t, "warn", got.LogLevel)
}

func TestFromYAML_Invalid(t *testing.T) {
	_, err := config.FromYAML([]byte("max_include_depth: [not an int\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doctora.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: info\nsafe_mode: false\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.SafeMode)

	_, err = config.Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestOutputFormat_IsValid(t *testing.T) {
	assert.True(t, config.FormatText.IsValid())
	assert.True(t, config.FormatPlain.IsValid())
	assert.False(t, config.OutputFormat("json").IsValid())
	assert.False(t, config.OutputFormat("").IsValid())
}
