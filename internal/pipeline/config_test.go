package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surayt/turoyo-glossary/internal/domain"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("GLOSSARY_WORKERS", "8")
	t.Setenv("GLOSSARY_LOG_LEVEL", "debug")
	t.Setenv("GLOSSARY_LOG_FORMAT", "json")
	t.Setenv("GLOSSARY_EXPORT_INDENT", "false")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.ExportIndent)
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := []byte("workers: 2\nlog_level: warn\nlog_format: text\nexport_indent: true\n")
	require.NoError(t, os.WriteFile(path, yaml, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.ExportIndent)
}

func TestLoadConfigEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 2\n"), 0o644))

	t.Setenv("GLOSSARY_WORKERS", "16")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Workers)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	valid := Config{Workers: 4}
	require.NoError(t, valid.Validate())

	invalid := Config{Workers: 0}
	err := invalid.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidConfig))
}
