package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := loadConfig("", defaultConfig())
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfigFileOverridesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshbool.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 4\nlog_level: debug\n"), 0o644))

	cfg, err := loadConfig(path, defaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"), defaultConfig())
	assert.Error(t, err)
}
