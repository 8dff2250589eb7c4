package javaio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := []byte("max_depth = 64\nmax_handles = 1024\nallow_unregistered_classes = true\nallow_resolve_object = true\n")
	require.NoError(t, os.WriteFile(path, contents, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.MaxDepth)
	assert.Equal(t, 1024, cfg.MaxHandles)
	assert.True(t, cfg.AllowUnregisteredClasses)
	assert.True(t, cfg.AllowResolveObject)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestConfigNilSafeHelpers(t *testing.T) {
	var cfg *Config
	assert.Nil(t, cfg.logger())
	assert.True(t, cfg.allowsClass("anything"))
	assert.Equal(t, 0, cfg.maxDepth())
	assert.Equal(t, 0, cfg.maxHandles())
	assert.False(t, cfg.allowUnregistered())
	assert.False(t, cfg.allowsResolveObject())
}

func TestConfigClassFilterHelper(t *testing.T) {
	cfg := &Config{ClassFilter: func(name string) bool { return name == "ok" }}
	assert.True(t, cfg.allowsClass("ok"))
	assert.False(t, cfg.allowsClass("not-ok"))
}
