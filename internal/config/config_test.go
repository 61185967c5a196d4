package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default("/work/proj")

	assert.Equal(t, filepath.Join("/work/proj", "project", "boot"), cfg.BootDir)
	assert.Equal(t, filepath.Join("/work/proj", "project", "build.yaml"), cfg.PropertiesPath)
	assert.Equal(t, "sbt", cfg.ToolName)
	assert.Equal(t, "Scala", cfg.RuntimeLabel)
	assert.NotEmpty(t, cfg.RuntimeProbes)
	assert.NotEmpty(t, cfg.ToolProbes)
}

func TestLoadWithoutOverrides(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(dir), cfg)
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "project"), 0o755))
	overrides := []byte("tool-name: xbt\nboot-dir: cache/boot\njava-command: /opt/jdk/bin/java\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "project", "launcher.yaml"), overrides, 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "xbt", cfg.ToolName)
	assert.Equal(t, "/opt/jdk/bin/java", cfg.JavaCommand)
	// Relative boot-dir is anchored at the project.
	assert.Equal(t, filepath.Join(dir, "cache", "boot"), cfg.BootDir)
	// Untouched fields keep their defaults.
	assert.Equal(t, "Scala", cfg.RuntimeLabel)
	assert.Equal(t, "sbt.Main", cfg.ToolMainClass)
}

func TestLoadMalformedOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "project"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "project", "launcher.yaml"), []byte("tool-name: [\n"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
}
