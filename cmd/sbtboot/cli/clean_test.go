package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanForceRemovesBootDir(t *testing.T) {
	project := t.TempDir()
	bootDir := filepath.Join(project, "project", "boot")
	require.NoError(t, os.MkdirAll(filepath.Join(bootDir, "2.7.7", "runtime"), 0o755))

	rootCmd.SetArgs([]string{"--project", project, "clean", "--force"})
	require.NoError(t, rootCmd.Execute())

	_, err := os.Stat(bootDir)
	require.True(t, os.IsNotExist(err))
}

func TestCleanMissingBootDir(t *testing.T) {
	project := t.TempDir()

	rootCmd.SetArgs([]string{"--project", project, "clean", "--force"})
	require.NoError(t, rootCmd.Execute())
}
