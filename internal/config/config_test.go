package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile_ReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_PartialFile_FillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site_name: Test Site\noutput_dir: out\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Test Site", cfg.SiteName)
	require.Equal(t, "out", cfg.OutputDir)
	require.Equal(t, Default().PostsDir, cfg.PostsDir)
	require.Equal(t, Default().TemplatesDir, cfg.TemplatesDir)
}

func TestLoad_ExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("SITEGEN_TEST_OUT", "env_out")
	path := filepath.Join(t.TempDir(), "sitegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: ${SITEGEN_TEST_OUT}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "env_out", cfg.OutputDir)
}

func TestLoad_InvalidYAML_ReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- bad"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
