package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "conversations.json", cfg.InputFile)
	require.Equal(t, "output_conversations", cfg.OutputDir)
}

func TestLoadFromFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfgDir := filepath.Join(home, ".config", "cgx")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(
		"input_file = \"~/exports/conversations.json\"\noutput_dir = \"/tmp/conv-out\"\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "exports", "conversations.json"), cfg.InputFile)
	require.Equal(t, "/tmp/conv-out", cfg.OutputDir)
}

func TestLoadBadTOML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfgDir := filepath.Join(home, ".config", "cgx")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte("input_file = ["), 0o644))

	_, err := Load()
	require.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	require.Equal(t, "/home/u/x", expandHome("~/x", "/home/u"))
	require.Equal(t, "/abs/x", expandHome("/abs/x", "/home/u"))
	require.Equal(t, "~", expandHome("~", "/home/u"))
}
