package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	InputFile string `toml:"input_file"`
	OutputDir string `toml:"output_dir"`
}

func Load() (*Config, error) {
	cfg := &Config{
		InputFile: "conversations.json",
		OutputDir: "output_conversations",
	}

	home, err := os.UserHomeDir()
	if err != nil {
		// no home dir, defaults still apply
		return cfg, nil
	}

	cfgPath := filepath.Join(home, ".config", "cgx", "config.toml")
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	cfg.InputFile = expandHome(cfg.InputFile, home)
	cfg.OutputDir = expandHome(cfg.OutputDir, home)

	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
