package config

import (
	"errors"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with pointer booleans so "unset" differs from false.
type FileConfig struct {
	StorePath string `toml:"store_path"`
	Backend   string `toml:"backend"`
	LogLevel  string `toml:"log_level"`
	NoColor   *bool  `toml:"no_color"`
	Plain     *bool  `toml:"plain"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// FileExists reports whether path names an existing file.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}

// ApplyFileConfig copies file values into cfg, skipping flags in changed.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) {
	s := newConfigSetter(changed)
	s.setString("store", fc.StorePath, &cfg.StorePath)
	s.setString("backend", fc.Backend, &cfg.Backend)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setBool("no-color", fc.NoColor, &cfg.NoColor)
	s.setBool("plain", fc.Plain, &cfg.Plain)
}
