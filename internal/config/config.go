// Package config resolves shell settings from defaults, a TOML file, the
// environment and command-line flags, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/todosh/internal/store/jsonstore"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// Config holds settings for one shell session.
type Config struct {
	StorePath string
	Backend   string
	LogLevel  string
	NoColor   bool
	Plain     bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Backend:  BackendJSON,
		LogLevel: zerolog.WarnLevel.String(),
	}
}

// DefaultConfigPath returns ~/.todo/config.toml, or "" if home is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".todo", "config.toml")
	}
	return ""
}

// Validate checks the configuration and fills derived defaults.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case "":
		c.Backend = BackendJSON
	case BackendJSON, BackendBolt, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want json, bolt or memory)", c.Backend)
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	if c.StorePath == "" {
		switch c.Backend {
		case BackendJSON:
			c.StorePath = jsonstore.DefaultPath()
		case BackendBolt:
			c.StorePath = strings.TrimSuffix(jsonstore.DefaultPath(), ".json") + ".db"
		}
	}
	c.StorePath = expandHome(c.StorePath)
	return nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
}

// configSetter applies values unless the matching flag was set explicitly.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}
