package config

import (
	"os"
	"strconv"
)

// Environment variables read by ApplyEnvConfig.
const (
	EnvStore    = "TODO_STORE"
	EnvBackend  = "TODO_BACKEND"
	EnvLogLevel = "TODO_LOG_LEVEL"
	EnvNoColor  = "TODO_NO_COLOR"
)

// ApplyEnvConfig overrides cfg from TODO_* variables. Explicit flags win.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) {
	s := newConfigSetter(changed)
	s.setString("store", os.Getenv(EnvStore), &cfg.StorePath)
	s.setString("backend", os.Getenv(EnvBackend), &cfg.Backend)
	s.setString("log-level", os.Getenv(EnvLogLevel), &cfg.LogLevel)
	if v, ok := os.LookupEnv(EnvNoColor); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			// NO_COLOR convention: any non-empty value disables color
			b = v != ""
		}
		s.setBool("no-color", &b, &cfg.NoColor)
	}
}
