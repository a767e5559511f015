package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/idilsaglam/todosh/internal/config"
	"github.com/idilsaglam/todosh/internal/store/boltstore"
	"github.com/idilsaglam/todosh/internal/store/jsonstore"
	"github.com/idilsaglam/todosh/internal/store/memstore"
)

func TestResolveConfigLayers(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.toml")
	content := "backend = \"bolt\"\nstore_path = \"" + filepath.Join(dir, "file.db") + "\"\nlog_level = \"info\"\n"
	if err := os.WriteFile(cfgFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvLogLevel, "debug")

	cfg := config.DefaultConfig()
	cfg.StorePath = filepath.Join(dir, "flag.db")
	if err := resolveConfig(&cfg, cfgFile, map[string]bool{"store": true}); err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.Backend != config.BackendBolt {
		t.Errorf("backend = %q, want file value", cfg.Backend)
	}
	if cfg.StorePath != filepath.Join(dir, "flag.db") {
		t.Errorf("store = %q, want flag value", cfg.StorePath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q, want env value", cfg.LogLevel)
	}
}

func TestResolveConfigMissingExplicitFile(t *testing.T) {
	cfg := config.DefaultConfig()
	err := resolveConfig(&cfg, filepath.Join(t.TempDir(), "missing.toml"), map[string]bool{})
	if err == nil {
		t.Fatal("expected error for missing --config file")
	}
}

func TestResolveConfigWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := config.DefaultConfig()
	if err := resolveConfig(&cfg, "", map[string]bool{}); err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.StorePath != jsonstore.DefaultPath() {
		t.Fatalf("store = %q, want %q", cfg.StorePath, jsonstore.DefaultPath())
	}
}

func TestNewPersister(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos")
	if _, ok := newPersister(config.Config{Backend: config.BackendJSON, StorePath: path}).(*jsonstore.Store); !ok {
		t.Error("json backend should build a jsonstore")
	}
	if _, ok := newPersister(config.Config{Backend: config.BackendBolt, StorePath: path}).(*boltstore.Store); !ok {
		t.Error("bolt backend should build a boltstore")
	}
	if _, ok := newPersister(config.Config{Backend: config.BackendMemory}).(*memstore.Store); !ok {
		t.Error("memory backend should build a memstore")
	}
}

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"config", "store", "backend", "log-level", "no-color", "plain"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("flag --%s not registered", name)
		}
	}
}
