package cli

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != CacheFile {
		t.Errorf("Cache.Backend = %q", cfg.Cache.Backend)
	}
	if cfg.Store.Backend != StoreMemory {
		t.Errorf("Store.Backend = %q", cfg.Store.Backend)
	}
	if cfg.Export.Format != "csv" {
		t.Errorf("Export.Format = %q", cfg.Export.Format)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flowcopy.toml")
	content := `
[server]
addr = ":9090"

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/0"

[store]
backend = "mongo"
mongo_uri = "mongodb://localhost:27017"

[export]
format = "xml"

[vocabulary]
tones = ["bold"]
stages = ["live"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(os.Stderr, LogInfo)
	c.configPath = path
	if err := c.loadConfig(); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if c.Config.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q", c.Config.Server.Addr)
	}
	if c.Config.Cache.Backend != CacheRedis {
		t.Errorf("Cache.Backend = %q", c.Config.Cache.Backend)
	}
	if c.Config.Store.Backend != StoreMongo {
		t.Errorf("Store.Backend = %q", c.Config.Store.Backend)
	}
	if c.Config.Export.Format != "xml" {
		t.Errorf("Export.Format = %q", c.Config.Export.Format)
	}

	opts := c.Config.AdminOptions()
	if !slices.Contains(opts.Tones, "bold") || !slices.Contains(opts.Tones, "neutral") {
		t.Errorf("Tones = %v, want built-ins plus config extras", opts.Tones)
	}
	if !slices.Contains(opts.Stages, "live") {
		t.Errorf("Stages = %v", opts.Stages)
	}
}

func TestLoadConfigMissingFileKeepsDefaults(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	c.configPath = ""
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := c.loadConfig(); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if c.Config.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q", c.Config.Server.Addr)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flowcopy.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(os.Stderr, LogInfo)
	c.configPath = path
	if err := c.loadConfig(); err == nil {
		t.Error("loadConfig accepted a malformed file")
	}
}
