package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/flowcopy/flowcopy/pkg/flow"
)

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Config holds the CLI and server settings loaded from flowcopy.toml.
type Config struct {
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Export ExportConfig `toml:"export"`

	// Vocabulary extends the built-in tone, audience, intent, and stage
	// lists for every project handled by this installation.
	Vocabulary VocabularyConfig `toml:"vocabulary"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// CacheConfig selects and configures the derived-result cache.
type CacheConfig struct {
	Backend  string `toml:"backend"` // none, file, or redis
	Dir      string `toml:"dir"`     // file backend: cache directory
	RedisURL string `toml:"redis_url"`
}

// StoreConfig selects and configures the project store.
type StoreConfig struct {
	Backend    string `toml:"backend"` // memory or mongo
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ExportConfig configures export defaults.
type ExportConfig struct {
	Dir    string `toml:"dir"`    // destination directory for export files
	Format string `toml:"format"` // csv or xml
}

// VocabularyConfig mirrors the vocabulary part of flow.AdminOptions.
type VocabularyConfig struct {
	Tones     []string `toml:"tones"`
	Audiences []string `toml:"audiences"`
	Intents   []string `toml:"intents"`
	Stages    []string `toml:"stages"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Cache:  CacheConfig{Backend: CacheFile},
		Store:  StoreConfig{Backend: StoreMemory},
		Export: ExportConfig{Format: "csv"},
	}
}

// AdminOptions merges the configured vocabulary over the built-in defaults.
func (c Config) AdminOptions() flow.AdminOptions {
	return flow.MergeAdminOptions(flow.DefaultAdminOptions(), flow.AdminOptions{
		Tones:     c.Vocabulary.Tones,
		Audiences: c.Vocabulary.Audiences,
		Intents:   c.Vocabulary.Intents,
		Stages:    c.Vocabulary.Stages,
	})
}

// loadConfig reads the config file into c.Config. The search order is the
// --config flag, ./flowcopy.toml, then the XDG config directory. A missing
// file leaves the defaults in place; a malformed file is an error.
func (c *CLI) loadConfig() error {
	path := c.configPath
	if path == "" {
		path = findConfig()
	}
	if path == "" {
		return nil
	}

	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", path)
	return nil
}

func findConfig() string {
	local := appName + ".toml"
	if _, err := os.Stat(local); err == nil {
		return local
	}
	if dir, err := configDir(); err == nil {
		path := filepath.Join(dir, appName+".toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
