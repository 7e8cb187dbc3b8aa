package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/proofscope/proofscope/pkg/store"
)

// =============================================================================
// Configuration
// =============================================================================

// Cache backend names accepted in the config file.
const (
	CacheBackendFile   = "file"
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
	CacheBackendNone   = "none"
)

// Config holds CLI configuration loaded from config.toml in the
// proofscope config directory. Flags override config values.
type Config struct {
	Cache CacheConfig `toml:"cache"`
	Store StoreConfig `toml:"store"`

	// TopK is the default size of the report's top-node summaries.
	TopK int `toml:"top_k"`
}

// CacheConfig selects the analysis cache backend. Scope, when set,
// prefixes every cache key, so several corpora can share one backend
// without colliding.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	RedisAddr string `toml:"redis_addr"`
	Scope     string `toml:"scope"`
}

// StoreConfig configures the optional MongoDB report archive.
// An empty URI disables archiving.
type StoreConfig struct {
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Backend:   CacheBackendFile,
			RedisAddr: "localhost:6379",
		},
		Store: StoreConfig{
			Database:   store.DefaultDatabase,
			Collection: store.DefaultCollection,
		},
	}
}

// LoadConfig reads config.toml from the config directory. A missing
// file is not an error and yields the defaults.
func LoadConfig() (*Config, error) {
	dir, err := configDir()
	if err != nil {
		return DefaultConfig(), nil
	}
	return loadConfigFile(filepath.Join(dir, "config.toml"))
}

func loadConfigFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendMemory, CacheBackendRedis, CacheBackendNone, "":
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheBackendRedis && c.Cache.RedisAddr == "" {
		return fmt.Errorf("redis cache backend requires redis_addr")
	}
	if c.Store.MongoURI != "" {
		if c.Store.Database == "" {
			c.Store.Database = store.DefaultDatabase
		}
		if c.Store.Collection == "" {
			c.Store.Collection = store.DefaultCollection
		}
	}
	return nil
}
