package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigMissing(t *testing.T) {
	cfg, err := loadConfigFile(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("loadConfigFile() error: %v", err)
	}
	if cfg.Cache.Backend != CacheBackendFile {
		t.Errorf("default backend = %q, want %q", cfg.Cache.Backend, CacheBackendFile)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := writeConfig(t, `
top_k = 10

[cache]
backend = "redis"
redis_addr = "redis.local:6379"
scope = "mathlib"

[store]
mongo_uri = "mongodb://localhost:27017"
`)

	cfg, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("loadConfigFile() error: %v", err)
	}

	if cfg.TopK != 10 {
		t.Errorf("TopK = %d, want 10", cfg.TopK)
	}
	if cfg.Cache.Backend != CacheBackendRedis {
		t.Errorf("backend = %q, want redis", cfg.Cache.Backend)
	}
	if cfg.Cache.RedisAddr != "redis.local:6379" {
		t.Errorf("redis addr = %q", cfg.Cache.RedisAddr)
	}
	if cfg.Cache.Scope != "mathlib" {
		t.Errorf("scope = %q, want mathlib", cfg.Cache.Scope)
	}
	// Database and collection fall back to defaults when a URI is set.
	if cfg.Store.Database == "" || cfg.Store.Collection == "" {
		t.Errorf("store defaults not applied: %+v", cfg.Store)
	}
}

func TestLoadConfigUnknownBackend(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "memcached"
`)

	if _, err := loadConfigFile(path); err == nil {
		t.Error("expected error for unknown cache backend")
	}
}

func TestLoadConfigRedisRequiresAddr(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "redis"
redis_addr = ""
`)

	if _, err := loadConfigFile(path); err == nil {
		t.Error("expected error for redis backend without address")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeConfig(t, `[cache`)

	cfg, err := loadConfigFile(path)
	if err == nil {
		t.Error("expected error for malformed TOML")
	}
	if cfg == nil {
		t.Fatal("loadConfigFile() should still return defaults on error")
	}
	if cfg.Cache.Backend != CacheBackendFile {
		t.Errorf("fallback backend = %q, want file", cfg.Cache.Backend)
	}
}
