package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Cache.Backend != CacheBackendFile {
		t.Errorf("default cache backend = %q, want %q", cfg.Cache.Backend, CacheBackendFile)
	}
	if cfg.Serve.Addr == "" {
		t.Error("default serve addr should be set")
	}
	if cfg.Render.Format != "svg" {
		t.Errorf("default render format = %q, want svg", cfg.Render.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[cache]
backend = "redis"
redis_addr = "cache.lab.example:6379"

[serve]
addr = ":9090"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Cache.Backend != CacheBackendRedis {
		t.Errorf("backend = %q, want redis", cfg.Cache.Backend)
	}
	if cfg.Cache.RedisAddr != "cache.lab.example:6379" {
		t.Errorf("redis_addr = %q", cfg.Cache.RedisAddr)
	}
	if cfg.Serve.Addr != ":9090" {
		t.Errorf("serve addr = %q, want :9090", cfg.Serve.Addr)
	}
	// Unset sections keep their defaults
	if cfg.Render.Format != "svg" {
		t.Errorf("render format = %q, want default svg", cfg.Render.Format)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if !os.IsNotExist(err) {
		t.Errorf("missing config should report IsNotExist, got %v", err)
	}
}

func TestLoadConfigInvalidBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"mongo\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("invalid backend should fail")
	}
	if !strings.Contains(err.Error(), "invalid cache backend") {
		t.Errorf("error = %v, want invalid cache backend", err)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not = [valid"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("malformed TOML should fail")
	}
}

func TestConfigValidateRedisNeedsAddr(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Backend = CacheBackendRedis
	cfg.Cache.RedisAddr = ""

	if err := cfg.Validate(); err == nil {
		t.Error("redis backend without addr should fail validation")
	}
}

func TestDefaultConfigPathXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")

	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath error: %v", err)
	}
	want := filepath.Join("/tmp/custom-config", appName, "config.toml")
	if path != want {
		t.Errorf("DefaultConfigPath = %q, want %q", path, want)
	}
}
