package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Cache backend names accepted in the config file.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNull  = "null"
)

// Config holds the user-level configuration, loaded from an optional TOML
// file. Command-line flags override config file values.
//
// Example config (~/.config/gefftracks/config.toml):
//
//	[cache]
//	backend = "file"          # file, redis, or null
//	dir = "/tmp/gefftracks"   # file backend only; defaults to XDG cache dir
//	redis_addr = "localhost:6379"
//
//	[serve]
//	addr = ":8080"
//
//	[render]
//	format = "svg"
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Serve  ServeConfig  `toml:"serve"`
	Render RenderConfig `toml:"render"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// RenderConfig configures diagram rendering defaults.
type RenderConfig struct {
	Format string `toml:"format"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Cache:  CacheConfig{Backend: CacheBackendFile, RedisAddr: "localhost:6379"},
		Serve:  ServeConfig{Addr: ":8080"},
		Render: RenderConfig{Format: "svg"},
	}
}

// DefaultConfigPath returns the config file location using the XDG standard
// (~/.config/gefftracks/config.toml).
func DefaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads a TOML config file and validates it against the defaults.
// A missing file is reported via os.IsNotExist on the returned error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); err != nil {
		return cfg, err
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks configuration values that have a closed set of options.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendNull:
	default:
		return fmt.Errorf("invalid cache backend: %q (must be one of: file, redis, null)", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheBackendRedis && c.Cache.RedisAddr == "" {
		return fmt.Errorf("cache backend %q requires redis_addr", CacheBackendRedis)
	}
	return nil
}
