// Package config loads kitchenrun's application configuration.
//
// Values are resolved in three layers, later layers winning:
//
//  1. built-in defaults ([Default])
//  2. an optional TOML file
//  3. KITCHENRUN_* environment variables
//
// A config file looks like:
//
//	addr = ":8080"
//	catalog = "/etc/kitchenrun/catalog.toml"
//	log_level = "info"
//
//	[cache]
//	backend = "redis"
//	ttl = "24h"
//
//	[redis]
//	addr = "localhost:6379"
package config

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/matzehuels/kitchenrun/pkg/cache"
	"github.com/matzehuels/kitchenrun/pkg/errors"
	"github.com/matzehuels/kitchenrun/pkg/session"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the full application configuration.
type Config struct {
	// Addr is the HTTP listen address for `kitchenrun serve`.
	Addr string `toml:"addr" env:"KITCHENRUN_ADDR"`

	// Catalog is an optional TOML catalog replacing the built-in one.
	Catalog string `toml:"catalog" env:"KITCHENRUN_CATALOG"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level" env:"KITCHENRUN_LOG_LEVEL"`

	Cache  CacheConfig  `toml:"cache"`
	Redis  RedisConfig  `toml:"redis"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and tunes the artifact cache.
type CacheConfig struct {
	Backend string        `toml:"backend" env:"KITCHENRUN_CACHE"`
	Dir     string        `toml:"dir" env:"KITCHENRUN_CACHE_DIR"`
	TTL     time.Duration `toml:"ttl" env:"KITCHENRUN_CACHE_TTL"`
}

// RedisConfig addresses the Redis cache backend.
type RedisConfig struct {
	Addr      string `toml:"addr" env:"KITCHENRUN_REDIS_ADDR"`
	Password  string `toml:"password" env:"KITCHENRUN_REDIS_PASSWORD"`
	DB        int    `toml:"db" env:"KITCHENRUN_REDIS_DB"`
	KeyPrefix string `toml:"key_prefix" env:"KITCHENRUN_REDIS_PREFIX"`
}

// ServerConfig tunes the HTTP server.
type ServerConfig struct {
	ReadTimeout  time.Duration `toml:"read_timeout" env:"KITCHENRUN_READ_TIMEOUT"`
	WriteTimeout time.Duration `toml:"write_timeout" env:"KITCHENRUN_WRITE_TIMEOUT"`
	SessionTTL   time.Duration `toml:"session_ttl" env:"KITCHENRUN_SESSION_TTL"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:     ":8080",
		LogLevel: "info",
		Cache: CacheConfig{
			Backend: CacheFile,
			TTL:     cache.TTLArtifact,
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Server: ServerConfig{
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			SessionTTL:   session.DefaultTTL,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/kitchenrun/config.toml or its
// platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "kitchenrun", "config.toml"), nil
}

// Load resolves the configuration. An empty path reads the default path if
// it exists. An explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			if explicit || !stderrors.Is(err, fs.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse env")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return err
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "redis cache needs redis.addr")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown log level %q", c.LogLevel)
	}
	if c.Cache.TTL < 0 || c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.SessionTTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "durations must not be negative")
	}
	return nil
}

// Encode writes c as TOML.
func Encode(w io.Writer, c Config) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
