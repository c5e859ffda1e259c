// Package config loads application configuration from a TOML file with
// sensible defaults. Every field has a working zero-configuration default
// so the CLI runs without a config file; the file exists to pin down
// server deployments.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/davidblanc347/parodesign/pkg/errors"
	"github.com/davidblanc347/parodesign/pkg/layout"
)

// DefaultPath is where Load looks when no explicit path is given.
const DefaultPath = "parodesign.toml"

// Config is the root configuration document.
type Config struct {
	Assistant AssistantConfig `toml:"assistant"`
	Server    ServerConfig    `toml:"server"`
	Cache     CacheConfig     `toml:"cache"`
	Store     StoreConfig     `toml:"store"`
	Layout    layout.Options  `toml:"layout"`
}

// AssistantConfig configures the language-model provider.
type AssistantConfig struct {
	Model  string `toml:"model"`
	APIKey string `toml:"api_key"` // prefer the OPENAI_API_KEY env var
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// CacheConfig selects and configures the cache backend.
// Backend is one of "file", "redis", or "none".
type CacheConfig struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"`
	Redis   RedisConfig `toml:"redis"`
}

// RedisConfig configures the Redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// StoreConfig selects and configures the transcript store.
// Backend is one of "memory" or "mongo".
type StoreConfig struct {
	Backend  string `toml:"backend"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Assistant: AssistantConfig{Model: ""}, // assistant package picks its own default
		Server:    ServerConfig{Addr: ":8080"},
		Cache: CacheConfig{
			Backend: "file",
			Dir:     defaultCacheDir(),
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
		Store: StoreConfig{
			Backend:  "memory",
			MongoURI: "mongodb://localhost:27017",
			Database: "parodesign",
		},
		Layout: layout.DefaultOptions(),
	}
}

// Load reads configuration from path. A missing file at the default path is
// not an error; an explicit path that does not exist is.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case "file", "redis", "none":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case "memory", "mongo":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q", c.Store.Backend)
	}
	return c.Layout.Validate()
}

func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ".parodesign-cache"
	}
	return filepath.Join(base, "parodesign")
}
