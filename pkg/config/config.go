// Package config loads tool configuration from TOML files.
//
// Configuration is optional everywhere: every field has a working default
// and the CLI runs without any file present. A file is typically only
// needed for server deployments that point at Redis or MongoDB.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the full tool configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`
}

// CacheConfig selects and configures the conversion cache.
type CacheConfig struct {
	// Backend is "file", "redis", or "none".
	Backend string `toml:"backend"`
	// Dir is the cache directory for the file backend. Empty means the
	// XDG default.
	Dir string `toml:"dir"`
	// RedisAddr is the address for the redis backend, e.g. "localhost:6379".
	RedisAddr string `toml:"redis_addr"`
}

// StoreConfig configures model persistence.
type StoreConfig struct {
	// MongoURI enables the MongoDB store when non-empty. Empty keeps
	// models in memory.
	MongoURI string `toml:"mongo_uri"`
	// Database is the MongoDB database name.
	Database string `toml:"database"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Cache:  CacheConfig{Backend: "file"},
		Store:  StoreConfig{Database: "threatforge"},
	}
}

// Load reads a TOML config file at path, layered over [Default]. A missing
// file is not an error; anything else (unreadable file, bad TOML, unknown
// keys) is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}
