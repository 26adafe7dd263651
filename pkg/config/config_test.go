package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "threatforge.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Run("EmptyPathUsesDefaults", func(t *testing.T) {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load() = %v, want nil", err)
		}
		if cfg.Server.Addr != ":8080" || cfg.Cache.Backend != "file" {
			t.Errorf("defaults = %+v", cfg)
		}
	})

	t.Run("MissingFileUsesDefaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		if err != nil {
			t.Fatalf("Load() = %v, want nil", err)
		}
		if cfg.Store.Database != "threatforge" {
			t.Errorf("database = %q, want threatforge", cfg.Store.Database)
		}
	})

	t.Run("FileOverridesDefaults", func(t *testing.T) {
		path := writeConfig(t, `
[server]
addr = ":9999"

[cache]
backend = "redis"
redis_addr = "localhost:6379"

[store]
mongo_uri = "mongodb://localhost:27017"
`)
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() = %v, want nil", err)
		}
		if cfg.Server.Addr != ":9999" {
			t.Errorf("addr = %q, want :9999", cfg.Server.Addr)
		}
		if cfg.Cache.Backend != "redis" || cfg.Cache.RedisAddr != "localhost:6379" {
			t.Errorf("cache = %+v", cfg.Cache)
		}
		if cfg.Store.MongoURI != "mongodb://localhost:27017" {
			t.Errorf("mongo_uri = %q", cfg.Store.MongoURI)
		}
		// Untouched sections keep their defaults.
		if cfg.Store.Database != "threatforge" {
			t.Errorf("database = %q, want default", cfg.Store.Database)
		}
	})

	t.Run("BadTOML", func(t *testing.T) {
		path := writeConfig(t, `server = [broken`)
		if _, err := Load(path); err == nil {
			t.Error("Load() = nil, want error")
		}
	})

	t.Run("UnknownKeyRejected", func(t *testing.T) {
		path := writeConfig(t, `
[server]
adddr = ":1"
`)
		_, err := Load(path)
		if err == nil || !strings.Contains(err.Error(), "unknown key") {
			t.Errorf("Load() = %v, want unknown key error", err)
		}
	})
}
