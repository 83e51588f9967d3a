package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/errors"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/store"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got, want := DefaultPath(), "/tmp/xdg/hellion-blueprint/config.toml"; got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}

func TestLoadMissingDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.Server.Addr != DefaultAddr || c.Server.Store != "memory" || c.LogLevel != "info" {
		t.Errorf("defaults not applied: %+v", c)
	}
	if c.Server.MongoDatabase != store.DefaultMongoDatabase {
		t.Errorf("MongoDatabase = %q", c.Server.MongoDatabase)
	}
}

func TestLoadMissingExplicit(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"

[server]
addr = "127.0.0.1:9000"
store = "file"
store_dir = "/var/lib/hellion"
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.Level() != log.DebugLevel {
		t.Errorf("Level() = %v, want debug", c.Level())
	}
	if c.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %q", c.Server.Addr)
	}
	opts := c.StoreOptions()
	if opts.Kind != store.KindFile || opts.Dir != "/var/lib/hellion" {
		t.Errorf("StoreOptions() = %+v", opts)
	}
	if opts.RedisAddr != DefaultRedisAddr {
		t.Errorf("RedisAddr default not applied: %q", opts.RedisAddr)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"syntax", "log_level = ", errors.ErrCodeInvalidFormat},
		{"unknown key", "colour = \"red\"\n", errors.ErrCodeInvalidFormat},
		{"unknown store", "[server]\nstore = \"postgres\"\n", errors.ErrCodeInvalidInput},
		{"bad level", "log_level = \"loud\"\n", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	c := Default()
	cat, err := c.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog() error: %v", err)
	}
	if cat.Len() == 0 {
		t.Error("embedded catalog is empty")
	}

	c.Catalog = filepath.Join(t.TempDir(), "missing.json")
	if _, err := c.LoadCatalog(); err == nil {
		t.Error("LoadCatalog() with missing file should fail")
	}
}
