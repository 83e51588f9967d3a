// Package config loads the hellion-blueprint TOML configuration file.
//
// The file is optional. A missing file at the default location yields the
// defaults; an explicitly named file must exist. Command-line flags are
// applied by the caller after Load.
//
//	catalog = "/path/StructureDefinitions.json"
//	log_level = "info"
//
//	[server]
//	addr = ":8080"
//	store = "memory"
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/catalog"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/errors"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/store"
)

const (
	appDir   = "hellion-blueprint"
	fileName = "config.toml"

	// DefaultAddr is the listen address of the HTTP service.
	DefaultAddr = ":8080"
	// DefaultRedisAddr is used by the redis store when no address is set.
	DefaultRedisAddr = "localhost:6379"
	// DefaultMongoURI is used by the mongo store when no URI is set.
	DefaultMongoURI = "mongodb://localhost:27017"
)

// Config is the decoded configuration file.
type Config struct {
	// Catalog is a StructureDefinitions.json path. Empty selects the
	// embedded catalog.
	Catalog  string `toml:"catalog"`
	LogLevel string `toml:"log_level"`
	Server   Server `toml:"server"`
}

// Server configures the serve command.
type Server struct {
	Addr          string `toml:"addr"`
	Store         string `toml:"store"`
	StoreDir      string `toml:"store_dir"`
	RedisAddr     string `toml:"redis_addr"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// DefaultPath returns $XDG_CONFIG_HOME/hellion-blueprint/config.toml,
// falling back to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appDir, fileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", fileName)
	}
	return filepath.Join(home, ".config", appDir, fileName)
}

// Default returns a Config with every default applied.
func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

// Load reads the file at path, or DefaultPath when path is empty, applies
// defaults and validates the result.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	c := &Config{}
	md, err := toml.DecodeFile(path, c)
	switch {
	case err == nil:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.New(errors.ErrCodeInvalidFormat, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	case stderrors.Is(err, fs.ErrNotExist):
		if explicit {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
	default:
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}

	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// SetDefaults fills every empty field with its default.
func (c *Config) SetDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	s := &c.Server
	if s.Addr == "" {
		s.Addr = DefaultAddr
	}
	if s.Store == "" {
		s.Store = string(store.KindMemory)
	}
	if s.RedisAddr == "" {
		s.RedisAddr = DefaultRedisAddr
	}
	if s.MongoURI == "" {
		s.MongoURI = DefaultMongoURI
	}
	if s.MongoDatabase == "" {
		s.MongoDatabase = store.DefaultMongoDatabase
	}
}

// Validate rejects unknown store kinds and log levels.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "log_level %q", c.LogLevel)
	}
	if !slices.Contains(store.Kinds, store.Kind(c.Server.Store)) {
		return errors.New(errors.ErrCodeInvalidInput, "server.store %q: must be one of %v", c.Server.Store, store.Kinds)
	}
	return nil
}

// Level returns the parsed log level, InfoLevel when unparsable.
func (c *Config) Level() log.Level {
	l, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return l
}

// LoadCatalog returns the configured catalog, or the embedded default.
func (c *Config) LoadCatalog() (*catalog.Catalog, error) {
	if c.Catalog == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(c.Catalog)
}

// StoreOptions converts the server section into store.Open options.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Kind:          store.Kind(c.Server.Store),
		Dir:           c.Server.StoreDir,
		RedisAddr:     c.Server.RedisAddr,
		MongoURI:      c.Server.MongoURI,
		MongoDatabase: c.Server.MongoDatabase,
	}
}
