// Package config loads gridsep settings from TOML or YAML files.
//
// Every field has a default, so an empty or missing file is a valid
// configuration. File values override the defaults field by field:
//
//	[log]
//	level = "debug"
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
//	ttl = "1h"
//
//	[search]
//	transitive = true
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/gridsep/pkg/errors"
)

const appName = "gridsep"

// Supported file formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Config is the root configuration.
type Config struct {
	Log    LogConfig    `toml:"log" yaml:"log"`
	Cache  CacheConfig  `toml:"cache" yaml:"cache"`
	Search SearchConfig `toml:"search" yaml:"search"`
	Server ServerConfig `toml:"server" yaml:"server"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
}

// CacheConfig selects and tunes the result cache.
type CacheConfig struct {
	// Disabled turns caching off entirely.
	Disabled bool `toml:"disabled" yaml:"disabled"`
	// Dir is the file cache directory. Ignored when RedisURL is set.
	Dir string `toml:"dir" yaml:"dir"`
	// RedisURL switches to a Redis cache, e.g. redis://localhost:6379/0.
	RedisURL string `toml:"redis_url" yaml:"redis_url"`
	// TTL is how long separation results stay cached.
	TTL Duration `toml:"ttl" yaml:"ttl"`
}

// SearchConfig holds separation defaults.
type SearchConfig struct {
	// Transitive closes inequalities through positive cells before each pass.
	Transitive bool `toml:"transitive" yaml:"transitive"`
	// BestOnly restricts order listings to maximal orders.
	BestOnly bool `toml:"best_only" yaml:"best_only"`
	// Jobs bounds how many input files are separated concurrently.
	Jobs int `toml:"jobs" yaml:"jobs"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string   `toml:"addr" yaml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout" yaml:"read_timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes" yaml:"max_body_bytes"`
	// RequestTimeout bounds the work done for one request. Zero disables it.
	RequestTimeout Duration `toml:"request_timeout" yaml:"request_timeout"`
}

// Duration is a time.Duration written as a string such as "90s" or "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info"},
		Cache: CacheConfig{
			Dir: DefaultCacheDir(),
			TTL: Duration{24 * time.Hour},
		},
		Search: SearchConfig{
			BestOnly: true,
			Jobs:     4,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			ReadTimeout:    Duration{30 * time.Second},
			MaxBodyBytes:   1 << 20,
			RequestTimeout: Duration{time.Minute},
		},
	}
}

// DefaultCacheDir follows the XDG convention: $XDG_CACHE_HOME/gridsep, or
// ~/.cache/gridsep. It returns "" when no home directory is known.
func DefaultCacheDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", appName)
}

// Load reads the configuration at path, choosing the decoder by extension.
// An empty path or a file that does not exist yields [Default].
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	format, err := formatOf(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data in the given format on top of [Default] and validates
// the result.
func Parse(data []byte, format string) (Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid TOML")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && err != io.EOF {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid YAML")
		}
	default:
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q", format)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func formatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "config file %s: expected .toml, .yaml or .yml", path)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if _, err := c.Log.ParseLevel(); err != nil {
		return err
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if c.Search.Jobs < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "search.jobs must be at least 1")
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr must be set")
	}
	if c.Server.RequestTimeout.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.request_timeout must not be negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body_bytes must be positive")
	}
	return nil
}

// ParseLevel converts Level to a logger level.
func (l LogConfig) ParseLevel() (log.Level, error) {
	level, err := log.ParseLevel(l.Level)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "log.level %q", l.Level)
	}
	return level, nil
}
