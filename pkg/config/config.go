// Package config loads pjv settings from a TOML file and the environment.
//
// Settings are resolved in order, later sources winning:
//
//  1. Built-in defaults ([Default])
//  2. The file named by --config, or .pjv.toml in the working directory
//  3. PJV_* environment variables
//  4. Explicit command line flags (applied by the CLI)
//
// Example file:
//
//	spec = "npm"
//	warnings = true
//	format = "json"
//	concurrency = 8
//
//	[cache]
//	enabled = true
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
package config

import (
	"time"
)

// FileName is the config file looked up in the working directory.
const FileName = ".pjv.toml"

// Config holds every pjv setting.
type Config struct {
	Spec            string       `toml:"spec"`
	Warnings        bool         `toml:"warnings"`
	Recommendations bool         `toml:"recommendations"`
	Quiet           bool         `toml:"quiet"`
	Format          string       `toml:"format"`
	Concurrency     int          `toml:"concurrency"`
	Cache           CacheConfig  `toml:"cache"`
	Server          ServerConfig `toml:"server"`
}

// CacheConfig controls the result cache.
type CacheConfig struct {
	Enabled bool     `toml:"enabled"`
	Dir     string   `toml:"dir"` // empty means the user cache directory
	TTL     Duration `toml:"ttl"`
}

// ServerConfig controls `pjv serve`.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
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
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in settings. Warnings and recommendations are
// off so a plain run reports only errors.
func Default() *Config {
	return &Config{
		Spec:        "npm",
		Format:      "text",
		Concurrency: 4,
		Cache: CacheConfig{
			TTL: Duration{24 * time.Hour},
		},
		Server: ServerConfig{
			Addr:         ":8080",
			MaxBodyBytes: 1 << 20,
			ReadTimeout:  Duration{10 * time.Second},
			WriteTimeout: Duration{10 * time.Second},
		},
	}
}
