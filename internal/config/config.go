// Package config defines service configuration structures and loading hooks.
package config

import (
	"runtime"
	"slices"
)

// PageSizes lists the accepted per_page values.
var PageSizes = []int{10, 25, 50, 100, 250} //nolint:gochecknoglobals // fixed lookup table

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log lines.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. "127.0.0.1:3000".
	Addr string `koanf:"addr"`

	// DataDir holds one subdirectory per season (e.g. "2015-16") of match documents.
	DataDir string `koanf:"data_dir"`

	// StaticDir is served at / when it exists.
	StaticDir string `koanf:"static_dir"`

	// AllowedOrigins are echoed back in CORS responses.
	AllowedOrigins []string `koanf:"allowed_origins"`

	// DecodeWorkers bounds parallel document decoding per directory. 0 means unbounded.
	DecodeWorkers int `koanf:"decode_workers"`

	// DefaultPerPage applies when per_page is absent.
	DefaultPerPage int `koanf:"default_per_page"`

	// ResponseCacheSize bounds cached API responses. 0 disables the cache.
	ResponseCacheSize int `koanf:"response_cache_size"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              "127.0.0.1:3000",
		DataDir:           "matchdata",
		StaticDir:         "ui/dist",
		AllowedOrigins:    []string{"http://127.0.0.1:3000", "http://127.0.0.1:5173"},
		DecodeWorkers:     runtime.NumCPU(),
		DefaultPerPage:    10,
		ResponseCacheSize: 1024,
	}
}

// Validate reports the first invalid setting wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return invalid("addr must not be empty")
	case c.DataDir == "":
		return invalid("data_dir must not be empty")
	case c.DecodeWorkers < 0:
		return invalid("decode_workers must not be negative")
	case c.ResponseCacheSize < 0:
		return invalid("response_cache_size must not be negative")
	case !slices.Contains(PageSizes, c.DefaultPerPage):
		return invalid("default_per_page must be one of 10, 25, 50, 100, 250")
	}
	return nil
}
