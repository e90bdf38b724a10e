// Package config loads graphdeck settings from a TOML file and GRAPHDECK_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/alexanderramin/graphdeck/internal/catalog"
	"github.com/go-playground/validator/v10"
)

// Config holds every graphdeck setting.
type Config struct {
	Catalog CatalogConfig `toml:"catalog"`
	Cache   CacheConfig   `toml:"cache"`
	Editor  EditorConfig  `toml:"editor"`
	Log     LogConfig     `toml:"log"`
}

// CatalogConfig controls the remote catalog client.
type CatalogConfig struct {
	Endpoint          string  `toml:"endpoint" validate:"required,url"`
	TimeoutMs         int     `toml:"timeout_ms" validate:"min=1"`
	MaxRetries        int     `toml:"max_retries" validate:"min=0,max=10"`
	RatePerSecond     float64 `toml:"rate_per_second" validate:"min=0"`
	Burst             int     `toml:"burst" validate:"min=0"`
	Offline           bool    `toml:"offline"`
	BreakerFailures   uint32  `toml:"breaker_failures"`
	BreakerCooldownMs int     `toml:"breaker_cooldown_ms" validate:"min=0"`
}

// CacheConfig controls the SQLite lookup cache.
type CacheConfig struct {
	Enabled    bool   `toml:"enabled"`
	Path       string `toml:"path" validate:"required_if=Enabled true"`
	TTLMinutes int    `toml:"ttl_minutes" validate:"min=1"`
}

// EditorConfig controls the editor and canvas.
type EditorConfig struct {
	IDPrefix     string `toml:"id_prefix" validate:"required"`
	MinFilterLen int    `toml:"min_filter_len" validate:"min=1"`
	DefaultKind  string `toml:"default_kind" validate:"oneof=input default output"`
	CellWidth    int    `toml:"cell_width" validate:"min=1"`
	CellHeight   int    `toml:"cell_height" validate:"min=1"`
}

// LogConfig controls the log file. An empty path discards logs.
type LogConfig struct {
	Path  string `toml:"path"`
	Level string `toml:"level" validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// ErrInvalid wraps every validation failure returned by Load.
var ErrInvalid = errors.New("invalid config")

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Endpoint:          catalog.DefaultEndpoint,
			TimeoutMs:         8000,
			MaxRetries:        1,
			RatePerSecond:     4,
			Burst:             4,
			BreakerFailures:   5,
			BreakerCooldownMs: 30000,
		},
		Cache: CacheConfig{
			Enabled:    true,
			Path:       filepath.Join(DataDir(), "cache.db"),
			TTLMinutes: 24 * 60,
		},
		Editor: EditorConfig{
			IDPrefix:     "dndnode_",
			MinFilterLen: 3,
			DefaultKind:  "default",
			CellWidth:    10,
			CellHeight:   20,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Dir returns the graphdeck config directory.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "graphdeck")
}

// DataDir returns the directory holding the lookup cache.
func DataDir() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, "graphdeck")
}

// DefaultPath returns GRAPHDECK_CONFIG or the config.toml inside Dir.
func DefaultPath() string {
	if p := os.Getenv("GRAPHDECK_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.toml")
}

// Load reads path (DefaultPath when empty), applies environment overrides and
// validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field constraint.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, describe(err))
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GRAPHDECK_CATALOG_ENDPOINT"); v != "" {
		cfg.Catalog.Endpoint = v
	}
	if v := os.Getenv("GRAPHDECK_CATALOG_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Catalog.TimeoutMs = n
		}
	}
	if v := os.Getenv("GRAPHDECK_CATALOG_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Catalog.MaxRetries = n
		}
	}
	if v := os.Getenv("GRAPHDECK_OFFLINE"); v != "" {
		cfg.Catalog.Offline, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("GRAPHDECK_CACHE_ENABLED"); v != "" {
		cfg.Cache.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("GRAPHDECK_CACHE_PATH"); v != "" {
		cfg.Cache.Path = v
	}
	if v := os.Getenv("GRAPHDECK_LOG_PATH"); v != "" {
		cfg.Log.Path = v
	}
	if v := os.Getenv("GRAPHDECK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
}

// ClientConfig maps the catalog section onto the HTTP client settings.
func (c *Config) ClientConfig() catalog.ClientConfig {
	return catalog.ClientConfig{
		Endpoint:        c.Catalog.Endpoint,
		TimeoutMs:       c.Catalog.TimeoutMs,
		MaxRetries:      c.Catalog.MaxRetries,
		RatePerSecond:   c.Catalog.RatePerSecond,
		Burst:           c.Catalog.Burst,
		BreakerFailures: c.Catalog.BreakerFailures,
		BreakerCooldown: time.Duration(c.Catalog.BreakerCooldownMs) * time.Millisecond,
	}
}

// CacheTTL returns the cache freshness window.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLMinutes) * time.Minute
}

// NewLogger builds the application logger. Logs go to the configured file;
// with no path they are discarded so the TUI owns the terminal. The returned
// closer releases the file.
func (c *Config) NewLogger() (*slog.Logger, io.Closer, error) {
	if c.Log.Path == "" {
		return slog.New(slog.DiscardHandler), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(c.Log.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(c.Log.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: parseLevel(c.Log.Level)})
	return slog.New(handler), f, nil
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Namespace())
		switch e.Tag() {
		case "required", "required_if":
			msgs = append(msgs, field+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, e.Param()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, e.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", field, e.Param()))
		case "url":
			msgs = append(msgs, field+" must be a URL")
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}
