package api

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mehinger01/garage-layout-planner/pkg/errors"
)

// Config holds the serve-mode configuration, loaded from a TOML file.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`

	// Plan is the path of the layout plan to serve. Ignored when the
	// store backend already holds the named plan.
	Plan string `toml:"plan"`

	// PlanName is the record name used with the plan store.
	PlanName string `toml:"plan_name"`

	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Render RenderConfig `toml:"render"`
}

// CacheConfig selects the rendered-frame cache backend.
type CacheConfig struct {
	// Backend is one of "null", "file", or "redis".
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	Addr     string   `toml:"addr"`
	Password string   `toml:"password"`
	DB       int      `toml:"db"`
	TTL      Duration `toml:"ttl"`
}

// Duration decodes TOML duration strings like "30m" or "1h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// StoreConfig selects the plan store backend.
type StoreConfig struct {
	// Backend is one of "memory" or "mongo".
	Backend  string `toml:"backend"`
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// RenderConfig bounds the viewport accepted by /render.png.
type RenderConfig struct {
	DefaultWidth  int `toml:"default_width"`
	DefaultHeight int `toml:"default_height"`
	MaxWidth      int `toml:"max_width"`
	MaxHeight     int `toml:"max_height"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Addr:     ":8080",
		PlanName: "default",
		Cache: CacheConfig{
			Backend: "null",
			TTL:     Duration{time.Hour},
		},
		Store: StoreConfig{
			Backend: "memory",
		},
		Render: RenderConfig{
			DefaultWidth:  1024,
			DefaultHeight: 768,
			MaxWidth:      4096,
			MaxHeight:     4096,
		},
	}
}

// LoadConfig reads a TOML config file over the defaults. An empty path
// returns DefaultConfig unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case "", "null", "file", "redis":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case "", "memory", "mongo":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q", c.Store.Backend)
	}
	if c.Render.MaxWidth <= 0 || c.Render.MaxHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidViewport, "render bounds must be positive")
	}
	return nil
}
