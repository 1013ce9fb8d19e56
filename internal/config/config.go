// Package config loads layered configuration for the CLI and server.
//
// Sources are applied in order, later ones winning:
//
//  1. Built-in defaults
//  2. A TOML file (thrackle.toml in the working directory, or --config)
//  3. THRACKLE_* environment variables (THRACKLE_LAYOUT_SPACING=30)
//  4. Command-line flags that were set explicitly
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	kmaps "github.com/knadh/koanf/maps"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/matzehuels/thrackle/pkg/cache"
	"github.com/matzehuels/thrackle/pkg/geom"
	"github.com/matzehuels/thrackle/pkg/history"
	"github.com/matzehuels/thrackle/pkg/thrackle"
	"github.com/matzehuels/thrackle/pkg/thrackle/synth"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "thrackle.toml"

// EnvPrefix starts every environment variable the config reads.
const EnvPrefix = "THRACKLE_"

// Config holds all configuration.
type Config struct {
	Layout  LayoutConfig  `koanf:"layout"`
	Cache   CacheConfig   `koanf:"cache"`
	History HistoryConfig `koanf:"history"`
	Server  ServerConfig  `koanf:"server"`
	Log     LogConfig     `koanf:"log"`
}

// PointConfig is a coordinate pair.
type PointConfig struct {
	X float64 `koanf:"x"`
	Y float64 `koanf:"y"`
}

// LayoutConfig controls synthesized placements and crossing updates.
type LayoutConfig struct {
	Spacing  float64     `koanf:"spacing"`
	Radius   float64     `koanf:"radius"`
	Origin   PointConfig `koanf:"origin"`
	Center   PointConfig `koanf:"center"`
	Strategy string      `koanf:"strategy"` // incremental or full
}

// CacheConfig selects the drawing cache.
type CacheConfig struct {
	Disabled bool          `koanf:"disabled"`
	Dir      string        `koanf:"dir"`
	TTL      time.Duration `koanf:"ttl"`
	Redis    RedisConfig   `koanf:"redis"`
}

// RedisConfig points the cache at Redis instead of the file cache.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// HistoryConfig selects the snapshot store.
type HistoryConfig struct {
	Backend string      `koanf:"backend"` // memory, file or mongo
	Dir     string      `koanf:"dir"`
	Limit   int         `koanf:"limit"`
	Mongo   MongoConfig `koanf:"mongo"`
}

// MongoConfig configures the MongoDB snapshot backend.
type MongoConfig struct {
	URI        string `koanf:"uri"`
	Database   string `koanf:"database"`
	Collection string `koanf:"collection"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr    string        `koanf:"addr"`
	Timeout time.Duration `koanf:"timeout"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `koanf:"level"`
}

func defaults() map[string]any {
	return kmaps.Unflatten(map[string]any{
		"layout.spacing":  synth.DefaultSpacing,
		"layout.radius":   synth.DefaultRadius,
		"layout.origin.x": synth.DefaultOrigin.X,
		"layout.origin.y": synth.DefaultOrigin.Y,
		"layout.center.x": synth.DefaultCenter.X,
		"layout.center.y": synth.DefaultCenter.Y,
		"layout.strategy": thrackle.Incremental.String(),

		"cache.disabled":   false,
		"cache.dir":        "",
		"cache.ttl":        "24h",
		"cache.redis.addr": "",
		"cache.redis.db":   0,

		"history.backend":          history.BackendFile,
		"history.dir":              "",
		"history.limit":            history.DefaultLimit,
		"history.mongo.uri":        "",
		"history.mongo.database":   "thrackle",
		"history.mongo.collection": "snapshots",

		"server.addr":    ":8080",
		"server.timeout": "30s",
		"log.level":      "info",
	}, ".")
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"spacing":         "layout.spacing",
	"radius":          "layout.radius",
	"strategy":        "layout.strategy",
	"no-cache":        "cache.disabled",
	"cache-dir":       "cache.dir",
	"cache-ttl":       "cache.ttl",
	"redis":           "cache.redis.addr",
	"history-backend": "history.backend",
	"history-dir":     "history.dir",
	"mongo-uri":       "history.mongo.uri",
	"addr":            "server.addr",
	"log-level":       "log.level",
}

// Load reads configuration from defaults, the TOML file at path (or
// thrackle.toml if path is empty and the file exists), the environment and
// the flags in f. Flags not listed in the flag table are ignored.
func Load(f *pflag.FlagSet, path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(mapProvider(defaults()), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	if f != nil {
		if err := k.Load(posflag.ProviderWithFlag(f, ".", k, func(fl *pflag.Flag) (string, any) {
			key, ok := flagKeys[fl.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(f, fl)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps THRACKLE_CACHE_REDIS_ADDR to cache.redis.addr.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
}

// Validate checks values that the loaders cannot type-check.
func (c *Config) Validate() error {
	if _, err := thrackle.ParseUpdateStrategy(c.Layout.Strategy); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	switch c.History.Backend {
	case history.BackendMemory, history.BackendFile, history.BackendMongo:
	default:
		return fmt.Errorf("unknown history backend %q", c.History.Backend)
	}
	if c.Layout.Spacing <= 0 || c.Layout.Radius <= 0 {
		return fmt.Errorf("layout spacing and radius must be positive")
	}
	return nil
}

// SynthOptions returns the synthesizer placement parameters.
func (c *Config) SynthOptions(logger *log.Logger) synth.Options {
	return synth.Options{
		Spacing: c.Layout.Spacing,
		Radius:  c.Layout.Radius,
		Origin:  geom.Pt(c.Layout.Origin.X, c.Layout.Origin.Y),
		Center:  geom.Pt(c.Layout.Center.X, c.Layout.Center.Y),
		Logger:  logger,
	}
}

// GraphOptions returns options for graphs built by the CLI and server.
func (c *Config) GraphOptions(logger *log.Logger, advisor thrackle.Advisor) thrackle.Options {
	opts := thrackle.DefaultOptions()
	opts.Strategy, _ = thrackle.ParseUpdateStrategy(c.Layout.Strategy)
	opts.Logger = logger
	opts.Advisor = advisor
	return opts
}

// DrawingKey returns the cache key options for a synthesis request.
func (c *Config) DrawingKey(r synth.Request) cache.DrawingKeyOpts {
	return cache.DrawingKeyOpts{
		Shape:   r.Shape,
		N:       r.N,
		K:       r.K,
		Variant: r.Variant,
		Spacing: c.Layout.Spacing,
		Radius:  c.Layout.Radius,
		OriginX: c.Layout.Origin.X,
		OriginY: c.Layout.Origin.Y,
		CenterX: c.Layout.Center.X,
		CenterY: c.Layout.Center.Y,
	}
}

// StoreConfig returns the snapshot store configuration.
func (c *Config) StoreConfig() history.StoreConfig {
	return history.StoreConfig{
		Backend: c.History.Backend,
		Dir:     c.History.Dir,
		Mongo: history.MongoConfig{
			URI:        c.History.Mongo.URI,
			Database:   c.History.Mongo.Database,
			Collection: c.History.Mongo.Collection,
		},
	}
}

type mapProvider map[string]any

func (p mapProvider) Read() (map[string]any, error) {
	return p, nil
}

func (p mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
