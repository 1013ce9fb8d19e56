// Package cli implements the thrackle command-line interface.
//
// The commands synthesize drawings of paths and cycles with an exact number
// of crossings, inspect and render saved drawings, run batches of synthesis
// jobs, serve the HTTP API and browse snapshots. Configuration is layered by
// [config.Load]: defaults, thrackle.toml, THRACKLE_* variables and flags.
//
// # Commands
//
//   - synth: draw a path or cycle with k crossings
//   - stats: crossing statistics of a drawing file
//   - render: convert a drawing to DOT, SVG, PDF or PNG
//   - batch: run the synthesis jobs listed in a TOML file
//   - view: step through crossing targets interactively
//   - serve: run the HTTP API
//   - history: list, show, restore and delete snapshots
//   - cache: inspect and clear the drawing cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging; otherwise the
// configured log.level applies.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/thrackle/internal/config"
	"github.com/matzehuels/thrackle/pkg/buildinfo"
	"github.com/matzehuels/thrackle/pkg/cache"
	"github.com/matzehuels/thrackle/pkg/history"
	"github.com/matzehuels/thrackle/pkg/thrackle"
	"github.com/matzehuels/thrackle/pkg/thrackle/synth"
)

const appName = "thrackle"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	cfg        *config.Config
	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Thrackle draws paths and cycles with an exact number of crossings",
		Long: `Thrackle synthesizes drawings of paths and cycles whose edges cross exactly k
times, checks drawings for crossings, and renders them with Graphviz.`,
		Version:           buildinfo.Get().Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.loadConfig,
	}
	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default ./"+config.DefaultFile+" if present)")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.Float64("spacing", synth.DefaultSpacing, "distance between spine slots")
	pf.Float64("radius", synth.DefaultRadius, "radius of circular placements")
	pf.String("strategy", thrackle.Incremental.String(), "crossing updates: incremental or full")
	pf.Bool("no-cache", false, "disable the drawing cache")
	pf.String("cache-dir", "", "file cache directory")
	pf.Duration("cache-ttl", 0, "cache entry lifetime")
	pf.String("redis", "", "cache in Redis at this address")
	pf.String("history-backend", history.BackendFile, "snapshot store: memory, file or mongo")
	pf.String("history-dir", "", "file snapshot directory")
	pf.String("mongo-uri", "", "MongoDB URI for the mongo snapshot store")

	root.AddCommand(c.synthCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags(), c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	if c.verbose {
		c.SetLogLevel(log.DebugLevel)
	} else if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		c.SetLogLevel(level)
	}
	c.Logger.Debug("config loaded", "strategy", cfg.Layout.Strategy, "history", cfg.History.Backend)
	return nil
}

// config returns the loaded configuration, or defaults when a command runs
// without the root's pre-run (tests).
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		cfg, err := config.Load(nil, "")
		if err != nil {
			c.Logger.Fatal("load default config", "err", err)
		}
		c.cfg = cfg
	}
	return c.cfg
}

// advisor logs rejected operations at warn level.
func (c *CLI) advisor() thrackle.Advisor {
	return thrackle.AdvisorFunc(func(a thrackle.Advisory) {
		c.Logger.Warn(a.Message, "code", a.Code)
	})
}

func (c *CLI) graphOptions() thrackle.Options {
	return c.config().GraphOptions(c.Logger, c.advisor())
}

func (c *CLI) synthesizer() *synth.Synthesizer {
	return synth.New(c.config().SynthOptions(c.Logger))
}

// newCache opens the configured drawing cache: a null cache when disabled,
// Redis when an address is set, the file cache otherwise.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	cfg := c.config().Cache
	if cfg.Disabled {
		return cache.NewNullCache(), nil
	}
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   appName + ":",
		})
		if err != nil {
			return nil, err
		}
		return cache.Observed(rc), nil
	}
	fc, err := cache.NewFileCache(cfg.Dir)
	if err != nil {
		c.Logger.Warn("file cache unavailable, continuing without cache", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.Observed(fc), nil
}

func (c *CLI) openStore(ctx context.Context) (history.Store, error) {
	return history.OpenStore(ctx, c.config().StoreConfig())
}

// stdout is where command results go; tests replace it.
var stdout io.Writer = os.Stdout
