package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/loopchart/internal/config"
	"github.com/matzehuels/loopchart/pkg/buildinfo"
	"github.com/matzehuels/loopchart/pkg/cache"
	"github.com/matzehuels/loopchart/pkg/observability"
	"github.com/matzehuels/loopchart/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "loopchart"

	// redisKeyPrefix namespaces artifact keys in a shared redis.
	redisKeyPrefix = appName + ":"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	verbose    bool
	configPath string
	cfg        *config.Config
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
		Use:          appName,
		Short:        "loopchart renders the agentic AI decision loop and comparison chart",
		Long:         `loopchart draws two fixed illustrations, the Agentic AI Decision Loop and the Traditional Automation vs Agentic AI bar chart, and exports them as PNG, SVG, PDF or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			observability.SetRenderHooks(logHooks{c.Logger})
			observability.SetCacheHooks(logHooks{c.Logger})
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./"+config.DefaultPath+" if present)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

func (c *CLI) loadConfig() error {
	if err := config.LoadEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	c.Logger.Debug("loaded config", "path", c.configPath, "output", cfg.Output, "backend", cfg.Backend)
	return nil
}

// config returns the loaded configuration, or the defaults when commands run
// without the root's pre-run hook.
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	cfg := c.config()
	r := pipeline.NewRunner(c.newCache(ctx, noCache), c.keyer(noCache), c.Logger)
	if cfg.Cache.TTL > 0 {
		r.TTL = cfg.Cache.TTL
	}
	return r
}

// newCache picks redis when configured, else the file cache. Any setup
// failure degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	cfg := c.config()

	if cfg.Cache.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err == nil {
			c.Logger.Debug("using redis cache")
			return rc
		}
		c.Logger.Warn("redis cache unavailable, falling back to file cache", "error", err)
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache()
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("file cache unavailable", "dir", dir, "error", err)
		return cache.NewNullCache()
	}
	return fc
}

func (c *CLI) keyer(noCache bool) cache.Keyer {
	if noCache || c.config().Cache.RedisURL == "" {
		return nil
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), redisKeyPrefix)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/loopchart/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configuredCacheDir is the file cache directory in effect.
func (c *CLI) configuredCacheDir() (string, error) {
	if dir := c.config().Cache.Dir; dir != "" {
		return dir, nil
	}
	return cacheDir()
}
