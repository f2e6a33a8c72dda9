package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kitchenrun/pkg/buildinfo"
	"github.com/matzehuels/kitchenrun/pkg/cache"
	"github.com/matzehuels/kitchenrun/pkg/catalog"
	"github.com/matzehuels/kitchenrun/pkg/config"
	"github.com/matzehuels/kitchenrun/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "kitchenrun"

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

	configPath  string
	catalogPath string
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
		Short:        "Kitchenrun plans, prices and renders a run of kitchen modules",
		Long:         `Kitchenrun lays out a straight run of base modules, fills the gap to the target length with fillers, prices the result and renders it as SVG or a JSON scene.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/kitchenrun/config.toml)")
	root.PersistentFlags().StringVar(&c.catalogPath, "catalog", "", "TOML catalog replacing the built-in one")
	root.RegisterFlagCompletionFunc("config", tomlFiles)
	root.RegisterFlagCompletionFunc("catalog", tomlFiles)

	root.AddCommand(c.planCommand())
	root.AddCommand(c.priceCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Catalog
// =============================================================================

// loadConfig resolves the application configuration. The --catalog flag
// wins over the configured catalog.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if c.catalogPath != "" {
		cfg.Catalog = c.catalogPath
	}
	// --verbose wins over the configured level.
	if c.Logger.GetLevel() == LogInfo && cfg.LogLevel != "" {
		if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
			c.Logger.SetLevel(lvl)
		}
	}
	return cfg, nil
}

// loadCatalog returns the configured catalog or the built-in one.
func (c *CLI) loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded catalog", "path", cfg.Catalog, "modules", len(cat.Modules))
	return cat, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	// Artifacts from another build may have been drawn differently.
	keyer := cache.NewScopedKeyer(nil, buildinfo.Get().CacheScope()+":")
	runner := pipeline.NewRunner(cc, keyer, c.Logger)
	if cfg.Cache.TTL > 0 {
		runner.TTL = cfg.Cache.TTL
	}
	return runner, nil
}

func (c *CLI) newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		spin := newSpinner(ctx, os.Stderr, "Connecting to "+cfg.Redis.Addr)
		spin.Start()
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		spin.Stop()
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return rc, nil
	default:
		dir, err := fileCacheDir(cfg)
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/kitchenrun/).
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

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
