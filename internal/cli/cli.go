// Package cli implements the proofscope command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/proofscope/proofscope/pkg/buildinfo"
	"github.com/proofscope/proofscope/pkg/cache"
	"github.com/proofscope/proofscope/pkg/pipeline"
	"github.com/proofscope/proofscope/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "proofscope"
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
	Config *Config
}

// New creates a new CLI instance with a default logger and config
// loaded from disk (missing config files fall back to defaults).
func New(w io.Writer, level log.Level) *CLI {
	cfg, err := LoadConfig()
	if err != nil {
		cfg = DefaultConfig()
	}
	c := &CLI{
		Logger: newLogger(w, level),
		Config: cfg,
	}
	if err != nil {
		c.Logger.Warn("config file ignored", "err", err)
	}
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "proofscope",
		Short:        "Proofscope analyzes the structure of formal dependency graphs",
		Long:         `Proofscope computes the structural skeleton of large dependency graphs: layers, sources and sinks, reachability counts, bottleneck scores, and the longest dependency chain. Cycles are tolerated by condensing strongly connected components before the acyclic passes.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.pathCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The cache backend
// and optional archive store come from the loaded config.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if scope := c.Config.Cache.Scope; scope != "" {
		keyer = cache.NewScopedKeyer(nil, scope+":")
	}
	runner := pipeline.NewRunner(cc, keyer, c.Logger)
	if st, err := c.newStore(ctx); err != nil {
		c.Logger.Warn("archive store unavailable", "err", err)
	} else {
		runner.Store = st
	}
	return runner, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case CacheBackendNone:
		return cache.NewNullCache(), nil
	case CacheBackendMemory:
		return cache.NewMemoryCache(), nil
	case CacheBackendRedis:
		return cache.NewRedisCache(ctx, c.Config.Cache.RedisAddr)
	default:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// newStore opens the archive store when one is configured. A nil store
// with a nil error means archiving is disabled.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	if c.Config.Store.MongoURI == "" {
		return nil, nil
	}
	return store.NewMongoStore(ctx, c.Config.Store.MongoURI, c.Config.Store.Database, c.Config.Store.Collection)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/proofscope/).
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

// configDir returns the config directory using XDG standard (~/.config/proofscope/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
