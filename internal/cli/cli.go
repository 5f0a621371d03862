// Package cli implements the gefftracks command-line interface.
//
// This package provides commands for decomposing lineage graphs into
// tracklets, reconstructing graphs from tracks tables, inspecting and
// rendering lineage files, and serving tracks to a viewer host over HTTP.
// The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - decompose: Decompose a lineage file into a tracks table
//   - reconstruct: Rebuild a lineage file from a tracks table
//   - info: Show summary statistics for a lineage file
//   - render: Draw the tracklet lineage diagram
//   - serve: Expose tracks over HTTP for a viewer host
//   - browse: Interactively browse tracklets in the terminal
//   - cache: Manage the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/live-image-tracking-tools/gefftracks/pkg/buildinfo"
	"github.com/live-image-tracking-tools/gefftracks/pkg/cache"
	"github.com/live-image-tracking-tools/gefftracks/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "gefftracks"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and configuration
// loaded from the default config file (missing files leave the defaults).
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
	if path, err := DefaultConfigPath(); err == nil {
		if cfg, err := LoadConfig(path); err == nil {
			c.Config = cfg
		} else if !os.IsNotExist(err) {
			c.Logger.Warn("ignoring unreadable config file", "path", path, "err", err)
		}
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
		Use:          appName,
		Short:        "gefftracks decomposes cell lineage graphs into tracklets",
		Long:         `gefftracks is a CLI tool for working with geff lineage files: it decomposes tracking graphs into tracklets, builds viewer-ready tracks tables, and reconstructs lineage graphs from edited tables.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.decomposeCommand())
	root.AddCommand(c.reconstructCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	backend, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(backend, c.Logger), nil
}

// newCache creates the cache backend selected by configuration. A missing
// cache directory falls back to a null cache so commands keep working
// without one; an unreachable Redis is an error, since picking that backend
// was explicit.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case CacheBackendNull:
		return cache.NewNullCache(), nil
	case CacheBackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: c.Config.Cache.RedisAddr})
	default:
		dir := c.Config.Cache.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	}
}

// cacheDir returns the cache directory using XDG standard (~/.cache/gefftracks/).
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
