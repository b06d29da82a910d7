// Package cli implements the gradassign command-line interface.
//
// # Commands
//
//   - assign: solve a preference table or problem file and write the results
//   - matrix: write the intermediate cost matrix of a preference table
//   - solve: solve a pre-built cost matrix
//   - serve: run the HTTP API
//   - history: list recorded runs
//   - cache: manage the solve cache
//
// All commands accept --verbose (-v) for debug logging and --config to
// point at a config.toml other than the default one.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/JHertz5/role-assignment/pkg/buildinfo"
	"github.com/JHertz5/role-assignment/pkg/cache"
	"github.com/JHertz5/role-assignment/pkg/pipeline"
	"github.com/JHertz5/role-assignment/pkg/store"
)

// appName is used for config, cache and history directories.
const appName = "gradassign"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out        io.Writer
	configFile string
	config     Config
}

// New creates a CLI that logs to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
		config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output (tables, summaries) to w.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Assign graduates to roles from ranked preferences",
		Long:         `gradassign reads each graduate's three ranked role preferences and finds the assignment with the lowest total cost, treating numbered copies of a role as interchangeable slots.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/gradassign/config.toml)")

	root.AddCommand(c.assignCommand())
	root.AddCommand(c.matrixCommand())
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	path, required := c.configFile, true
	if path == "" {
		p, err := configPath()
		if err != nil {
			c.Logger.Debug("no config dir", "err", err)
			return nil
		}
		path, required = p, false
	}
	cfg, err := LoadConfig(path, required)
	if err != nil {
		return err
	}
	c.config = cfg
	c.Logger.Debug("config loaded", "path", path)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// backendOpts selects the cache and store behind a runner.
type backendOpts struct {
	noCache   bool
	redisAddr string
	history   bool
	keyer     cache.Keyer // nil means cache.DefaultKeyer
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, b backendOpts) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, b)
	if err != nil {
		return nil, err
	}
	st, err := c.newStore(ctx, b.history)
	if err != nil {
		ch.Close()
		return nil, err
	}
	return pipeline.NewRunner(ch, b.keyer, st, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, b backendOpts) (cache.Cache, error) {
	if b.noCache {
		return cache.NewNullCache(), nil
	}
	addr := b.redisAddr
	if addr == "" {
		addr = c.config.RedisAddr
	}
	if addr != "" {
		rc, err := cache.NewRedisCache(ctx, addr)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using redis cache", "addr", addr)
		return rc, nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

func (c *CLI) newStore(ctx context.Context, enabled bool) (store.Store, error) {
	if !enabled {
		return store.NullStore{}, nil
	}
	if c.config.MongoURI != "" {
		db := c.config.MongoDatabase
		if db == "" {
			db = store.DefaultDatabase
		}
		return store.NewMongoStore(ctx, c.config.MongoURI, db)
	}
	return store.NewFileStore(c.historyDir())
}

// cacheDir honours XDG_CACHE_HOME on every platform, not only Linux.
func (c *CLI) cacheDir() (string, error) {
	if c.config.CacheDir != "" {
		return c.config.CacheDir, nil
	}
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	return cache.DefaultDir()
}

// historyDir returns the run directory for the file store. Empty means the
// store's own default.
func (c *CLI) historyDir() string {
	if c.config.HistoryDir != "" {
		return c.config.HistoryDir
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "runs")
	}
	return ""
}
