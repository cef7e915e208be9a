// Package cli implements the flowcopy command-line interface.
//
// This package provides commands for deriving send order, exporting and
// importing interchange documents, rendering previews, and running the HTTP
// API. The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - order: Derive and display the send order for a flow
//   - ident: Print the identity token for a flow
//   - export: Serialize a flow into a CSV or XML interchange document
//   - import: Rebuild a flow from an interchange document
//   - render: Generate a DOT or SVG preview diagram
//   - projects: Inspect the configured project store
//   - serve: Run the HTTP API
//
// # Configuration
//
// Settings load from a TOML file (see [Config]); flags override file values.
//
// # Example
//
//	import "github.com/flowcopy/flowcopy/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/flowcopy/flowcopy/pkg/buildinfo"
	"github.com/flowcopy/flowcopy/pkg/cache"
	"github.com/flowcopy/flowcopy/pkg/pipeline"
	"github.com/flowcopy/flowcopy/pkg/session"
	"github.com/flowcopy/flowcopy/pkg/store"
)

// appName is the application name used for directories and display.
const appName = "flowcopy"

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
	Config Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		Config: DefaultConfig(),
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "FlowCopy turns content flows into ordered, shareable documents",
		Long:         `FlowCopy derives a deterministic send order from a content-flow graph and moves flows in and out of the canvas as CSV or XML interchange documents.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.Logger.SetLevel(log.DebugLevel)
			}
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to the config file")

	root.AddCommand(c.orderCommand())
	root.AddCommand(c.identCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.projectsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	backend, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(
		pipeline.WithCache(backend),
		pipeline.WithLogger(c.Logger),
	), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}

	switch c.Config.Cache.Backend {
	case CacheNone:
		return cache.NewNullCache(), nil
	case CacheRedis:
		return cache.NewRedisCache(ctx, c.Config.Cache.RedisURL)
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

// newStore creates the configured project store.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	if c.Config.Store.Backend == StoreMongo {
		return store.NewMongoStore(ctx,
			c.Config.Store.MongoURI,
			c.Config.Store.Database,
			c.Config.Store.Collection)
	}
	return store.NewMemoryStore(), nil
}

// currentSession returns the session stamped on export rows. Sessions persist
// in the config directory so consecutive exports share an id; if the config
// directory is unusable a one-off session is minted instead.
func (c *CLI) currentSession(accountID string) (*session.Session, error) {
	dir, err := configDir()
	if err != nil {
		return session.New(accountID, session.DefaultTTL), nil
	}
	st, err := session.NewFileStore(dir)
	if err != nil {
		return session.New(accountID, session.DefaultTTL), nil
	}
	return st.Current(accountID)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/flowcopy/).
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

// configDir returns the config directory using XDG standard (~/.config/flowcopy/).
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
