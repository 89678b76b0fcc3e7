// Package cli implements the topodiagram command-line interface.
//
// # Commands
//
//   - (none): render the default topology exactly as configured
//   - render: render a topology with overridden title, direction, filename or format
//   - describe: print the logical graph as a tree, JSON, TOML or DOT
//   - cache: inspect or clear the artifact cache
//   - completion: generate shell completion scripts
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// attached to the command context and retrieved with loggerFromContext.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/topodiagram/pkg/buildinfo"
	"github.com/matzehuels/topodiagram/pkg/cache"
	"github.com/matzehuels/topodiagram/pkg/errors"
	"github.com/matzehuels/topodiagram/pkg/observability"
	"github.com/matzehuels/topodiagram/pkg/pipeline"
)

// appName is used for the cache directory and in help text.
const appName = "topodiagram"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root command with all subcommands registered.
// Run without a subcommand it renders the default topology.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   appName,
		Short: "topodiagram draws reference deployment architectures",
		Long: `topodiagram declares reference deployment topologies as nested clusters of
components and renders them with Graphviz.

Without a subcommand it renders the Terraform Enterprise FDO active-active
deployment on GCP to a PNG in the current directory.`,
		Version:       buildinfo.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
				hooks := observability.NewLogHooks(c.Logger)
				observability.SetPipelineHooks(hooks)
				observability.SetCacheHooks(hooks)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), renderOpts{})
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.describeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// cacheOpts selects the artifact cache backend.
type cacheOpts struct {
	enabled   bool   // use the file cache
	redisURL  string // use Redis instead; implies enabled
	namespace string // key prefix on a shared backend
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, opts cacheOpts) (*pipeline.Runner, error) {
	store, err := newCache(ctx, opts)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if opts.namespace != "" {
		keyer = cache.NewScopedKeyer(nil, namespacePrefix(opts.namespace))
	}
	return pipeline.NewRunner(store, keyer, loggerFromContext(ctx)), nil
}

// namespacePrefix turns a namespace into a key prefix ending in ':'.
func namespacePrefix(ns string) string {
	if strings.HasSuffix(ns, ":") {
		return ns
	}
	return ns + ":"
}

func newCache(ctx context.Context, opts cacheOpts) (cache.Cache, error) {
	if opts.redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, opts.redisURL)
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	if !opts.enabled {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "locate cache directory")
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/topodiagram/).
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
