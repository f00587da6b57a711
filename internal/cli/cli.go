// Package cli implements the radialstack command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/radialstack/internal/config"
	"github.com/matzehuels/radialstack/pkg/buildinfo"
	"github.com/matzehuels/radialstack/pkg/cache"
	"github.com/matzehuels/radialstack/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "radialstack"

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

	// configFile is the --config flag; empty searches . and $HOME.
	configFile string
	out        io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output (records, schemas, SVG on stdout).
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Radialstack draws tables as animated radial stacked charts",
		Long:         `Radialstack turns a segment/layer/value table into a radial stacked chart: one slice per segment, one ring band per layer, with an animated SVG, a JSON scene, or PNG and PDF stills as output.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default: ./.radialstack.toml or $HOME/.radialstack.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.transformCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.mcpCommand())
	root.AddCommand(c.optionsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig resolves settings for a command from defaults, the config
// file, the environment and flags.
func (c *CLI) loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(config.New(c.configFile), flags)
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		c.SetLogLevel(LogDebug)
		registerLogHooks(c.Logger)
	}
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use, backed by the file cache
// unless caching is disabled.
func (c *CLI) newRunner(cfg *config.Config) (*pipeline.Runner, error) {
	r := pipeline.NewRunner(c.Logger)
	if cfg.NoCache {
		return r, nil
	}
	fc, err := c.fileCache(cfg)
	if err != nil {
		c.Logger.Debug("artifact cache disabled", "err", err)
		return r, nil
	}
	return r.WithCache(fc, nil, cfg.CacheTTL), nil
}

func (c *CLI) fileCache(cfg *config.Config) (*cache.FileCache, error) {
	dir := cfg.CacheDir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return nil, err
		}
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/radialstack/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".cache", appName), nil
}
