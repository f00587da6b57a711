package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered-artifact cache",
		Long: `Manage the rendered-artifact cache.

render stores every artifact it draws, keyed by the chart and the output
options, so repeated renders of an unchanged table are read back from disk.
The cache lives in $XDG_CACHE_HOME/radialstack (or ~/.cache/radialstack)
unless cache-dir is set.`,
	}

	cmd.PersistentFlags().String("cache-dir", "", "cache directory")
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			out := newPrinter(c.out)

			dir := cfg.CacheDir
			if dir == "" {
				if dir, err = cacheDir(); err != nil {
					return err
				}
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				out.info("Cache is empty")
				return nil
			}

			fc, err := c.fileCache(cfg)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			n, err := fc.Clear()
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			out.success("Cleared %d cached artifacts", n)
			out.keyValue("Directory", fc.Dir())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			dir := cfg.CacheDir
			if dir == "" {
				if dir, err = cacheDir(); err != nil {
					return err
				}
			}
			fmt.Fprintln(c.out, dir)
			return nil
		},
	}
}
