package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/radialstack/internal/config"
	"github.com/matzehuels/radialstack/internal/server"
	"github.com/matzehuels/radialstack/pkg/buildinfo"
	"github.com/matzehuels/radialstack/pkg/cache"
	"github.com/matzehuels/radialstack/pkg/pipeline"
)

// serveCachePrefix scopes server artifacts in a shared Redis.
const serveCachePrefix = appName + ":serve:"

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP host",
		Long: `Run the HTTP host. Clients post a table with column bindings, a viewport,
a palette and style options and receive the chart as SVG, JSON, PNG or PDF.

Rendered artifacts are cached in memory, or in Redis when --redis-url is set
so several instances share one cache.`,
		Example: `  radialstack serve --addr :9000
  radialstack serve --redis-url redis://localhost:6379/0 --cors-origins https://dash.example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			runner, err := c.serveRunner(cfg)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, c.Logger, server.Options{
				CORSOrigins:  cfg.CORSOrigins,
				MaxBodyBytes: cfg.MaxBodyBytes,
				Timeout:      cfg.ServerTimeout,
			})
			c.Logger.Info("serving", "addr", cfg.Addr, "version", buildinfo.Version)
			return srv.ListenAndServe(cmd.Context(), cfg.Addr)
		},
	}

	cmd.Flags().String("addr", config.DefaultAddr, "listen address")
	cmd.Flags().StringSlice("cors-origins", []string{"*"}, "allowed CORS origins")
	cmd.Flags().Int64("max-body-bytes", config.DefaultMaxBody, "maximum request body size")
	cmd.Flags().Duration("server-timeout", server.DefaultTimeout, "per-request timeout")
	cmd.Flags().Int("cache-entries", cache.DefaultMemoryEntries, "in-memory cache size")
	cmd.Flags().Duration("cache-ttl", config.DefaultCacheTTL, "artifact cache TTL")
	cmd.Flags().String("redis-url", "", "Redis URL for a shared artifact cache")
	cmd.Flags().Bool("no-cache", false, "disable the artifact cache")

	return cmd
}

// serveRunner builds the server's runner: Redis-backed when a URL is
// configured, in-memory otherwise.
func (c *CLI) serveRunner(cfg *config.Config) (*pipeline.Runner, error) {
	r := pipeline.NewRunner(c.Logger)
	if cfg.NoCache {
		return r, nil
	}
	if cfg.RedisURL == "" {
		return r.WithCache(cache.NewMemoryCache(cfg.CacheEntries), nil, cfg.CacheTTL), nil
	}

	rc, err := cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		rc.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	keyer := cache.NewScopedKeyer(nil, serveCachePrefix)
	return r.WithCache(rc, keyer, cfg.CacheTTL), nil
}
