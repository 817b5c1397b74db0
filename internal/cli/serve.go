package cli

import (
	"github.com/spf13/cobra"

	"github.com/genomap/genomap/internal/api"
	"github.com/genomap/genomap/pkg/cache"
	"github.com/genomap/genomap/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, redisURL string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the genomap HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.serveCache(cmd, redisURL, noCache)
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(store, nil, c.Logger)
			defer runner.Close()

			srv := api.NewServer(addr, runner, c.Logger)
			return srv.Serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for a shared cache (default: local file cache)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching entirely")

	return cmd
}

// serveCache picks the cache backend: Redis when configured, the local file
// cache otherwise.
func (c *CLI) serveCache(cmd *cobra.Command, redisURL string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		store, err := cache.NewRedisCache(cmd.Context(), redisURL)
		if err != nil {
			return nil, err
		}
		c.Logger.Info("using redis cache")
		return store, nil
	}
	return newCache(false)
}
