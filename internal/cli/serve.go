package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgraphlab/pgraph/internal/server"
	"github.com/pgraphlab/pgraph/pkg/archive"
	"github.com/pgraphlab/pgraph/pkg/cache"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	redisAddr string // redis cache backend, empty for the file cache
	mongoURI  string // mongo run archive, empty for in-memory
	noCache   bool
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server.

The server exposes the pipeline over HTTP: POST /api/v1/msg, /api/v1/ssg,
and /api/v1/solve take a problem document and return the computed result;
/api/v1/runs lists archived solve runs.

By default results are cached in the local file cache and runs are kept in
memory. Point --redis at a Redis server to share the cache between
instances, and --mongo at a MongoDB deployment to persist runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "redis address for a shared cache (host:port)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "mongodb URI for a persistent run archive")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable result caching")

	return cmd
}

// runServe wires the cache and store backends and starts the server.
// It blocks until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	ca, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}

	store, err := c.serveStore(ctx, opts)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	srv := server.New(server.Config{
		Addr:   opts.addr,
		Cache:  ca,
		Store:  store,
		Logger: c.Logger,
	})

	c.Logger.Info("Starting server", "addr", opts.addr)
	return srv.Start(ctx)
}

// serveCache picks the cache backend from the flags.
func (c *CLI) serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redisAddr})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("Using redis cache", "addr", opts.redisAddr)
		return rc, nil
	}
	return newCache(false)
}

// serveStore picks the run archive backend from the flags.
func (c *CLI) serveStore(ctx context.Context, opts *serveOpts) (archive.Store, error) {
	if opts.mongoURI == "" {
		return archive.NewMemoryStore(), nil
	}
	store, err := archive.NewMongoStore(ctx, archive.MongoConfig{URI: opts.mongoURI})
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	c.Logger.Info("Using mongodb run archive")
	return store, nil
}
