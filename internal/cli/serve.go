package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plateforge/plateforge/internal/api"
)

// serveOpts holds flag values for the serve command.
type serveOpts struct {
	addr     string // listen address
	noCache  bool   // disable caching for this server
	redisURL string // shared cache backend
	mongoURI string // shared design library backend
}

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the plate generation HTTP API",
		Long: `Serve the plate generation HTTP API.

Exposes plan, render, pattern catalog, and design library endpoints.
The server shares the CLI cache and library backends, so designs saved
over HTTP show up in "plateforge library list" and vice versa. The
server runs until interrupted and drains in-flight requests on
shutdown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching for this server")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", "", "Redis cache URL (overrides "+envRedisURL+")")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB connection URI (overrides "+envMongoURI+")")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache, opts.redisURL)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	store, err := newLibraryStore(ctx, opts.mongoURI)
	if err != nil {
		return fmt.Errorf("open design library: %w", err)
	}
	defer store.Close()

	srv := api.NewServer(api.Config{
		Runner: runner,
		Store:  store,
		Logger: c.Logger,
	})

	c.Logger.Info("starting API server", "addr", opts.addr)
	return srv.Start(ctx, opts.addr)
}
