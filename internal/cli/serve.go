package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/legenda-dev/legenda/internal/server"
	"github.com/legenda-dev/legenda/pkg/cache"
	"github.com/legenda-dev/legenda/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr          string
	storeKind     string // chart store backend: "memory", "mongo"
	mongoURI      string
	mongoDB       string
	cacheKind     string // render cache backend: "file", "memory", "redis", "null"
	redisAddr     string
	redisPassword string
	redisDB       int
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:      server.DefaultAddr,
		storeKind: "memory",
		mongoURI:  "mongodb://localhost:27017",
		mongoDB:   "legenda",
		cacheKind: "file",
		redisAddr: "localhost:6379",
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server.

The server stores chart documents and renders their legends on demand:

  POST /api/render              render an inline document
  GET  /api/charts              list stored charts
  POST /api/charts              create a chart
  GET  /api/charts/{id}         fetch a chart
  PUT  /api/charts/{id}         update a chart
  DELETE /api/charts/{id}       delete a chart
  GET  /api/charts/{id}/render  render a stored chart

Charts live in the configured store (in-memory by default, MongoDB for
persistence). Rendered artifacts go through the configured cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.storeKind, "store", opts.storeKind, "chart store backend: memory (default), mongo")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", opts.mongoURI, "MongoDB connection URI")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "MongoDB database name")
	cmd.Flags().StringVar(&opts.cacheKind, "cache", opts.cacheKind, "render cache backend: file (default), memory, redis, null")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", opts.redisAddr, "Redis address")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", opts.redisPassword, "Redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", opts.redisDB, "Redis database number")

	return cmd
}

// runServe builds the configured backends and runs the server until the
// context is cancelled.
func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	st, err := newServeStore(ctx, opts)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer func() {
		// The run context is already cancelled during shutdown, so the
		// store gets its own disconnect deadline.
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			c.Logger.Error("close store", "error", err)
		}
	}()

	ca, err := newServeCache(ctx, opts)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer ca.Close()

	srv := server.New(server.Config{
		Addr:   opts.addr,
		Store:  st,
		Cache:  ca,
		Logger: c.Logger,
	})

	printInfo("Serving on %s", StyleLink.Render(listenURL(opts.addr)))
	printDetail("store: %s, cache: %s", opts.storeKind, opts.cacheKind)
	printNewline()

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	printSuccess("Server stopped")
	return nil
}

// newServeStore builds the chart store backend selected by --store.
func newServeStore(ctx context.Context, opts serveOpts) (store.Store, error) {
	switch opts.storeKind {
	case "memory":
		return store.NewMemoryStore(), nil
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:      opts.mongoURI,
			Database: opts.mongoDB,
		})
	default:
		return nil, fmt.Errorf("unknown store backend: %s (must be 'memory' or 'mongo')", opts.storeKind)
	}
}

// newServeCache builds the render cache backend selected by --cache.
func newServeCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	switch opts.cacheKind {
	case "file":
		dir, err := cacheDir()
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	case "memory":
		return cache.NewMemoryCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     opts.redisAddr,
			Password: opts.redisPassword,
			DB:       opts.redisDB,
		})
	case "null":
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (must be 'file', 'memory', 'redis', or 'null')", opts.cacheKind)
	}
}

// listenURL renders a clickable URL for the listen address.
func listenURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
