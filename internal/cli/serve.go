package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pjv/pkg/buildinfo"
	"github.com/matzehuels/pjv/pkg/cache"
	"github.com/matzehuels/pjv/pkg/errors"
	"github.com/matzehuels/pjv/pkg/observability"
	"github.com/matzehuels/pjv/pkg/server"
)

// serveOptions holds the flag values for serve.
type serveOptions struct {
	addr  string
	cache bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the validation HTTP API",
		Long: `Serve manifest validation over HTTP.

POST a manifest to /v1/validate to get its validation result as JSON.
Prometheus metrics are exposed on /metrics.`,
		Example: `  pjv serve --addr :9090
  curl --data-binary @package.json 'localhost:9090/v1/validate?spec=npm'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&opts.cache, "cache", false, "cache results on disk")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts *serveOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	cfg := c.config.Server

	addr := cfg.Addr
	if opts.addr != "" {
		addr = opts.addr
	}
	if addr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "listen address is empty")
	}
	useCache := c.config.Cache.Enabled
	if cmd.Flags().Changed("cache") {
		useCache = opts.cache
	}

	prom := observability.NewPrometheus(nil)
	observability.SetValidationHooks(prom)
	observability.SetCacheHooks(prom)
	observability.SetHTTPHooks(prom)
	defer observability.Reset()

	rc, err := c.newCache(useCache)
	if err != nil {
		return err
	}
	defer rc.Close()

	srv := server.New(server.Config{
		Addr:            addr,
		MaxBodyBytes:    cfg.MaxBodyBytes,
		ReadTimeout:     cfg.ReadTimeout.Duration,
		WriteTimeout:    cfg.WriteTimeout.Duration,
		ShutdownTimeout: 5 * time.Second,
	},
		server.WithLogger(logger),
		server.WithCache(rc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope()), c.config.Cache.TTL.Duration),
		server.WithMetrics(prom.Handler()),
	)

	logger.Debug("starting server", "cache", useCache, "version", buildinfo.Version)
	return srv.ListenAndServe(ctx)
}
