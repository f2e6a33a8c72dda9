package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/kitchenrun/internal/server"
	"github.com/matzehuels/kitchenrun/pkg/session"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes planning, pricing and rendering over HTTP, plus in-memory
configurator sessions that accept reorder and pointer-drag events.`,
		Example: `  kitchenrun serve
  kitchenrun serve --addr :9090
  KITCHENRUN_CACHE=redis KITCHENRUN_REDIS_ADDR=redis:6379 kitchenrun serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			cat, err := c.loadCatalog(cfg)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner,
				server.WithCatalog(cat),
				server.WithSessions(session.NewMemoryStore(cfg.Server.SessionTTL)),
				server.WithLogger(c.Logger),
			)

			printInfo("Listening on %s", StyleHighlight.Render(cfg.Addr))
			printDetail("cache: %s", cfg.Cache.Backend)
			return srv.ListenAndServe(ctx, cfg.Addr, server.ServeConfig{
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}
