package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/thrackle/internal/server"
	"github.com/matzehuels/thrackle/pkg/cache"
)

const shutdownTimeout = 10 * time.Second

func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve exposes synthesis, crossing checks, rendering and snapshots over HTTP.
The listen address comes from server.addr (--addr, THRACKLE_SERVER_ADDR).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.config()

			ch, err := c.newCache(ctx)
			if err != nil {
				return err
			}
			defer ch.Close()

			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			srv := server.New(server.Options{
				Synthesizer: c.synthesizer(),
				GraphOpts:   c.graphOptions(),
				Cache:       ch,
				Keyer:       cache.NewScopedKeyer(cache.NewDefaultKeyer(), "server:"),
				CacheTTL:    cfg.Cache.TTL,
				KeyOpts:     cfg.DrawingKey,
				Store:       store,
				Timeout:     cfg.Server.Timeout,
				Logger:      c.Logger,
			})
			printInfo("Serving on %s", StyleNumber.Render(cfg.Server.Addr))
			return srv.ListenAndServe(ctx, cfg.Server.Addr, shutdownTimeout)
		},
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	return cmd
}
