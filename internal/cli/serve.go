package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/davidblanc347/parodesign/internal/server"
	"github.com/davidblanc347/parodesign/pkg/store"
)

// serveCommand creates the serve command hosting the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the diagram generation HTTP server",
		Long: `Run the diagram generation HTTP server.

Exposes POST /api/generate, POST /api/layout, GET /healthz, and the
websocket chat endpoint at /ws/chat. The cache and transcript store
backends come from the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	st, err := c.newStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	if addr == "" {
		addr = c.Config.Server.Addr
	}
	srv := server.New(addr, runner, st, c.Logger)
	return srv.ListenAndServe(ctx)
}

// newStore builds the transcript store from config.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	if c.Config.Store.Backend == "mongo" {
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:      c.Config.Store.MongoURI,
			Database: c.Config.Store.Database,
		})
	}
	return store.NewMemoryStore(), nil
}
