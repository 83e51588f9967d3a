package cli

import (
	"github.com/spf13/cobra"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/internal/config"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/observability"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/server"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/store"
)

// serveCommand creates the serve command running the HTTP editing service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		storeKind string
		storeDir  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP blueprint editing service",
		Long: `Serve blueprints over HTTP. Documents are kept in the configured store
(memory, file, redis or mongo); Prometheus metrics are served on /metrics.

Flags override the [server] section of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.settings()
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("store") {
				cfg.Server.Store = storeKind
			}
			if cmd.Flags().Changed("store-dir") {
				cfg.Server.StoreDir = storeDir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			cat, err := c.structureCatalog()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			st, err := store.Open(ctx, cfg.StoreOptions())
			if err != nil {
				return err
			}
			defer st.Close()

			metrics := observability.NewMetrics()
			observability.SetEngineHooks(metrics)
			observability.SetHTTPHooks(metrics)
			defer observability.Reset()

			printKeyValue("Listening", cfg.Server.Addr)
			printKeyValue("Store", cfg.Server.Store)
			printKeyValue("Catalog", catalogName(cfg.Catalog))
			printInfo("Press Ctrl+C to stop")

			srv := server.New(server.Options{
				Store:    st,
				Catalog:  cat,
				Logger:   c.Logger,
				Registry: metrics.Registry(),
			})
			return srv.ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+config.DefaultAddr+")")
	cmd.Flags().StringVar(&storeKind, "store", "", "document store: memory, file, redis, mongo")
	cmd.Flags().StringVar(&storeDir, "store-dir", "", "directory for the file store")
	return cmd
}

func catalogName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
