package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridsep/pkg/server"
)

// serveCommand creates the serve command, which exposes separation over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the separation API over HTTP",
		Long: `Serve starts an HTTP server with the endpoints

  GET  /healthz
  POST /v1/separate
  POST /v1/orders
  POST /v1/graph

Each POST takes a tiling as JSON. The server stops cleanly on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, c.Logger,
				server.WithMaxBodyBytes(c.Config.Server.MaxBodyBytes),
				server.WithRequestTimeout(c.Config.Server.RequestTimeout.Duration),
				server.WithDefaults(c.searchOptions()))
			return srv.ListenAndServe(ctx, addr, c.Config.Server.ReadTimeout.Duration)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}
