package cli

import (
	"github.com/katalvlaran/layoutopt/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var address string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solvers over HTTP",
		Long: `Start the HTTP API (POST /v1/solve, POST /v1/compare, GET /health,
GET /metrics). The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("address") {
				a.cfg.HTTPAddress = address
			}
			return server.New(a.cfg, a.logger).Run(cmd.Context(), a.cfg.HTTPAddress)
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "listen address (default from config http_address)")
	return cmd
}
