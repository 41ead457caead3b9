// Package cmd - serve command
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MidwestFurryFandom/mff-rams-plugin/api"
	"github.com/MidwestFurryFandom/mff-rams-plugin/internal/config"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the cost engine over HTTP",
		Long: `Start the JSON API. The server stops gracefully on SIGINT or SIGTERM.

Endpoints:
  POST /v1/quote     POST /v1/preview   POST /v1/diff
  POST /v1/validate  GET  /v1/prices    GET  /health   GET /version`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			if addr == "" {
				addr = cfg.Server.ListenAddr
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return api.NewServer(Version, engine(), cfg.Server).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
