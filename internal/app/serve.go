package app

import (
	"github.com/spf13/cobra"
)

func NewServeCmd(mgr Manager) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve record validation over HTTP",
		Long: `Serve starts an HTTP server with these routes:

  POST /v1/records/validate   validate the JSON record in the request body
  GET  /v1/schema             the record JSON Schema
  GET  /healthz               liveness check

The server stops gracefully on Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mgr.Serve(cmd.Context(), addr, nil)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config serverAddr)")

	return cmd
}
