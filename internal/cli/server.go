package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mithrel/triptips/internal/config"
	"github.com/mithrel/triptips/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rendered trip tips page over HTTP",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			applyConfigFlagOverrides(cmd, getApp(cmd).Cfg, map[string]string{"listen": "http_addr"})
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			fmt.Fprintf(cmd.OutOrStdout(), "Page server listening on %s (markdown from %s)\n",
				app.Cfg.GetString("http_addr"), config.EndpointURL(app.Cfg))
			return server.New(app.Cfg, app.Fetcher, app.Log).ListenAndServe(cmd.Context())
		},
	}
	cmd.Flags().String("listen", "", "listen address (overrides http_addr)")
	return cmd
}
