package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/mithrel/triptips/internal/backend"
	"github.com/mithrel/triptips/internal/server"
)

func newBackendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backend",
		Short: "Serve the trip tips markdown API (GET /api/markdown)",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			applyConfigFlagOverrides(cmd, getApp(cmd).Cfg, map[string]string{
				"listen":          "backend.addr",
				"source":          "backend.source",
				"allowed-origins": "backend.allowed_origins",
			})
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			addr := app.Cfg.GetString("backend.addr")
			src := backend.NewSource(app.Cfg.GetString("backend.source"))
			srv := backend.NewServer(src, app.Cfg.GetStringSlice("backend.allowed_origins"), app.Log)

			fmt.Fprintf(cmd.OutOrStdout(), "Trip tips backend listening on %s\n", addr)
			return server.Serve(cmd.Context(), &http.Server{Addr: addr, Handler: srv.Router()}, app.Log)
		},
	}
	cmd.Flags().String("listen", "", "listen address (overrides backend.addr)")
	cmd.Flags().String("source", "", "YAML tips file (overrides backend.source)")
	cmd.Flags().StringSlice("allowed-origins", nil, "CORS origins (overrides backend.allowed_origins)")
	return cmd
}
