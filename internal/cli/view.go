package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mithrel/triptips/internal/logging"
	"github.com/mithrel/triptips/internal/present"
)

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the page in an interactive terminal viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			// Logging to stderr would draw over the viewer.
			if strings.TrimSpace(app.Cfg.GetString("log.file")) == "" {
				app.Cfg.Set("log.file", filepath.Join(os.TempDir(), "triptips-view.log"))
				logger, err := logging.New(app.Cfg)
				if err != nil {
					return err
				}
				app.Log = logger
			}

			w, h := 80, 24
			if tw, th, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				w, h = tw, th
			}
			return present.RenderPage(cmd.Context(), cmd.OutOrStdout(), app.NewPage(), present.Options{
				Mode:       present.ModeTUI,
				Style:      app.Cfg.GetString("render.style"),
				WordWrap:   app.Cfg.GetInt("render.word_wrap"),
				Logger:     app.Log,
				TermWidth:  w,
				TermHeight: h,
			})
		},
	}
	return cmd
}
