package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mithrel/triptips/internal/present"
)

func newShowCmd() *cobra.Command {
	var output string
	var noPager bool
	var indent bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Fetch the markdown once and print the rendered page",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			applyConfigFlagOverrides(cmd, getApp(cmd).Cfg, map[string]string{
				"style": "render.style",
				"width": "render.word_wrap",
			})
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			mode, ok := present.ParseMode(output)
			if !ok || mode == present.ModeTUI {
				return fmt.Errorf("unknown output %q (pretty, plain, html, json)", output)
			}
			opts := present.Options{
				Mode:       mode,
				Style:      app.Cfg.GetString("render.style"),
				WordWrap:   app.Cfg.GetInt("render.word_wrap"),
				JSONIndent: indent,
				Logger:     app.Log,
			}
			p := app.NewPage()
			if noPager || mode == present.ModeJSON || mode == present.ModeHTML {
				return present.RenderPage(cmd.Context(), cmd.OutOrStdout(), p, opts)
			}
			return renderPage(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), p, opts)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "pretty", "output format: pretty, plain, html, json")
	cmd.Flags().BoolVar(&noPager, "no-pager", false, "never pipe output through $PAGER")
	cmd.Flags().BoolVar(&indent, "indent", false, "indent JSON output")
	cmd.Flags().String("style", "", "glamour style (overrides render.style)")
	cmd.Flags().Int("width", 0, "word wrap column (overrides render.word_wrap)")
	return cmd
}
