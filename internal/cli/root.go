package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/triptips/internal/config"
	"github.com/mithrel/triptips/internal/wire"
)

type ctxKey string

const (
	appKey ctxKey = "app"
	cfgKey ctxKey = "cfg"
)

// Execute builds the root command and runs it with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// globalFlags maps persistent flag names to config keys.
var globalFlags = map[string]string{
	"api-url":    "api.base_url",
	"api-path":   "api.path",
	"title":      "page.title",
	"log-level":  "log.level",
	"log-format": "log.format",
	"log-file":   "log.file",
}

// NewRootCmd constructs the Cobra root command and wires dependencies.
func NewRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:           "triptips-cli",
		Short:         "triptips: fetch the trip tips markdown and render it",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadConfig(cmd, cfgPath)
			if err != nil {
				return err
			}
			app, err := wire.BuildApp(cmd.Context(), v)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, app))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app, ok := cmd.Context().Value(appKey).(*wire.App); ok {
				app.Close()
			}
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to config file (toml|yaml)")
	pf.String("api-url", "", "markdown backend base url (overrides api.base_url)")
	pf.String("api-path", "", "markdown endpoint path (overrides api.path)")
	pf.String("title", "", "page heading (overrides page.title)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log encoding: console or json")
	pf.String("log-file", "", "write logs to this file")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newViewCmd())
	cmd.AddCommand(newBackendCmd())
	cmd.AddCommand(newConfigCmd(&cfgPath))
	cmd.AddCommand(newCompletionCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

// loadConfig resolves config from defaults, file, env and flags, and stashes
// the Viper instance in the command context.
func loadConfig(cmd *cobra.Command, cfgPath string) (*viper.Viper, error) {
	v := viper.New()
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	}
	if err := config.Load(cmd.Context(), v); err != nil {
		return nil, err
	}
	applyConfigFlagOverrides(cmd, v, globalFlags)
	cmd.SetContext(context.WithValue(cmd.Context(), cfgKey, v))
	return v, nil
}

func getApp(cmd *cobra.Command) *wire.App {
	v := cmd.Context().Value(appKey)
	if v == nil {
		fmt.Fprintln(os.Stderr, "internal error: app not initialized")
		os.Exit(1)
	}
	return v.(*wire.App)
}

func getConfig(cmd *cobra.Command) *viper.Viper {
	v, _ := cmd.Context().Value(cfgKey).(*viper.Viper)
	if v == nil {
		fmt.Fprintln(os.Stderr, "internal error: config not loaded")
		os.Exit(1)
	}
	return v
}
