package wire

import (
	"context"
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mithrel/triptips/internal/config"
	"github.com/mithrel/triptips/internal/fetch"
	"github.com/mithrel/triptips/internal/logging"
	"github.com/mithrel/triptips/internal/page"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg     *viper.Viper
	Log     *zap.Logger
	Fetcher *fetch.Client
}

// BuildApp validates cfg and wires dependencies from it.
func BuildApp(ctx context.Context, cfg *viper.Viper) (*App, error) {
	if err := config.CheckConfigValidity(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger, err := logging.New(cfg)
	if err != nil {
		return nil, err
	}
	fetcher := fetch.NewClient(fetch.Options{
		BaseURL: cfg.GetString("api.base_url"),
		Path:    cfg.GetString("api.path"),
		Timeout: cfg.GetDuration("api.timeout"),
	})
	return &App{Cfg: cfg, Log: logger, Fetcher: fetcher}, nil
}

// NewPage builds a fresh, unmounted page from the app's configuration.
func (a *App) NewPage() *page.Page {
	return page.New(page.Options{
		Title:   a.Cfg.GetString("page.title"),
		Fetcher: a.Fetcher,
		Logger:  a.Log,
	})
}

// Close flushes buffered log entries.
func (a *App) Close() {
	_ = a.Log.Sync()
}
