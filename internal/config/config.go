package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultTitle is the fixed heading shown above the rendered document.
const DefaultTitle = "Disney World Trip Tips"

// ConfigOption describes one configuration key, its default, and its meaning.
type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
// This is the single source of truth for defaults and for the generated config.toml.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "http_addr", Default: ":3001", Comment: "Listen address for the page server"},

		{Key: "api.base_url", Default: "http://localhost:8000", Comment: "Scheme, host and port of the markdown backend"},
		{Key: "api.path", Default: "/api/markdown", Comment: "Path of the markdown endpoint on the backend"},
		{Key: "api.timeout", Default: "0s", Comment: "Per-fetch timeout; 0s disables it"},

		{Key: "page.title", Default: DefaultTitle, Comment: "Heading shown above the rendered markdown"},

		{Key: "render.style", Default: "dracula", Comment: "Glamour style for terminal rendering (dark, light, dracula, notty, ...)"},
		{Key: "render.word_wrap", Default: 80, Comment: "Terminal word wrap column"},

		{Key: "backend.addr", Default: ":8000", Comment: "Listen address for the trip tips backend"},
		{Key: "backend.source", Default: "", Comment: "YAML file with per-video trip tips; empty uses the bundled sample"},
		{Key: "backend.allowed_origins", Default: []string{"http://localhost:3001"}, Comment: "Origins allowed by the backend CORS policy"},

		{Key: "log.level", Default: "info", Comment: "Log level: debug, info, warn, error"},
		{Key: "log.format", Default: "console", Comment: "Log encoding: console or json"},
		{Key: "log.file", Default: "", Comment: "Log file path; empty logs to stderr (the viewer always needs a file to log)"},
	}
}

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func Load(ctx context.Context, v *viper.Viper) error {
	// SetConfigFile upstream wins; the search paths are fallbacks.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "triptips"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "triptips"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	// A missing file on the search path is fine; an explicit --config that
	// cannot be read or parsed is not.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read config: %w", err)
		}
	}

	// Environment variables: TRIPTIPS_API_BASE_URL etc.
	v.SetEnvPrefix("triptips")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(v.GetString("page.title")) == "" {
		v.Set("page.title", DefaultTitle)
	}
	v.Set("api.base_url", strings.TrimRight(strings.TrimSpace(v.GetString("api.base_url")), "/"))
	if p := strings.TrimSpace(v.GetString("api.path")); p != "" && !strings.HasPrefix(p, "/") {
		v.Set("api.path", "/"+p)
	}

	// Allow comma-separated env override for allowed origins.
	v.Set("backend.allowed_origins", splitList(strings.Join(v.GetStringSlice("backend.allowed_origins"), ",")))
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "triptips", "config.toml")
}

// EndpointURL joins api.base_url and api.path.
func EndpointURL(v *viper.Viper) string {
	return strings.TrimRight(v.GetString("api.base_url"), "/") + v.GetString("api.path")
}
