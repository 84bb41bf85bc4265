package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	v := viper.New()
	require.NoError(t, Load(context.Background(), v))

	assert.Equal(t, "http://localhost:8000", v.GetString("api.base_url"))
	assert.Equal(t, "/api/markdown", v.GetString("api.path"))
	assert.Equal(t, "http://localhost:8000/api/markdown", EndpointURL(v))
	assert.Equal(t, DefaultTitle, v.GetString("page.title"))
	assert.Equal(t, time.Duration(0), v.GetDuration("api.timeout"))
	assert.Equal(t, []string{"http://localhost:3001"}, v.GetStringSlice("backend.allowed_origins"))
	assert.NoError(t, CheckConfigValidity(v))
}

func TestLoadFileAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	content := `[api]
base_url = "http://tips.internal:9000/"
path = "v2/markdown"

[page]
title = "From File"
`
	require.NoError(t, os.WriteFile(cfg, []byte(content), 0o600))
	t.Setenv("TRIPTIPS_PAGE_TITLE", "From Env")

	v := viper.New()
	v.SetConfigFile(cfg)
	require.NoError(t, Load(context.Background(), v))

	assert.Equal(t, "http://tips.internal:9000", v.GetString("api.base_url"))
	assert.Equal(t, "/v2/markdown", v.GetString("api.path"))
	assert.Equal(t, "From Env", v.GetString("page.title"))
}

func TestLoadExplicitMissingFile(t *testing.T) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, Load(context.Background(), v))
}

func TestLoadCommaSeparatedOrigins(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TRIPTIPS_BACKEND_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	v := viper.New()
	require.NoError(t, Load(context.Background(), v))
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, v.GetStringSlice("backend.allowed_origins"))
}

func TestCheckConfigValidityInvalid(t *testing.T) {
	v := viper.New()
	v.Set("api.base_url", "localhost:8000")
	v.Set("api.path", "api/markdown")
	v.Set("api.timeout", "-1s")
	v.Set("http_addr", "")
	v.Set("backend.addr", "")
	v.Set("render.word_wrap", 0)
	v.Set("log.level", "loud")
	v.Set("log.format", "xml")
	v.Set("backend.allowed_origins", []string{"not an origin"})

	err := CheckConfigValidity(v)
	require.Error(t, err)

	msg := err.Error()
	expected := []string{
		"api.base_url \"localhost:8000\" must be an absolute http(s) url",
		"api.path must start with /",
		"api.timeout must not be negative",
		"http_addr is required",
		"backend.addr is required",
		"render.word_wrap must be greater than 0",
		"log.level \"loud\"",
		"log.format \"xml\"",
		"backend.allowed_origins entry \"not an origin\"",
	}
	for _, want := range expected {
		assert.Contains(t, msg, want)
	}
}

func TestRenderDefaultTOMLRoundTrips(t *testing.T) {
	out := RenderDefaultTOML()
	assert.True(t, strings.HasPrefix(out, "# triptips configuration"))
	assert.Contains(t, out, "[api]\n")
	assert.Contains(t, out, `base_url = "http://localhost:8000"`)
	assert.Contains(t, out, `allowed_origins = ["http://localhost:3001"]`)

	cfg := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfg, []byte(out), 0o600))
	v := viper.New()
	v.SetConfigFile(cfg)
	require.NoError(t, Load(context.Background(), v))
	assert.Equal(t, 80, v.GetInt("render.word_wrap"))
	assert.NoError(t, CheckConfigValidity(v))
}

func TestUpdateTOML(t *testing.T) {
	existing := `http_addr = ":4000"
legacy = true

[api]
base_url = "http://example.test"
`
	out, changed := UpdateTOML(existing)
	require.True(t, changed)
	assert.Contains(t, out, `http_addr = ":4000"`)
	assert.Contains(t, out, "# OUTDATED: option removed from config schema\n# legacy = true")
	assert.Contains(t, out, "# Added by config update")
	assert.Contains(t, out, `path = "/api/markdown"`)
	assert.NotContains(t, out, `base_url = "http://localhost:8000"`)

	again, changed := UpdateTOML(RenderDefaultTOML())
	assert.False(t, changed)
	assert.Equal(t, RenderDefaultTOML(), again)
}
