package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// CheckConfigValidity reports every problem found in v as one joined error.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error

	base := strings.TrimSpace(v.GetString("api.base_url"))
	if base == "" {
		errs = append(errs, errors.New("api.base_url is required"))
	} else if u, err := url.Parse(base); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url %q must be an absolute http(s) url", base))
	}
	if p := v.GetString("api.path"); !strings.HasPrefix(p, "/") {
		errs = append(errs, errors.New("api.path must start with /"))
	}
	if v.GetDuration("api.timeout") < 0 {
		errs = append(errs, errors.New("api.timeout must not be negative"))
	}
	if strings.TrimSpace(v.GetString("http_addr")) == "" {
		errs = append(errs, errors.New("http_addr is required"))
	}
	if strings.TrimSpace(v.GetString("backend.addr")) == "" {
		errs = append(errs, errors.New("backend.addr is required"))
	}
	if v.GetInt("render.word_wrap") <= 0 {
		errs = append(errs, errors.New("render.word_wrap must be greater than 0"))
	}
	if lvl := strings.ToLower(v.GetString("log.level")); !validLogLevels[lvl] {
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", lvl))
	}
	switch v.GetString("log.format") {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be console or json", v.GetString("log.format")))
	}
	for _, o := range v.GetStringSlice("backend.allowed_origins") {
		if o == "*" {
			continue
		}
		if u, err := url.Parse(o); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("backend.allowed_origins entry %q is not an origin", o))
		}
	}
	return errors.Join(errs...)
}
