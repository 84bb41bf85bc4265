package config

import (
	"fmt"
	"strings"
)

// section groups options that share a dotted prefix.
type section struct {
	name string
	opts []ConfigOption
}

// splitSections separates top-level options from dotted ones, keeping the
// declaration order of both.
func splitSections(opts []ConfigOption) ([]ConfigOption, []section) {
	var top []ConfigOption
	var secs []section
	index := map[string]int{}
	for _, o := range opts {
		name, key, ok := strings.Cut(o.Key, ".")
		if !ok {
			top = append(top, o)
			continue
		}
		i, seen := index[name]
		if !seen {
			i = len(secs)
			index[name] = i
			secs = append(secs, section{name: name})
		}
		secs[i].opts = append(secs[i].opts, ConfigOption{Key: key, Default: o.Default, Comment: o.Comment})
	}
	return top, secs
}

// RenderDefaultTOML renders a TOML config with defaults from GetConfigOptions.
func RenderDefaultTOML() string {
	var lines []string
	lines = append(lines, "# triptips configuration (TOML)")
	top, secs := splitSections(GetConfigOptions())
	for _, o := range top {
		lines = appendOption(lines, o)
	}
	for _, s := range secs {
		lines = append(lines, "["+s.name+"]")
		for _, o := range s.opts {
			lines = appendOption(lines, o)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// UpdateTOML appends missing default options to an existing TOML document and
// comments out keys that are no longer part of the option table. The second
// return value reports whether anything changed.
func UpdateTOML(existing string) (string, bool) {
	known := make(map[string]bool)
	for _, o := range GetConfigOptions() {
		known[o.Key] = true
	}

	seen := make(map[string]bool)
	current := ""
	changed := false
	lines := strings.Split(existing, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trim := strings.TrimSpace(line)
		switch {
		case trim == "" || strings.HasPrefix(trim, "#"):
			out = append(out, line)
			continue
		case strings.HasPrefix(trim, "[") && strings.HasSuffix(trim, "]"):
			current = strings.TrimSpace(trim[1 : len(trim)-1])
			out = append(out, line)
			continue
		}
		key, ok := parseTOMLKey(trim)
		if !ok {
			out = append(out, line)
			continue
		}
		full := key
		if current != "" {
			full = current + "." + key
		}
		if !known[full] {
			out = append(out, "# OUTDATED: option removed from config schema", "# "+trim)
			changed = true
			continue
		}
		seen[full] = true
		out = append(out, line)
	}

	var missing []ConfigOption
	for _, o := range GetConfigOptions() {
		if !seen[o.Key] {
			missing = append(missing, o)
		}
	}
	if len(missing) == 0 {
		return strings.Join(out, "\n"), changed
	}

	out = append(out, "", "# Added by config update")
	top, secs := splitSections(missing)
	for _, o := range top {
		out = appendOption(out, o)
	}
	for _, s := range secs {
		out = append(out, "["+s.name+"]")
		for _, o := range s.opts {
			out = appendOption(out, o)
		}
	}
	return strings.Join(out, "\n"), true
}

func parseTOMLKey(line string) (string, bool) {
	key, _, ok := strings.Cut(line, "=")
	if !ok {
		return "", false
	}
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key[:1], `["'`) {
		return "", false
	}
	return key, true
}

func appendOption(lines []string, o ConfigOption) []string {
	if o.Comment != "" {
		lines = append(lines, "# "+o.Comment)
	}
	return append(lines, o.Key+" = "+tomlValue(o.Default), "")
}

func tomlValue(v any) string {
	switch x := v.(type) {
	case string:
		return fmt.Sprintf("%q", x)
	case []string:
		quoted := make([]string, len(x))
		for i, s := range x {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	default:
		return fmt.Sprintf("%v", x)
	}
}
