// Package render turns markdown text into HTML or styled terminal output.
// Parsing is delegated to goldmark (HTML) and glamour (terminal).
package render

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// HTMLRenderer converts markdown to sanitized HTML.
type HTMLRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render returns the HTML form of markdown. Empty input yields "".
func (r *HTMLRenderer) Render(markdown string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return string(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// TerminalRenderer renders markdown with a glamour standard style.
type TerminalRenderer struct {
	mu    sync.Mutex
	style string
	wrap  int
	tr    *glamour.TermRenderer
}

func NewTerminalRenderer(style string, wordWrap int) (*TerminalRenderer, error) {
	r := &TerminalRenderer{style: style}
	if err := r.SetWidth(wordWrap); err != nil {
		return nil, err
	}
	return r, nil
}

// SetWidth rebuilds the underlying renderer when the wrap column changes.
func (r *TerminalRenderer) SetWidth(wordWrap int) error {
	if wordWrap <= 0 {
		wordWrap = 80
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tr != nil && r.wrap == wordWrap {
		return nil
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	r.tr, r.wrap = tr, wordWrap
	return nil
}

// Render returns the terminal form of markdown. Empty input yields "".
func (r *TerminalRenderer) Render(markdown string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out, err := r.tr.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
