package present

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/mithrel/triptips/internal/page"
	"github.com/mithrel/triptips/internal/present/format"
	"github.com/mithrel/triptips/internal/present/tui"
	"github.com/mithrel/triptips/internal/render"
)

type Mode int

const (
	ModePretty Mode = iota
	ModePlain
	ModeHTML
	ModeJSON
	ModeTUI
)

type Options struct {
	Mode       Mode
	Style      string
	WordWrap   int
	JSONIndent bool
	Logger     *zap.Logger
	// TermWidth and TermHeight size the TUI before the first resize event.
	TermWidth  int
	TermHeight int
}

// ParseMode parses "pretty", "plain", "html", "json" or "tui".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "pretty":
		return ModePretty, true
	case "plain":
		return ModePlain, true
	case "html":
		return ModeHTML, true
	case "json":
		return ModeJSON, true
	case "tui":
		return ModeTUI, true
	default:
		return ModePretty, false
	}
}

// RenderPage mounts p and writes it according to opts. Every mode except
// the TUI waits for the mount fetch to settle first; the TUI shows the
// empty page immediately and re-renders when the content arrives.
func RenderPage(ctx context.Context, w io.Writer, p *page.Page, opts Options) error {
	if opts.Mode == ModeTUI {
		r, err := render.NewTerminalRenderer(opts.Style, opts.WordWrap)
		if err != nil {
			return err
		}
		return tui.RenderPage(ctx, p, r, opts.Logger, opts.TermWidth, opts.TermHeight)
	}

	p.Mount(ctx)
	if err := p.Wait(ctx); err != nil {
		return err
	}
	switch opts.Mode {
	case ModePlain:
		return format.WritePlain(w, p)
	case ModeHTML:
		return format.WriteHTML(w, p)
	case ModeJSON:
		return format.WriteJSON(w, p, opts.JSONIndent)
	default:
		return format.WritePretty(w, p, opts.Style, opts.WordWrap)
	}
}
