package format

import (
	"fmt"
	"io"

	"github.com/mithrel/triptips/internal/page"
	"github.com/mithrel/triptips/internal/render"
)

// WritePretty renders the page with glamour for a terminal.
func WritePretty(w io.Writer, p *page.Page, style string, wordWrap int) error {
	r, err := render.NewTerminalRenderer(style, wordWrap)
	if err != nil {
		return err
	}
	out, err := p.RenderText(r)
	if err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
