package format

import (
	"io"

	"github.com/mithrel/triptips/internal/page"
	"github.com/mithrel/triptips/internal/render"
)

// WriteHTML writes the standalone HTML document of the page.
func WriteHTML(w io.Writer, p *page.Page) error {
	return p.RenderHTML(w, render.NewHTMLRenderer())
}
