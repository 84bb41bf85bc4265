package format

import (
	"io"
	"strings"

	"github.com/mithrel/triptips/internal/page"
)

// WritePlain writes the heading and the unrendered markdown.
func WritePlain(w io.Writer, p *page.Page) error {
	var b strings.Builder
	b.WriteString("# " + p.Title() + "\n")
	if md := strings.TrimSpace(p.Content()); md != "" {
		b.WriteString("\n" + md + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
