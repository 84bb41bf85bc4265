package page

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/mithrel/triptips/internal/metrics"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/page.html"))

type htmlView struct {
	Title string
	Body  template.HTML
}

// RenderHTML writes the full HTML document for the current state. r must
// return sanitized HTML; its output is inserted unescaped.
func (p *Page) RenderHTML(w io.Writer, r Renderer) error {
	body, err := r.Render(p.Content())
	if err != nil {
		return err
	}
	metrics.PageRendersTotal.WithLabelValues("html").Inc()
	return pageTmpl.Execute(w, htmlView{Title: p.title, Body: template.HTML(body)})
}

// RenderText returns the heading followed by r's rendering of the content,
// for terminal output.
func (p *Page) RenderText(r Renderer) (string, error) {
	heading, err := r.Render("# " + p.title)
	if err != nil {
		return "", fmt.Errorf("render heading: %w", err)
	}
	body, err := r.Render(p.Content())
	if err != nil {
		return "", err
	}
	metrics.PageRendersTotal.WithLabelValues("terminal").Inc()
	return strings.TrimRight(heading, "\n") + "\n" + body, nil
}
