package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/triptips/internal/page"
)

type pageJSON struct {
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
}

// WriteJSON writes the page state as a JSON object.
func WriteJSON(w io.Writer, p *page.Page, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(pageJSON{Title: p.Title(), Markdown: p.Content()})
}
