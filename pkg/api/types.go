package api

// DefaultPath is the route that serves the markdown document.
const DefaultPath = "/api/markdown"

// MarkdownPayload is the body returned by GET /api/markdown.
// Markdown is a pointer so a missing field can be told apart from an empty one.
type MarkdownPayload struct {
	Markdown *string `json:"markdown"`
}

// NewMarkdownPayload wraps s for encoding.
func NewMarkdownPayload(s string) MarkdownPayload {
	return MarkdownPayload{Markdown: &s}
}

// ErrorBody is the JSON shape of error responses from the backend.
type ErrorBody struct {
	Error string `json:"error"`
}
