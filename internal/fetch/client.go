// Package fetch retrieves the markdown document from the backend.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mithrel/triptips/pkg/api"
)

const (
	DefaultBaseURL = "http://localhost:8000"

	// maxBodyBytes bounds how much of a response body is read.
	maxBodyBytes = 8 << 20
)

// Options configures a Client. Zero values fall back to the defaults.
type Options struct {
	BaseURL    string
	Path       string
	HTTPClient *http.Client
	// Timeout bounds one fetch; zero means no timeout.
	Timeout time.Duration
}

// Client issues GET requests for the markdown payload.
type Client struct {
	url     string
	http    *http.Client
	timeout time.Duration
}

func NewClient(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	path := opts.Path
	if path == "" {
		path = api.DefaultPath
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{url: base + path, http: hc, timeout: opts.Timeout}
}

// URL returns the endpoint the client fetches from.
func (c *Client) URL() string { return c.url }

// Fetch returns the markdown field of the payload. Every failure is an *Error.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", &Error{Reason: ReasonNetwork, URL: c.url, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &Error{Reason: ReasonNetwork, URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return "", &Error{Reason: ReasonStatus, URL: c.url, Status: resp.StatusCode}
	}

	var payload api.MarkdownPayload
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&payload); err != nil {
		return "", &Error{Reason: ReasonBody, URL: c.url, Status: resp.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}
	if payload.Markdown == nil {
		return "", &Error{Reason: ReasonBody, URL: c.url, Status: resp.StatusCode, Err: ErrMissingMarkdown}
	}
	return *payload.Markdown, nil
}
