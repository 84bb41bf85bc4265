package present

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/triptips/internal/page"
)

type staticFetcher string

func (s staticFetcher) Fetch(context.Context) (string, error) { return string(s), nil }

type blockingFetcher chan struct{}

func (b blockingFetcher) Fetch(context.Context) (string, error) {
	<-b
	return "", nil
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"pretty", "plain", "html", "json", "tui"} {
		_, ok := ParseMode(s)
		assert.True(t, ok, s)
	}
	m, ok := ParseMode("yaml")
	assert.False(t, ok)
	assert.Equal(t, ModePretty, m)
}

func TestRenderPageWaitsForFetch(t *testing.T) {
	p := page.New(page.Options{Fetcher: staticFetcher("# Hello")})
	var buf bytes.Buffer
	require.NoError(t, RenderPage(context.Background(), &buf, p, Options{Mode: ModeHTML}))
	assert.Contains(t, buf.String(), "<h1>Hello</h1>")
	assert.True(t, p.Mounted())
}

func TestRenderPagePlain(t *testing.T) {
	p := page.New(page.Options{Title: "Tips", Fetcher: staticFetcher("- a")})
	var buf bytes.Buffer
	require.NoError(t, RenderPage(context.Background(), &buf, p, Options{Mode: ModePlain}))
	assert.Equal(t, "# Tips\n\n- a\n", buf.String())
}

func TestRenderPageCancelled(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	p := page.New(page.Options{Fetcher: blockingFetcher(block)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	assert.ErrorIs(t, RenderPage(ctx, &buf, p, Options{Mode: ModePlain}), context.Canceled)
}
