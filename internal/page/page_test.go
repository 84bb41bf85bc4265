package page

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mithrel/triptips/internal/fetch"
	"github.com/mithrel/triptips/internal/render"
)

// gatedFetcher blocks until release is closed and counts calls.
type gatedFetcher struct {
	release chan struct{}
	md      string
	err     error
	calls   int32
}

func (f *gatedFetcher) Fetch(ctx context.Context) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	<-f.release
	return f.md, f.err
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func waitDone(t *testing.T, p *Page) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, p.Wait(ctx), "mount fetch did not settle")
}

func renderHTML(t *testing.T, p *Page) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, p.RenderHTML(&buf, render.NewHTMLRenderer()))
	return buf.String()
}

func TestPage_InitialRenderIsHeadingOnly(t *testing.T) {
	f := &gatedFetcher{release: make(chan struct{}), md: "# Hello"}
	p := New(Options{Fetcher: f})
	p.Mount(context.Background())

	out := renderHTML(t, p)
	assert.Contains(t, out, "<h1>Disney World Trip Tips</h1>")
	assert.Contains(t, out, `<div class="markdown"></div>`)
	assert.Equal(t, "", p.Content())

	close(f.release)
	waitDone(t, p)
	assert.Contains(t, renderHTML(t, p), "<h1>Hello</h1>")
}

func TestPage_Scenarios(t *testing.T) {
	t.Run("heading", func(t *testing.T) {
		f := &gatedFetcher{release: make(chan struct{}), md: "# Hello"}
		close(f.release)
		p := New(Options{Fetcher: f})
		p.Mount(context.Background())
		waitDone(t, p)

		assert.Equal(t, "# Hello", p.Content())
		assert.Contains(t, renderHTML(t, p), "<h1>Hello</h1>")
	})

	t.Run("list", func(t *testing.T) {
		f := &gatedFetcher{release: make(chan struct{}), md: "- a\n- b"}
		close(f.release)
		p := New(Options{Fetcher: f})
		p.Mount(context.Background())
		waitDone(t, p)

		out := renderHTML(t, p)
		assert.Contains(t, out, "<li>a</li>")
		assert.Contains(t, out, "<li>b</li>")
		assert.Equal(t, 2, strings.Count(out, "<li>"))
	})
}

func TestPage_MountRunsOnce(t *testing.T) {
	f := &gatedFetcher{release: make(chan struct{}), md: "x"}
	var changes int32
	p := New(Options{Fetcher: f, OnChange: func() { atomic.AddInt32(&changes, 1) }})

	assert.False(t, p.Mounted())
	for i := 0; i < 5; i++ {
		p.Mount(context.Background())
	}
	assert.True(t, p.Mounted())
	close(f.release)
	waitDone(t, p)
	p.Mount(context.Background())

	assert.Equal(t, int32(1), atomic.LoadInt32(&f.calls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&changes))
}

func TestPage_MountIgnoresCallerCancellation(t *testing.T) {
	f := &gatedFetcher{release: make(chan struct{}), md: "kept"}
	p := New(Options{Fetcher: f})

	ctx, cancel := context.WithCancel(context.Background())
	p.Mount(ctx)
	cancel()
	close(f.release)
	waitDone(t, p)

	assert.Equal(t, "kept", p.Content())
}

func TestPage_FailuresAreLoggedOnceAndSwallowed(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		closed  bool
	}{
		{name: "connection error", closed: true},
		{name: "status 500", handler: func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{name: "missing markdown field", handler: func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := tt.handler
			if h == nil {
				h = http.NotFound
			}
			ts := httptest.NewServer(h)
			base := ts.URL
			if tt.closed {
				ts.Close()
			} else {
				defer ts.Close()
			}

			logger, logs := observedLogger()
			var changed bool
			p := New(Options{
				Fetcher:  fetch.NewClient(fetch.Options{BaseURL: base}),
				Logger:   logger,
				OnChange: func() { changed = true },
			})
			before := renderHTML(t, p)
			p.Mount(context.Background())
			waitDone(t, p)

			assert.Equal(t, "", p.Content())
			assert.False(t, changed)
			assert.Equal(t, before, renderHTML(t, p))
			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, zapcore.ErrorLevel, entry.Level)
			assert.Equal(t, "error fetching data", entry.Message)
		})
	}
}

func TestPage_FetcherErrorIsLogged(t *testing.T) {
	f := &gatedFetcher{release: make(chan struct{}), err: errors.New("boom")}
	close(f.release)
	logger, logs := observedLogger()
	p := New(Options{Fetcher: f, Logger: logger})
	p.Mount(context.Background())
	waitDone(t, p)

	require.Equal(t, 1, logs.FilterMessage("error fetching data").Len())
	assert.Equal(t, "boom", logs.All()[0].ContextMap()["error"])
}

func TestPage_NilFetcher(t *testing.T) {
	logger, logs := observedLogger()
	p := New(Options{Logger: logger})
	p.Mount(context.Background())
	waitDone(t, p)
	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, "", p.Content())
}

func TestPage_WaitHonoursContext(t *testing.T) {
	f := &gatedFetcher{release: make(chan struct{})}
	defer close(f.release)
	p := New(Options{Fetcher: f})
	p.Mount(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, p.Wait(ctx), context.DeadlineExceeded)
}

func TestPage_RenderText(t *testing.T) {
	tr, err := render.NewTerminalRenderer("notty", 80)
	require.NoError(t, err)

	f := &gatedFetcher{release: make(chan struct{}), md: "- a\n- b"}
	p := New(Options{Title: "Custom", Fetcher: f})

	out, err := p.RenderText(tr)
	require.NoError(t, err)
	assert.Contains(t, out, "Custom")
	assert.NotContains(t, out, "• a")

	close(f.release)
	p.Mount(context.Background())
	waitDone(t, p)

	out, err = p.RenderText(tr)
	require.NoError(t, err)
	assert.Contains(t, out, "Custom")
	assert.Contains(t, out, "a")
	assert.Contains(t, out, "b")
}
