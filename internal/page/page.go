// Package page implements MarkdownPage: a view that fetches one markdown
// document when first mounted and shows it below a fixed heading.
package page

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mithrel/triptips/internal/config"
	"github.com/mithrel/triptips/internal/fetch"
	"github.com/mithrel/triptips/internal/metrics"
)

// Fetcher is the HTTP client capability.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// Renderer is the markdown rendering capability: text in, renderable text out.
type Renderer interface {
	Render(markdown string) (string, error)
}

// Options is the explicit configuration of a page.
type Options struct {
	Title   string
	Fetcher Fetcher
	Logger  *zap.Logger
	// OnChange is called after a successful fetch replaced the content.
	OnChange func()
}

// Page holds the view state of one component instance.
type Page struct {
	title    string
	fetcher  Fetcher
	log      *zap.Logger
	onChange func()
	hook     *MountHook

	mu      sync.RWMutex
	content string
}

func New(opts Options) *Page {
	title := opts.Title
	if title == "" {
		title = config.DefaultTitle
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Page{
		title:    title,
		fetcher:  opts.Fetcher,
		log:      logger,
		onChange: opts.OnChange,
		hook:     NewMountHook(),
	}
}

// Mount starts the one fetch of this page's lifetime. Only the first call
// has an effect; it returns immediately.
func (p *Page) Mount(ctx context.Context) {
	p.hook.Attach(ctx, p.load)
}

// Mounted reports whether Mount has been called.
func (p *Page) Mounted() bool { return p.hook.Attached() }

// Done is closed once the mount fetch has settled, successfully or not.
func (p *Page) Done() <-chan struct{} { return p.hook.Done() }

// Wait blocks until the fetch settled or ctx ends, and reports which.
func (p *Page) Wait(ctx context.Context) error {
	select {
	case <-p.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Page) Title() string { return p.title }

// Content returns the current markdown. It is "" until a fetch succeeds.
func (p *Page) Content() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.content
}

func (p *Page) load(ctx context.Context) {
	if p.fetcher == nil {
		p.log.Error("error fetching data", zap.String("reason", "no fetcher configured"))
		metrics.FetchTotal.WithLabelValues("error").Inc()
		return
	}
	md, err := p.fetcher.Fetch(ctx)
	if err != nil {
		outcome := string(fetch.ReasonOf(err))
		if outcome == "" {
			outcome = "error"
		}
		metrics.FetchTotal.WithLabelValues(outcome).Inc()
		p.log.Error("error fetching data", zap.Error(err))
		return
	}
	metrics.FetchTotal.WithLabelValues("ok").Inc()

	p.mu.Lock()
	p.content = md
	p.mu.Unlock()

	if p.onChange != nil {
		p.onChange()
	}
}
