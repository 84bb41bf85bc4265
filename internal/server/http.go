package server

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mithrel/triptips/internal/page"
	"github.com/mithrel/triptips/internal/render"
	"github.com/mithrel/triptips/pkg/api"
)

// Server serves the rendered page over HTTP. Each page request mounts a
// fresh component instance, so every view gets its own fetch.
type Server struct {
	cfg     *viper.Viper
	fetcher page.Fetcher
	html    *render.HTMLRenderer
	log     *zap.Logger
}

func New(cfg *viper.Viper, fetcher page.Fetcher, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{cfg: cfg, fetcher: fetcher, html: render.NewHTMLRenderer(), log: logger}
}

// Router returns an http.Handler with registered routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/index.html", s.handlePage)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		s.handlePage(w, r)
	})
	return mux
}

func (s *Server) newPage() *page.Page {
	return page.New(page.Options{
		Title:   s.cfg.GetString("page.title"),
		Fetcher: s.fetcher,
		Logger:  s.log,
	})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	start := time.Now()
	p := s.newPage()
	p.Mount(r.Context())
	// A client that goes away stops the wait, not the fetch.
	if err := p.Wait(r.Context()); err != nil {
		s.log.Debug("client left before fetch settled", zap.Error(err))
		return
	}

	var buf bytes.Buffer
	if err := p.RenderHTML(&buf, s.html); err != nil {
		s.log.Error("render page", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	etag := api.ETag(buf.Bytes())
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	_, _ = w.Write(buf.Bytes())
	s.log.Debug("served page", zap.Int("bytes", buf.Len()), zap.Duration("took", time.Since(start)))
}

// ListenAndServe runs the server on http_addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := s.cfg.GetString("http_addr")
	if addr == "" {
		addr = ":3001"
	}
	return Serve(ctx, &http.Server{Addr: addr, Handler: s.Router()}, s.log)
}

// Serve runs srv until ctx is cancelled, then shuts it down gracefully.
func Serve(ctx context.Context, srv *http.Server, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("shutting down", zap.String("addr", srv.Addr))
	return srv.Shutdown(shutdownCtx)
}
