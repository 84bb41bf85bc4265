package backend

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mithrel/triptips/internal/metrics"
	"github.com/mithrel/triptips/pkg/api"
)

// Server answers GET /api/markdown with the generated tips document.
type Server struct {
	src     Source
	log     *zap.Logger
	origins map[string]bool
	anyOrig bool
}

func NewServer(src Source, allowedOrigins []string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{src: src, log: logger, origins: make(map[string]bool)}
	for _, o := range allowedOrigins {
		if o == "*" {
			s.anyOrig = true
			continue
		}
		s.origins[strings.TrimRight(o, "/")] = true
	}
	return s
}

// Router returns an http.Handler with registered routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc(api.DefaultPath, s.cors(s.handleMarkdown))
	return mux
}

// cors applies the allowed-origins policy and answers preflight requests.
func (s *Server) cors(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowed := origin != "" && (s.anyOrig || s.origins[origin])
		if allowed {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		}
		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			if allowed {
				h := w.Header()
				h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
				if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
					h.Set("Access-Control-Allow-Headers", reqHeaders)
				}
				h.Set("Access-Control-Max-Age", "600")
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	}
}

func (s *Server) handleMarkdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET, OPTIONS")
		s.writeJSON(w, http.StatusMethodNotAllowed, api.ErrorBody{Error: "method not allowed"})
		return
	}
	tips, err := s.src.Load(r.Context())
	if err != nil {
		s.log.Error("load tips", zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, api.ErrorBody{Error: "tips unavailable"})
		return
	}
	md := GenerateMarkdown(Aggregate(tips), s.log)
	s.log.Info("served markdown", zap.Int("videos", len(tips)), zap.Int("bytes", len(md)))
	s.writeJSON(w, http.StatusOK, api.NewMarkdownPayload(md))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	metrics.BackendRequestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("write response", zap.Error(err))
	}
}
