// Package web provides the HTTP server and handlers for the converter UI.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/JonMunkholm/csvjson/internal/config"
	"github.com/JonMunkholm/csvjson/internal/limiter"
	"github.com/JonMunkholm/csvjson/internal/metrics"
	"github.com/JonMunkholm/csvjson/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

//go:embed static
var staticFiles embed.FS

const cspPolicy = "default-src 'self'; script-src 'self'; style-src 'self'; img-src 'self' data:; connect-src 'self'; form-action 'self'; frame-ancestors 'none'"

// Server is the HTTP server for the converter.
type Server struct {
	cfg       *config.Config
	metrics   *metrics.Collector
	gate      *limiter.Limiter
	rateLimit *rateLimiter
	router    *chi.Mux
	server    *http.Server
}

// NewServer creates a Server. A nil collector gets a private one; a given
// collector must not be shared with another Server.
func NewServer(cfg *config.Config, collector *metrics.Collector) *Server {
	if collector == nil {
		collector = metrics.NewCollector(cfg.Metrics.Namespace, nil)
	}
	s := &Server{
		cfg:     cfg,
		metrics: collector,
		gate:    limiter.New(cfg.Convert.MaxConcurrent, cfg.Convert.MaxWait),
		router:  chi.NewRouter(),
	}
	collector.TrackInFlight(s.gate.Active)
	if cfg.Rate.Enabled {
		s.rateLimit = newRateLimiter(cfg.Rate.RequestsPerMinute, time.Minute)
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Probes and scraping are never rate limited.
	s.router.Get("/healthz", s.handleHealth)
	if s.cfg.Metrics.Enabled {
		s.router.Handle(s.cfg.Metrics.Path, s.metrics.Handler())
	}

	s.router.Group(func(r chi.Router) {
		if s.rateLimit != nil {
			r.Use(s.rateLimit.middleware(s))
		}

		r.Get("/", s.handleIndex)
		r.Post("/convert", s.handleConvert)
		r.Post("/mode", s.handleToggleMode)
		r.Post("/swap", s.handleSwap)
		r.Post("/clear", s.handleClear)
		r.Post("/upload", s.handleUpload)
		r.Post("/download", s.handleDownload)

		r.Route("/api", func(r chi.Router) {
			r.Post("/convert", s.handleAPIConvert)
		})
	})
}

// Start listens on the configured address. It returns http.ErrServerClosed
// after Shutdown.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("server listening", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown stops accepting requests and waits, up to ctx, for in-flight
// conversions. It also stops the rate limiter's sweeper.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.rateLimit != nil {
		s.rateLimit.Stop()
	}
	if st := s.gate.Status(); st.Active > 0 {
		slog.Info("waiting for conversions to finish", "active", st.Active)
	}

	var err error
	if s.server != nil {
		err = s.server.Shutdown(ctx)
	}
	if drainErr := s.gate.Drain(ctx); drainErr != nil && err == nil {
		err = drainErr
	}
	return err
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds hardening headers to all responses. The page loads
// only same-origin assets, so the CSP needs no inline allowances.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if enableCSP {
				h.Set("Content-Security-Policy", cspPolicy)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeJSON encodes v with the given status.
// Encoding errors are only logged since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
