// Package api implements the HTTP layer for the email summarizer relay.
// Handlers are methods on *Server. The only business route is POST
// /summarize; everything else is health and metrics.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Supritha-Kamalanathan/Email-Summarizer-Groq/internal/email"
	"github.com/Supritha-Kamalanathan/Email-Summarizer-Groq/internal/summarizer"
)

// Config holds values read from environment variables at startup.
type Config struct {
	// ExtensionID restricts cross-origin callers to the one extension:
	// the only allowed Origin is "chrome-extension://<ExtensionID>".
	ExtensionID string

	// Env is "production" or "development".
	Env string
}

// Server holds all shared dependencies. Both are immutable after
// construction and safe for concurrent requests.
type Server struct {
	// processor truncates and cipher-round-trips each record.
	processor *email.Processor

	// summarizer performs the external completion call.
	summarizer summarizer.Summarizer

	cfg    Config
	logger *slog.Logger
}

// NewServer constructs the Server and wires the chi router. The returned
// http.Handler is ready to pass to http.ListenAndServe.
func NewServer(
	processor *email.Processor,
	sum summarizer.Summarizer,
	cfg Config,
	logger *slog.Logger,
) http.Handler {
	s := &Server{
		processor:  processor,
		summarizer: sum,
		cfg:        cfg,
		logger:     logger,
	}

	return s.routes()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	// ── Global middleware ─────────────────────────────────────────────────────
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggerMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(s.corsMiddleware)
	// Generous — the provider call is the slow part and carries its own
	// 90s client timeout.
	r.Use(middleware.Timeout(2 * time.Minute))

	// ── Health ────────────────────────────────────────────────────────────────
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// ── Metrics ───────────────────────────────────────────────────────────────
	r.Handle("/metrics", promhttp.Handler())

	// ── Summarize ─────────────────────────────────────────────────────────────
	r.Post("/summarize", s.handleSummarize)

	return r
}
