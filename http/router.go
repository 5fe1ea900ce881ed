package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"market-finder/metrics"
)

// RouterConfig carries the handlers and shared middleware state.
type RouterConfig struct {
	Pages          *PageHandler
	API            *APIHandler
	Limiter        *RateLimiter
	Metrics        *metrics.Metrics
	Logger         zerolog.Logger
	CORSOrigins    []string
	RequestTimeout time.Duration
	Health         func(*http.Request) error
}

// NewRouter builds the HTTP surface: the HTML front-end at "/", the JSON API
// under /api/v1, plus /healthz and /metrics.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(cfg.Logger, cfg.Metrics))
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/healthz", healthHandler(cfg.Health))
	r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())

	r.Group(func(r chi.Router) {
		if cfg.Limiter != nil {
			r.Use(RateLimitMiddleware(cfg.Limiter, cfg.Metrics))
		}
		r.Get("/", cfg.Pages.Index)
		r.Get("/select/state/{code}", cfg.Pages.SelectState)
		r.Get("/select/type/{type}", cfg.Pages.SelectBusinessType)
		r.Get("/select/lob", cfg.Pages.SelectLOB)
		r.Get("/reset", cfg.Pages.Reset)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(corsHandler(cfg.CORSOrigins))
		if cfg.Limiter != nil {
			r.Use(RateLimitMiddleware(cfg.Limiter, cfg.Metrics))
		}
		r.Get("/states", cfg.API.States)
		r.Get("/lobs", cfg.API.LOBs)
		r.Get("/lookup", cfg.API.Lookup)
		r.Get("/map", cfg.API.Map)
		r.Post("/selection", cfg.API.Select)
	})

	return r
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}
	if len(origins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	return cors.Handler(opts)
}

func healthHandler(check func(*http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r); err != nil {
				http.Error(w, "unhealthy: "+err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	}
}
