package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"tickarena/internal/serverauth"
)

// StatusProvider is the read-only surface the status API polls. It
// deliberately never exposes *serverauth.Server directly to a handler:
// only the summary serverauth.Server.Stats already computes.
type StatusProvider interface {
	Stats() serverauth.Stats
}

// RouterConfig contains the dependencies needed to construct the HTTP
// router. Safe to build without starting any goroutine or listener,
// so it's directly usable with httptest.NewServer in tests.
type RouterConfig struct {
	// Status is the simulation status source (required).
	Status StatusProvider

	// RateLimiter is an optional pre-configured rate limiter. If nil,
	// one is created from RateLimitConfig.
	RateLimiter *IPRateLimiter

	// RateLimitConfig configures the rate limiter when RateLimiter is nil.
	RateLimitConfig *RateLimitConfig

	// CORSOrigins overrides the default allowed CORS origins.
	CORSOrigins []string

	// DisableLogging turns off the request logger middleware, useful
	// for benchmarks.
	DisableLogging bool
}

type routerHandlers struct {
	status      StatusProvider
	rateLimiter *IPRateLimiter
}

// NewRouter constructs the HTTP router with all middleware and routes.
// It is pure: no goroutines started, no listeners opened, safe to use
// directly with httptest.NewServer.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware)

	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rateLimitCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rateLimitCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rateLimitCfg)
	}
	r.Use(rateLimiter.Middleware)

	corsOrigins := cfg.CORSOrigins
	if corsOrigins == nil {
		corsOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	h := &routerHandlers{status: cfg.Status, rateLimiter: rateLimiter}

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", h.handleGetState)
		r.Get("/stats", h.handleGetStats)
	})

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/api/state", http.StatusFound)
	})

	return r
}

// metricsMiddleware records RecordRequest's latency/count histogram for
// every request, keyed by route pattern rather than raw path so it
// can't blow up cardinality with per-client URLs.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = r.URL.Path
		}
		RecordRequest(r.Method, pattern, ww.Status(), time.Since(start))
	})
}
