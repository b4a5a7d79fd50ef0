package api

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Server is the read-only status HTTP server: /api/state and
// /api/stats poll a StatusProvider. The actual game traffic runs on
// internal/transport's own listener, not through this router.
type Server struct {
	status      StatusProvider
	router      *chi.Mux
	rateLimiter *IPRateLimiter
	httpServer  *http.Server
}

// NewServer creates a status API server with default production
// configuration. No goroutine or listener starts until Start is
// called, so the router is directly usable with httptest.NewServer.
func NewServer(status StatusProvider) *Server {
	s := &Server{status: status}
	s.rateLimiter = NewIPRateLimiter(DefaultRateLimitConfig)
	s.router = NewRouter(RouterConfig{
		Status:      status,
		RateLimiter: s.rateLimiter,
	})
	return s
}

// Router returns the HTTP handler for use with httptest.
func (s *Server) Router() http.Handler { return s.router }

// Start begins serving on addr. Blocks until the server stops.
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{Addr: addr, Handler: s.router}
	log.Printf("status API listening on %s", addr)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop gracefully shuts down the HTTP server and the rate limiter's
// cleanup goroutine.
func (s *Server) Stop(ctx context.Context) error {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
