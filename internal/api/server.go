// Package api provides the HTTP REST API for LabTutor.
//
// This package exposes the hint engine and knowledge-base management via
// HTTP endpoints, enabling lab environments and admin tooling to talk to
// the tutor programmatically.
//
// Endpoints:
//
//	POST /api/token      →  exchange credentials for an access token
//	GET  /api/me         →  identity of the authenticated principal
//	POST /api/hint       →  request a hint at a given level
//	POST /api/documents  →  upload a document into the knowledge base (trainer only)
//	GET  /api/stats      →  knowledge-base statistics
//	GET  /health         →  liveness probe
//	GET  /ready          →  readiness probe
//
// File structure:
//   - server.go: HTTP server setup and lifecycle
//   - middleware.go: HTTP middleware (logging, recovery, rate limiting, auth)
//   - health.go: Health check endpoints (/health, /ready)
//   - token.go: Authentication endpoints (/api/token, /api/me)
//   - hint.go: Hint endpoint (/api/hint)
//   - documents.go: Document upload and stats endpoints
//   - response.go: JSON response helpers
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/time/rate"

	"github.com/labtutor/labtutor/internal/auth"
	"github.com/labtutor/labtutor/internal/hint"
	"github.com/labtutor/labtutor/internal/ingest"
	"github.com/labtutor/labtutor/internal/knowledge"
	"github.com/labtutor/labtutor/internal/log"
)

const (
	// DefaultAddr is the default address for the HTTP server.
	DefaultAddr = "127.0.0.1:8080"

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout is the timeout for reading request headers.
	// This prevents Slowloris attacks (CWE-400).
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout = 30 * time.Second

	// WriteTimeout is the maximum duration for writing the response.
	// Hint generation calls a model provider, so this is generous.
	WriteTimeout = 120 * time.Second

	// IdleTimeout is the maximum time to wait for the next request on keep-alive connections.
	IdleTimeout = 120 * time.Second
)

// Server is the HTTP server for LabTutor's REST API.
type Server struct {
	mux    *http.ServeMux
	logger log.Logger

	authenticator *auth.Authenticator
	limiter       *rate.Limiter

	// Handlers
	health    *HealthHandler
	token     *TokenHandler
	hint      *HintHandler
	documents *DocumentHandler
}

// NewServer creates a new HTTP server with all routes registered.
func NewServer(
	pool *pgxpool.Pool,
	authenticator *auth.Authenticator,
	hintSvc *hint.Service,
	ingestSvc *ingest.Service,
	store *knowledge.Store,
	limiter *rate.Limiter,
	logger log.Logger,
) *Server {
	mux := http.NewServeMux()

	s := &Server{
		mux:           mux,
		logger:        logger,
		authenticator: authenticator,
		limiter:       limiter,
		health:        NewHealthHandler(pool, logger),
		token:         NewTokenHandler(authenticator, logger),
		hint:          NewHintHandler(hintSvc, logger),
		documents:     NewDocumentHandler(ingestSvc, store, logger),
	}

	// Public routes
	s.health.RegisterRoutes(mux)
	s.token.RegisterPublicRoutes(mux)

	// Authenticated routes
	authed := authMiddleware(authenticator, logger)
	s.token.RegisterRoutes(mux, authed)
	s.hint.RegisterRoutes(mux, authed)
	s.documents.RegisterRoutes(mux, authed)

	return s
}

// Handler returns the HTTP handler with middleware applied.
// Middleware order: recovery → logging → rate limit → handler
func (s *Server) Handler() http.Handler {
	return chain(s.mux, recoveryMiddleware(s.logger), loggingMiddleware(s.logger), rateLimitMiddleware(s.limiter))
}

// Run starts the HTTP server and blocks until the context is cancelled.
// It handles graceful shutdown when the context is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
