// Package server exposes the provider gateway and the reconciler as a JSON
// HTTP API. It is thin plumbing: parameter parsing, status mapping, CORS.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ledgerbridge/ledgerbridge/internal/provider"
	"github.com/ledgerbridge/ledgerbridge/internal/reconcile"
)

// Config holds HTTP server configuration.
type Config struct {
	Addr string
}

// Server handles HTTP requests.
type Server struct {
	gateway    provider.Gateway
	reconciler *reconcile.Reconciler
	logger     *slog.Logger
	httpServer *http.Server
}

// New creates a server over the given gateway and reconciler.
func New(cfg Config, gateway provider.Gateway, reconciler *reconcile.Reconciler) *Server {
	s := &Server{
		gateway:    gateway,
		reconciler: reconciler,
		logger:     slog.Default().With("component", "server"),
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler builds the route table with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/link/session", s.handleCreateLinkSession)
	mux.HandleFunc("POST /api/link/exchange", s.handleExchangePublicToken)
	mux.HandleFunc("GET /api/accounts", s.handleListAccounts)
	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)

	return withRequestID(withLogging(withCORS(mux)))
}

// Start serves until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
