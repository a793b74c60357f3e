package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"tideline/internal/logging"
	"tideline/internal/ports"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 30 * time.Second
)

// Server exposes a ScenarioProvider over the JSON wire contract
type Server struct {
	addr     string
	now      func() time.Time
	provider ports.ScenarioProvider
}

// NewServer creates a new HTTP server instance
func NewServer(addr string, provider ports.ScenarioProvider) *Server {
	return &Server{
		addr:     addr,
		now:      time.Now,
		provider: provider,
	}
}

// Handler returns the routed HTTP handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("POST /sessions/{id}/choices", s.handleResolveChoice)
	mux.HandleFunc("POST /sessions/{id}/analysis", s.handleAnalysis)
	mux.HandleFunc("/", s.handleNotFound)
	return mux
}

// Start listens on the configured address and blocks until ctx is done,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve runs the server on an existing listener until ctx is done
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logging.Logger.Info("Starting simulator server", "address", listener.Addr().String())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("simulator server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logging.Logger.Info("Shutting down simulator server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown simulator server: %w", err)
		}
		logging.Logger.Info("Simulator server stopped")
		return nil
	})
	return g.Wait()
}
