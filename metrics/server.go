// Package metrics define telemetry primitives to use across components. it uses the prometheus format.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server serves the collected metrics on /metrics.
type Server struct {
	logger   *zap.Logger
	gatherer prometheus.Gatherer
	server   *http.Server
	listener net.Listener
}

// ServerOpt configures Server.
type ServerOpt func(*Server)

// WithServerLogger sets the logger of the metrics server.
func WithServerLogger(logger *zap.Logger) ServerOpt {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithGatherer replaces the default prometheus registry.
func WithGatherer(gatherer prometheus.Gatherer) ServerOpt {
	return func(s *Server) {
		s.gatherer = gatherer
	}
}

// NewServer binds the listener so that the address is known before Serve is called.
func NewServer(listen string, opts ...ServerOpt) (*Server, error) {
	s := &Server{
		logger:   zap.NewNop(),
		gatherer: prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(s)
	}
	lis, err := net.Listen("tcp", listen)
	if err != nil {
		return nil, fmt.Errorf("listen metrics on %s: %w", listen, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.listener = lis
	return s, nil
}

// Addr of the bound listener.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve blocks until ctx is canceled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("serving metrics", zap.Stringer("address", s.Addr()))
	errc := make(chan error, 1)
	go func() {
		errc <- s.server.Serve(s.listener)
	}()
	select {
	case err := <-errc:
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("metrics server shutdown", zap.Error(err))
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
