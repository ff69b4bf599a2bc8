// Package server exposes a read-only HTTP API over a populated registry:
// registered models, their configurations, generated artifacts, and the
// sample/measurement discovery views. It consumes only the registry's public
// surface and owns no registration or generation logic of its own.
package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/benchtop-io/benchtop/internal/registry"
)

// Config holds server configuration
type Config struct {
	// Address is the listen address (e.g. ":8080")
	Address string

	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ReadHeaderTimeout time.Duration
}

// DefaultConfig returns a production-ready configuration
func DefaultConfig() *Config {
	return &Config{
		Address:           ":8080",
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Server serves the registry introspection API
type Server struct {
	reg        *registry.Registry
	log        *zap.Logger
	httpServer *http.Server
}

// New creates a server over a populated registry
func New(reg *registry.Registry, log *zap.Logger, cfg *Config) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{reg: reg, log: log}
	s.httpServer = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
	return s
}

// ListenAndServe starts the server and blocks until shutdown
func (s *Server) ListenAndServe() error {
	s.log.Info("admin API listening", zap.String("address", s.httpServer.Addr))
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("admin API shutting down")
	return s.httpServer.Shutdown(ctx)
}
