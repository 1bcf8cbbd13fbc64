// Package server hosts the MCP streamable-HTTP transport behind a chi router.
// This is the alternative to the default stdio channel for hosts that connect
// over the network instead of spawning a subprocess.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sundrylabs/sundry-mcp/internal/mcpserver"
)

// Config holds HTTP server configuration.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns default HTTP server configuration for addr.
func DefaultConfig(addr string) Config {
	return Config{
		Addr:        addr,
		ReadTimeout: 15 * time.Second,
		// Streamable HTTP keeps response streams open; no write deadline.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}
}

// Server wraps the HTTP server hosting the MCP endpoint.
type Server struct {
	http *http.Server
}

// NewRouter creates a chi router exposing the MCP endpoint at /mcp and an
// unauthenticated health probe at /health.
func NewRouter(m *mcpserver.Server) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return m.MCP()
	}, nil)
	r.Handle("/mcp", handler)

	return r
}

// New creates an HTTP server for the given MCP server and configuration.
func New(m *mcpserver.Server, config Config) *Server {
	return &Server{
		http: &http.Server{
			Addr:         config.Addr,
			Handler:      NewRouter(m),
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully. A clean
// shutdown returns nil.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}
