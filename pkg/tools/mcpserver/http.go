package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// shutdownTimeout bounds graceful shutdown of the HTTP listener.
const shutdownTimeout = 10 * time.Second

// HTTPHandler returns a router serving the streamable HTTP transport at path
// and a liveness probe at /healthz.
func (s *MCPServer) HTTPHandler(path string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Mcp-Session-Id", "Mcp-Protocol-Version", "Last-Event-ID"},
		ExposedHeaders: []string{"Mcp-Session-Id"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return s.server }, nil)
	r.Handle(path, streamable)

	return r
}

// ListenAndServe binds addr and serves the HTTP transport until ctx is
// cancelled. A bind failure is returned before anything is served.
func (s *MCPServer) ListenAndServe(ctx context.Context, addr, path string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("mcpserver: listen %s: %w", addr, err)
	}

	return s.ServeListener(ctx, ln, path)
}

// ServeListener serves the HTTP transport on ln until ctx is cancelled, then
// shuts down gracefully. ln is closed on return.
func (s *MCPServer) ServeListener(ctx context.Context, ln net.Listener, path string) error {
	srv := &http.Server{
		Handler:           s.HTTPHandler(path),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("serving MCP over streamable HTTP", "addr", ln.Addr().String(), "path", path)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("mcpserver: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("mcpserver: shutdown: %w", err)
	}

	return nil
}
