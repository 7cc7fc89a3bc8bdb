package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/germanamz/garmin-mcp/pkg/config"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolbox"
)

// ErrUnsupportedTransport is returned for transport kinds this server cannot
// run.
var ErrUnsupportedTransport = errors.New("mcpserver: unsupported transport")

// Runner serves a tool registry over the transport selected by
// configuration.
type Runner struct {
	Name    string
	Version string
	Logger  *slog.Logger
}

// Run registers the tools of tb and serves them until ctx is cancelled or
// the transport fails. It returns nil after a graceful shutdown.
func (r *Runner) Run(ctx context.Context, tb *toolbox.ToolBox, cfg config.ServerConfig) error {
	s := New(r.Name, r.Version, r.Logger)
	if err := s.Register(tb.Tools()...); err != nil {
		return err
	}

	switch cfg.Transport {
	case config.TransportStdio:
		s.logger.Info("serving MCP over stdio", "tools", tb.Len())
		if err := s.ServeStdio(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("mcpserver: stdio: %w", err)
		}
		return nil
	case config.TransportHTTP, config.TransportStreamableHTTP:
		return s.ListenAndServe(ctx, cfg.Addr(), cfg.Path)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedTransport, cfg.Transport)
	}
}
