// Package app assembles the Garmin Connect tool server: it authenticates once,
// hands the resulting client to every feature module, merges their tools into
// one sealed registry, and serves that registry over the configured transport.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/germanamz/garmin-mcp/pkg/config"
	"github.com/germanamz/garmin-mcp/pkg/features/activities"
	"github.com/germanamz/garmin-mcp/pkg/features/challenges"
	"github.com/germanamz/garmin-mcp/pkg/features/datamanagement"
	"github.com/germanamz/garmin-mcp/pkg/features/devices"
	"github.com/germanamz/garmin-mcp/pkg/features/gear"
	"github.com/germanamz/garmin-mcp/pkg/features/healthwellness"
	"github.com/germanamz/garmin-mcp/pkg/features/training"
	"github.com/germanamz/garmin-mcp/pkg/features/userprofile"
	"github.com/germanamz/garmin-mcp/pkg/features/weight"
	"github.com/germanamz/garmin-mcp/pkg/features/womenshealth"
	"github.com/germanamz/garmin-mcp/pkg/features/workouts"
	"github.com/germanamz/garmin-mcp/pkg/garmin"
	"github.com/germanamz/garmin-mcp/pkg/garmin/session"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolbox"
)

// ServerName is the MCP implementation name announced to clients.
const ServerName = "Garmin Connect v1.0"

// Module is a feature module contributing tools to the registry.
type Module interface {
	Name() string
	Tools() []toolbox.Tool
}

// Sessions produces an authenticated client.
type Sessions interface {
	Authenticate(ctx context.Context) (*garmin.API, error)
}

// ToolServer serves a sealed registry until ctx is cancelled or the transport
// fails.
type ToolServer interface {
	Run(ctx context.Context, tb *toolbox.ToolBox, cfg config.ServerConfig) error
}

// Modules returns every feature module bound to client, in registration
// order. A nil client yields modules whose tools report that the server is
// not configured.
func Modules(client *garmin.API) []Module {
	return []Module{
		activities.New(client),
		healthwellness.New(client),
		userprofile.New(client),
		devices.New(client),
		gear.New(client),
		weight.New(client),
		challenges.New(client),
		training.New(client),
		workouts.New(client),
		datamanagement.New(client),
		womenshealth.New(client),
	}
}

// BuildRegistry registers the tools of every module into one registry,
// installs mw, and seals it. A tool name used twice is a startup error.
func BuildRegistry(modules []Module, mw ...toolbox.Middleware) (*toolbox.ToolBox, error) {
	tb := toolbox.New()
	for _, m := range modules {
		if err := tb.Register(m.Tools()...); err != nil {
			return nil, fmt.Errorf("app: module %s: %w", m.Name(), err)
		}
	}

	if err := tb.Use(mw...); err != nil {
		return nil, fmt.Errorf("app: middleware: %w", err)
	}

	tb.Seal()

	return tb, nil
}

// Deps are the collaborators of Run.
type Deps struct {
	Session    Sessions
	Server     ToolServer
	Config     config.Config
	Logger     *slog.Logger
	Middleware []toolbox.Middleware
}

// TransportError reports a transport that failed to start or stopped with an
// error.
type TransportError struct {
	Transport string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("app: transport %s: %v", e.Transport, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Run authenticates, builds the registry and serves it. An expected
// authentication failure is logged with instructions and Run returns nil
// without serving anything.
func Run(ctx context.Context, d Deps) error {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	logger.Info("logging in to Garmin Connect", "tokenstore", d.Config.TokenStore)

	client, err := d.Session.Authenticate(ctx)
	if err != nil {
		if session.IsAuthFailure(err) {
			logger.Error("login tokens not present or no longer valid; log in with your Garmin Connect credentials to generate them",
				"error", err,
				"tokenstore", d.Config.TokenStore,
				"tokenstore_base64", d.Config.TokenStoreBase64,
			)
			return nil
		}
		return fmt.Errorf("app: authenticate: %w", err)
	}

	if p := client.Profile(); p != nil {
		logger.Info("Garmin Connect client initialized", "display_name", p.DisplayName)
	}

	tb, err := BuildRegistry(Modules(client), d.Middleware...)
	if err != nil {
		return err
	}

	logger.Info("starting Garmin MCP server", "tools", tb.Len(), "transport", d.Config.Server.Transport)

	if err := d.Server.Run(ctx, tb, d.Config.Server); err != nil {
		return &TransportError{Transport: d.Config.Server.Transport, Err: err}
	}

	return nil
}

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps the result of Run to a process exit code: 0 for nil, the
// carried code for an *ExitError, and 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return 1
}
