// Garmin-mcp serves a Garmin Connect account as Model Context Protocol tools.
// The root command authenticates with a stored token, builds the tool
// registry, and serves it over streamable HTTP (default) or stdio.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/germanamz/garmin-mcp/pkg/app"
	"github.com/germanamz/garmin-mcp/pkg/garmin/session"
	"github.com/germanamz/garmin-mcp/pkg/telemetry"
	"github.com/germanamz/garmin-mcp/pkg/tools/mcpserver"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolbox"
)

// Set via ldflags at build time.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(app.ExitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "garmin-mcp",
		Short: "Garmin Connect MCP server",
		Long: "garmin-mcp exposes Garmin Connect health, activity, and training data as MCP tools.\n\n" +
			"Log in once with your Garmin Connect credentials to write a token store, then point\n" +
			"GARMINTOKENS (or --config) at it.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runServe,
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "path to a YAML configuration file")
	flags.String("env", ".env", "path to .env file (ignored if missing)")
	flags.String("transport", "", "transport: http, streamable-http, or stdio")
	flags.String("host", "", "listen host for the HTTP transport")
	flags.Int("port", 0, "listen port for the HTTP transport")
	flags.String("path", "", "MCP endpoint path for the HTTP transport")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: json or text")

	cmd.Version = version
	cmd.SetVersionTemplate(fmt.Sprintf("garmin-mcp version %s\n", version))

	cmd.AddCommand(newToolsCmd())
	cmd.AddCommand(newCallCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Log)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	providers, err := telemetry.Setup(ctx, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := providers.Shutdown(context.Background()); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	observer, err := telemetry.NewToolObserver(
		otel.GetMeterProvider().Meter(telemetry.ScopeName),
		otel.GetTracerProvider().Tracer(telemetry.ScopeName),
		logger,
	)
	if err != nil {
		return err
	}

	return app.Run(ctx, app.Deps{
		Session: &session.Provider{
			TokenStore:       cfg.TokenStore,
			TokenStoreBase64: cfg.TokenStoreBase64,
			BaseURL:          cfg.BaseURL,
		},
		Server:     &mcpserver.Runner{Name: app.ServerName, Version: version, Logger: logger},
		Config:     cfg,
		Logger:     logger,
		Middleware: []toolbox.Middleware{observer.Middleware()},
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "garmin-mcp version %s\n", version)
		},
	}
}
