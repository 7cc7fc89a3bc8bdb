package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germanamz/garmin-mcp/pkg/app"
	"github.com/germanamz/garmin-mcp/pkg/config"
	"github.com/germanamz/garmin-mcp/pkg/tools/mcpserver"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolbox"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--env", filepath.Join(t.TempDir(), "missing.env")}, args...))

	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestToolsListsRegistry(t *testing.T) {
	out, _, err := execute(t, "tools")
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "get_stats")
	assert.Contains(t, out, "get_menstrual_calendar_data")
	assert.Contains(t, out, "destructive")
	assert.Contains(t, out, "85 tools")
}

func TestToolsListsRunningServer(t *testing.T) {
	tb, err := app.BuildRegistry(app.Modules(nil))
	require.NoError(t, err)
	url := startServer(t, tb.Tools()...)

	out, _, err := execute(t, "tools", "--url", url)
	require.NoError(t, err)

	assert.Contains(t, out, "get_sleep_summary")
	assert.Contains(t, out, "read-only")
	assert.Contains(t, out, "destructive")
	assert.Contains(t, out, "85 tools")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "garmin-mcp version dev\n", out)
}

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("SERVER_TRANSPORT", "stdio")

	root := newRootCmd()
	require.NoError(t, root.ParseFlags([]string{
		"--env", filepath.Join(t.TempDir(), "missing.env"),
		"--port", "9100",
		"--log-level", "DEBUG",
	}))

	cfg, err := loadConfig(root)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, config.TransportStdio, cfg.Server.Transport)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/mcp", cfg.Server.Path)
}

func TestServeRejectsUnknownTransport(t *testing.T) {
	_, _, err := execute(t, "--transport", "carrier-pigeon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transport")
	assert.Equal(t, 1, app.ExitCode(err))
}

func TestServeWithoutTokensExitsCleanly(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GARMINTOKENS", dir)
	t.Setenv("GARMINTOKENS_BASE64", filepath.Join(dir, "missing"))
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	out, stderr, err := execute(t, "--transport", "stdio", "--log-format", "text")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "log in with your Garmin Connect credentials")
	assert.Contains(t, stderr, dir)
}

func startServer(t *testing.T, tools ...toolbox.Tool) string {
	t.Helper()

	s := mcpserver.New("test", "1.0.0", nil)
	require.NoError(t, s.Register(tools...))
	srv := httptest.NewServer(s.HTTPHandler("/mcp"))
	t.Cleanup(srv.Close)

	return srv.URL + "/mcp"
}

func TestCallPrintsToolOutput(t *testing.T) {
	url := startServer(t, toolbox.Tool{
		Name:        "echo",
		Description: "Echo input",
		InputSchema: json.RawMessage(`{"type":"object"}`),
		Handler: func(_ context.Context, input json.RawMessage) (string, error) {
			return string(input), nil
		},
	})

	out, _, err := execute(t, "call", "echo", `{"date":"2024-01-15"}`, "--url", url)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-01-15"}`, out)
}

func TestCallToolErrorExitsWithOne(t *testing.T) {
	tb, err := app.BuildRegistry(app.Modules(nil))
	require.NoError(t, err)
	url := startServer(t, tb.Tools()...)

	_, _, err = execute(t, "call", "get_full_name", "--url", url)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
	assert.Equal(t, 1, app.ExitCode(err))
}

func TestCallRejectsInvalidJSON(t *testing.T) {
	_, _, err := execute(t, "call", "get_stats", "{date", "--url", "http://127.0.0.1:1/mcp")
	require.Error(t, err)
	assert.Equal(t, 2, app.ExitCode(err))
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "http://127.0.0.1:8000/mcp", endpointURL(config.ServerConfig{Host: "0.0.0.0", Port: 8000, Path: "/mcp"}))
	assert.Equal(t, "http://[::1]:9000/x", endpointURL(config.ServerConfig{Host: "::1", Port: 9000, Path: "/x"}))
}
