package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germanamz/garmin-mcp/pkg/tools/result"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolbox"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolschema"
)

func echoHandler(_ context.Context, input json.RawMessage) (string, error) {
	return string(input), nil
}

func errorHandler(_ context.Context, _ json.RawMessage) (string, error) {
	return "", errors.New("tool failed")
}

func newTestTool(name string) toolbox.Tool {
	return toolbox.Tool{
		Name:        name,
		Description: "Test tool: " + name,
		InputSchema: json.RawMessage(`{"type":"object"}`),
		Handler:     echoHandler,
	}
}

func connect(t *testing.T, s *MCPServer) *mcp.ClientSession {
	t.Helper()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- s.run(ctx, serverTransport)
	}()
	t.Cleanup(func() {
		cancel()
		<-serverDone
	})

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	return session
}

// setupTestClient creates an MCPServer, connects an SDK client via in-memory
// transports, and returns the client session. The server runs in a background
// goroutine tied to t.Cleanup.
func setupTestClient(t *testing.T, tools ...toolbox.Tool) *mcp.ClientSession {
	t.Helper()

	s := New("test-server", "1.0.0", nil)
	require.NoError(t, s.Register(tools...))

	return connect(t, s)
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestNew(t *testing.T) {
	s := New("srv", "1.0.0", nil)
	assert.NotNil(t, s.server)
	assert.NotNil(t, s.logger)
}

func TestRegisterRejectsInvalidSchema(t *testing.T) {
	s := New("srv", "1.0.0", nil)
	tool := newTestTool("bad")
	tool.InputSchema = json.RawMessage(`{"type":`)

	err := s.Register(tool)
	assert.ErrorContains(t, err, `tool "bad"`)
}

func TestListTools(t *testing.T) {
	readOnly := newTestTool("echo")
	readOnly.ReadOnly = true
	destructive := toolbox.Tool{
		Name:        "wipe",
		Description: "Delete things",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"name":{"type":"string"}}}`),
		Handler:     echoHandler,
		Destructive: true,
	}

	session := setupTestClient(t, readOnly, destructive, newTestTool("plain"))

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, res.Tools, 3)

	toolsByName := make(map[string]*mcp.Tool, len(res.Tools))
	for _, tool := range res.Tools {
		toolsByName[tool.Name] = tool
	}

	echo := toolsByName["echo"]
	require.NotNil(t, echo)
	assert.Equal(t, "Test tool: echo", echo.Description)
	require.NotNil(t, echo.Annotations)
	assert.True(t, echo.Annotations.ReadOnlyHint)

	wipe := toolsByName["wipe"]
	require.NotNil(t, wipe)
	require.NotNil(t, wipe.Annotations)
	require.NotNil(t, wipe.Annotations.DestructiveHint)
	assert.True(t, *wipe.Annotations.DestructiveHint)

	assert.Nil(t, toolsByName["plain"].Annotations)
}

func TestToolCallSuccess(t *testing.T) {
	session := setupTestClient(t, newTestTool("echo"))

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "echo",
		Arguments: map[string]any{"msg": "hello"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.JSONEq(t, `{"msg":"hello"}`, textOf(t, res))
}

func TestToolCallHandlerError(t *testing.T) {
	session := setupTestClient(t, toolbox.Tool{
		Name:        "fail",
		Description: "Always fails",
		InputSchema: json.RawMessage(`{"type":"object"}`),
		Handler:     errorHandler,
	})

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "fail",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "tool failed", textOf(t, res))
}

func TestToolCallFailureResult(t *testing.T) {
	session := setupTestClient(t, toolbox.Tool{
		Name:        "remote",
		InputSchema: json.RawMessage(`{"type":"object"}`),
		Handler: result.Handler(func(context.Context, json.RawMessage) result.Result {
			return result.Failure("Error retrieving stats: 500 Internal Server Error")
		}),
	})

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: "remote", Arguments: map[string]any{}})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "Error retrieving stats: 500 Internal Server Error", textOf(t, res))
}

func TestToolCallEmptyResultIsNotAnError(t *testing.T) {
	session := setupTestClient(t, toolbox.Tool{
		Name:        "quiet",
		InputSchema: json.RawMessage(`{"type":"object"}`),
		Handler: result.Handler(func(context.Context, json.RawMessage) result.Result {
			return result.Empty("No stats found for 2024-01-15")
		}),
	})

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: "quiet", Arguments: map[string]any{}})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "No stats found for 2024-01-15", textOf(t, res))
}

func TestToolCallInvalidArguments(t *testing.T) {
	called := false
	session := setupTestClient(t, toolbox.Tool{
		Name:        "dated",
		InputSchema: toolschema.MustJSON(toolschema.Date("date", "Date")),
		Handler: func(context.Context, json.RawMessage) (string, error) {
			called = true
			return "ok", nil
		},
	})

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "dated",
		Arguments: map[string]any{"date": "15/01/2024"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "Error: dated: invalid arguments")
	assert.False(t, called)

	res, err = session.CallTool(context.Background(), &mcp.CallToolParams{Name: "dated", Arguments: map[string]any{}})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.False(t, called)
}

func TestToolCallNotFound(t *testing.T) {
	session := setupTestClient(t)

	_, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "missing",
		Arguments: map[string]any{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestContextCancellation(t *testing.T) {
	s := New("srv", "1.0.0", nil)
	serverTransport, _ := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.run(ctx, serverTransport)
	assert.ErrorIs(t, err, context.Canceled)
}
