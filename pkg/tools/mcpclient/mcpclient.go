// Package mcpclient connects to a running MCP server, either over streamable
// HTTP or by spawning it as a subprocess on stdio, and exposes its tools as
// toolbox tools.
package mcpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/germanamz/garmin-mcp/pkg/tools/toolbox"
)

// ErrToolError wraps the text of a call whose result was flagged as an error.
var ErrToolError = errors.New("mcpclient: tool error")

// MCPClient is a connected MCP client session.
type MCPClient struct {
	session *mcp.ClientSession
}

// New spawns an MCP server process and talks to it over its stdio. The
// process is stopped by Close.
func New(ctx context.Context, command string, args ...string) (*MCPClient, error) {
	return connect(ctx, &mcp.CommandTransport{
		Command: exec.Command(command, args...), //nolint:gosec // command comes from the caller
	})
}

// Dial connects to a streamable HTTP MCP server at endpoint.
func Dial(ctx context.Context, endpoint string) (*MCPClient, error) {
	return connect(ctx, &mcp.StreamableClientTransport{Endpoint: endpoint})
}

func connect(ctx context.Context, transport mcp.Transport) (*MCPClient, error) {
	client := mcp.NewClient(&mcp.Implementation{Name: "garmin-mcp-cli", Version: "0.1.0"}, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("mcpclient: connect: %w", err)
	}

	return &MCPClient{session: session}, nil
}

// ListTools returns the server's tools. Each handler calls back through
// CallTool, and the read-only and destructive hints are carried over.
func (c *MCPClient) ListTools(ctx context.Context) ([]toolbox.Tool, error) {
	res, err := c.session.ListTools(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("mcpclient: list tools: %w", err)
	}

	tools := make([]toolbox.Tool, 0, len(res.Tools))
	for _, remote := range res.Tools {
		t, err := c.toolFrom(remote)
		if err != nil {
			return nil, fmt.Errorf("mcpclient: tool %q: %w", remote.Name, err)
		}
		tools = append(tools, t)
	}

	return tools, nil
}

// CallTool calls name with arguments, a JSON object or empty. A result the
// server flags as an error is returned as ErrToolError carrying its text.
func (c *MCPClient) CallTool(ctx context.Context, name string, arguments json.RawMessage) (string, error) {
	var args map[string]any
	if len(arguments) > 0 {
		if err := json.Unmarshal(arguments, &args); err != nil {
			return "", fmt.Errorf("mcpclient: arguments for %s: %w", name, err)
		}
	}

	res, err := c.session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return "", fmt.Errorf("mcpclient: call %s: %w", name, err)
	}

	text := textOf(res)
	if res.IsError {
		return "", fmt.Errorf("%w: %s", ErrToolError, text)
	}

	return text, nil
}

// Close ends the session. For a spawned server the SDK closes its stdin and
// waits for it to exit.
func (c *MCPClient) Close() error {
	return c.session.Close()
}

func (c *MCPClient) toolFrom(remote *mcp.Tool) (toolbox.Tool, error) {
	schema, err := json.Marshal(remote.InputSchema)
	if err != nil {
		return toolbox.Tool{}, fmt.Errorf("input schema: %w", err)
	}

	name := remote.Name
	t := toolbox.Tool{
		Name:        name,
		Description: remote.Description,
		InputSchema: schema,
		Handler: func(ctx context.Context, input json.RawMessage) (string, error) {
			return c.CallTool(ctx, name, input)
		},
	}

	if a := remote.Annotations; a != nil {
		t.ReadOnly = a.ReadOnlyHint
		t.Destructive = a.DestructiveHint != nil && *a.DestructiveHint
	}

	return t, nil
}

// textOf joins the text content items of res with newlines.
func textOf(res *mcp.CallToolResult) string {
	var texts []string
	for _, item := range res.Content {
		if tc, ok := item.(*mcp.TextContent); ok {
			texts = append(texts, tc.Text)
		}
	}

	return strings.Join(texts, "\n")
}
