// Package mcpserver serves a tool registry over the MCP protocol using the
// official MCP Go SDK, on stdio or streamable HTTP.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/germanamz/garmin-mcp/pkg/tools/result"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolbox"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolschema"
)

// MCPServer serves tools over the MCP protocol using the official MCP Go SDK.
type MCPServer struct {
	server *mcp.Server
	logger *slog.Logger
}

// New creates a new MCPServer with the given name and version. A nil logger
// discards log output.
func New(name, version string, logger *slog.Logger) *MCPServer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    name,
		Version: version,
	}, nil)

	return &MCPServer{server: server, logger: logger}
}

// Register adds tools to the server. Each tool's input schema is compiled
// up front; arguments are validated against it before the handler runs.
func (s *MCPServer) Register(tools ...toolbox.Tool) error {
	for _, t := range tools {
		v, err := toolschema.Compile(t.InputSchema)
		if err != nil {
			return fmt.Errorf("mcpserver: tool %q: %w", t.Name, err)
		}
		s.server.AddTool(toSDKTool(t), toSDKHandler(t.Name, v, t.Handler))
	}
	return nil
}

// Serve starts serving MCP requests. It reads requests from in and writes
// responses to out. It blocks until ctx is cancelled or the transport closes.
func (s *MCPServer) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	transport := &mcp.IOTransport{
		Reader: io.NopCloser(in),
		Writer: nopWriteCloser{out},
	}

	return s.run(ctx, transport)
}

// ServeStdio serves MCP requests on the process's stdin and stdout.
func (s *MCPServer) ServeStdio(ctx context.Context) error {
	return s.run(ctx, &mcp.StdioTransport{})
}

// run starts the server with the given transport. Exported via Serve for
// production use; called directly by tests with InMemoryTransport.
func (s *MCPServer) run(ctx context.Context, transport mcp.Transport) error {
	return s.server.Run(ctx, transport)
}

// toSDKTool converts a toolbox.Tool to an SDK *mcp.Tool.
func toSDKTool(t toolbox.Tool) *mcp.Tool {
	schema := t.InputSchema
	if len(schema) == 0 {
		schema = json.RawMessage(`{"type":"object"}`)
	}

	tool := &mcp.Tool{
		Name:        t.Name,
		Description: t.Description,
		InputSchema: schema,
	}

	if t.ReadOnly || t.Destructive {
		destructive := t.Destructive
		tool.Annotations = &mcp.ToolAnnotations{
			ReadOnlyHint:    t.ReadOnly,
			DestructiveHint: &destructive,
		}
	}

	return tool
}

// toSDKHandler wraps a toolbox.Handler as an SDK ToolHandler. Invalid
// arguments and handler errors become error results, never protocol faults.
func toSDKHandler(name string, v *toolschema.Validator, h toolbox.Handler) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.Params.Arguments
		if len(args) == 0 {
			args = json.RawMessage("{}")
		}

		if err := v.Validate(args); err != nil {
			return errorResult(fmt.Sprintf("Error: %s: %v", name, err)), nil
		}

		text, err := h(ctx, args)
		if err != nil {
			var re *result.Error
			if errors.As(err, &re) {
				return errorResult(re.Result.String()), nil
			}
			return errorResult(err.Error()), nil
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

// nopWriteCloser wraps an io.Writer as an io.WriteCloser with a no-op Close.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
