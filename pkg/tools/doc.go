// Package tools provides tool registration and MCP (Model Context Protocol) integration.
//
// It is organized into sub-packages:
//   - [github.com/germanamz/garmin-mcp/pkg/tools/toolbox]: Tool type and ToolBox registry for registering, listing, and calling tools
//   - [github.com/germanamz/garmin-mcp/pkg/tools/toolschema]: input schema builder and argument validation
//   - [github.com/germanamz/garmin-mcp/pkg/tools/result]: normalized tool results (data, empty, failure, not configured)
//   - [github.com/germanamz/garmin-mcp/pkg/tools/mcpserver]: MCP server exposing a ToolBox over stdio or streamable HTTP
//   - [github.com/germanamz/garmin-mcp/pkg/tools/mcpclient]: MCP client used by the command line to call a running server
//
// The toolbox sub-package is the foundation layer. Both mcpclient and mcpserver
// depend on toolbox for the Tool type but are independent of each other.
// The mcpclient and mcpserver packages are thin wrappers around the official
// MCP Go SDK (github.com/modelcontextprotocol/go-sdk).
package tools
