package toolbox

import (
	"context"
	"encoding/json"
)

// Handler executes a tool with the given JSON input and returns a text result.
type Handler func(ctx context.Context, input json.RawMessage) (string, error)

// Tool represents an executable tool with a name, description, JSON Schema, and handler.
type Tool struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Handler     Handler

	// ReadOnly marks tools that never mutate remote state.
	ReadOnly bool
	// Destructive marks tools that delete remote data.
	Destructive bool
}

// Middleware wraps a tool handler. The tool is passed so middleware can
// label what it observes.
type Middleware func(t Tool, next Handler) Handler
