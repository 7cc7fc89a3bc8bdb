package toolbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
)

var (
	// ErrDuplicateTool is returned when a tool name is already registered.
	ErrDuplicateTool = errors.New("toolbox: duplicate tool")
	// ErrSealed is returned when registering into a sealed ToolBox.
	ErrSealed = errors.New("toolbox: registry is sealed")
	// ErrToolNotFound is returned by Call for unknown tool names.
	ErrToolNotFound = errors.New("toolbox: tool not found")
	// ErrInvalidTool is returned for tools without a name or handler.
	ErrInvalidTool = errors.New("toolbox: invalid tool")
)

// ToolBox is the registry of tools served to callers. Registration is a
// checked insert: names are unique across the whole box. Once sealed, the
// box is read-only and safe for concurrent use.
type ToolBox struct {
	tools      map[string]Tool
	middleware []Middleware
	sealed     bool
}

// New creates a new ToolBox ready for use.
func New() *ToolBox {
	return &ToolBox{
		tools: make(map[string]Tool),
	}
}

// Register adds one or more tools. It fails on the first tool whose name is
// empty or already registered; tools before it stay registered.
func (tb *ToolBox) Register(tools ...Tool) error {
	if tb.sealed {
		return ErrSealed
	}

	for _, t := range tools {
		if t.Name == "" || t.Handler == nil {
			return fmt.Errorf("%w: %q", ErrInvalidTool, t.Name)
		}
		if _, dup := tb.tools[t.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateTool, t.Name)
		}
		tb.tools[t.Name] = t
	}

	return nil
}

// Merge registers all tools from another ToolBox into this one with the same
// uniqueness check as Register.
func (tb *ToolBox) Merge(other *ToolBox) error {
	return tb.Register(other.Tools()...)
}

// Use appends middleware applied to every handler returned by Tools, Get, and
// Call. The first middleware is the outermost.
func (tb *ToolBox) Use(mw ...Middleware) error {
	if tb.sealed {
		return ErrSealed
	}
	tb.middleware = append(tb.middleware, mw...)
	return nil
}

// Seal freezes the registry. Further Register, Merge, and Use calls fail.
func (tb *ToolBox) Seal() { tb.sealed = true }

// Sealed reports whether Seal has been called.
func (tb *ToolBox) Sealed() bool { return tb.sealed }

// Len returns the number of registered tools.
func (tb *ToolBox) Len() int { return len(tb.tools) }

// Get returns a tool by name and a boolean indicating whether it was found.
func (tb *ToolBox) Get(name string) (Tool, bool) {
	t, ok := tb.tools[name]
	if !ok {
		return Tool{}, false
	}
	return tb.wrap(t), true
}

// Names returns the registered tool names in sorted order.
func (tb *ToolBox) Names() []string {
	names := make([]string, 0, len(tb.tools))
	for name := range tb.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tools returns all registered tools sorted by name.
func (tb *ToolBox) Tools() []Tool {
	result := make([]Tool, 0, len(tb.tools))
	for _, name := range tb.Names() {
		result = append(result, tb.wrap(tb.tools[name]))
	}
	return result
}

// Call executes the named tool with the given arguments.
func (tb *ToolBox) Call(ctx context.Context, name string, input json.RawMessage) (string, error) {
	t, ok := tb.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	if len(input) == 0 {
		input = json.RawMessage("{}")
	}

	return t.Handler(ctx, input)
}

func (tb *ToolBox) wrap(t Tool) Tool {
	h := t.Handler
	for _, mw := range slices.Backward(tb.middleware) {
		h = mw(t, h)
	}
	t.Handler = h
	return t
}
