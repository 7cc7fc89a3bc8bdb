// Package userprofile provides the user profile and settings tools.
package userprofile

import (
	"context"
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/germanamz/garmin-mcp/pkg/features/kit"
	"github.com/germanamz/garmin-mcp/pkg/tools/result"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolbox"
)

// Client is the part of the Connect API this module uses.
type Client interface {
	FullName(ctx context.Context) (json.RawMessage, error)
	UserSettings(ctx context.Context) (json.RawMessage, error)
	UserProfile(ctx context.Context) (json.RawMessage, error)
	UserProfileSettings(ctx context.Context) (json.RawMessage, error)
}

// Module owns the user profile tools.
type Module struct {
	client kit.Binding[Client]
}

// New creates the module bound to client.
func New(client Client) *Module {
	return &Module{client: kit.Bind(client)}
}

// Name returns the module name.
func (m *Module) Name() string { return "user_profile" }

// Tools returns the module's tools.
func (m *Module) Tools() []toolbox.Tool {
	b := m.client

	return []toolbox.Tool{
		kit.NoArgTool(b, "get_full_name", "Get the user's full name", "full name", Client.FullName),
		m.unitSystem(),
		kit.NoArgTool(b, "get_user_profile", "Get the user profile", "user profile", Client.UserProfile),
		kit.NoArgTool(b, "get_userprofile_settings", "Get the user profile settings", "user profile settings", Client.UserProfileSettings),
	}
}

// unitSystem reads userData.measurementSystem (e.g. "metric", "statute_us")
// from the user settings.
func (m *Module) unitSystem() toolbox.Tool {
	return kit.Custom(m.client, "get_unit_system", "Get the user's unit system (metric or imperial)", nil,
		func(ctx context.Context, c Client, _ struct{}) result.Result {
			return result.Wrap("unit system", "", func() (json.RawMessage, error) {
				settings, err := c.UserSettings(ctx)
				if err != nil {
					return nil, err
				}
				system := gjson.GetBytes(settings, "userData.measurementSystem")
				if !system.Exists() {
					return nil, nil
				}
				return json.RawMessage(system.Raw), nil
			})
		}, kit.ReadOnly())
}
