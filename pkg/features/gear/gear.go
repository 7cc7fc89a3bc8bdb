// Package gear provides the gear tools: owned gear, defaults, usage stats,
// and linking gear to activities.
package gear

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/germanamz/garmin-mcp/pkg/features/kit"
	"github.com/germanamz/garmin-mcp/pkg/tools/result"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolbox"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolschema"
)

// Client is the part of the Connect API this module uses.
type Client interface {
	ProfilePK() (int64, error)
	Gear(ctx context.Context, profilePK int64) (json.RawMessage, error)
	GearDefaults(ctx context.Context, profilePK int64) (json.RawMessage, error)
	GearStats(ctx context.Context, gearUUID string) (json.RawMessage, error)
	LinkGear(ctx context.Context, gearUUID string, activityID int64) (json.RawMessage, error)
	UnlinkGear(ctx context.Context, gearUUID string, activityID int64) (json.RawMessage, error)
}

// Module owns the gear tools.
type Module struct {
	client kit.Binding[Client]
}

// New creates the module bound to client.
func New(client Client) *Module {
	return &Module{client: kit.Bind(client)}
}

// Name returns the module name.
func (m *Module) Name() string { return "gear" }

// Tools returns the module's tools.
func (m *Module) Tools() []toolbox.Tool {
	return []toolbox.Tool{
		m.profileTool("get_gear", "Get all gear owned by the user", "gear", Client.Gear),
		m.profileTool("get_gear_defaults", "Get the default gear per activity type", "gear defaults", Client.GearDefaults),
		m.stats(),
		m.link("add_gear_to_activity", "Link gear to an activity", "adding", "linked to", Client.LinkGear),
		m.link("remove_gear_from_activity", "Remove gear from an activity", "removing", "removed from", Client.UnlinkGear),
	}
}

type profileInput struct {
	UserProfileID *int64 `json:"user_profile_id"`
}

// profileTool builds a tool scoped to a user profile. Without
// user_profile_id it uses the authenticated user's profile.
func (m *Module) profileTool(name, description, subject string, fetch func(Client, context.Context, int64) (json.RawMessage, error)) toolbox.Tool {
	params := []toolschema.Param{
		toolschema.Int("user_profile_id", "User profile ID; defaults to the authenticated user").Optional(nil),
	}

	return kit.Custom(m.client, name, description, params,
		func(ctx context.Context, c Client, in profileInput) result.Result {
			var pk int64
			if in.UserProfileID != nil {
				pk = *in.UserProfileID
			} else {
				var err error
				if pk, err = c.ProfilePK(); err != nil {
					return result.Failure(fmt.Sprintf("Error retrieving %s: %v", subject, err))
				}
			}

			return result.Wrap(subject, result.For("profile "+strconv.FormatInt(pk, 10)), func() (json.RawMessage, error) {
				return fetch(c, ctx, pk)
			})
		}, kit.ReadOnly())
}

type gearInput struct {
	GearUUID string `json:"gear_uuid"`
}

func (m *Module) stats() toolbox.Tool {
	params := []toolschema.Param{toolschema.String("gear_uuid", "UUID of the gear item")}

	return kit.Custom(m.client, "get_gear_stats", "Get usage statistics of a gear item", params,
		func(ctx context.Context, c Client, in gearInput) result.Result {
			return result.Wrap("gear stats", result.For("gear "+in.GearUUID), func() (json.RawMessage, error) {
				return c.GearStats(ctx, in.GearUUID)
			})
		}, kit.ReadOnly())
}

type linkInput struct {
	gearInput
	ActivityID int64 `json:"activity_id"`
}

func (m *Module) link(name, description, verb, outcome string, send func(Client, context.Context, string, int64) (json.RawMessage, error)) toolbox.Tool {
	params := []toolschema.Param{
		toolschema.String("gear_uuid", "UUID of the gear item"),
		toolschema.Int("activity_id", "ID of the activity"),
	}

	return kit.Custom(m.client, name, description, params,
		func(ctx context.Context, c Client, in linkInput) result.Result {
			done := fmt.Sprintf("Gear %s %s activity %d", in.GearUUID, outcome, in.ActivityID)
			return result.WrapAction(verb, "gear", done, func() (json.RawMessage, error) {
				return send(c, ctx, in.GearUUID, in.ActivityID)
			})
		})
}
