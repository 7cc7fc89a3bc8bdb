// Package challenges provides the goal, record, badge, and challenge tools.
package challenges

import (
	"context"
	"encoding/json"

	"github.com/germanamz/garmin-mcp/pkg/features/kit"
	"github.com/germanamz/garmin-mcp/pkg/tools/result"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolbox"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolschema"
)

const pageLimit = 100

// Client is the part of the Connect API this module uses.
type Client interface {
	Goals(ctx context.Context, status string) (json.RawMessage, error)
	PersonalRecords(ctx context.Context) (json.RawMessage, error)
	EarnedBadges(ctx context.Context) (json.RawMessage, error)
	AdhocChallenges(ctx context.Context, start, limit int) (json.RawMessage, error)
	AvailableBadgeChallenges(ctx context.Context, start, limit int) (json.RawMessage, error)
	BadgeChallenges(ctx context.Context, start, limit int) (json.RawMessage, error)
	NonCompletedBadgeChallenges(ctx context.Context, start, limit int) (json.RawMessage, error)
	RacePredictions(ctx context.Context) (json.RawMessage, error)
	InProgressVirtualChallenges(ctx context.Context, start, limit int) (json.RawMessage, error)
}

type Module struct {
	client kit.Binding[Client]
}

func New(client Client) *Module {
	return &Module{client: kit.Bind(client)}
}

func (m *Module) Name() string { return "challenges" }

func (m *Module) Tools() []toolbox.Tool {
	b := m.client

	return []toolbox.Tool{
		m.goals(),
		kit.NoArgTool(b, "get_personal_record", "Get personal records", "personal records", Client.PersonalRecords),
		kit.NoArgTool(b, "get_earned_badges", "Get earned badges", "earned badges", Client.EarnedBadges),
		kit.PageTool(b, "get_adhoc_challenges", "Get ad-hoc challenges", "ad-hoc challenges", pageLimit, Client.AdhocChallenges),
		kit.PageTool(b, "get_available_badge_challenges", "Get available badge challenges", "available badge challenges", pageLimit, Client.AvailableBadgeChallenges),
		kit.PageTool(b, "get_badge_challenges", "Get completed badge challenges", "badge challenges", pageLimit, Client.BadgeChallenges),
		kit.PageTool(b, "get_non_completed_badge_challenges", "Get badge challenges not yet completed", "non-completed badge challenges", pageLimit, Client.NonCompletedBadgeChallenges),
		kit.NoArgTool(b, "get_race_predictions", "Get race time predictions", "race predictions", Client.RacePredictions),
		kit.PageTool(b, "get_inprogress_virtual_challenges", "Get virtual challenges in progress", "in-progress virtual challenges", pageLimit, Client.InProgressVirtualChallenges),
	}
}

type goalsInput struct {
	Status string `json:"status"`
}

func (m *Module) goals() toolbox.Tool {
	params := []toolschema.Param{
		toolschema.String("status", "Goal status").Optional("active").OneOf("active", "future", "past"),
	}

	return kit.Custom(m.client, "get_goals", "Get goals by status", params,
		func(ctx context.Context, c Client, in goalsInput) result.Result {
			if in.Status == "" {
				in.Status = "active"
			}
			return result.Wrap(in.Status+" goals", "", func() (json.RawMessage, error) {
				return c.Goals(ctx, in.Status)
			})
		}, kit.ReadOnly())
}
