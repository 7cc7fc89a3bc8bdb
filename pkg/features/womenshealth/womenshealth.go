// Package womenshealth provides the pregnancy and menstrual cycle tools.
package womenshealth

import (
	"context"
	"encoding/json"

	"github.com/germanamz/garmin-mcp/pkg/features/kit"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolbox"
)

// Client is the part of the Connect API this module uses.
type Client interface {
	PregnancySummary(ctx context.Context) (json.RawMessage, error)
	MenstrualDay(ctx context.Context, date string) (json.RawMessage, error)
	MenstrualCalendar(ctx context.Context, start, end string) (json.RawMessage, error)
}

type Module struct {
	client kit.Binding[Client]
}

func New(client Client) *Module {
	return &Module{client: kit.Bind(client)}
}

func (m *Module) Name() string { return "womens_health" }

func (m *Module) Tools() []toolbox.Tool {
	b := m.client

	return []toolbox.Tool{
		kit.NoArgTool(b, "get_pregnancy_summary", "Get pregnancy summary data", "pregnancy summary", Client.PregnancySummary),
		kit.DateTool(b, "get_menstrual_data_for_date", "Get menstrual cycle data for a date", "menstrual data", Client.MenstrualDay),
		kit.RangeTool(b, "get_menstrual_calendar_data", "Get menstrual calendar data between two dates", "menstrual calendar data", Client.MenstrualCalendar),
	}
}
