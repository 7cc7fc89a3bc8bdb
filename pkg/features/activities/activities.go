// Package activities provides the activity tools: listing, lookup of one
// activity and its details, renaming, and deletion.
package activities

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/germanamz/garmin-mcp/pkg/features/kit"
	"github.com/germanamz/garmin-mcp/pkg/tools/result"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolbox"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolschema"
)

// defaultLimit is the page size of get_activities when none is given.
const defaultLimit = 20

// Client is the part of the Connect API this module uses.
type Client interface {
	Activities(ctx context.Context, start, limit int) (json.RawMessage, error)
	ActivitiesByDate(ctx context.Context, start, end, activityType string) (json.RawMessage, error)
	ActivitiesForDate(ctx context.Context, date string) (json.RawMessage, error)
	LastActivity(ctx context.Context) (json.RawMessage, error)
	CountActivities(ctx context.Context) (json.RawMessage, error)
	Activity(ctx context.Context, id int64) (json.RawMessage, error)
	ActivitySplits(ctx context.Context, id int64) (json.RawMessage, error)
	ActivityTypedSplits(ctx context.Context, id int64) (json.RawMessage, error)
	ActivitySplitSummaries(ctx context.Context, id int64) (json.RawMessage, error)
	ActivityWeather(ctx context.Context, id int64) (json.RawMessage, error)
	ActivityHRInTimezones(ctx context.Context, id int64) (json.RawMessage, error)
	ActivityGear(ctx context.Context, id int64) (json.RawMessage, error)
	ActivityExerciseSets(ctx context.Context, id int64) (json.RawMessage, error)
	SetActivityName(ctx context.Context, id int64, name string) (json.RawMessage, error)
	DeleteActivity(ctx context.Context, id int64) (json.RawMessage, error)
}

// Module owns the activity tools.
type Module struct {
	client kit.Binding[Client]
}

// New creates the module bound to client.
func New(client Client) *Module {
	return &Module{client: kit.Bind(client)}
}

// Name returns the module name.
func (m *Module) Name() string { return "activities" }

// Tools returns the module's tools.
func (m *Module) Tools() []toolbox.Tool {
	b := m.client

	return []toolbox.Tool{
		kit.PageTool(b, "get_activities", "Get a page of activities, newest first", "activities", defaultLimit, Client.Activities),
		m.byDate(),
		kit.DateTool(b, "get_activities_fordate", "Get activities recorded on a date", "activities", Client.ActivitiesForDate),
		kit.NoArgTool(b, "get_last_activity", "Get the most recent activity", "last activity", Client.LastActivity),
		kit.NoArgTool(b, "count_activities", "Get the total number of activities", "activity count", Client.CountActivities),
		kit.IDTool(b, "get_activity", "Get the summary of an activity", "activity", "activity_id", "activity", Client.Activity),
		kit.IDTool(b, "get_activity_splits", "Get lap splits of an activity", "splits", "activity_id", "activity", Client.ActivitySplits),
		kit.IDTool(b, "get_activity_typed_splits", "Get typed splits of an activity", "typed splits", "activity_id", "activity", Client.ActivityTypedSplits),
		kit.IDTool(b, "get_activity_split_summaries", "Get split summaries of an activity", "split summaries", "activity_id", "activity", Client.ActivitySplitSummaries),
		kit.IDTool(b, "get_activity_weather", "Get the weather recorded during an activity", "weather data", "activity_id", "activity", Client.ActivityWeather),
		kit.IDTool(b, "get_activity_hr_in_timezones", "Get time spent in each heart rate zone during an activity", "heart rate zone data", "activity_id", "activity", Client.ActivityHRInTimezones),
		kit.IDTool(b, "get_activity_gear", "Get the gear used for an activity", "gear", "activity_id", "activity", Client.ActivityGear),
		kit.IDTool(b, "get_activity_exercise_sets", "Get strength training exercise sets of an activity", "exercise sets", "activity_id", "activity", Client.ActivityExerciseSets),
		m.setName(),
		m.delete(),
	}
}

type byDateInput struct {
	kit.RangeInput
	ActivityType string `json:"activity_type"`
}

func (m *Module) byDate() toolbox.Tool {
	params := []toolschema.Param{
		toolschema.Date("start_date", "Start date"),
		toolschema.Date("end_date", "End date"),
		toolschema.String("activity_type", "Optional activity type filter, e.g. running, cycling, swimming").Optional(nil),
	}

	return kit.Custom(m.client, "get_activities_by_date", "Get activities between two dates, optionally filtered by type", params,
		func(ctx context.Context, c Client, in byDateInput) result.Result {
			return result.Wrap("activities", result.Between(in.StartDate, in.EndDate), func() (json.RawMessage, error) {
				return c.ActivitiesByDate(ctx, in.StartDate, in.EndDate, in.ActivityType)
			})
		}, kit.ReadOnly())
}

type renameInput struct {
	ActivityID int64  `json:"activity_id"`
	Name       string `json:"name"`
}

func (m *Module) setName() toolbox.Tool {
	params := []toolschema.Param{
		toolschema.Int("activity_id", "ID of the activity"),
		toolschema.String("name", "New activity name"),
	}

	return kit.Custom(m.client, "set_activity_name", "Rename an activity", params,
		func(ctx context.Context, c Client, in renameInput) result.Result {
			done := fmt.Sprintf("Activity %d renamed to %q", in.ActivityID, in.Name)
			return result.WrapAction("updating", "activity name", done, func() (json.RawMessage, error) {
				return c.SetActivityName(ctx, in.ActivityID, in.Name)
			})
		})
}

type idInput struct {
	ActivityID int64 `json:"activity_id"`
}

func (m *Module) delete() toolbox.Tool {
	params := []toolschema.Param{toolschema.Int("activity_id", "ID of the activity")}

	return kit.Custom(m.client, "delete_activity", "Delete an activity", params,
		func(ctx context.Context, c Client, in idInput) result.Result {
			done := fmt.Sprintf("Activity %d deleted", in.ActivityID)
			return result.WrapAction("deleting", "activity", done, func() (json.RawMessage, error) {
				return c.DeleteActivity(ctx, in.ActivityID)
			})
		}, kit.Destructive())
}
