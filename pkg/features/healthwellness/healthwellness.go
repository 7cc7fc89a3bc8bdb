// Package healthwellness provides the daily health and wellness tools: stats,
// steps, heart rate, sleep, stress, body battery, and related metrics.
package healthwellness

import (
	"context"
	"encoding/json"

	"github.com/germanamz/garmin-mcp/pkg/features/kit"
	"github.com/germanamz/garmin-mcp/pkg/tools/result"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolbox"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolschema"
)

// Client is the part of the Connect API this module uses.
type Client interface {
	Stats(ctx context.Context, date string) (json.RawMessage, error)
	UserSummary(ctx context.Context, date string) (json.RawMessage, error)
	BodyComposition(ctx context.Context, date string) (json.RawMessage, error)
	BodyCompositionRange(ctx context.Context, start, end string) (json.RawMessage, error)
	StepsData(ctx context.Context, date string) (json.RawMessage, error)
	DailySteps(ctx context.Context, start, end string) (json.RawMessage, error)
	TrainingReadiness(ctx context.Context, date string) (json.RawMessage, error)
	BodyBattery(ctx context.Context, start, end string) (json.RawMessage, error)
	BodyBatteryEvents(ctx context.Context, date string) (json.RawMessage, error)
	BloodPressure(ctx context.Context, start, end string) (json.RawMessage, error)
	Floors(ctx context.Context, date string) (json.RawMessage, error)
	TrainingStatus(ctx context.Context, date string) (json.RawMessage, error)
	RestingHeartRate(ctx context.Context, date string) (json.RawMessage, error)
	HeartRates(ctx context.Context, date string) (json.RawMessage, error)
	Hydration(ctx context.Context, date string) (json.RawMessage, error)
	Sleep(ctx context.Context, date string) (json.RawMessage, error)
	Stress(ctx context.Context, date string) (json.RawMessage, error)
	Respiration(ctx context.Context, date string) (json.RawMessage, error)
	SpO2(ctx context.Context, date string) (json.RawMessage, error)
	AllDayStress(ctx context.Context, date string) (json.RawMessage, error)
	AllDayEvents(ctx context.Context, date string) (json.RawMessage, error)
}

// Module owns the health and wellness tools.
type Module struct {
	client kit.Binding[Client]
}

// New creates the module bound to client.
func New(client Client) *Module {
	return &Module{client: kit.Bind(client)}
}

// Name returns the module name.
func (m *Module) Name() string { return "health_wellness" }

// Tools returns the module's tools.
func (m *Module) Tools() []toolbox.Tool {
	b := m.client

	return []toolbox.Tool{
		kit.DateTool(b, "get_stats", "Get daily activity stats", "stats", Client.Stats),
		kit.DateTool(b, "get_user_summary", "Get user summary data (compatible with garminconnect-ha)", "user summary", Client.UserSummary),
		kit.OptionalRangeTool(b, "get_body_composition", "Get body composition data for a single date or date range",
			"body composition data", Client.BodyComposition, Client.BodyCompositionRange),
		m.statsAndBody(),
		kit.DateTool(b, "get_steps_data", "Get steps data", "steps data", Client.StepsData),
		kit.RangeTool(b, "get_daily_steps", "Get steps data for a date range", "daily steps data", Client.DailySteps),
		kit.DateTool(b, "get_training_readiness", "Get training readiness data", "training readiness data", Client.TrainingReadiness),
		kit.RangeTool(b, "get_body_battery", "Get body battery data", "body battery data", Client.BodyBattery),
		kit.DateTool(b, "get_body_battery_events", "Get body battery events data", "body battery events", Client.BodyBatteryEvents),
		kit.RangeTool(b, "get_blood_pressure", "Get blood pressure data", "blood pressure data", Client.BloodPressure),
		kit.DateTool(b, "get_floors", "Get floors climbed data", "floors data", Client.Floors),
		kit.DateTool(b, "get_training_status", "Get training status data", "training status data", Client.TrainingStatus),
		kit.DateTool(b, "get_rhr_day", "Get resting heart rate data", "resting heart rate data", Client.RestingHeartRate),
		kit.DateTool(b, "get_heart_rates", "Get heart rate data", "heart rate data", Client.HeartRates),
		kit.DateTool(b, "get_hydration_data", "Get hydration data", "hydration data", Client.Hydration),
		kit.DateTool(b, "get_sleep_data", "Get sleep data", "sleep data", Client.Sleep),
		m.sleepSummary(),
		kit.DateTool(b, "get_stress_data", "Get stress data", "stress data", Client.Stress),
		kit.DateTool(b, "get_respiration_data", "Get respiration data", "respiration data", Client.Respiration),
		kit.DateTool(b, "get_spo2_data", "Get SpO2 (blood oxygen) data", "SpO2 data", Client.SpO2),
		kit.DateTool(b, "get_all_day_stress", "Get all-day stress data", "all-day stress data", Client.AllDayStress),
		kit.DateTool(b, "get_all_day_events", "Get daily wellness events data", "daily wellness events", Client.AllDayEvents),
	}
}

func (m *Module) statsAndBody() toolbox.Tool {
	params := []toolschema.Param{toolschema.Date("date", "Date")}

	return kit.Custom(m.client, "get_stats_and_body", "Get stats and body composition data", params,
		func(ctx context.Context, c Client, in kit.DateInput) result.Result {
			return result.Wrap("stats and body composition data", result.For(in.Date), func() (json.RawMessage, error) {
				stats, err := c.Stats(ctx, in.Date)
				if err != nil {
					return nil, err
				}
				body, err := c.BodyComposition(ctx, in.Date)
				if err != nil {
					return nil, err
				}
				return MergeStatsAndBody(stats, body)
			})
		}, kit.ReadOnly())
}

func (m *Module) sleepSummary() toolbox.Tool {
	params := []toolschema.Param{toolschema.Date("date", "Date")}
	description := "Get sleep summary with only essential metrics (lightweight version). " +
		"Returns a compact summary of the night instead of the full time series, " +
		"suited to daily health check-ins where the detailed data would overwhelm the context window."

	return kit.Custom(m.client, "get_sleep_summary", description, params,
		func(ctx context.Context, c Client, in kit.DateInput) result.Result {
			r := result.Wrap("sleep summary", result.For(in.Date), func() (json.RawMessage, error) {
				return c.Sleep(ctx, in.Date)
			})
			if r.Kind() != result.KindData {
				return r
			}

			// A payload without the summary sections still yields {} as data.
			summary, err := SummarizeSleep(r.Payload())
			if err != nil {
				return result.Failure("Error retrieving sleep summary: " + err.Error())
			}
			return result.Data(summary)
		}, kit.ReadOnly())
}
