// Package training provides the training tools: progress summaries, scores,
// training effect, VO2 max, HRV, fitness age, and training plans.
package training

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/germanamz/garmin-mcp/pkg/features/kit"
	"github.com/germanamz/garmin-mcp/pkg/tools/result"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolbox"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolschema"
)

// Client is the part of the Connect API this module uses.
type Client interface {
	ProgressSummary(ctx context.Context, start, end, metric string) (json.RawMessage, error)
	HillScore(ctx context.Context, start, end string) (json.RawMessage, error)
	EnduranceScore(ctx context.Context, start, end string) (json.RawMessage, error)
	Activity(ctx context.Context, id int64) (json.RawMessage, error)
	MaxMetrics(ctx context.Context, date string) (json.RawMessage, error)
	HRV(ctx context.Context, date string) (json.RawMessage, error)
	FitnessAge(ctx context.Context, date string) (json.RawMessage, error)
	TrainingPlans(ctx context.Context) (json.RawMessage, error)
	TrainingPlan(ctx context.Context, planID int64) (json.RawMessage, error)
}

// Module owns the training tools.
type Module struct {
	client kit.Binding[Client]
}

// New creates the module bound to client.
func New(client Client) *Module {
	return &Module{client: kit.Bind(client)}
}

// Name returns the module name.
func (m *Module) Name() string { return "training" }

// Tools returns the module's tools.
func (m *Module) Tools() []toolbox.Tool {
	b := m.client

	return []toolbox.Tool{
		m.progressSummary(),
		kit.OptionalRangeTool(b, "get_hill_score", "Get hill score for a date or date range", "hill score data",
			singleDay(Client.HillScore), Client.HillScore),
		kit.OptionalRangeTool(b, "get_endurance_score", "Get endurance score for a date or date range", "endurance score data",
			singleDay(Client.EnduranceScore), Client.EnduranceScore),
		m.trainingEffect(),
		kit.DateTool(b, "get_max_metrics", "Get VO2 max and related metrics", "max metrics", Client.MaxMetrics),
		kit.DateTool(b, "get_hrv_data", "Get heart rate variability data", "HRV data", Client.HRV),
		kit.DateTool(b, "get_fitnessage_data", "Get fitness age data", "fitness age data", Client.FitnessAge),
		kit.NoArgTool(b, "get_training_plans", "Get available training plans", "training plans", Client.TrainingPlans),
		kit.IDTool(b, "get_training_plan_by_id", "Get a training plan by ID", "training plan", "plan_id", "plan", Client.TrainingPlan),
	}
}

// singleDay adapts a range call to a single date.
func singleDay(ranged func(Client, context.Context, string, string) (json.RawMessage, error)) func(Client, context.Context, string) (json.RawMessage, error) {
	return func(c Client, ctx context.Context, date string) (json.RawMessage, error) {
		return ranged(c, ctx, date, date)
	}
}

type progressInput struct {
	kit.RangeInput
	Metric string `json:"metric"`
}

func (m *Module) progressSummary() toolbox.Tool {
	params := []toolschema.Param{
		toolschema.Date("start_date", "Start date"),
		toolschema.Date("end_date", "End date"),
		toolschema.String("metric", "Metric to summarize").
			Optional("distance").
			OneOf("distance", "duration", "elevationGain", "movingDuration"),
	}

	return kit.Custom(m.client, "get_progress_summary_between_dates", "Get progress summary for a metric between two dates, grouped by activity type", params,
		func(ctx context.Context, c Client, in progressInput) result.Result {
			if in.Metric == "" {
				in.Metric = "distance"
			}
			return result.Wrap("progress summary", result.Between(in.StartDate, in.EndDate), func() (json.RawMessage, error) {
				return c.ProgressSummary(ctx, in.StartDate, in.EndDate, in.Metric)
			})
		}, kit.ReadOnly())
}

// trainingEffectFields are copied from the activity summary.
var trainingEffectFields = []string{
	"trainingEffect",
	"aerobicTrainingEffect",
	"anaerobicTrainingEffect",
	"aerobicTrainingEffectMessage",
	"anaerobicTrainingEffectMessage",
	"trainingEffectLabel",
	"activityTrainingLoad",
}

type activityInput struct {
	ActivityID int64 `json:"activity_id"`
}

func (m *Module) trainingEffect() toolbox.Tool {
	params := []toolschema.Param{toolschema.Int("activity_id", "ID of the activity")}

	return kit.Custom(m.client, "get_training_effect", "Get the training effect of an activity", params,
		func(ctx context.Context, c Client, in activityInput) result.Result {
			scope := result.For("activity " + strconv.FormatInt(in.ActivityID, 10))
			return result.Wrap("training effect data", scope, func() (json.RawMessage, error) {
				activity, err := c.Activity(ctx, in.ActivityID)
				if err != nil {
					return nil, err
				}
				return TrainingEffect(activity)
			})
		}, kit.ReadOnly())
}

// TrainingEffect extracts the training effect fields present in an
// activity's summaryDTO. The result is an empty object when none are present.
func TrainingEffect(activity json.RawMessage) (json.RawMessage, error) {
	summary := gjson.GetBytes(activity, "summaryDTO")
	out := "{}"

	for _, key := range trainingEffectFields {
		v := summary.Get(key)
		if !v.Exists() {
			continue
		}

		var err error
		if out, err = sjson.SetRaw(out, key, v.Raw); err != nil {
			return nil, fmt.Errorf("training effect: %w", err)
		}
	}

	return json.RawMessage(out), nil
}
