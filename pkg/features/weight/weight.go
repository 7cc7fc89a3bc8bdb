// Package weight provides the weigh-in tools.
package weight

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"github.com/germanamz/garmin-mcp/pkg/features/kit"
	"github.com/germanamz/garmin-mcp/pkg/tools/result"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolbox"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolschema"
)

// Client is the part of the Connect API this module uses.
type Client interface {
	WeighIns(ctx context.Context, start, end string) (json.RawMessage, error)
	DailyWeighIns(ctx context.Context, date string) (json.RawMessage, error)
	AddWeighIn(ctx context.Context, weight float64, unitKey string, at time.Time) (json.RawMessage, error)
	DeleteWeighIn(ctx context.Context, date, samplePK string) (json.RawMessage, error)
}

// Module owns the weigh-in tools.
type Module struct {
	client kit.Binding[Client]
	now    func() time.Time
}

// New creates the module bound to client.
func New(client Client) *Module {
	return &Module{client: kit.Bind(client), now: time.Now}
}

// Name returns the module name.
func (m *Module) Name() string { return "weight" }

// Tools returns the module's tools.
func (m *Module) Tools() []toolbox.Tool {
	b := m.client

	return []toolbox.Tool{
		kit.RangeTool(b, "get_weigh_ins", "Get weigh-ins between two dates", "weigh-ins", Client.WeighIns),
		kit.DateTool(b, "get_daily_weigh_ins", "Get the weigh-ins of one day", "weigh-ins", Client.DailyWeighIns),
		m.add(),
		m.delete(),
	}
}

type addInput struct {
	Weight  float64 `json:"weight"`
	UnitKey string  `json:"unit_key"`
}

func (m *Module) add() toolbox.Tool {
	params := []toolschema.Param{
		toolschema.Number("weight", "Weight value"),
		toolschema.String("unit_key", "Unit of the weight value").Optional("kg").OneOf("kg", "lbs"),
	}

	return kit.Custom(m.client, "add_weigh_in", "Record a manual weigh-in at the current time", params,
		func(ctx context.Context, c Client, in addInput) result.Result {
			if in.UnitKey == "" {
				in.UnitKey = "kg"
			}
			done := fmt.Sprintf("Weigh-in of %g %s recorded", in.Weight, in.UnitKey)
			return result.WrapAction("adding", "weigh-in", done, func() (json.RawMessage, error) {
				return c.AddWeighIn(ctx, in.Weight, in.UnitKey, m.now())
			})
		})
}

type deleteInput struct {
	Date      string `json:"date"`
	DeleteAll bool   `json:"delete_all"`
}

func (m *Module) delete() toolbox.Tool {
	params := []toolschema.Param{
		toolschema.Date("date", "Date of the weigh-ins"),
		toolschema.Bool("delete_all", "Delete every weigh-in of the day instead of only the latest").Optional(false),
	}

	return kit.Custom(m.client, "delete_weigh_ins", "Delete weigh-ins recorded on a date", params,
		func(ctx context.Context, c Client, in deleteInput) result.Result {
			day, err := c.DailyWeighIns(ctx, in.Date)
			if err != nil {
				return result.Failure(fmt.Sprintf("Error deleting weigh-ins: %s", err.Error()))
			}

			samples := samplesToDelete(day, in.DeleteAll)
			if len(samples) == 0 {
				return result.Empty("No weigh-ins found for " + in.Date)
			}

			for _, pk := range samples {
				if _, err := c.DeleteWeighIn(ctx, in.Date, pk); err != nil {
					return result.Failure(fmt.Sprintf("Error deleting weigh-ins: %s", err.Error()))
				}
			}

			return result.Text(fmt.Sprintf("Deleted %d weigh-in(s) for %s", len(samples), in.Date))
		}, kit.Destructive())
}

// samplesToDelete returns the sample keys of the day view. Unless all is set
// only the latest sample (by timestamp) is returned.
func samplesToDelete(day json.RawMessage, all bool) []string {
	list := gjson.GetBytes(day, "dateWeightList").Array()

	if all {
		keys := make([]string, 0, len(list))
		for _, s := range list {
			if pk := s.Get("samplePk").String(); pk != "" {
				keys = append(keys, pk)
			}
		}
		return keys
	}

	var latest gjson.Result
	for _, s := range list {
		if s.Get("samplePk").String() == "" {
			continue
		}
		if !latest.Exists() || s.Get("date").Int() > latest.Get("date").Int() {
			latest = s
		}
	}
	if !latest.Exists() {
		return nil
	}
	return []string{latest.Get("samplePk").String()}
}
