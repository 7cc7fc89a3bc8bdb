package toolbox

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareSeesTool(t *testing.T) {
	weighIns := Tool{
		Name:        "get_daily_weigh_ins",
		Description: "Get weigh-ins for a date",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"date":{"type":"string"}}}`),
		ReadOnly:    true,
		Handler: func(_ context.Context, input json.RawMessage) (string, error) {
			var in struct {
				Date string `json:"date"`
			}
			if err := json.Unmarshal(input, &in); err != nil {
				return "", err
			}
			return "weigh-ins for " + in.Date, nil
		},
	}

	var label string
	var mw Middleware = func(tool Tool, next Handler) Handler {
		return func(ctx context.Context, input json.RawMessage) (string, error) {
			label = tool.Name
			if tool.ReadOnly {
				label += " (read-only)"
			}
			return next(ctx, input)
		}
	}

	out, err := mw(weighIns, weighIns.Handler)(context.Background(), json.RawMessage(`{"date":"2024-01-15"}`))
	require.NoError(t, err)
	assert.Equal(t, "weigh-ins for 2024-01-15", out)
	assert.Equal(t, "get_daily_weigh_ins (read-only)", label)
}
