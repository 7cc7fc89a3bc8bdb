// Package datamanagement provides the tools that record or remove manual
// health entries: blood pressure readings and hydration.
package datamanagement

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/germanamz/garmin-mcp/pkg/features/kit"
	"github.com/germanamz/garmin-mcp/pkg/tools/result"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolbox"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolschema"
)

// Client is the part of the Connect API this module uses.
type Client interface {
	SetBloodPressure(ctx context.Context, systolic, diastolic, pulse int, at time.Time, notes string) (json.RawMessage, error)
	DeleteBloodPressure(ctx context.Context, date, version string) (json.RawMessage, error)
	AddHydration(ctx context.Context, valueML float64, date string, at time.Time) (json.RawMessage, error)
}

// Module owns the data management tools.
type Module struct {
	client kit.Binding[Client]
	now    func() time.Time
}

// New creates the module bound to client.
func New(client Client) *Module {
	return &Module{client: kit.Bind(client), now: time.Now}
}

// Name returns the module name.
func (m *Module) Name() string { return "data_management" }

// Tools returns the module's tools.
func (m *Module) Tools() []toolbox.Tool {
	return []toolbox.Tool{
		m.setBloodPressure(),
		m.addHydration(),
		m.deleteBloodPressure(),
	}
}

type bloodPressureInput struct {
	Systolic  int    `json:"systolic"`
	Diastolic int    `json:"diastolic"`
	Pulse     int    `json:"pulse"`
	Notes     string `json:"notes"`
}

func (m *Module) setBloodPressure() toolbox.Tool {
	params := []toolschema.Param{
		toolschema.Int("systolic", "Systolic pressure (mmHg)"),
		toolschema.Int("diastolic", "Diastolic pressure (mmHg)"),
		toolschema.Int("pulse", "Pulse (bpm)"),
		toolschema.String("notes", "Optional notes").Optional(nil),
	}

	return kit.Custom(m.client, "set_blood_pressure", "Record a blood pressure reading at the current time", params,
		func(ctx context.Context, c Client, in bloodPressureInput) result.Result {
			done := fmt.Sprintf("Blood pressure %d/%d (pulse %d) recorded", in.Systolic, in.Diastolic, in.Pulse)
			return result.WrapAction("setting", "blood pressure", done, func() (json.RawMessage, error) {
				return c.SetBloodPressure(ctx, in.Systolic, in.Diastolic, in.Pulse, m.now(), in.Notes)
			})
		})
}

type hydrationInput struct {
	ValueInML float64 `json:"value_in_ml"`
	Date      string  `json:"date"`
}

func (m *Module) addHydration() toolbox.Tool {
	params := []toolschema.Param{
		toolschema.Number("value_in_ml", "Amount of water in milliliters; negative values subtract"),
		toolschema.OptionalDate("date", "Date to log the intake on; defaults to today"),
	}

	return kit.Custom(m.client, "add_hydration_data", "Log water intake", params,
		func(ctx context.Context, c Client, in hydrationInput) result.Result {
			now := m.now()
			if in.Date == "" {
				in.Date = now.Format(time.DateOnly)
			}
			done := fmt.Sprintf("Logged %g ml of water for %s", in.ValueInML, in.Date)
			return result.WrapAction("adding", "hydration data", done, func() (json.RawMessage, error) {
				return c.AddHydration(ctx, in.ValueInML, in.Date, now)
			})
		})
}

type deleteInput struct {
	Date    string `json:"date"`
	Version string `json:"version"`
}

func (m *Module) deleteBloodPressure() toolbox.Tool {
	params := []toolschema.Param{
		toolschema.Date("date", "Date of the reading"),
		toolschema.String("version", "Version of the reading, as returned by get_blood_pressure"),
	}

	return kit.Custom(m.client, "delete_blood_pressure", "Delete a blood pressure reading", params,
		func(ctx context.Context, c Client, in deleteInput) result.Result {
			done := fmt.Sprintf("Blood pressure reading %s for %s deleted", in.Version, in.Date)
			return result.WrapAction("deleting", "blood pressure", done, func() (json.RawMessage, error) {
				return c.DeleteBloodPressure(ctx, in.Date, in.Version)
			})
		}, kit.Destructive())
}
