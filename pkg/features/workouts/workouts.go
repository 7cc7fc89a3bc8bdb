// Package workouts provides the workout library and scheduling tools.
package workouts

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/germanamz/garmin-mcp/pkg/features/kit"
	"github.com/germanamz/garmin-mcp/pkg/tools/result"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolbox"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolschema"
)

const defaultLimit = 100

// Client is the part of the Connect API this module uses.
type Client interface {
	Workouts(ctx context.Context, start, limit int) (json.RawMessage, error)
	Workout(ctx context.Context, id int64) (json.RawMessage, error)
	UploadWorkout(ctx context.Context, workout json.RawMessage) (json.RawMessage, error)
	DeleteWorkout(ctx context.Context, id int64) (json.RawMessage, error)
	ScheduleWorkout(ctx context.Context, id int64, date string) (json.RawMessage, error)
}

// Module owns the workout tools.
type Module struct {
	client kit.Binding[Client]
}

// New creates the module bound to client.
func New(client Client) *Module {
	return &Module{client: kit.Bind(client)}
}

// Name returns the module name.
func (m *Module) Name() string { return "workouts" }

// Tools returns the module's tools.
func (m *Module) Tools() []toolbox.Tool {
	b := m.client

	return []toolbox.Tool{
		kit.PageTool(b, "get_workouts", "Get saved workouts", "workouts", defaultLimit, Client.Workouts),
		kit.IDTool(b, "get_workout_by_id", "Get a workout by ID", "workout", "workout_id", "workout", Client.Workout),
		m.upload(),
		m.delete(),
		m.schedule(),
	}
}

type uploadInput struct {
	Workout json.RawMessage `json:"workout"`
}

func (m *Module) upload() toolbox.Tool {
	params := []toolschema.Param{toolschema.Object("workout", "Workout definition in Connect workout JSON format")}

	return kit.Custom(m.client, "upload_workout", "Create a workout from its JSON definition", params,
		func(ctx context.Context, c Client, in uploadInput) result.Result {
			if result.IsEmpty(in.Workout) {
				return result.Failure("Error uploading workout: workout definition is empty")
			}
			return result.WrapAction("uploading", "workout", "Workout uploaded", func() (json.RawMessage, error) {
				return c.UploadWorkout(ctx, in.Workout)
			})
		})
}

type workoutInput struct {
	WorkoutID int64 `json:"workout_id"`
}

func (m *Module) delete() toolbox.Tool {
	params := []toolschema.Param{toolschema.Int("workout_id", "ID of the workout")}

	return kit.Custom(m.client, "delete_workout", "Delete a workout", params,
		func(ctx context.Context, c Client, in workoutInput) result.Result {
			done := fmt.Sprintf("Workout %d deleted", in.WorkoutID)
			return result.WrapAction("deleting", "workout", done, func() (json.RawMessage, error) {
				return c.DeleteWorkout(ctx, in.WorkoutID)
			})
		}, kit.Destructive())
}

type scheduleInput struct {
	WorkoutID int64  `json:"workout_id"`
	Date      string `json:"date"`
}

func (m *Module) schedule() toolbox.Tool {
	params := []toolschema.Param{
		toolschema.Int("workout_id", "ID of the workout"),
		toolschema.Date("date", "Calendar date to schedule the workout on"),
	}

	return kit.Custom(m.client, "schedule_workout", "Schedule a workout on a calendar date", params,
		func(ctx context.Context, c Client, in scheduleInput) result.Result {
			done := fmt.Sprintf("Workout %d scheduled for %s", in.WorkoutID, in.Date)
			return result.WrapAction("scheduling", "workout", done, func() (json.RawMessage, error) {
				return c.ScheduleWorkout(ctx, in.WorkoutID, in.Date)
			})
		})
}
