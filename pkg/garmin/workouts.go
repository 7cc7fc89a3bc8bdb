package garmin

import (
	"context"
	"encoding/json"
	"net/http"
)

// Workouts returns a page of saved workouts.
func (a *API) Workouts(ctx context.Context, start, limit int) (json.RawMessage, error) {
	return a.get(ctx, "/workout-service/workouts", paging(start, limit))
}

// Workout returns one workout.
func (a *API) Workout(ctx context.Context, id int64) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/workout-service/workout/%s", itoa(id))
}

// UploadWorkout creates a workout from its JSON definition.
func (a *API) UploadWorkout(ctx context.Context, workout json.RawMessage) (json.RawMessage, error) {
	return a.SendJSON(ctx, http.MethodPost, "/workout-service/workout", workout)
}

// DeleteWorkout deletes one workout.
func (a *API) DeleteWorkout(ctx context.Context, id int64) (json.RawMessage, error) {
	return a.SendJSON(ctx, http.MethodDelete, "/workout-service/workout/"+itoa(id), nil)
}

// ScheduleWorkout places a workout on the calendar at date.
func (a *API) ScheduleWorkout(ctx context.Context, id int64, date string) (json.RawMessage, error) {
	return a.SendJSON(ctx, http.MethodPost, "/workout-service/schedule/"+itoa(id), map[string]string{"date": date})
}
