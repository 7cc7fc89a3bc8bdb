package garmin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"
)

// activityPageSize is the page size used when collecting activities by date.
const activityPageSize = 100

// Activities returns a page of the activity list, newest first.
func (a *API) Activities(ctx context.Context, start, limit int) (json.RawMessage, error) {
	return a.get(ctx, "/activitylist-service/activities/search/activities", paging(start, limit))
}

// ActivitiesByDate returns all activities between start and end, optionally
// filtered by activity type. It pages through the list until a short page.
func (a *API) ActivitiesByDate(ctx context.Context, start, end, activityType string) (json.RawMessage, error) {
	all := make([]json.RawMessage, 0)

	for offset := 0; ; offset += activityPageSize {
		q := url.Values{
			"startDate": {start},
			"endDate":   {end},
			"start":     {strconv.Itoa(offset)},
			"limit":     {strconv.Itoa(activityPageSize)},
		}
		if activityType != "" {
			q.Set("activityType", activityType)
		}

		page, err := a.get(ctx, "/activitylist-service/activities/search/activities", q)
		if err != nil {
			return nil, err
		}

		items := gjson.ParseBytes(page).Array()
		for _, item := range items {
			all = append(all, json.RawMessage(item.Raw))
		}
		if len(items) < activityPageSize {
			break
		}
	}

	return json.Marshal(all)
}

// ActivitiesForDate returns the activities recorded on date.
func (a *API) ActivitiesForDate(ctx context.Context, date string) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/mobile-gateway/heartRate/forDate/%s", seg(date))
}

// LastActivity returns the most recent activity, or nil when there is none.
func (a *API) LastActivity(ctx context.Context) (json.RawMessage, error) {
	page, err := a.Activities(ctx, 0, 1)
	if err != nil {
		return nil, err
	}

	first := gjson.GetBytes(page, "0")
	if !first.Exists() {
		return nil, nil
	}
	return json.RawMessage(first.Raw), nil
}

// CountActivities returns the total number of activities.
func (a *API) CountActivities(ctx context.Context) (json.RawMessage, error) {
	return a.get(ctx, "/activitylist-service/activities/count", nil)
}

// Activity returns the summary of one activity.
func (a *API) Activity(ctx context.Context, id int64) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/activity-service/activity/%s", itoa(id))
}

// ActivitySplits returns lap splits of an activity.
func (a *API) ActivitySplits(ctx context.Context, id int64) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/activity-service/activity/%s/splits", itoa(id))
}

// ActivityTypedSplits returns typed splits of an activity.
func (a *API) ActivityTypedSplits(ctx context.Context, id int64) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/activity-service/activity/%s/typedsplits", itoa(id))
}

// ActivitySplitSummaries returns split summaries of an activity.
func (a *API) ActivitySplitSummaries(ctx context.Context, id int64) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/activity-service/activity/%s/split_summaries", itoa(id))
}

// ActivityWeather returns the weather recorded for an activity.
func (a *API) ActivityWeather(ctx context.Context, id int64) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/activity-service/activity/%s/weather", itoa(id))
}

// ActivityHRInTimezones returns time spent in each heart rate zone.
func (a *API) ActivityHRInTimezones(ctx context.Context, id int64) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/activity-service/activity/%s/hrTimeInZones", itoa(id))
}

// ActivityExerciseSets returns strength exercise sets of an activity.
func (a *API) ActivityExerciseSets(ctx context.Context, id int64) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/activity-service/activity/%s/exerciseSets", itoa(id))
}

// ActivityGear returns the gear linked to an activity.
func (a *API) ActivityGear(ctx context.Context, id int64) (json.RawMessage, error) {
	return a.get(ctx, "/gear-service/gear/filterGear", url.Values{"activityId": {itoa(id)}})
}

// SetActivityName renames an activity.
func (a *API) SetActivityName(ctx context.Context, id int64, name string) (json.RawMessage, error) {
	payload := map[string]any{"activityId": id, "activityName": name}
	return a.SendJSON(ctx, http.MethodPut, "/activity-service/activity/"+itoa(id), payload)
}

// DeleteActivity deletes an activity.
func (a *API) DeleteActivity(ctx context.Context, id int64) (json.RawMessage, error) {
	return a.SendJSON(ctx, http.MethodDelete, "/activity-service/activity/"+itoa(id), nil)
}
