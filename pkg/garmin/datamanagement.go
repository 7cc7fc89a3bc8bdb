package garmin

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// SetBloodPressure records a manual blood pressure reading.
func (a *API) SetBloodPressure(ctx context.Context, systolic, diastolic, pulse int, at time.Time, notes string) (json.RawMessage, error) {
	payload := map[string]any{
		"measurementTimestampLocal": at.Format(timestampLayout),
		"measurementTimestampGMT":   at.UTC().Format(timestampLayout),
		"systolic":                  systolic,
		"diastolic":                 diastolic,
		"pulse":                     pulse,
		"sourceType":                "MANUAL",
		"notes":                     notes,
	}
	return a.SendJSON(ctx, http.MethodPost, "/bloodpressure-service/bloodpressure", payload)
}

// DeleteBloodPressure deletes one blood pressure reading.
func (a *API) DeleteBloodPressure(ctx context.Context, date, version string) (json.RawMessage, error) {
	return a.SendJSON(ctx, http.MethodDelete, "/bloodpressure-service/bloodpressure/"+seg(date)+"/"+seg(version), nil)
}

// AddHydration logs water intake in milliliters on date.
func (a *API) AddHydration(ctx context.Context, valueML float64, date string, at time.Time) (json.RawMessage, error) {
	pk, err := a.ProfilePK()
	if err != nil {
		return nil, err
	}
	payload := map[string]any{
		"calendarDate":   date,
		"timestampLocal": at.Format(timestampLayout),
		"valueInML":      valueML,
		"userProfileId":  pk,
	}
	return a.SendJSON(ctx, http.MethodPut, "/usersummary-service/usersummary/hydration/log", payload)
}
