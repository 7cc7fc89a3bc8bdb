package garmin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

// timestampLayout is the local/GMT timestamp format used by mutation payloads.
const timestampLayout = "2006-01-02T15:04:05.00"

// WeighIns returns weigh-ins between start and end.
func (a *API) WeighIns(ctx context.Context, start, end string) (json.RawMessage, error) {
	return a.getf(ctx, url.Values{"includeAll": {"true"}}, "/weight-service/weight/range/%s/%s", seg(start), seg(end))
}

// DailyWeighIns returns the weigh-ins of one day.
func (a *API) DailyWeighIns(ctx context.Context, date string) (json.RawMessage, error) {
	return a.getf(ctx, url.Values{"includeAll": {"true"}}, "/weight-service/weight/dayview/%s", seg(date))
}

// AddWeighIn records a manual weigh-in. unitKey is "kg" or "lbs".
func (a *API) AddWeighIn(ctx context.Context, weight float64, unitKey string, at time.Time) (json.RawMessage, error) {
	payload := map[string]any{
		"dateTimestamp": at.Format(timestampLayout),
		"gmtTimestamp":  at.UTC().Format(timestampLayout),
		"unitKey":       unitKey,
		"sourceType":    "MANUAL",
		"value":         weight,
	}
	return a.SendJSON(ctx, http.MethodPost, "/weight-service/user-weight", payload)
}

// DeleteWeighIn deletes one weigh-in sample of date.
func (a *API) DeleteWeighIn(ctx context.Context, date, samplePK string) (json.RawMessage, error) {
	return a.SendJSON(ctx, http.MethodDelete, "/weight-service/weight/"+seg(date)+"/byversion/"+seg(samplePK), nil)
}
