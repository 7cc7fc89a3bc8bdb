package garmin

import (
	"context"
	"encoding/json"
	"net/url"
)

// ProgressSummary returns lifetime progress for metric between start and end.
func (a *API) ProgressSummary(ctx context.Context, start, end, metric string) (json.RawMessage, error) {
	q := url.Values{
		"aggregation":         {"lifetime"},
		"startDate":           {start},
		"endDate":             {end},
		"metric":              {metric},
		"groupByActivityType": {"true"},
	}
	return a.get(ctx, "/fitnessstats-service/activity", q)
}

// HillScore returns daily hill scores between start and end.
func (a *API) HillScore(ctx context.Context, start, end string) (json.RawMessage, error) {
	q := url.Values{"startDate": {start}, "endDate": {end}, "aggregation": {"daily"}}
	return a.get(ctx, "/metrics-service/metrics/hillscore/stats", q)
}

// EnduranceScore returns weekly endurance scores between start and end.
func (a *API) EnduranceScore(ctx context.Context, start, end string) (json.RawMessage, error) {
	q := url.Values{"startDate": {start}, "endDate": {end}, "aggregation": {"weekly"}}
	return a.get(ctx, "/metrics-service/metrics/endurancescore/stats", q)
}

// MaxMetrics returns VO2 max and related metrics for date.
func (a *API) MaxMetrics(ctx context.Context, date string) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/metrics-service/metrics/maxmet/daily/%s/%s", seg(date), seg(date))
}

// HRV returns heart rate variability data for date.
func (a *API) HRV(ctx context.Context, date string) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/hrv-service/hrv/%s", seg(date))
}

// FitnessAge returns fitness age data for date.
func (a *API) FitnessAge(ctx context.Context, date string) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/fitnessage-service/fitnessage/%s", seg(date))
}

// TrainingPlans returns the available training plans.
func (a *API) TrainingPlans(ctx context.Context) (json.RawMessage, error) {
	return a.get(ctx, "/trainingplan-service/trainingplan/plans", nil)
}

// TrainingPlan returns one phased training plan.
func (a *API) TrainingPlan(ctx context.Context, planID int64) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/trainingplan-service/trainingplan/phased/%s", itoa(planID))
}
